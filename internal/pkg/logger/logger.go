package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a JSON logger for production and a text logger otherwise.
func New(w io.Writer, production bool) *slog.Logger {
	if production {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Setup installs the logger as the slog default and returns it.
func Setup(production bool) *slog.Logger {
	l := New(os.Stdout, production)
	slog.SetDefault(l)
	return l
}
