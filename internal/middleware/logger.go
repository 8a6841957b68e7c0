package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"talently/internal/modules/session"
	"talently/internal/pkg/metrics"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// ErrorLogger recovers from panics and logs 5xx responses and gin errors.
// Each one is also counted in m by category.
func ErrorLogger(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequestError(c, m, start, "panic", fmt.Sprintf("%v", recovered), debug.Stack())
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(c, m, start, "http_error", fmt.Sprintf("status=%d", c.Writer.Status()), nil)
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(c, m, start, fmt.Sprintf("%v", err.Type), err.Error(), nil)
			}
		}()

		c.Next()
	}
}

// RequestLogger writes one structured line per request and records its
// latency in m under request.<METHOD>.<route>.
func RequestLogger(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		latency := time.Since(start)
		m.Record(RequestMetricName(c), latency)

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"client_ip", c.ClientIP(),
			"business_id", session.BusinessID(c),
			"request_id", requestID(c),
		)
	}
}

// RequestMetricName names the timing of c by its route pattern, so that
// /talents/1 and /talents/2 share one entry.
func RequestMetricName(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	return "request." + c.Request.Method + "." + route
}

func logRequestError(c *gin.Context, m *metrics.Registry, start time.Time, errType, message string, stack []byte) {
	m.RecordError(errType, message, c.Request.URL.Path)

	attrs := []any{
		"type", errType,
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"business_id", session.BusinessID(c),
		"request_id", requestID(c),
		"latency", time.Since(start),
		"error", message,
	}
	if stack != nil {
		attrs = append(attrs, "stack", string(stack))
	}
	slog.Error("request_error", attrs...)
}

func requestID(c *gin.Context) string {
	return c.GetHeader("X-Request-ID")
}
