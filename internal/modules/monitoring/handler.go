package monitoring

import (
	"net/http"
	"runtime"

	"talently/internal/pkg/metrics"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	metrics *metrics.Registry
}

func NewHandler(m *metrics.Registry) *Handler {
	return &Handler{metrics: m}
}

// RegisterRoutes mounts the monitoring views. They expose error messages,
// so mount them behind a session.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/metrics", h.Metrics)
	protected.GET("/errors", h.Errors)
}

type memory struct {
	AllocBytes uint64 `json:"allocBytes"`
	SysBytes   uint64 `json:"sysBytes"`
	NumGC      uint32 `json:"numGC"`
}

type systemInfo struct {
	UptimeSeconds float64 `json:"uptimeSeconds"`
	GoVersion     string  `json:"goVersion"`
	Platform      string  `json:"platform"`
	Goroutines    int     `json:"goroutines"`
	Memory        memory  `json:"memory"`
}

func (h *Handler) Metrics(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	response.Success(c, http.StatusOK, gin.H{
		"system": systemInfo{
			UptimeSeconds: h.metrics.Uptime().Seconds(),
			GoVersion:     runtime.Version(),
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			Goroutines:    runtime.NumGoroutine(),
			Memory: memory{
				AllocBytes: ms.Alloc,
				SysBytes:   ms.Sys,
				NumGC:      ms.NumGC,
			},
		},
		"performance": h.metrics.Snapshot(),
	})
}

func (h *Handler) Errors(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"total":      h.metrics.TotalErrors(),
		"categories": h.metrics.Errors(),
	})
}
