package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talently/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(m *metrics.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(m).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandler_Metrics(t *testing.T) {
	m := metrics.New()
	m.Record("request.GET./api/v1/talents", 10*time.Millisecond)
	m.Record("request.GET./api/v1/talents", 30*time.Millisecond)

	rr := httptest.NewRecorder()
	setupRouter(m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			System      systemInfo              `json:"system"`
			Performance map[string]metrics.Stat `json:"performance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.System.GoVersion)
	assert.Positive(t, body.Data.System.Goroutines)
	assert.Positive(t, body.Data.System.Memory.SysBytes)
	assert.Equal(t, metrics.Stat{Count: 2, Average: 20, Min: 10, Max: 30}, body.Data.Performance["request.GET./api/v1/talents"])
}

func TestHandler_Errors(t *testing.T) {
	m := metrics.New()
	m.RecordError("panic", "boom", "/api/v1/bookings")
	m.RecordError("panic", "boom again", "/api/v1/bookings")

	rr := httptest.NewRecorder()
	setupRouter(m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/errors", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			Total      int64                        `json:"total"`
			Categories map[string]metrics.ErrorStat `json:"categories"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body.Data.Total)
	require.Len(t, body.Data.Categories["panic"].Samples, 2)
	assert.Equal(t, "boom again", body.Data.Categories["panic"].Samples[1].Message)
}
