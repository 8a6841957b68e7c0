package booking

import (
	"net/http"
	"strings"
	"time"

	"talently/internal/domain"
	"talently/internal/modules/session"
	"talently/internal/pkg/pagination"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/bookings", h.Create)
	v1.GET("/talents/:id/availability", h.Availability)
}

// RegisterDashboardRoutes mounts the owner routes on a session-protected group.
func (h *Handler) RegisterDashboardRoutes(dashboard *gin.RouterGroup) {
	g := dashboard.Group("/bookings")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Availability(c *gin.Context) {
	start, okStart := parseTime(c.Query("start"))
	end, okEnd := parseTime(c.Query("end"))
	if !okStart || !okEnd {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end must be RFC3339 timestamps")
		return
	}

	available, err := h.service.Availability(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.Parse(c)
	q := ListQuery{
		TalentID: c.Query("talentId"),
		Status:   c.Query("status"),
		Page:     page,
		Limit:    limit,
	}
	for param, dst := range map[string]**time.Time{"from": &q.From, "to": &q.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, ok := parseTime(raw)
		if !ok {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+param+" date")
			return
		}
		*dst = &t
	}

	list, total, err := h.service.List(c.Request.Context(), session.BusinessID(c), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if list == nil {
		list = []domain.Booking{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"bookings":   list,
		"pagination": pagination.NewMeta(q.Page, q.Limit, total),
	})
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), session.BusinessID(c), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), session.BusinessID(c), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), session.BusinessID(c), c.Param("id"), req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), session.BusinessID(c), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// parseTime accepts RFC3339 timestamps and plain dates (midnight UTC).
func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
