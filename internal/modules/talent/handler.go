package talent

import (
	"net/http"
	"strconv"

	"talently/internal/domain"
	"talently/internal/modules/session"
	"talently/internal/pkg/pagination"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const defaultFeaturedLimit = 6

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	g := v1.Group("/talents")
	{
		g.GET("", h.ListPublic)
		g.GET("/featured", h.ListFeatured)
		g.GET("/:id", h.GetPublic)
	}
}

// RegisterDashboardRoutes mounts the owner routes on a session-protected group.
func (h *Handler) RegisterDashboardRoutes(dashboard *gin.RouterGroup) {
	g := dashboard.Group("/talents")
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.PATCH("/status", h.BulkUpdateStatus)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.PATCH("/:id/status", h.UpdateStatus)
	}
}

func listQuery(c *gin.Context) ListQuery {
	page, limit := pagination.Parse(c)
	return ListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
}

func (h *Handler) ListPublic(c *gin.Context) {
	q := listQuery(c)
	list, total, err := h.service.ListPublic(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]PublicTalent, 0, len(list))
	for i := range list {
		out = append(out, toPublicTalent(&list[i]))
	}
	response.Success(c, http.StatusOK, gin.H{
		"talents":    out,
		"pagination": pagination.NewMeta(q.Page, q.Limit, total),
	})
}

func (h *Handler) ListFeatured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= pagination.MaxLimit {
		limit = v
	}

	list, err := h.service.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]PublicTalent, 0, len(list))
	for i := range list {
		out = append(out, toPublicTalent(&list[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"talents": out})
}

func (h *Handler) GetPublic(c *gin.Context) {
	t, err := h.service.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"talent": toPublicTalent(t)})
}

func (h *Handler) List(c *gin.Context) {
	q := listQuery(c)
	list, total, err := h.service.List(c.Request.Context(), session.BusinessID(c), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if list == nil {
		list = []domain.Talent{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"talents":    list,
		"pagination": pagination.NewMeta(q.Page, q.Limit, total),
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Create(c.Request.Context(), session.BusinessID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"talent": t})
}

func (h *Handler) Get(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), session.BusinessID(c), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"talent": t})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateTalentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Update(c.Request.Context(), session.BusinessID(c), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"talent": t})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), session.BusinessID(c), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateStatus(c.Request.Context(), session.BusinessID(c), c.Param("id"), req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"talent": t})
}

func (h *Handler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.BulkUpdateStatus(c.Request.Context(), session.BusinessID(c), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": len(req.IDs)})
}
