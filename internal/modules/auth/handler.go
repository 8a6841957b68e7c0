package auth

import (
	"net/http"

	"talently/internal/modules/session"
	"talently/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages the HTTP side of signup, login and profile.
type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/profile", h.GetProfile)
	protected.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.sessions.Start(c, b.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"business": toBusinessResponse(b)})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.sessions.Start(c, b.ID); err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"business": toBusinessResponse(b)})
}

// Logout always succeeds, with or without a session.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Invalidate(c)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"redirect": "/auth/login",
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	b, ok := session.FromContext(c)
	if !ok {
		response.Fail(c, session.ErrUnauthenticated)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"business": toBusinessResponse(b)})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	businessID := session.BusinessID(c)
	if businessID == "" {
		response.Fail(c, session.ErrUnauthenticated)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateProfile(c.Request.Context(), businessID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"business": toBusinessResponse(b)})
}
