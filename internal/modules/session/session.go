package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"talently/internal/domain"
	"talently/internal/pkg/jwt"
	"talently/internal/pkg/response"
	"talently/internal/repository"

	"github.com/gin-gonic/gin"
)

const businessKey = "business"

var ErrUnauthenticated = domain.NewUnauthenticatedError("UNAUTHORIZED", "Unauthorized")

// BusinessStore resolves a token subject to a live business.
type BusinessStore interface {
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

type Options struct {
	CookieName string
	Secure     bool
}

// Manager issues, verifies and clears the session cookie.
type Manager struct {
	tokens     *jwt.Service
	businesses BusinessStore
	cookieName string
	secure     bool
}

func NewManager(tokens *jwt.Service, businesses BusinessStore, opts Options) *Manager {
	name := opts.CookieName
	if name == "" {
		name = "session"
	}
	return &Manager{
		tokens:     tokens,
		businesses: businesses,
		cookieName: name,
		secure:     opts.Secure,
	}
}

func (m *Manager) CookieName() string { return m.cookieName }

// Issue signs a new session token for businessID.
func (m *Manager) Issue(businessID string) (string, error) {
	token, _, err := m.tokens.GenerateToken(businessID)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// SetCookie stores token in the HttpOnly session cookie for the token TTL.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.tokens.TTL().Seconds()), "/", "", m.secure, true)
}

// Start issues a token for businessID and sets the cookie.
func (m *Manager) Start(c *gin.Context, businessID string) error {
	token, err := m.Issue(businessID)
	if err != nil {
		return err
	}
	m.SetCookie(c, token)
	return nil
}

// Verify resolves token to its business. Every token problem and a business
// that no longer exists yield ErrUnauthenticated; storage failures are returned as is.
func (m *Manager) Verify(ctx context.Context, token string) (*domain.Business, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	b, err := m.businesses.GetByID(ctx, claims.BusinessID())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session business: %w", err)
	}
	return b, nil
}

// Invalidate deletes the session cookie. Safe to call without a session.
func (m *Manager) Invalidate(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// RequireAuth verifies the request's session cookie and clears it when it is
// not usable.
func (m *Manager) RequireAuth(c *gin.Context) (*domain.Business, error) {
	token, _ := c.Cookie(m.cookieName)

	b, err := m.Verify(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) && token != "" {
			m.Invalidate(c)
		}
		return nil, err
	}
	return b, nil
}

// Middleware aborts with 401 unless the request carries a valid session and
// makes the business available through FromContext.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := m.RequireAuth(c)
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}
		c.Set(businessKey, b)
		c.Next()
	}
}

// FromContext returns the business stored by Middleware.
func FromContext(c *gin.Context) (*domain.Business, bool) {
	v, ok := c.Get(businessKey)
	if !ok {
		return nil, false
	}
	b, ok := v.(*domain.Business)
	return b, ok && b != nil
}

// BusinessID returns the session business id or "".
func BusinessID(c *gin.Context) string {
	if b, ok := FromContext(c); ok {
		return b.ID
	}
	return ""
}
