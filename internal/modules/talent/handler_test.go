package talent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talently/internal/domain"
	"talently/internal/modules/session"
	"talently/internal/pkg/jwt"
	"talently/internal/repository"
	"talently/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Manager
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewSQLite(t)
	tokens, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := session.NewManager(tokens, repository.NewBusinessRepository(db), session.Options{})

	h := NewHandler(NewService(repository.NewTalentRepository(db)))
	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)
	h.RegisterDashboardRoutes(v1.Group("/dashboard", sessions.Middleware()))
	return &testEnv{router: r, db: db, sessions: sessions}
}

func (e *testEnv) cookieFor(t *testing.T, businessID string) *http.Cookie {
	t.Helper()
	token, err := e.sessions.Issue(businessID)
	require.NoError(t, err)
	return &http.Cookie{Name: "session", Value: token}
}

func (e *testEnv) do(method, path string, body any, ck *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ck != nil {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestDashboardTalents_RequireSession(t *testing.T) {
	env := setupTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/dashboard/talents"},
		{http.MethodPost, "/api/v1/dashboard/talents"},
		{http.MethodDelete, "/api/v1/dashboard/talents/x"},
		{http.MethodPatch, "/api/v1/dashboard/talents/status"},
	} {
		rr := env.do(tc.method, tc.path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
	}
}

func TestDashboardTalents_CRUD(t *testing.T) {
	env := setupTestRouter(t)
	biz := testutil.CreateBusiness(t, env.db, "owner@acme.test")
	ck := env.cookieFor(t, biz.ID)

	rr := env.do(http.MethodPost, "/api/v1/dashboard/talents", map[string]any{
		"name":       "Mia Lopez",
		"basicInfo":  "Jazz vocalist with ten years on stage",
		"skills":     []string{"jazz"},
		"experience": 10,
		"hourlyRate": 120,
	}, ck)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Data struct {
			Talent domain.Talent `json:"talent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	id := created.Data.Talent.ID
	require.NotEmpty(t, id)

	rr = env.do(http.MethodPut, "/api/v1/dashboard/talents/"+id, map[string]any{"hourlyRate": 150}, ck)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"hourlyRate":150`)

	rr = env.do(http.MethodPatch, "/api/v1/dashboard/talents/"+id+"/status", map[string]any{"status": "FEATURED"}, ck)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"FEATURED"`)

	rr = env.do(http.MethodGet, "/api/v1/dashboard/talents?search=mia", nil, ck)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = env.do(http.MethodDelete, "/api/v1/dashboard/talents/"+id, nil, ck)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(http.MethodGet, "/api/v1/dashboard/talents/"+id, nil, ck)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDashboardTalents_OwnershipHidden(t *testing.T) {
	env := setupTestRouter(t)
	owner := testutil.CreateBusiness(t, env.db, "owner@acme.test")
	intruder := testutil.CreateBusiness(t, env.db, "intruder@acme.test")
	tal := testutil.CreateTalent(t, env.db, owner.ID, "Mia", domain.TalentActive)
	ck := env.cookieFor(t, intruder.ID)

	rr := env.do(http.MethodGet, "/api/v1/dashboard/talents/"+tal.ID, nil, ck)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(http.MethodPatch, "/api/v1/dashboard/talents/status", map[string]any{
		"ids":    []string{tal.ID},
		"status": "INACTIVE",
	}, ck)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteTalent_WithActiveBookings(t *testing.T) {
	env := setupTestRouter(t)
	biz := testutil.CreateBusiness(t, env.db, "owner@acme.test")
	tal := testutil.CreateTalent(t, env.db, biz.ID, "Mia", domain.TalentActive)
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	testutil.CreateBooking(t, env.db, tal.ID, start, start.Add(2*time.Hour), domain.BookingConfirmed)

	rr := env.do(http.MethodDelete, "/api/v1/dashboard/talents/"+tal.ID, nil, env.cookieFor(t, biz.ID))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "Talent has active bookings")
}

func TestPublicTalents(t *testing.T) {
	env := setupTestRouter(t)
	biz := testutil.CreateBusiness(t, env.db, "owner@acme.test")
	testutil.CreateTalent(t, env.db, biz.ID, "Active Ann", domain.TalentActive)
	star := testutil.CreateTalent(t, env.db, biz.ID, "Star Sam", domain.TalentFeatured)
	hidden := testutil.CreateTalent(t, env.db, biz.ID, "Hidden Hal", domain.TalentInactive)

	rr := env.do(http.MethodGet, "/api/v1/talents", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Active Ann")
	assert.NotContains(t, rr.Body.String(), "Hidden Hal")
	assert.NotContains(t, rr.Body.String(), "businessId")

	rr = env.do(http.MethodGet, "/api/v1/talents/featured", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), star.ID)
	assert.NotContains(t, rr.Body.String(), "Active Ann")

	rr = env.do(http.MethodGet, "/api/v1/talents/"+hidden.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
