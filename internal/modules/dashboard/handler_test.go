package dashboard

import (
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
)

func TestHandler_GetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewSQLite(t)
	tokens, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := session.NewManager(tokens, repository.NewBusinessRepository(db), session.Options{})

	h := NewHandler(NewService(repository.NewTalentRepository(db), repository.NewBookingRepository(db)))
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1/dashboard", sessions.Middleware()))

	biz := testutil.CreateBusiness(t, db, "owner@acme.test")
	other := testutil.CreateBusiness(t, db, "other@acme.test")
	mia := testutil.CreateTalent(t, db, biz.ID, "Mia Lopez", domain.TalentActive)
	testutil.CreateTalent(t, db, biz.ID, "Leo Grant", domain.TalentFeatured)
	testutil.CreateTalent(t, db, biz.ID, "Old Act", domain.TalentInactive)
	foreign := testutil.CreateTalent(t, db, other.ID, "Not Mine", domain.TalentActive)

	day := testutil.Day(2025, 6, 1)
	testutil.CreateBooking(t, db, mia.ID, day, day.Add(2*time.Hour), domain.BookingConfirmed)
	testutil.CreateBooking(t, db, mia.ID, day.Add(3*time.Hour), day.Add(4*time.Hour), domain.BookingPending)
	testutil.CreateBooking(t, db, mia.ID, day.Add(5*time.Hour), day.Add(6*time.Hour), domain.BookingCancelled)
	testutil.CreateBooking(t, db, foreign.ID, day, day.Add(time.Hour), domain.BookingConfirmed)

	token, err := sessions.Issue(biz.ID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var body struct {
		Data Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body.Data.TotalTalents)
	assert.EqualValues(t, 1, body.Data.ActiveTalents)
	assert.EqualValues(t, 1, body.Data.FeaturedTalents)
	assert.EqualValues(t, 3, body.Data.TotalBookings)
	assert.EqualValues(t, 1, body.Data.PendingBookings)
	assert.EqualValues(t, 2, body.Data.ActiveBookings)
	assert.Equal(t, 100.0, body.Data.Revenue)
	assert.Len(t, body.Data.RecentBookings, 3)
}
