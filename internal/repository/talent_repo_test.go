package repository_test

import (
	"context"
	"testing"
	"time"

	"talently/internal/domain"
	"talently/internal/repository"
	"talently/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTalentRepository_SkillsRoundTrip(t *testing.T) {
	db := testutil.NewSQLite(t)
	repo := repository.NewTalentRepository(db)
	ctx := context.Background()

	biz := testutil.CreateBusiness(t, db, "owner@acme.test")
	tal := &domain.Talent{
		BusinessID: biz.ID,
		Name:       "Mia",
		BasicInfo:  "Jazz vocalist and pianist",
		Skills:     []string{"jazz", "piano"},
		HourlyRate: 80,
	}
	require.NoError(t, repo.Create(ctx, tal))
	assert.Equal(t, domain.TalentActive, tal.Status)

	got, err := repo.GetOwned(ctx, tal.ID, biz.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"jazz", "piano"}, got.Skills)

	_, err = repo.GetOwned(ctx, tal.ID, "someone-else")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTalentRepository_ListPublic(t *testing.T) {
	db := testutil.NewSQLite(t)
	repo := repository.NewTalentRepository(db)
	ctx := context.Background()

	biz := testutil.CreateBusiness(t, db, "owner@acme.test")
	testutil.CreateTalent(t, db, biz.ID, "Active Ann", domain.TalentActive)
	testutil.CreateTalent(t, db, biz.ID, "Hidden Hal", domain.TalentInactive)
	featured := testutil.CreateTalent(t, db, biz.ID, "Star Sam", domain.TalentFeatured)

	list, total, err := repo.List(ctx, repository.TalentFilter{Public: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, featured.ID, list[0].ID, "featured talents come first")

	list, total, err = repo.List(ctx, repository.TalentFilter{BusinessID: biz.ID, Search: "HAL"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Hidden Hal", list[0].Name)

	_, total, err = repo.List(ctx, repository.TalentFilter{BusinessID: biz.ID, Search: "%"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total, "wildcards are matched literally")

	list, total, err = repo.List(ctx, repository.TalentFilter{BusinessID: biz.ID, Page: repository.Page{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, list, 1)
}

func TestTalentRepository_UpdateStatusRequiresOwnership(t *testing.T) {
	db := testutil.NewSQLite(t)
	repo := repository.NewTalentRepository(db)
	ctx := context.Background()

	biz := testutil.CreateBusiness(t, db, "a@acme.test")
	other := testutil.CreateBusiness(t, db, "b@acme.test")
	mine := testutil.CreateTalent(t, db, biz.ID, "Mine", domain.TalentActive)
	theirs := testutil.CreateTalent(t, db, other.ID, "Theirs", domain.TalentActive)

	err := repo.UpdateStatus(ctx, biz.ID, []string{mine.ID, theirs.ID}, domain.TalentInactive)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TalentActive, got.Status, "rejected bulk update changes nothing")

	require.NoError(t, repo.UpdateStatus(ctx, biz.ID, []string{mine.ID, mine.ID}, domain.TalentFeatured))
	got, err = repo.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TalentFeatured, got.Status)
}

func TestTalentRepository_DeleteCascade(t *testing.T) {
	db := testutil.NewSQLite(t)
	talents := repository.NewTalentRepository(db)
	bookings := repository.NewBookingRepository(db)
	ctx := context.Background()

	biz := testutil.CreateBusiness(t, db, "owner@acme.test")
	tal := testutil.CreateTalent(t, db, biz.ID, "Mia", domain.TalentActive)
	now := testutil.Day(2025, time.June, 10)

	past := testutil.CreateBooking(t, db, tal.ID, testutil.Day(2025, time.June, 1), testutil.Day(2025, time.June, 2), domain.BookingConfirmed)
	future := testutil.CreateBooking(t, db, tal.ID, testutil.Day(2025, time.June, 20), testutil.Day(2025, time.June, 21), domain.BookingPending)

	err := talents.DeleteCascade(ctx, tal.ID, biz.ID, now)
	assert.ErrorIs(t, err, repository.ErrHasActiveBookings)

	ok, err := bookings.UpdateStatus(ctx, future.ID, domain.BookingPending, domain.BookingCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, talents.DeleteCascade(ctx, tal.ID, "someone-else", now), repository.ErrNotFound)
	require.NoError(t, talents.DeleteCascade(ctx, tal.ID, biz.ID, now))

	_, err = talents.GetByID(ctx, tal.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = bookings.GetByID(ctx, past.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTalentRepository_CountByStatus(t *testing.T) {
	db := testutil.NewSQLite(t)
	repo := repository.NewTalentRepository(db)

	biz := testutil.CreateBusiness(t, db, "owner@acme.test")
	testutil.CreateTalent(t, db, biz.ID, "A", domain.TalentActive)
	testutil.CreateTalent(t, db, biz.ID, "B", domain.TalentActive)
	testutil.CreateTalent(t, db, biz.ID, "C", domain.TalentFeatured)
	testutil.CreateTalent(t, db, biz.ID, "D", domain.TalentInactive)

	c, err := repo.CountByStatus(context.Background(), biz.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.TalentCounts{Total: 4, Active: 2, Featured: 1}, c)
}
