package testutil

import (
	"context"
	"testing"
	"time"

	"talently/internal/domain"
	"talently/internal/repository"

	"gorm.io/gorm"
)

// CreateBusiness inserts a business with the given email. The password hash is
// a placeholder; tests that log in hash their own.
func CreateBusiness(t *testing.T, db *gorm.DB, email string) *domain.Business {
	t.Helper()

	b := &domain.Business{
		Name:             "Acme Agency",
		Email:            email,
		PasswordHash:     "x",
		EmailPreferences: domain.DefaultEmailPreferences(),
	}
	if err := repository.NewBusinessRepository(db).Create(context.Background(), b); err != nil {
		t.Fatalf("failed to create business: %v", err)
	}
	return b
}

// CreateTalent inserts a talent owned by businessID.
func CreateTalent(t *testing.T, db *gorm.DB, businessID, name string, status domain.TalentStatus) *domain.Talent {
	t.Helper()

	tal := &domain.Talent{
		BusinessID: businessID,
		Name:       name,
		BasicInfo:  "Seasoned performer for corporate events",
		Status:     status,
		Skills:     []string{"singing"},
		Experience: 5,
		HourlyRate: 50,
	}
	if err := repository.NewTalentRepository(db).Create(context.Background(), tal); err != nil {
		t.Fatalf("failed to create talent: %v", err)
	}
	return tal
}

// CreateBooking inserts a booking for talentID covering [start, end).
func CreateBooking(t *testing.T, db *gorm.DB, talentID string, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	b := &domain.Booking{
		TalentID:    talentID,
		ClientName:  "Jane Client",
		ClientEmail: "jane@client.test",
		Status:      status,
		StartDate:   start,
		EndDate:     end,
		HourlyRate:  50,
	}
	b.Price()
	if err := repository.NewBookingRepository(db).CreateIfAvailable(context.Background(), b); err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return b
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
