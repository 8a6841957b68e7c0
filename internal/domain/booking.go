package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the owning business may move a booking from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	}
	return false
}

type Booking struct {
	ID          string        `json:"id"`
	TalentID    string        `json:"talentId"`
	ClientName  string        `json:"clientName"`
	ClientEmail string        `json:"clientEmail"`
	Status      BookingStatus `json:"status"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Notes       string        `json:"notes,omitempty"`
	HourlyRate  float64       `json:"hourlyRate"`
	TotalHours  float64       `json:"totalHours"`
	TotalAmount float64       `json:"totalAmount"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Overlaps is the half-open interval test: [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Price recomputes TotalHours and TotalAmount from the dates and HourlyRate.
func (b *Booking) Price() {
	hours := b.EndDate.Sub(b.StartDate).Hours()
	b.TotalHours = math.Round(hours*100) / 100
	b.TotalAmount = math.Round(hours*b.HourlyRate*100) / 100
}
