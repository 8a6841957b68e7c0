package dashboard

import (
	"context"
	"fmt"

	"talently/internal/domain"
)

const recentBookingsLimit = 5

// Stats is the overview shown on the business dashboard.
type Stats struct {
	TotalTalents    int64            `json:"totalTalents"`
	ActiveTalents   int64            `json:"activeTalents"`
	FeaturedTalents int64            `json:"featuredTalents"`
	TotalBookings   int64            `json:"totalBookings"`
	PendingBookings int64            `json:"pendingBookings"`
	ActiveBookings  int64            `json:"activeBookings"`
	Revenue         float64          `json:"revenue"`
	RecentBookings  []domain.Booking `json:"recentBookings"`
}

type Service struct {
	talents  TalentCounter
	bookings BookingAggregator
}

func NewService(talents TalentCounter, bookings BookingAggregator) *Service {
	return &Service{talents: talents, bookings: bookings}
}

// Stats aggregates talents and bookings of businessID. Revenue only counts
// confirmed bookings.
func (s *Service) Stats(ctx context.Context, businessID string) (*Stats, error) {
	tc, err := s.talents.CountByStatus(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("count talents: %w", err)
	}
	bs, err := s.bookings.Stats(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}
	recent, err := s.bookings.Recent(ctx, businessID, recentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("recent bookings: %w", err)
	}
	if recent == nil {
		recent = []domain.Booking{}
	}

	return &Stats{
		TotalTalents:    tc.Total,
		ActiveTalents:   tc.Active,
		FeaturedTalents: tc.Featured,
		TotalBookings:   bs.Total,
		PendingBookings: bs.Pending,
		ActiveBookings:  bs.Active,
		Revenue:         bs.Revenue,
		RecentBookings:  recent,
	}, nil
}
