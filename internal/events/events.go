package events

import (
	"context"
	"errors"
	"time"

	"talently/internal/domain"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
	TypeBookingUpdated       = "booking.updated"
	TypeBookingDeleted       = "booking.deleted"
)

type Event struct {
	Type       string               `json:"type"`
	BookingID  string               `json:"bookingId"`
	TalentID   string               `json:"talentId"`
	BusinessID string               `json:"businessId"`
	Status     domain.BookingStatus `json:"status"`
	StartDate  time.Time            `json:"startDate"`
	EndDate    time.Time            `json:"endDate"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// NewBookingEvent builds an event for b owned by businessID.
func NewBookingEvent(typ string, b *domain.Booking, businessID string, at time.Time) Event {
	return Event{
		Type:       typ,
		BookingID:  b.ID,
		TalentID:   b.TalentID,
		BusinessID: businessID,
		Status:     b.Status,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		OccurredAt: at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Fanout delivers every event to all publishers, even when some of them fail.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
