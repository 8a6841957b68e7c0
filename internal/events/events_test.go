package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"talently/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func TestFanout_DeliversToAllDespiteFailures(t *testing.T) {
	ctx := context.Background()
	b := &domain.Booking{ID: "b1", TalentID: "t1", Status: domain.BookingPending}
	e := NewBookingEvent(TypeBookingCreated, b, "biz1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	failing := new(mockPublisher)
	failing.On("Publish", ctx, e).Return(errors.New("broker down"))
	ok := new(mockPublisher)
	ok.On("Publish", ctx, e).Return(nil)

	err := Fanout{failing, ok, Noop{}}.Publish(ctx, e)

	assert.ErrorContains(t, err, "broker down")
	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestNewBookingEvent(t *testing.T) {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	b := &domain.Booking{ID: "b1", TalentID: "t1", Status: domain.BookingConfirmed, StartDate: start, EndDate: start.Add(time.Hour)}

	e := NewBookingEvent(TypeBookingStatusChanged, b, "biz1", start)

	assert.Equal(t, "booking.status_changed", e.Type)
	assert.Equal(t, "biz1", e.BusinessID)
	assert.Equal(t, domain.BookingConfirmed, e.Status)
	assert.Equal(t, start.Add(time.Hour), e.EndDate)
}
