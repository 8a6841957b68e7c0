package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"talently/internal/domain"
	"talently/internal/events"
	"talently/internal/lock"
	"talently/internal/pkg/validator"
	"talently/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("talently/booking")

type Service struct {
	bookings  BookingRepository
	talents   TalentReader
	locker    lock.Locker
	publisher events.Publisher
	now       func() time.Time
}

func NewService(bookings BookingRepository, talents TalentReader, locker lock.Locker, publisher events.Publisher) *Service {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		bookings:  bookings,
		talents:   talents,
		locker:    locker,
		publisher: publisher,
		now:       time.Now,
	}
}

// CheckAvailability reports whether [start, end) is free for the talent.
// Cancelled bookings never block a slot and touching endpoints do not conflict.
func (s *Service) CheckAvailability(ctx context.Context, talentID string, start, end time.Time) (bool, error) {
	return s.CheckAvailabilityExcluding(ctx, talentID, start, end, "")
}

// CheckAvailabilityExcluding is CheckAvailability ignoring the booking excludeID,
// used when a booking is moved.
func (s *Service) CheckAvailabilityExcluding(ctx context.Context, talentID string, start, end time.Time, excludeID string) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidDates
	}
	taken, err := s.bookings.HasOverlap(ctx, talentID, start.UTC(), end.UTC(), excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Availability is the public check for a listed talent.
func (s *Service) Availability(ctx context.Context, talentID string, start, end time.Time) (bool, error) {
	if _, err := s.bookableTalent(ctx, talentID); err != nil {
		return false, err
	}
	return s.CheckAvailability(ctx, talentID, start, end)
}

// Create books a listed talent on behalf of a client. The slot check and the
// insert run under the talent lock.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.create",
		trace.WithAttributes(attribute.String("talent.id", req.TalentID)))
	defer span.End()

	b, err := s.create(ctx, req)
	recordSpanError(span, err)
	return b, err
}

func (s *Service) create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	req.Notes = strings.TrimSpace(req.Notes)
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}

	start, end := normalizeTime(req.StartDate.Time), normalizeTime(req.EndDate.Time)
	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}

	t, err := s.bookableTalent(ctx, req.TalentID)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		TalentID:    t.ID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Status:      domain.BookingPending,
		StartDate:   start,
		EndDate:     end,
		Notes:       req.Notes,
		HourlyRate:  t.HourlyRate,
	}
	b.Price()

	unlock, err := s.locker.Lock(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("lock talent %s: %w", t.ID, err)
	}
	defer unlock()

	if err := s.bookings.CreateIfAvailable(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.publish(ctx, events.TypeBookingCreated, b, t.BusinessID)
	return b, nil
}

// Get returns a booking of one of businessID's talents.
func (s *Service) Get(ctx context.Context, businessID, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetOwned(ctx, id, businessID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, businessID string, q ListQuery) ([]domain.Booking, int64, error) {
	var status domain.BookingStatus
	if strings.TrimSpace(q.Status) != "" {
		st, err := parseStatus(q.Status)
		if err != nil {
			return nil, 0, err
		}
		status = st
	}
	if q.From != nil && q.To != nil && !q.To.After(*q.From) {
		return nil, 0, ErrInvalidDates
	}

	return s.bookings.List(ctx, repository.BookingFilter{
		BusinessID: businessID,
		TalentID:   q.TalentID,
		Status:     status,
		From:       q.From,
		To:         q.To,
		Page:       repository.Page{Page: q.Page, Limit: q.Limit},
	})
}

// Update edits client fields and may move the booking. A move is checked
// against the talent's other bookings and reprices the booking.
func (s *Service) Update(ctx context.Context, businessID, id string, req UpdateBookingRequest) (*domain.Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.update",
		trace.WithAttributes(attribute.String("booking.id", id)))
	defer span.End()

	b, err := s.update(ctx, businessID, id, req)
	recordSpanError(span, err)
	return b, err
}

func (s *Service) update(ctx context.Context, businessID, id string, req UpdateBookingRequest) (*domain.Booking, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}

	b, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingCancelled
	}

	if req.ClientName != nil {
		b.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientEmail != nil {
		b.ClientEmail = strings.ToLower(strings.TrimSpace(*req.ClientEmail))
	}
	if req.Notes != nil {
		b.Notes = strings.TrimSpace(*req.Notes)
	}

	start, end := b.StartDate, b.EndDate
	if req.StartDate != nil {
		start = normalizeTime(req.StartDate.Time)
	}
	if req.EndDate != nil {
		end = normalizeTime(req.EndDate.Time)
	}

	if start.Equal(b.StartDate) && end.Equal(b.EndDate) {
		if err := s.bookings.Update(ctx, b); err != nil {
			return nil, mapNotFound(err)
		}
		s.publish(ctx, events.TypeBookingUpdated, b, businessID)
		return b, nil
	}

	if err := s.validateWindow(start, end); err != nil {
		return nil, err
	}
	b.StartDate, b.EndDate = start, end
	b.Price()

	unlock, err := s.locker.Lock(ctx, b.TalentID)
	if err != nil {
		return nil, fmt.Errorf("lock talent %s: %w", b.TalentID, err)
	}
	defer unlock()

	if err := s.bookings.UpdateIfAvailable(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, mapNotFound(err)
	}

	s.publish(ctx, events.TypeBookingUpdated, b, businessID)
	return b, nil
}

// UpdateStatus applies one step of the booking state machine.
func (s *Service) UpdateStatus(ctx context.Context, businessID, id, status string) (*domain.Booking, error) {
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// changed by another request since we read it
		return nil, ErrInvalidTransition
	}

	b.Status = next
	b.UpdatedAt = s.now().UTC()
	s.publish(ctx, events.TypeBookingStatusChanged, b, businessID)
	return b, nil
}

func (s *Service) Delete(ctx context.Context, businessID, id string) error {
	b, err := s.Get(ctx, businessID, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		return mapNotFound(err)
	}
	s.publish(ctx, events.TypeBookingDeleted, b, businessID)
	return nil
}

func (s *Service) validateWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidDates
	}
	if start.Before(normalizeTime(s.now())) {
		return ErrStartInPast
	}
	return nil
}

func (s *Service) bookableTalent(ctx context.Context, id string) (*domain.Talent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrTalentUnavailable
	}
	t, err := s.talents.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTalentUnavailable
	}
	if err != nil {
		return nil, err
	}
	if !t.Status.Bookable() {
		return nil, ErrTalentUnavailable
	}
	return t, nil
}

func (s *Service) publish(ctx context.Context, typ string, b *domain.Booking, businessID string) {
	e := events.NewBookingEvent(typ, b, businessID, s.now())
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish booking event",
			"type", typ,
			"booking_id", b.ID,
			"error", err,
		)
	}
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func parseStatus(raw string) (domain.BookingStatus, error) {
	st := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// normalizeTime stores instants in UTC at second precision.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookingNotFound
	}
	return err
}
