package booking

import "talently/internal/domain"

var (
	ErrBookingNotFound   = domain.NewNotFoundError("BOOKING_NOT_FOUND", "Booking not found")
	ErrTalentUnavailable = domain.NewNotFoundError("TALENT_UNAVAILABLE", "Talent not found or not available")
	ErrSlotUnavailable   = domain.NewConflictError("SLOT_UNAVAILABLE", "This time slot is not available")
	ErrInvalidTransition = domain.NewConflictError("INVALID_TRANSITION", "Invalid status transition")
	ErrBookingCancelled  = domain.NewConflictError("BOOKING_CANCELLED", "Cancelled bookings cannot be edited")
	ErrInvalidDates      = domain.NewValidationError("INVALID_DATES", "End date must be after start date")
	ErrStartInPast       = domain.NewValidationError("START_IN_PAST", "Start date cannot be in the past")
	ErrInvalidInput      = domain.NewValidationError("VALIDATION_ERROR", "Invalid input")
	ErrInvalidStatus     = domain.NewValidationError("INVALID_STATUS", "Invalid booking status")
)
