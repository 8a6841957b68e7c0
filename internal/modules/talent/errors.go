package talent

import "talently/internal/domain"

var (
	ErrTalentNotFound    = domain.NewNotFoundError("TALENT_NOT_FOUND", "Talent not found")
	ErrHasActiveBookings = domain.NewConflictError("TALENT_HAS_BOOKINGS", "Talent has active bookings")
	ErrInvalidInput      = domain.NewValidationError("VALIDATION_ERROR", "Invalid input")
	ErrInvalidStatus     = domain.NewValidationError("INVALID_STATUS", "Invalid talent status")
)
