package auth

import "talently/internal/domain"

var (
	ErrInvalidCredentials = domain.NewUnauthenticatedError("INVALID_CREDENTIALS", "Invalid credentials")
	ErrEmailAlreadyExists = domain.NewConflictError("EMAIL_EXISTS", "Email already registered")
	ErrInvalidInput       = domain.NewValidationError("VALIDATION_ERROR", "Invalid input")
	ErrPasswordMismatch   = domain.NewValidationError("PASSWORD_MISMATCH", "Passwords do not match")
)
