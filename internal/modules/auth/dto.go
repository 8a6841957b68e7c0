package auth

import (
	"time"

	"talently/internal/domain"
)

// SignupRequest accepts the business name as either "name" or "businessName".
type SignupRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	BusinessName string `json:"businessName,omitempty"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmailPreferencesPatch struct {
	MarketingEmails      *bool `json:"marketingEmails"`
	BookingNotifications *bool `json:"bookingNotifications"`
	WeeklyDigest         *bool `json:"weeklyDigest"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name             *string                `json:"name" validate:"omitnil,min=2,max=100"`
	Email            *string                `json:"email" validate:"omitnil,email,max=255"`
	Password         *string                `json:"password" validate:"omitnil,min=8,max=100"`
	ConfirmPassword  *string                `json:"confirmPassword"`
	LogoPath         *string                `json:"logoPath" validate:"omitnil,max=500"`
	EmailPreferences *EmailPreferencesPatch `json:"emailPreferences"`
}

type BusinessResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	LogoPath         string                  `json:"logoPath,omitempty"`
	EmailPreferences domain.EmailPreferences `json:"emailPreferences"`
	CreatedAt        string                  `json:"createdAt"`
}

func toBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		ID:               b.ID,
		Name:             b.Name,
		Email:            b.Email,
		LogoPath:         b.LogoPath,
		EmailPreferences: b.EmailPreferences,
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
