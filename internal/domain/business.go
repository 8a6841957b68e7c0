package domain

import "time"

type EmailPreferences struct {
	MarketingEmails      bool `json:"marketingEmails"`
	BookingNotifications bool `json:"bookingNotifications"`
	WeeklyDigest         bool `json:"weeklyDigest"`
}

// DefaultEmailPreferences is what a new business starts with.
func DefaultEmailPreferences() EmailPreferences {
	return EmailPreferences{
		MarketingEmails:      true,
		BookingNotifications: true,
		WeeklyDigest:         true,
	}
}

type Business struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	LogoPath         string           `json:"logoPath,omitempty"`
	EmailPreferences EmailPreferences `json:"emailPreferences"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
