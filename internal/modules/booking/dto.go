package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTime is a request timestamp that accepts RFC3339 or a plain date
// (midnight UTC), the same forms the query parameters take.
type DateTime struct {
	time.Time
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, ok := parseTime(raw)
	if !ok {
		return fmt.Errorf("invalid date %q", raw)
	}
	d.Time = t
	return nil
}

type CreateBookingRequest struct {
	TalentID    string   `json:"talentId" validate:"required"`
	ClientName  string   `json:"clientName" validate:"required,min=2,max=100"`
	ClientEmail string   `json:"clientEmail" validate:"required,email,max=255"`
	StartDate   DateTime `json:"startDate" validate:"required"`
	EndDate     DateTime `json:"endDate" validate:"required"`
	Notes       string   `json:"notes" validate:"max=1000"`
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	ClientName  *string    `json:"clientName" validate:"omitnil,min=2,max=100"`
	ClientEmail *string    `json:"clientEmail" validate:"omitnil,email,max=255"`
	Notes       *string    `json:"notes" validate:"omitnil,max=1000"`
	StartDate   *DateTime  `json:"startDate"`
	EndDate     *DateTime  `json:"endDate"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ListQuery struct {
	TalentID string
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}
