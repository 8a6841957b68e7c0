package domain

import "time"

type TalentStatus string

const (
	TalentActive   TalentStatus = "ACTIVE"
	TalentFeatured TalentStatus = "FEATURED"
	TalentInactive TalentStatus = "INACTIVE"
)

func (s TalentStatus) Valid() bool {
	switch s {
	case TalentActive, TalentFeatured, TalentInactive:
		return true
	}
	return false
}

// Bookable reports whether clients may request bookings for a talent in this status.
func (s TalentStatus) Bookable() bool {
	return s == TalentActive || s == TalentFeatured
}

type Talent struct {
	ID         string       `json:"id"`
	BusinessID string       `json:"businessId"`
	Name       string       `json:"name"`
	BasicInfo  string       `json:"basicInfo"`
	Status     TalentStatus `json:"status"`
	ImagePath  string       `json:"imagePath,omitempty"`
	Skills     []string     `json:"skills"`
	Experience int          `json:"experience"`
	HourlyRate float64      `json:"hourlyRate"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
