package talent

import "talently/internal/domain"

type CreateTalentRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=100"`
	BasicInfo  string   `json:"basicInfo" validate:"required,min=10,max=1000"`
	Status     string   `json:"status" validate:"omitempty,oneof=ACTIVE FEATURED INACTIVE"`
	ImagePath  string   `json:"imagePath" validate:"omitempty,max=500"`
	Skills     []string `json:"skills" validate:"max=20,dive,required,max=50"`
	Experience int      `json:"experience" validate:"min=0,max=50"`
	HourlyRate float64  `json:"hourlyRate" validate:"min=0,max=1000"`
}

// UpdateTalentRequest is a partial update; nil fields are left unchanged.
type UpdateTalentRequest struct {
	Name       *string   `json:"name" validate:"omitnil,min=2,max=100"`
	BasicInfo  *string   `json:"basicInfo" validate:"omitnil,min=10,max=1000"`
	Status     *string   `json:"status" validate:"omitnil,oneof=ACTIVE FEATURED INACTIVE"`
	ImagePath  *string   `json:"imagePath" validate:"omitnil,max=500"`
	Skills     *[]string `json:"skills" validate:"omitnil,max=20,dive,required,max=50"`
	Experience *int      `json:"experience" validate:"omitnil,min=0,max=50"`
	HourlyRate *float64  `json:"hourlyRate" validate:"omitnil,min=0,max=1000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE FEATURED INACTIVE"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1,max=100,dive,required"`
	Status string   `json:"status" validate:"required,oneof=ACTIVE FEATURED INACTIVE"`
}

// ListQuery carries the list filters taken from the query string.
type ListQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// PublicTalent hides owner-only fields from anonymous callers.
type PublicTalent struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	BasicInfo  string              `json:"basicInfo"`
	Status     domain.TalentStatus `json:"status"`
	ImagePath  string              `json:"imagePath,omitempty"`
	Skills     []string            `json:"skills"`
	Experience int                 `json:"experience"`
	HourlyRate float64             `json:"hourlyRate"`
}

func toPublicTalent(t *domain.Talent) PublicTalent {
	return PublicTalent{
		ID:         t.ID,
		Name:       t.Name,
		BasicInfo:  t.BasicInfo,
		Status:     t.Status,
		ImagePath:  t.ImagePath,
		Skills:     t.Skills,
		Experience: t.Experience,
		HourlyRate: t.HourlyRate,
	}
}
