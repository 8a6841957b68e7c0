package talent

import (
	"context"
	"errors"
	"strings"
	"time"

	"talently/internal/domain"
	"talently/internal/pkg/validator"
	"talently/internal/repository"
)

type Service struct {
	talents TalentRepository
	now     func() time.Time
}

func NewService(talents TalentRepository) *Service {
	return &Service{talents: talents, now: time.Now}
}

func (s *Service) Create(ctx context.Context, businessID string, req CreateTalentRequest) (*domain.Talent, error) {
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}

	t := &domain.Talent{
		BusinessID: businessID,
		Name:       strings.TrimSpace(req.Name),
		BasicInfo:  strings.TrimSpace(req.BasicInfo),
		Status:     domain.TalentStatus(req.Status),
		ImagePath:  req.ImagePath,
		Skills:     cleanSkills(req.Skills),
		Experience: req.Experience,
		HourlyRate: req.HourlyRate,
	}
	if t.Status == "" {
		t.Status = domain.TalentActive
	}

	if err := s.talents.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns a talent of businessID; other businesses' talents are reported
// as not found.
func (s *Service) Get(ctx context.Context, businessID, id string) (*domain.Talent, error) {
	t, err := s.talents.GetOwned(ctx, id, businessID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, businessID, id string, req UpdateTalentRequest) (*domain.Talent, error) {
	if req.Status != nil {
		v := strings.ToUpper(strings.TrimSpace(*req.Status))
		req.Status = &v
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrInvalidInput.WithDetails(errs)
	}

	t, err := s.Get(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.BasicInfo != nil {
		t.BasicInfo = strings.TrimSpace(*req.BasicInfo)
	}
	if req.Status != nil {
		t.Status = domain.TalentStatus(*req.Status)
	}
	if req.ImagePath != nil {
		t.ImagePath = *req.ImagePath
	}
	if req.Skills != nil {
		t.Skills = cleanSkills(*req.Skills)
	}
	if req.Experience != nil {
		t.Experience = *req.Experience
	}
	if req.HourlyRate != nil {
		t.HourlyRate = *req.HourlyRate
	}

	if err := s.talents.Update(ctx, t); err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

// Delete removes the talent with its booking history. It is refused while
// the talent still has upcoming pending or confirmed bookings.
func (s *Service) Delete(ctx context.Context, businessID, id string) error {
	err := s.talents.DeleteCascade(ctx, id, businessID, s.now())
	switch {
	case errors.Is(err, repository.ErrHasActiveBookings):
		return ErrHasActiveBookings
	case err != nil:
		return mapNotFound(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, businessID string, q ListQuery) ([]domain.Talent, int64, error) {
	status, err := parseStatusFilter(q.Status)
	if err != nil {
		return nil, 0, err
	}
	return s.talents.List(ctx, repository.TalentFilter{
		BusinessID: businessID,
		Status:     status,
		Search:     q.Search,
		Page:       repository.Page{Page: q.Page, Limit: q.Limit},
	})
}

func (s *Service) UpdateStatus(ctx context.Context, businessID, id, status string) (*domain.Talent, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.talents.UpdateStatus(ctx, businessID, []string{id}, st); err != nil {
		return nil, mapNotFound(err)
	}
	return s.Get(ctx, businessID, id)
}

// BulkUpdateStatus changes all ids or none of them.
func (s *Service) BulkUpdateStatus(ctx context.Context, businessID string, req BulkStatusRequest) error {
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if errs := validator.Validate(req); errs != nil {
		return ErrInvalidInput.WithDetails(errs)
	}
	err := s.talents.UpdateStatus(ctx, businessID, req.IDs, domain.TalentStatus(req.Status))
	return mapNotFound(err)
}

// ListPublic lists bookable talents, featured ones first.
func (s *Service) ListPublic(ctx context.Context, q ListQuery) ([]domain.Talent, int64, error) {
	status, err := parseStatusFilter(q.Status)
	if err != nil {
		return nil, 0, err
	}
	if status == domain.TalentInactive {
		return []domain.Talent{}, 0, nil
	}
	return s.talents.List(ctx, repository.TalentFilter{
		Public: true,
		Status: status,
		Search: q.Search,
		Page:   repository.Page{Page: q.Page, Limit: q.Limit},
	})
}

func (s *Service) ListFeatured(ctx context.Context, limit int) ([]domain.Talent, error) {
	list, _, err := s.talents.List(ctx, repository.TalentFilter{
		Public: true,
		Status: domain.TalentFeatured,
		Page:   repository.Page{Page: 1, Limit: limit},
	})
	return list, err
}

// GetPublic returns a talent only while it is listed.
func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Talent, error) {
	t, err := s.talents.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !t.Status.Bookable() {
		return nil, ErrTalentNotFound
	}
	return t, nil
}

func parseStatus(raw string) (domain.TalentStatus, error) {
	st := domain.TalentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func parseStatusFilter(raw string) (domain.TalentStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseStatus(raw)
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTalentNotFound
	}
	return err
}
