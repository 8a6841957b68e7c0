package talent

import (
	"context"
	"time"

	"talently/internal/domain"
	"talently/internal/repository"
)

type TalentRepository interface {
	Create(ctx context.Context, t *domain.Talent) error
	GetByID(ctx context.Context, id string) (*domain.Talent, error)
	GetOwned(ctx context.Context, id, businessID string) (*domain.Talent, error)
	Update(ctx context.Context, t *domain.Talent) error
	List(ctx context.Context, f repository.TalentFilter) ([]domain.Talent, int64, error)
	UpdateStatus(ctx context.Context, businessID string, ids []string, status domain.TalentStatus) error
	DeleteCascade(ctx context.Context, id, businessID string, now time.Time) error
}
