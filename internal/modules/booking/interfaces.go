package booking

import (
	"context"
	"time"

	"talently/internal/domain"
	"talently/internal/repository"
)

// BookingRepository defines the storage operations the booking service needs.
type BookingRepository interface {
	HasOverlap(ctx context.Context, talentID string, start, end time.Time, excludeID string) (bool, error)
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	UpdateIfAvailable(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	GetOwned(ctx context.Context, id, businessID string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

type TalentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Talent, error)
}
