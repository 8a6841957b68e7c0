package dashboard

import (
	"context"

	"talently/internal/domain"
	"talently/internal/repository"
)

type TalentCounter interface {
	CountByStatus(ctx context.Context, businessID string) (repository.TalentCounts, error)
}

type BookingAggregator interface {
	Stats(ctx context.Context, businessID string) (repository.BookingStats, error)
	Recent(ctx context.Context, businessID string, n int) ([]domain.Booking, error)
}
