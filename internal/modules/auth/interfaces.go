package auth

import (
	"context"

	"talently/internal/domain"
)

// BusinessRepository is the storage the auth service needs.
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByEmail(ctx context.Context, email string) (*domain.Business, error)
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
}
