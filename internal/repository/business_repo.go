package repository

import (
	"context"
	"strings"
	"time"

	"talently/internal/domain"

	"gorm.io/gorm"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

type businessModel struct {
	ID                   string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name                 string    `gorm:"column:name;not null"`
	Email                string    `gorm:"column:email;not null;type:varchar(255);uniqueIndex:idx_businesses_email"`
	PasswordHash         string    `gorm:"column:password_hash;not null"`
	LogoPath             *string   `gorm:"column:logo_path"`
	MarketingEmails      bool      `gorm:"column:marketing_emails;not null"`
	BookingNotifications bool      `gorm:"column:booking_notifications;not null"`
	WeeklyDigest         bool      `gorm:"column:weekly_digest;not null"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (businessModel) TableName() string { return "businesses" }

func toDomainBusiness(m businessModel) *domain.Business {
	var logo string
	if m.LogoPath != nil {
		logo = *m.LogoPath
	}

	return &domain.Business{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		LogoPath:     logo,
		EmailPreferences: domain.EmailPreferences{
			MarketingEmails:      m.MarketingEmails,
			BookingNotifications: m.BookingNotifications,
			WeeklyDigest:         m.WeeklyDigest,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBusinessModel(b *domain.Business) businessModel {
	var logo *string
	if b.LogoPath != "" {
		v := b.LogoPath
		logo = &v
	}

	return businessModel{
		ID:                   b.ID,
		Name:                 b.Name,
		Email:                normalizeEmail(b.Email),
		PasswordHash:         b.PasswordHash,
		LogoPath:             logo,
		MarketingEmails:      b.EmailPreferences.MarketingEmails,
		BookingNotifications: b.EmailPreferences.BookingNotifications,
		WeeklyDigest:         b.EmailPreferences.WeeklyDigest,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create inserts b; a taken email yields ErrDuplicate.
func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	if b.ID == "" {
		b.ID = newID()
	}
	m := toBusinessModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*b = *toDomainBusiness(m)
	return nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	var m businessModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBusiness(m), nil
}

func (r *BusinessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	var m businessModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBusiness(m), nil
}

// Update writes every mutable column of b.
func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	m := toBusinessModel(b)
	tx := r.db.WithContext(ctx).Model(&businessModel{ID: m.ID}).Select(
		"name", "email", "password_hash", "logo_path",
		"marketing_emails", "booking_notifications", "weekly_digest", "updated_at",
	).Updates(&m)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return r.reload(ctx, b)
}

func (r *BusinessRepository) reload(ctx context.Context, b *domain.Business) error {
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}
