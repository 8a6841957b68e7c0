package repository

import (
	"context"
	"strings"
	"time"

	"talently/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TalentRepository struct {
	db *gorm.DB
}

func NewTalentRepository(db *gorm.DB) *TalentRepository {
	return &TalentRepository{db: db}
}

type talentModel struct {
	ID         string                      `gorm:"column:id;primaryKey;type:varchar(36)"`
	BusinessID string                      `gorm:"column:business_id;not null;type:varchar(36);index:idx_talents_business"`
	Business   *businessModel              `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE"`
	Name       string                      `gorm:"column:name;not null"`
	BasicInfo  string                      `gorm:"column:basic_info;not null"`
	Status     string                      `gorm:"column:status;not null;type:varchar(16);index:idx_talents_status"`
	ImagePath  *string                     `gorm:"column:image_path"`
	Skills     datatypes.JSONSlice[string] `gorm:"column:skills"`
	Experience int                         `gorm:"column:experience;not null"`
	HourlyRate float64                     `gorm:"column:hourly_rate;not null"`
	CreatedAt  time.Time                   `gorm:"column:created_at"`
	UpdatedAt  time.Time                   `gorm:"column:updated_at"`
}

func (talentModel) TableName() string { return "talents" }

func toDomainTalent(m talentModel) *domain.Talent {
	var image string
	if m.ImagePath != nil {
		image = *m.ImagePath
	}
	skills := []string(m.Skills)
	if skills == nil {
		skills = []string{}
	}

	return &domain.Talent{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		BasicInfo:  m.BasicInfo,
		Status:     domain.TalentStatus(m.Status),
		ImagePath:  image,
		Skills:     skills,
		Experience: m.Experience,
		HourlyRate: m.HourlyRate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTalentModel(t *domain.Talent) talentModel {
	var image *string
	if t.ImagePath != "" {
		v := t.ImagePath
		image = &v
	}
	status := t.Status
	if status == "" {
		status = domain.TalentActive
	}
	skills := t.Skills
	if skills == nil {
		skills = []string{}
	}

	return talentModel{
		ID:         t.ID,
		BusinessID: t.BusinessID,
		Name:       t.Name,
		BasicInfo:  t.BasicInfo,
		Status:     string(status),
		ImagePath:  image,
		Skills:     datatypes.JSONSlice[string](skills),
		Experience: t.Experience,
		HourlyRate: t.HourlyRate,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// TalentFilter narrows List. BusinessID scopes to one owner; Public restricts to
// bookable statuses and orders featured talents first.
type TalentFilter struct {
	BusinessID string
	Status     domain.TalentStatus
	Search     string
	Public     bool
	Page       Page
}

func (r *TalentRepository) Create(ctx context.Context, t *domain.Talent) error {
	if t.ID == "" {
		t.ID = newID()
	}
	m := toTalentModel(t)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return translate(err)
	}
	*t = *toDomainTalent(m)
	return nil
}

func (r *TalentRepository) GetByID(ctx context.Context, id string) (*domain.Talent, error) {
	var m talentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainTalent(m), nil
}

// GetOwned returns ErrNotFound both for a missing talent and for one owned by another business.
func (r *TalentRepository) GetOwned(ctx context.Context, id, businessID string) (*domain.Talent, error) {
	var m talentModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainTalent(m), nil
}

func (r *TalentRepository) Update(ctx context.Context, t *domain.Talent) error {
	m := toTalentModel(t)
	tx := r.db.WithContext(ctx).Model(&talentModel{ID: m.ID}).Select(
		"name", "basic_info", "status", "image_path", "skills",
		"experience", "hourly_rate", "updated_at",
	).Updates(&m)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	fresh, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *fresh
	return nil
}

func (r *TalentRepository) List(ctx context.Context, f TalentFilter) ([]domain.Talent, int64, error) {
	page := f.Page.Normalize()

	q := r.db.WithContext(ctx).Model(&talentModel{})
	if f.BusinessID != "" {
		q = q.Where("business_id = ?", f.BusinessID)
	}
	if f.Public {
		q = q.Where("status IN ?", []string{string(domain.TalentActive), string(domain.TalentFeatured)})
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(s))+"%")
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Public {
		q = q.Order("CASE WHEN status = 'FEATURED' THEN 0 ELSE 1 END")
	}
	var rows []talentModel
	err := q.Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Talent, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTalent(m))
	}
	return out, total, nil
}

// UpdateStatus sets the status of every id in ids. All of them must belong to
// businessID, otherwise nothing is changed and ErrNotFound is returned.
func (r *TalentRepository) UpdateStatus(ctx context.Context, businessID string, ids []string, status domain.TalentStatus) error {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return ErrNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		err := tx.Model(&talentModel{}).
			Where("id IN ? AND business_id = ?", ids, businessID).
			Count(&owned).Error
		if err != nil {
			return err
		}
		if owned != int64(len(ids)) {
			return ErrNotFound
		}

		return tx.Model(&talentModel{}).
			Where("id IN ? AND business_id = ?", ids, businessID).
			Updates(map[string]any{"status": string(status), "updated_at": tx.NowFunc()}).Error
	})
}

// DeleteCascade removes the talent and its bookings. It refuses with
// ErrHasActiveBookings while a PENDING or CONFIRMED booking ends after now.
func (r *TalentRepository) DeleteCascade(ctx context.Context, id, businessID string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m talentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND business_id = ?", id, businessID).
			First(&m).Error
		if err != nil {
			return translate(err)
		}

		var active int64
		err = tx.Model(&bookingModel{}).
			Where("talent_id = ? AND status IN ? AND end_date > ?", id,
				[]string{string(domain.BookingPending), string(domain.BookingConfirmed)}, now.UTC()).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrHasActiveBookings
		}

		if err := tx.Where("talent_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&talentModel{}).Error
	})
}

// TalentCounts is the per-status talent tally for one business.
type TalentCounts struct {
	Total    int64
	Active   int64
	Featured int64
}

func (r *TalentRepository) CountByStatus(ctx context.Context, businessID string) (TalentCounts, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&talentModel{}).
		Select("status, COUNT(*) AS n").
		Where("business_id = ?", businessID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return TalentCounts{}, err
	}

	var c TalentCounts
	for _, row := range rows {
		c.Total += row.N
		switch domain.TalentStatus(row.Status) {
		case domain.TalentActive:
			c.Active = row.N
		case domain.TalentFeatured:
			c.Featured = row.N
		}
	}
	return c, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
