package repository

import (
	"context"
	"time"

	"talently/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          string       `gorm:"column:id;primaryKey;type:varchar(36)"`
	TalentID    string       `gorm:"column:talent_id;not null;type:varchar(36);index:idx_bookings_talent_window,priority:1"`
	Talent      *talentModel `gorm:"foreignKey:TalentID;constraint:OnDelete:CASCADE"`
	ClientName  string       `gorm:"column:client_name;not null"`
	ClientEmail string       `gorm:"column:client_email;not null"`
	Status      string       `gorm:"column:status;not null;type:varchar(16);index:idx_bookings_status"`
	StartDate   time.Time    `gorm:"column:start_date;not null;index:idx_bookings_talent_window,priority:2"`
	EndDate     time.Time    `gorm:"column:end_date;not null;index:idx_bookings_talent_window,priority:3"`
	Notes       *string      `gorm:"column:notes"`
	HourlyRate  float64      `gorm:"column:hourly_rate;not null"`
	TotalHours  float64      `gorm:"column:total_hours;not null"`
	TotalAmount float64      `gorm:"column:total_amount;not null"`
	CreatedAt   time.Time    `gorm:"column:created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:          m.ID,
		TalentID:    m.TalentID,
		ClientName:  m.ClientName,
		ClientEmail: m.ClientEmail,
		Status:      domain.BookingStatus(m.Status),
		StartDate:   m.StartDate.UTC(),
		EndDate:     m.EndDate.UTC(),
		Notes:       notes,
		HourlyRate:  m.HourlyRate,
		TotalHours:  m.TotalHours,
		TotalAmount: m.TotalAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:          b.ID,
		TalentID:    b.TalentID,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		Status:      string(b.Status),
		StartDate:   b.StartDate.UTC(),
		EndDate:     b.EndDate.UTC(),
		Notes:       notes,
		HourlyRate:  b.HourlyRate,
		TotalHours:  b.TotalHours,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

const overlapQuery = `
SELECT COUNT(1)
FROM bookings
WHERE talent_id = ?
  AND status <> ?
  AND start_date < ?
  AND end_date > ?
  AND id <> ?
`

// HasOverlap reports whether a non-cancelled booking of talentID intersects
// [start, end). excludeID, when set, is left out of the check.
func (r *BookingRepository) HasOverlap(ctx context.Context, talentID string, start, end time.Time, excludeID string) (bool, error) {
	return hasOverlap(r.db.WithContext(ctx), talentID, start, end, excludeID)
}

func hasOverlap(db *gorm.DB, talentID string, start, end time.Time, excludeID string) (bool, error) {
	var cnt int64
	tx := db.Raw(overlapQuery,
		talentID, string(domain.BookingCancelled), end.UTC(), start.UTC(), excludeID,
	).Scan(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// lockTalent takes a row lock on the talent (a no-op on SQLite, where the
// single connection already serialises writers).
func lockTalent(tx *gorm.DB, talentID string) error {
	var t talentModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", talentID).
		First(&t).Error
	return translate(err)
}

// CreateIfAvailable inserts b after re-checking the slot under the talent row lock.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = newID()
	}
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTalent(tx, m.TalentID); err != nil {
			return err
		}
		taken, err := hasOverlap(tx, m.TalentID, m.StartDate, m.EndDate, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		return translate(err)
	}

	*b = *toDomainBooking(m)
	return nil
}

// UpdateIfAvailable saves b, re-checking its new window against every other
// booking of the talent under the row lock.
func (r *BookingRepository) UpdateIfAvailable(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockTalent(tx, m.TalentID); err != nil {
			return err
		}
		taken, err := hasOverlap(tx, m.TalentID, m.StartDate, m.EndDate, m.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return saveBooking(tx, &m)
	})
	if err != nil {
		return translate(err)
	}
	return r.reload(ctx, b)
}

// Update saves only the client fields of b. The schedule and price columns
// are written by UpdateIfAvailable alone, so a stale b cannot move a booking
// back onto a slot taken since it was read.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := saveColumns(r.db.WithContext(ctx), &m,
		"client_name", "client_email", "notes", "updated_at")
	if err != nil {
		return translate(err)
	}
	return r.reload(ctx, b)
}

func saveBooking(tx *gorm.DB, m *bookingModel) error {
	return saveColumns(tx, m,
		"client_name", "client_email", "notes", "start_date", "end_date",
		"hourly_rate", "total_hours", "total_amount", "updated_at",
	)
}

func saveColumns(tx *gorm.DB, m *bookingModel, columns ...string) error {
	res := tx.Model(&bookingModel{ID: m.ID}).Select(columns).Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) reload(ctx context.Context, b *domain.Booking) error {
	fresh, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

// GetOwned returns the booking only when its talent belongs to businessID.
func (r *BookingRepository) GetOwned(ctx context.Context, id, businessID string) (*domain.Booking, error) {
	var m bookingModel
	err := r.ownedBy(r.db.WithContext(ctx), businessID).
		Where("bookings.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ownedBy(db *gorm.DB, businessID string) *gorm.DB {
	talents := r.db.Model(&talentModel{}).Select("id").Where("business_id = ?", businessID)
	return db.Model(&bookingModel{}).Where("bookings.talent_id IN (?)", talents)
}

// BookingFilter narrows List to one business. From/To select bookings whose
// window intersects [From, To).
type BookingFilter struct {
	BusinessID string
	TalentID   string
	Status     domain.BookingStatus
	From       *time.Time
	To         *time.Time
	Page       Page
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, int64, error) {
	page := f.Page.Normalize()

	q := r.ownedBy(r.db.WithContext(ctx), f.BusinessID)
	if f.TalentID != "" {
		q = q.Where("bookings.talent_id = ?", f.TalentID)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", string(f.Status))
	}
	if f.From != nil {
		q = q.Where("bookings.end_date > ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("bookings.start_date < ?", f.To.UTC())
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	err := q.Order("bookings.start_date ASC").
		Limit(page.Limit).
		Offset(page.offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// UpdateStatus moves the booking from one status to another. It reports false
// when the row was not in the expected status anymore.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{"status": string(to), "updated_at": r.db.NowFunc()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookingModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingStats aggregates the bookings of one business.
type BookingStats struct {
	Total   int64
	Pending int64
	Active  int64
	Revenue float64
}

func (r *BookingRepository) Stats(ctx context.Context, businessID string) (BookingStats, error) {
	var rows []struct {
		Status string
		N      int64
		Amount float64
	}
	err := r.ownedBy(r.db.WithContext(ctx), businessID).
		Select("bookings.status AS status, COUNT(*) AS n, COALESCE(SUM(bookings.total_amount), 0) AS amount").
		Group("bookings.status").
		Scan(&rows).Error
	if err != nil {
		return BookingStats{}, err
	}

	var s BookingStats
	for _, row := range rows {
		s.Total += row.N
		switch domain.BookingStatus(row.Status) {
		case domain.BookingPending:
			s.Pending = row.N
			s.Active += row.N
		case domain.BookingConfirmed:
			s.Active += row.N
			s.Revenue = row.Amount
		}
	}
	return s, nil
}

// Recent returns the n most recently created bookings of the business.
func (r *BookingRepository) Recent(ctx context.Context, businessID string, n int) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.ownedBy(r.db.WithContext(ctx), businessID).
		Order("bookings.created_at DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
