package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the businesses, talents and bookings tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&businessModel{}, &talentModel{}, &bookingModel{})
}
