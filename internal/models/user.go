package models

import "gorm.io/gorm"

// User represents a registered account. Measurement records hang off the
// user via the foreign keys below; the unique index on Email is the
// authoritative guard against duplicate registrations.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt

	WeightRecords []WeightRecord `json:"-" gorm:"foreignKey:UserID"`
	VitalsRecords []VitalsRecord `json:"-" gorm:"foreignKey:UserID"`
}
