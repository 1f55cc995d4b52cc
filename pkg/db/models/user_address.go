package models

import (
	"time"

	"github.com/google/uuid"
)

// UserAddress is a saved shipping profile scoped to a user.
type UserAddress struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Title        string    `gorm:"column:title;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Phone        *string   `gorm:"column:phone"`
	AddressLine1 string    `gorm:"column:address_line1;not null"`
	AddressLine2 *string   `gorm:"column:address_line2"`
	City         string    `gorm:"column:city;not null"`
	State        *string   `gorm:"column:state"`
	PostalCode   *string   `gorm:"column:postal_code"`
	Country      string    `gorm:"column:country;not null;default:'Kenya'"`
	IsDefault    bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
