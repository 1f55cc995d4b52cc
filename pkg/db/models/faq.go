package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQ is a storefront help entry ordered by order_index.
type FAQ struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Question   string    `gorm:"column:question;not null"`
	Answer     string    `gorm:"column:answer;not null"`
	Category   string    `gorm:"column:category;not null;default:'general'"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0"`
	Active     bool      `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
