package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogPost backs the storefront blog; only published rows are public.
type BlogPost struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string     `gorm:"column:title;not null"`
	Slug          string     `gorm:"column:slug;not null;uniqueIndex"`
	Excerpt       *string    `gorm:"column:excerpt"`
	Content       string     `gorm:"column:content;not null"`
	ImageURL      *string    `gorm:"column:image_url"`
	AuthorID      *uuid.UUID `gorm:"column:author_id;type:uuid"`
	Published     bool       `gorm:"column:published;not null;default:false"`
	PublishedDate *time.Time `gorm:"column:published_date"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
