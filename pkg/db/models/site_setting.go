package models

import "time"

// SiteSetting is a key/value pair used for storefront contact info and
// other editable copy.
type SiteSetting struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     *string   `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
