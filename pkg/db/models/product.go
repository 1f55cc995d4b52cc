package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a storefront listing. Only active rows are ever
// served to customers; stock_count gates purchasability but is not
// decremented on checkout.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	Images      pq.StringArray  `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	StockCount  int             `gorm:"column:stock_count;not null;default:0"`
	Featured    bool            `gorm:"column:featured;not null;default:false"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
