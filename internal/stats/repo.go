package stats

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

// Products below this stock level are flagged on the dashboard.
const lowStockThreshold = 10

// Totals is one pass of the dashboard aggregates.
type Totals struct {
	Revenue           decimal.Decimal
	Orders            int64
	PendingOrders     int64
	Products          int64
	LowStockProducts  int64
	Users             int64
	NewUsersThisMonth int64
}

// Repository computes dashboard aggregates straight from postgres.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stats repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Collect runs the aggregate queries behind the admin dashboard. Revenue
// excludes cancelled orders; the month window is the current calendar month.
func (r *Repository) Collect(ctx context.Context) (Totals, error) {
	var totals Totals

	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", enums.OrderStatusCancelled).
		Scan(&totals.Revenue).Error
	if err != nil {
		return Totals{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&totals.Orders).Error; err != nil {
		return Totals{}, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusPending).
		Count(&totals.PendingOrders).Error
	if err != nil {
		return Totals{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&totals.Products).Error; err != nil {
		return Totals{}, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("stock_count < ?", lowStockThreshold).
		Count(&totals.LowStockProducts).Error
	if err != nil {
		return Totals{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&totals.Users).Error; err != nil {
		return Totals{}, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at >= date_trunc('month', now())").
		Count(&totals.NewUsersThisMonth).Error
	if err != nil {
		return Totals{}, err
	}

	return totals, nil
}
