package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/pagination"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review owned by the user.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Review{})
	return result.RowsAffected, result.Error
}

// ListByProduct returns reviews for a product newest first with cursor pagination.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID, cursor string, limit int) ([]models.Review, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	decoded, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Preload("User").
		Where("product_id = ?", productID)
	if decoded != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
	}

	var rows []models.Review
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Limit(pagination.LimitWithBuffer(limit)).
		Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// SummaryForProduct computes the average rating and count in one aggregate.
// A product without reviews reports a zero average, not NULL.
func (r *Repository) SummaryForProduct(ctx context.Context, productID uuid.UUID) (catalog.RatingSummary, error) {
	var row struct {
		Average float64 `gorm:"column:average"`
		Count   int     `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return catalog.RatingSummary{}, err
	}
	return catalog.RatingSummary{Average: row.Average, Count: row.Count}, nil
}
