package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// UpsertItem adds quantity to the user's line for the product, inserting the
// row if absent. The conflict target is the (user_id, product_id) unique key,
// so concurrent adds merge instead of erroring.
func (r *Repository) UpsertItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return r.db.WithContext(ctx).Exec(`
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES (?, ?, ?)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		userID, productID, quantity).Error
}

// SetQuantity replaces the quantity on an existing line.
func (r *Repository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// RemoveItem deletes a single cart line owned by the user.
func (r *Repository) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// Clear deletes every cart line for the user.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// ListItems returns the user's cart lines with their products, oldest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}
