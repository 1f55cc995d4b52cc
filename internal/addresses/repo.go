package addresses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
)

// Repository encapsulates saved-address persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an address repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts an address row.
func (r *Repository) Create(ctx context.Context, address *models.UserAddress) (*models.UserAddress, error) {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// Update saves the full address row.
func (r *Repository) Update(ctx context.Context, address *models.UserAddress) (*models.UserAddress, error) {
	if err := r.db.WithContext(ctx).Save(address).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// FindByIDForUser loads an address only when it belongs to the user.
func (r *Repository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.UserAddress, error) {
	var address models.UserAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// ListByUser returns the user's addresses, default first then newest.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.UserAddress, error) {
	var rows []models.UserAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Delete removes an address owned by the user.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.UserAddress{})
	return result.RowsAffected, result.Error
}

// ClearDefault unsets the default flag on every address the user owns.
func (r *Repository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserAddress{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error
}

// SetDefault marks one address as the user's default.
func (r *Repository) SetDefault(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UserAddress{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_default", true)
	return result.RowsAffected, result.Error
}
