package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// ItemDTO wraps the product included in a wishlist row.
type ItemDTO struct {
	ID        uuid.UUID          `json:"id"`
	Product   catalog.ProductDTO `json:"product"`
	CreatedAt time.Time          `json:"created_at"`
}

// PageDTO is a cursor-paginated wishlist view.
type PageDTO struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// IDsDTO is a lightweight projection containing only product IDs.
type IDsDTO struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

type productFinder interface {
	FindActiveProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, userID uuid.UUID, cursor string, limit int) (PageDTO, error)
	GetWishlistIDs(ctx context.Context, userID uuid.UUID) (IDsDTO, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	CatalogRepo  productFinder
}

type service struct {
	wishlist *Repository
	catalog  productFinder
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{wishlist: params.WishlistRepo, catalog: params.CatalogRepo}, nil
}

// GetWishlist returns the paginated wishlist for the user.
func (s *service) GetWishlist(ctx context.Context, userID uuid.UUID, cursor string, limit int) (PageDTO, error) {
	if userID == uuid.Nil {
		return PageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, nextCursor, err := s.wishlist.ListItems(ctx, userID, cursor, limit)
	if err != nil {
		return PageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}

	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if row.Product == nil {
			continue
		}
		items = append(items, ItemDTO{
			ID:        row.ID,
			Product:   catalog.ProductFromModel(row.Product),
			CreatedAt: row.CreatedAt,
		})
	}
	return PageDTO{Items: items, NextCursor: nextCursor}, nil
}

// GetWishlistIDs returns all saved product IDs for the user.
func (s *service) GetWishlistIDs(ctx context.Context, userID uuid.UUID) (IDsDTO, error) {
	if userID == uuid.Nil {
		return IDsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	ids, err := s.wishlist.ListProductIDs(ctx, userID)
	if err != nil {
		return IDsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist ids")
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return IDsDTO{ProductIDs: ids}, nil
}

// AddItem ensures the product exists and adds it to the wishlist.
func (s *service) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.catalog.FindActiveProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.wishlist.AddItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	return nil
}

// RemoveItem drops the wishlist entry regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and product id are required")
	}
	if err := s.wishlist.RemoveItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	return nil
}
