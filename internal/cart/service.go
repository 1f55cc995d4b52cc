package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// Service exposes cart mutation and quoting.
type Service interface {
	GetCart(ctx context.Context, userID uuid.UUID) (QuoteDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (QuoteDTO, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (QuoteDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (QuoteDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productFinder interface {
	FindActiveProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    *Repository
	CatalogRepo productFinder
	Checkout    config.CheckoutConfig
}

type service struct {
	cart     *Repository
	catalog  productFinder
	checkout config.CheckoutConfig
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{
		cart:     params.CartRepo,
		catalog:  params.CatalogRepo,
		checkout: params.Checkout,
	}, nil
}

// GetCart returns the priced cart for the user.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (QuoteDTO, error) {
	if userID == uuid.Nil {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.cart.ListItems(ctx, userID)
	if err != nil {
		return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return s.quote(items), nil
}

// AddItem verifies the product is purchasable then merges the quantity
// atomically into the user's cart.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (QuoteDTO, error) {
	if userID == uuid.Nil {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if req.ProductID == uuid.Nil {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if req.Quantity <= 0 {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.catalog.FindActiveProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.StockCount <= 0 {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	}

	if err := s.cart.UpsertItem(ctx, userID, req.ProductID, req.Quantity); err != nil {
		return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.GetCart(ctx, userID)
}

// UpdateItem replaces the quantity on one cart line. A quantity of zero
// or less removes the line; repeating the removal is a no-op.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (QuoteDTO, error) {
	if userID == uuid.Nil || itemID == uuid.Nil {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id and item id are required")
	}
	if req.Quantity <= 0 {
		if _, err := s.cart.RemoveItem(ctx, userID, itemID); err != nil {
			return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		return s.GetCart(ctx, userID)
	}

	affected, err := s.cart.SetQuantity(ctx, userID, itemID, req.Quantity)
	if err != nil {
		return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if affected == 0 {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem deletes one cart line owned by the user.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (QuoteDTO, error) {
	if userID == uuid.Nil || itemID == uuid.Nil {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id and item id are required")
	}
	affected, err := s.cart.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return QuoteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if affected == 0 {
		return QuoteDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.GetCart(ctx, userID)
}

// Clear empties the user's cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.cart.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) quote(items []models.CartItem) QuoteDTO {
	lines := make([]ItemDTO, 0, len(items))
	subtotal := decimal.Zero
	count := 0

	for i := range items {
		item := items[i]
		if item.Product == nil {
			continue
		}
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, ItemDTO{
			ID:        item.ID,
			Product:   catalog.ProductFromModel(item.Product),
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
		count += item.Quantity
	}

	shipping := decimal.Zero
	if len(lines) > 0 && !subtotal.GreaterThan(s.checkout.FreeShippingOver()) {
		shipping = s.checkout.ShippingFee()
	}

	return QuoteDTO{
		Items:     lines,
		ItemCount: count,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
	}
}
