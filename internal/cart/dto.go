package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amara-cosmetics/amara-backend/internal/catalog"
)

// AddItemRequest adds quantity of one product to the caller's cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0,lte=999"`
}

// UpdateItemRequest replaces the quantity of one cart line. Zero or
// negative removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"lte=999"`
}

// ItemDTO is one cart line with its product and extended line total.
type ItemDTO struct {
	ID        uuid.UUID          `json:"id"`
	Product   catalog.ProductDTO `json:"product"`
	Quantity  int                `json:"quantity"`
	LineTotal decimal.Decimal    `json:"line_total"`
}

// QuoteDTO is the priced cart: lines plus subtotal, shipping, and total.
type QuoteDTO struct {
	Items     []ItemDTO       `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}
