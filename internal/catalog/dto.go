package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
)

// CategoryDTO is the public view of a category row.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductDTO is the public browse view of a product.
type ProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    *CategoryDTO    `json:"category,omitempty"`
	Images      []string        `json:"images"`
	StockCount  int             `json:"stock_count"`
	Featured    bool            `json:"featured"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductDetailDTO decorates the product view with its review summary.
type ProductDetailDTO struct {
	ProductDTO
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// ProductsPageDTO is an offset-paginated product listing.
type ProductsPageDTO struct {
	Products []ProductDTO `json:"products"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// BrowseInput captures the storefront listing parameters.
type BrowseInput struct {
	Filters  ProductFilters
	Sort     SortKey
	Page     int
	PageSize int
	// IncludeInactive is only honored on admin paths.
	IncludeInactive bool
}

// CreateProductRequest is the admin payload for a new listing.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=300"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Images      []string        `json:"images,omitempty" validate:"omitempty,dive,url"`
	StockCount  int             `json:"stock_count" validate:"gte=0"`
	Featured    bool            `json:"featured"`
	Active      bool            `json:"active"`
}

// UpdateProductRequest is the admin payload for editing a listing.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=300"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,dive,url"`
	StockCount  *int             `json:"stock_count,omitempty" validate:"omitempty,gte=0"`
	Featured    *bool            `json:"featured,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// UpsertCategoryRequest is the admin payload for category create/update.
type UpsertCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Slug        string  `json:"slug" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// CategoryFromModel maps a category row to its public view.
func CategoryFromModel(category *models.Category) CategoryDTO {
	return CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		CreatedAt:   category.CreatedAt,
	}
}

// ProductFromModel maps a product row to its public view.
func ProductFromModel(product *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Images:      append([]string(nil), product.Images...),
		StockCount:  product.StockCount,
		Featured:    product.Featured,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if dto.Images == nil {
		dto.Images = []string{}
	}
	if product.Category != nil {
		category := CategoryFromModel(product.Category)
		dto.Category = &category
	}
	return dto
}
