package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// RatingSummary aggregates review data for one product.
type RatingSummary struct {
	Average float64
	Count   int
}

type ratingSource interface {
	SummaryForProduct(ctx context.Context, productID uuid.UUID) (RatingSummary, error)
}

// Service exposes the storefront browse surface and the admin catalog console.
type Service interface {
	Browse(ctx context.Context, input BrowseInput) (ProductsPageDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (ProductDetailDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	GetCategoryBySlug(ctx context.Context, slug string) (CategoryDTO, error)

	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CreateCategory(ctx context.Context, req UpsertCategoryRequest) (CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	CatalogRepo *Repository
	Ratings     ratingSource
}

type service struct {
	catalog *Repository
	ratings ratingSource
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.Ratings == nil {
		return nil, fmt.Errorf("rating source is required")
	}
	return &service{catalog: params.CatalogRepo, ratings: params.Ratings}, nil
}

// Browse returns a filtered, sorted page of products.
func (s *service) Browse(ctx context.Context, input BrowseInput) (ProductsPageDTO, error) {
	if input.Sort == "" {
		input.Sort = SortNewest
	}
	if !input.Sort.IsValid() {
		return ProductsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid sort key %q", input.Sort))
	}
	if input.Filters.PriceMin != nil && input.Filters.PriceMax != nil &&
		input.Filters.PriceMin.GreaterThan(*input.Filters.PriceMax) {
		return ProductsPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price minimum exceeds maximum")
	}

	rows, total, err := s.catalog.ListProducts(ctx, input)
	if err != nil {
		return ProductsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	products := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		products = append(products, ProductFromModel(&rows[i]))
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return ProductsPageDTO{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProduct returns the detail view including the computed review summary.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (ProductDetailDTO, error) {
	if id == uuid.Nil {
		return ProductDetailDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.catalog.FindActiveProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	summary, err := s.ratings.SummaryForProduct(ctx, id)
	if err != nil {
		return ProductDetailDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review summary")
	}

	return ProductDetailDTO{
		ProductDTO:    ProductFromModel(product),
		AverageRating: summary.Average,
		ReviewCount:   summary.Count,
	}, nil
}

// ListCategories returns all categories ordered by name.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	categories := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		categories = append(categories, CategoryFromModel(&rows[i]))
	}
	return categories, nil
}

// GetCategoryBySlug resolves a storefront category route.
func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (CategoryDTO, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return CategoryDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "category slug is required")
	}
	category, err := s.catalog.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return CategoryFromModel(category), nil
}

// CreateProduct inserts a new admin-authored listing.
func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductDTO, error) {
	if req.Price.IsNegative() {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return ProductDTO{}, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Images:      pq.StringArray(req.Images),
		StockCount:  req.StockCount,
		Featured:    req.Featured,
		Active:      req.Active,
	}
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}
	if _, err := s.catalog.CreateProduct(ctx, product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.reloadProduct(ctx, product.ID)
}

// UpdateProduct applies the provided patch to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (ProductDTO, error) {
	product, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		if err := s.ensureCategoryExists(ctx, req.CategoryID); err != nil {
			return ProductDTO{}, err
		}
		product.CategoryID = req.CategoryID
	}
	if req.Images != nil {
		product.Images = pq.StringArray(req.Images)
	}
	if req.StockCount != nil {
		if *req.StockCount < 0 {
			return ProductDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "stock count cannot be negative")
		}
		product.StockCount = *req.StockCount
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	product.Category = nil
	if _, err := s.catalog.UpdateProduct(ctx, product); err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.reloadProduct(ctx, product.ID)
}

// DeleteProduct removes a listing entirely.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.catalog.FindProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// CreateCategory inserts a new category.
func (s *service) CreateCategory(ctx context.Context, req UpsertCategoryRequest) (CategoryDTO, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(strings.ToLower(req.Slug)),
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if _, err := s.catalog.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return CategoryFromModel(category), nil
}

// UpdateCategory replaces the editable category fields.
func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, req UpsertCategoryRequest) (CategoryDTO, error) {
	category, err := s.catalog.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = strings.TrimSpace(strings.ToLower(req.Slug))
	category.Description = req.Description
	category.ImageURL = req.ImageURL

	if _, err := s.catalog.UpdateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return CategoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return CategoryFromModel(category), nil
}

// DeleteCategory removes the category; products keep a NULL category.
func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if _, err := s.catalog.FindCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.catalog.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) ensureCategoryExists(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil || *categoryID == uuid.Nil {
		return nil
	}
	if _, err := s.catalog.FindCategoryByID(ctx, *categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) reloadProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	product, err := s.catalog.FindProductByID(ctx, id)
	if err != nil {
		return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	return ProductFromModel(product), nil
}
