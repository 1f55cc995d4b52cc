package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

type fakeCatalogService struct {
	catalog.Service

	browseInput catalog.BrowseInput
	browseErr   error
	productErr  error
	productID   uuid.UUID
}

func (f *fakeCatalogService) Browse(ctx context.Context, input catalog.BrowseInput) (catalog.ProductsPageDTO, error) {
	f.browseInput = input
	if f.browseErr != nil {
		return catalog.ProductsPageDTO{}, f.browseErr
	}
	return catalog.ProductsPageDTO{Page: input.Page}, nil
}

func (f *fakeCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (catalog.ProductDetailDTO, error) {
	f.productID = id
	if f.productErr != nil {
		return catalog.ProductDetailDTO{}, f.productErr
	}
	return catalog.ProductDetailDTO{}, nil
}

func TestProductsBrowseParsesQuery(t *testing.T) {
	fake := &fakeCatalogService{}
	handler := ProductsBrowse(fake, nil)

	categoryID := uuid.New()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?sort=price-low&page=2&page_size=12&q=serum&category="+categoryID.String()+
			"&min_price=5&max_price=40&in_stock=true&featured=false", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	input := fake.browseInput
	if input.Sort != catalog.SortPriceLow {
		t.Fatalf("sort: %s", input.Sort)
	}
	if input.Page != 2 || input.PageSize != 12 {
		t.Fatalf("pagination: page=%d size=%d", input.Page, input.PageSize)
	}
	if input.Filters.Query != "serum" {
		t.Fatalf("query: %q", input.Filters.Query)
	}
	if len(input.Filters.CategoryIDs) != 1 || input.Filters.CategoryIDs[0] != categoryID {
		t.Fatalf("category: %v", input.Filters.CategoryIDs)
	}
	if input.Filters.PriceMin == nil || !input.Filters.PriceMin.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("min price: %v", input.Filters.PriceMin)
	}
	if input.Filters.PriceMax == nil || !input.Filters.PriceMax.Equal(decimal.RequireFromString("40")) {
		t.Fatalf("max price: %v", input.Filters.PriceMax)
	}
	if !input.Filters.InStock {
		t.Fatalf("in_stock should be set")
	}
	if input.Filters.Featured {
		t.Fatalf("featured=false should not filter")
	}
	if input.IncludeInactive {
		t.Fatalf("storefront browse must exclude inactive rows")
	}
}

func TestProductsBrowseParsesMultipleCategories(t *testing.T) {
	fake := &fakeCatalogService{}
	first, second := uuid.New(), uuid.New()

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?category="+first.String()+","+second.String(), nil)
	rec := httptest.NewRecorder()
	ProductsBrowse(fake, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	got := fake.browseInput.Filters.CategoryIDs
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("categories: %v", got)
	}
}

func TestProductsBrowseDefaults(t *testing.T) {
	fake := &fakeCatalogService{}
	handler := ProductsBrowse(fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if fake.browseInput.Sort != catalog.SortNewest {
		t.Fatalf("default sort: %s", fake.browseInput.Sort)
	}
	if fake.browseInput.Page != 1 {
		t.Fatalf("default page: %d", fake.browseInput.Page)
	}
}

func TestProductsBrowseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad sort", "?sort=cheapest"},
		{"bad category", "?category=not-a-uuid"},
		{"negative price", "?min_price=-3"},
		{"bad price", "?max_price=abc"},
		{"oversized page size", "?page_size=9999"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeCatalogService{}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products"+tc.query, nil)
			rec := httptest.NewRecorder()
			ProductsBrowse(fake, nil).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestProductDetailRejectsBadID(t *testing.T) {
	fake := &fakeCatalogService{}
	r := chi.NewRouter()
	r.Get("/api/v1/products/{productId}", ProductDetail(fake, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	fake := &fakeCatalogService{productErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	r := chi.NewRouter()
	r.Get("/api/v1/products/{productId}", ProductDetail(fake, nil))

	productID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if fake.productID != productID {
		t.Fatalf("service called with wrong id: %s", fake.productID)
	}
}
