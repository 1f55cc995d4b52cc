package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amara-cosmetics/amara-backend/api/responses"
	"github.com/amara-cosmetics/amara-backend/api/validators"
	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
	"github.com/amara-cosmetics/amara-backend/pkg/logger"
)

const maxBrowsePageSize = 100

// ProductsBrowse serves the storefront listing with filters, sorting, and
// offset pagination.
func ProductsBrowse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := browseInputFromQuery(r, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Browse(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ProductDetail returns a single active product with its review summary.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoriesList returns every category ordered by name.
func CategoriesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// CategoryBySlug resolves a storefront category route.
func CategoryBySlug(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		category, err := svc.GetCategoryBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

func browseInputFromQuery(r *http.Request, includeInactive bool) (catalog.BrowseInput, error) {
	query := r.URL.Query()

	sort, err := catalog.ParseSortKey(query.Get("sort"))
	if err != nil {
		return catalog.BrowseInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
	if err != nil {
		return catalog.BrowseInput{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", 0, 0, maxBrowsePageSize)
	if err != nil {
		return catalog.BrowseInput{}, err
	}

	filters := catalog.ProductFilters{
		Query: strings.TrimSpace(query.Get("q")),
	}

	for _, raw := range query["category"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			categoryID, err := uuid.Parse(part)
			if err != nil {
				return catalog.BrowseInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
			}
			filters.CategoryIDs = append(filters.CategoryIDs, categoryID)
		}
	}
	if min, err := parseQueryDecimal(query.Get("min_price")); err != nil {
		return catalog.BrowseInput{}, err
	} else if min != nil {
		filters.PriceMin = min
	}
	if max, err := parseQueryDecimal(query.Get("max_price")); err != nil {
		return catalog.BrowseInput{}, err
	} else if max != nil {
		filters.PriceMax = max
	}
	if inStock, err := validators.ParseQueryBool(r, "in_stock"); err != nil {
		return catalog.BrowseInput{}, err
	} else if inStock != nil {
		filters.InStock = *inStock
	}
	if featured, err := validators.ParseQueryBool(r, "featured"); err != nil {
		return catalog.BrowseInput{}, err
	} else if featured != nil {
		filters.Featured = *featured
	}

	return catalog.BrowseInput{
		Filters:         filters,
		Sort:            sort,
		Page:            page,
		PageSize:        pageSize,
		IncludeInactive: includeInactive,
	}, nil
}

func parseQueryDecimal(raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price value")
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price value cannot be negative")
	}
	return &value, nil
}
