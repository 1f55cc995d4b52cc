package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SortKey enumerates the supported catalog orderings.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortFeatured  SortKey = "featured"
)

// IsValid reports whether the sort key is one of the supported values.
func (s SortKey) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortName, SortFeatured:
		return true
	}
	return false
}

// ParseSortKey maps a raw string onto a SortKey, defaulting to newest.
func ParseSortKey(value string) (SortKey, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return SortNewest, nil
	}
	key := SortKey(trimmed)
	if !key.IsValid() {
		return "", fmt.Errorf("invalid sort key %q", value)
	}
	return key, nil
}

// Order returns the SQL ordering for the key. Every ordering carries an
// id tie-break so pagination stays stable across rows with equal keys.
func (s SortKey) Order() string {
	switch s {
	case SortOldest:
		return "created_at ASC, id ASC"
	case SortPriceLow:
		return "price ASC, id DESC"
	case SortPriceHigh:
		return "price DESC, id DESC"
	case SortName:
		return "name ASC, id DESC"
	case SortFeatured:
		return "featured DESC, created_at DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

// Predicate narrows a product query. Predicates compose left to right.
type Predicate interface {
	Apply(query *gorm.DB) *gorm.DB
}

// CategoryPredicate restricts rows to a set of categories.
type CategoryPredicate struct {
	CategoryIDs []uuid.UUID
}

func (p CategoryPredicate) Apply(query *gorm.DB) *gorm.DB {
	return query.Where("category_id IN ?", p.CategoryIDs)
}

// PriceRangePredicate restricts rows to an inclusive price band.
type PriceRangePredicate struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (p PriceRangePredicate) Apply(query *gorm.DB) *gorm.DB {
	if p.Min != nil {
		query = query.Where("price >= ?", *p.Min)
	}
	if p.Max != nil {
		query = query.Where("price <= ?", *p.Max)
	}
	return query
}

// InStockPredicate keeps only purchasable rows.
type InStockPredicate struct{}

func (p InStockPredicate) Apply(query *gorm.DB) *gorm.DB {
	return query.Where("stock_count > 0")
}

// FeaturedPredicate keeps only featured rows.
type FeaturedPredicate struct{}

func (p FeaturedPredicate) Apply(query *gorm.DB) *gorm.DB {
	return query.Where("featured = TRUE")
}

// SearchPredicate matches the query text against name and description.
type SearchPredicate struct {
	Query string
}

func (p SearchPredicate) Apply(query *gorm.DB) *gorm.DB {
	needle := "%" + strings.TrimSpace(p.Query) + "%"
	return query.Where("(name ILIKE ? OR description ILIKE ?)", needle, needle)
}

// ProductFilters describe the supported filter knobs for the browse endpoint.
type ProductFilters struct {
	CategoryIDs []uuid.UUID
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	InStock     bool
	Featured    bool
	Query       string
}

// Predicates converts the filter set into its typed predicate chain.
// An empty category set means no category restriction.
func (f ProductFilters) Predicates() []Predicate {
	var predicates []Predicate
	categories := make([]uuid.UUID, 0, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		if id != uuid.Nil {
			categories = append(categories, id)
		}
	}
	if len(categories) > 0 {
		predicates = append(predicates, CategoryPredicate{CategoryIDs: categories})
	}
	if f.PriceMin != nil || f.PriceMax != nil {
		predicates = append(predicates, PriceRangePredicate{Min: f.PriceMin, Max: f.PriceMax})
	}
	if f.InStock {
		predicates = append(predicates, InStockPredicate{})
	}
	if f.Featured {
		predicates = append(predicates, FeaturedPredicate{})
	}
	if strings.TrimSpace(f.Query) != "" {
		predicates = append(predicates, SearchPredicate{Query: f.Query})
	}
	return predicates
}
