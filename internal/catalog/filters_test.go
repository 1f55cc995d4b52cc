package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortNewest, false},
		{"newest", SortNewest, false},
		{"  Price-LOW  ", SortPriceLow, false},
		{"price-high", SortPriceHigh, false},
		{"name", SortName, false},
		{"featured", SortFeatured, false},
		{"oldest", SortOldest, false},
		{"cheapest", "", true},
	}

	for _, tc := range cases {
		t.Run("input_"+tc.input, func(t *testing.T) {
			got, err := ParseSortKey(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSortKeyOrderHasTieBreak(t *testing.T) {
	keys := []SortKey{SortNewest, SortOldest, SortPriceLow, SortPriceHigh, SortName, SortFeatured}
	for _, key := range keys {
		order := key.Order()
		if order == "" {
			t.Fatalf("%s: empty order clause", key)
		}
		if !containsID(order) {
			t.Fatalf("%s: order %q lacks id tie-break", key, order)
		}
	}
}

func containsID(order string) bool {
	for i := 0; i+2 <= len(order); i++ {
		if order[i:i+2] == "id" {
			return true
		}
	}
	return false
}

func TestProductFiltersPredicates(t *testing.T) {
	categoryID := uuid.New()
	min := decimal.RequireFromString("10")
	max := decimal.RequireFromString("40")

	filters := ProductFilters{
		CategoryIDs: []uuid.UUID{categoryID, uuid.New()},
		PriceMin:    &min,
		PriceMax:    &max,
		InStock:     true,
		Featured:    true,
		Query:       "vitamin c",
	}

	predicates := filters.Predicates()
	if len(predicates) != 5 {
		t.Fatalf("expected 5 predicates, got %d", len(predicates))
	}
	category, ok := predicates[0].(CategoryPredicate)
	if !ok {
		t.Fatalf("expected category predicate first, got %T", predicates[0])
	}
	if len(category.CategoryIDs) != 2 {
		t.Fatalf("expected both category ids kept, got %d", len(category.CategoryIDs))
	}
	if _, ok := predicates[1].(PriceRangePredicate); !ok {
		t.Fatalf("expected price range predicate, got %T", predicates[1])
	}
	if _, ok := predicates[4].(SearchPredicate); !ok {
		t.Fatalf("expected search predicate last, got %T", predicates[4])
	}
}

func TestProductFiltersPredicatesSkipEmpty(t *testing.T) {
	if got := (ProductFilters{}).Predicates(); len(got) != 0 {
		t.Fatalf("empty filters should yield no predicates, got %d", len(got))
	}

	filters := ProductFilters{
		CategoryIDs: []uuid.UUID{uuid.Nil},
		Query:       "   ",
	}
	if got := filters.Predicates(); len(got) != 0 {
		t.Fatalf("nil category and blank query should be ignored, got %d", len(got))
	}
}
