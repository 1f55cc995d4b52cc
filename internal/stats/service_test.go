package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

type stubSource struct {
	totals Totals
	err    error
}

func (s stubSource) Collect(ctx context.Context) (Totals, error) {
	if s.err != nil {
		return Totals{}, s.err
	}
	return s.totals, nil
}

func TestDashboardMapsTotals(t *testing.T) {
	svc := &service{stats: stubSource{totals: Totals{
		Revenue:           decimal.RequireFromString("1234.56"),
		Orders:            42,
		PendingOrders:     7,
		Products:          19,
		LowStockProducts:  3,
		Users:             88,
		NewUsersThisMonth: 5,
	}}}

	dto, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !dto.TotalRevenue.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("revenue: %s", dto.TotalRevenue)
	}
	if dto.TotalOrders != 42 || dto.PendingOrders != 7 {
		t.Fatalf("orders: %d pending %d", dto.TotalOrders, dto.PendingOrders)
	}
	if dto.TotalProducts != 19 || dto.LowStockProducts != 3 {
		t.Fatalf("products: %d low %d", dto.TotalProducts, dto.LowStockProducts)
	}
	if dto.TotalUsers != 88 || dto.NewUsersThisMonth != 5 {
		t.Fatalf("users: %d new %d", dto.TotalUsers, dto.NewUsersThisMonth)
	}
}

func TestDashboardWrapsSourceFailure(t *testing.T) {
	svc := &service{stats: stubSource{err: errors.New("connection refused")}}

	_, err := svc.Dashboard(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
