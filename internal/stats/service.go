package stats

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// DashboardDTO is the admin console's at-a-glance summary.
type DashboardDTO struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int64           `json:"total_orders"`
	PendingOrders     int64           `json:"pending_orders"`
	TotalProducts     int64           `json:"total_products"`
	LowStockProducts  int64           `json:"low_stock_products"`
	TotalUsers        int64           `json:"total_users"`
	NewUsersThisMonth int64           `json:"new_users_this_month"`
}

type statsSource interface {
	Collect(ctx context.Context) (Totals, error)
}

// Service exposes the admin dashboard aggregates.
type Service interface {
	Dashboard(ctx context.Context) (DashboardDTO, error)
}

// ServiceParams groups dependencies for the stats service.
type ServiceParams struct {
	StatsRepo *Repository
}

type service struct {
	stats statsSource
}

// NewService builds a stats service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.StatsRepo == nil {
		return nil, fmt.Errorf("stats repository is required")
	}
	return &service{stats: params.StatsRepo}, nil
}

// Dashboard returns the current dashboard snapshot.
func (s *service) Dashboard(ctx context.Context) (DashboardDTO, error) {
	totals, err := s.stats.Collect(ctx)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "collect dashboard totals")
	}
	return DashboardDTO{
		TotalRevenue:      totals.Revenue,
		TotalOrders:       totals.Orders,
		PendingOrders:     totals.PendingOrders,
		TotalProducts:     totals.Products,
		LowStockProducts:  totals.LowStockProducts,
		TotalUsers:        totals.Users,
		NewUsersThisMonth: totals.NewUsersThisMonth,
	}, nil
}
