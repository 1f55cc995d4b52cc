package stats

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

func dbRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("AMARA_DB_DSN")
	if dsn == "" {
		t.Skip("AMARA_DB_DSN not set")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return NewRepository(gdb), gdb
}

func seedOrder(t *testing.T, gdb *gorm.DB, userID uuid.UUID, total string, status enums.OrderStatus) {
	t.Helper()
	order := &models.Order{
		UserID:          userID,
		CustomerName:    "Stats Tester",
		CustomerEmail:   "stats@example.com",
		DeliveryAddress: "1 Petal Lane",
		Status:          status,
		TotalAmount:     decimal.RequireFromString(total),
	}
	if err := gdb.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	t.Cleanup(func() { gdb.Delete(order) })
}

func TestCollectRevenueExcludesCancelledOrders(t *testing.T) {
	repo, gdb := dbRepo(t)
	ctx := context.Background()

	user := &models.User{
		Email:        fmt.Sprintf("stats-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		FullName:     "Stats Tester",
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { gdb.Delete(user) })

	before, err := repo.Collect(ctx)
	if err != nil {
		t.Fatalf("collect baseline: %v", err)
	}

	seedOrder(t, gdb, user.ID, "40.00", enums.OrderStatusDelivered)
	seedOrder(t, gdb, user.ID, "15.50", enums.OrderStatusPending)
	seedOrder(t, gdb, user.ID, "99.99", enums.OrderStatusCancelled)

	after, err := repo.Collect(ctx)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	delta := after.Revenue.Sub(before.Revenue)
	if !delta.Equal(decimal.RequireFromString("55.50")) {
		t.Fatalf("cancelled order leaked into revenue: delta %s", delta)
	}
	if after.Orders-before.Orders != 3 {
		t.Fatalf("order count delta: %d", after.Orders-before.Orders)
	}
	if after.PendingOrders-before.PendingOrders != 1 {
		t.Fatalf("pending delta: %d", after.PendingOrders-before.PendingOrders)
	}
	if after.NewUsersThisMonth-before.NewUsersThisMonth != 1 {
		t.Fatalf("new user this month delta: %d", after.NewUsersThisMonth-before.NewUsersThisMonth)
	}
}
