package cart

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
	if err := gdb.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return NewRepository(gdb), gdb
}

func seedShopper(t *testing.T, gdb *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("cart-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		FullName:     "Cart Tester",
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	product := &models.Product{
		Name:       "Rose Serum",
		Price:      decimal.RequireFromString("19.99"),
		StockCount: 10,
		Active:     true,
	}
	if err := gdb.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	t.Cleanup(func() {
		gdb.Where("user_id = ?", user.ID).Delete(&models.CartItem{})
		gdb.Delete(product)
		gdb.Delete(user)
	})
	return user.ID, product.ID
}

func TestUpsertItemMergesIntoSingleRow(t *testing.T) {
	repo, gdb := dbRepo(t)
	userID, productID := seedShopper(t, gdb)
	ctx := context.Background()

	if err := repo.UpsertItem(ctx, userID, productID, 2); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertItem(ctx, userID, productID, 3); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	items, err := repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("repeated adds must merge into one row, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("merged quantity: got %d, want 5", items[0].Quantity)
	}
}

func TestSetQuantityReplacesExactly(t *testing.T) {
	repo, gdb := dbRepo(t)
	userID, productID := seedShopper(t, gdb)
	ctx := context.Background()

	if err := repo.UpsertItem(ctx, userID, productID, 4); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	items, err := repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}

	affected, err := repo.SetQuantity(ctx, userID, items[0].ID, 2)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row updated, got %d", affected)
	}

	items, err = repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity must be replaced, not added: got %d", items[0].Quantity)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	repo, gdb := dbRepo(t)
	userID, productID := seedShopper(t, gdb)
	ctx := context.Background()

	if err := repo.UpsertItem(ctx, userID, productID, 1); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	items, err := repo.ListItems(ctx, userID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	itemID := items[0].ID

	affected, err := repo.RemoveItem(ctx, userID, itemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row removed, got %d", affected)
	}

	affected, err = repo.RemoveItem(ctx, userID, itemID)
	if err != nil {
		t.Fatalf("repeat remove: %v", err)
	}
	if affected != 0 {
		t.Fatalf("repeat removal must be a no-op, got %d", affected)
	}
}
