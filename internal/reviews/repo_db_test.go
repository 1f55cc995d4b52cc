package reviews

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
	if err := gdb.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Review{}); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return NewRepository(gdb), gdb
}

func seedProduct(t *testing.T, gdb *gorm.DB) uuid.UUID {
	t.Helper()
	product := &models.Product{
		Name:       "Vitamin C Mask",
		Price:      decimal.RequireFromString("24.00"),
		StockCount: 5,
		Active:     true,
	}
	if err := gdb.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	t.Cleanup(func() {
		gdb.Where("product_id = ?", product.ID).Delete(&models.Review{})
		gdb.Delete(product)
	})
	return product.ID
}

func seedReviewer(t *testing.T, gdb *gorm.DB) uuid.UUID {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("review-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		FullName:     "Review Tester",
	}
	if err := gdb.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { gdb.Delete(user) })
	return user.ID
}

func TestSummaryForProductWithoutReviews(t *testing.T) {
	repo, gdb := dbRepo(t)
	productID := seedProduct(t, gdb)

	summary, err := repo.SummaryForProduct(context.Background(), productID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Average != 0 {
		t.Fatalf("unreviewed product must average 0, got %f", summary.Average)
	}
	if summary.Count != 0 {
		t.Fatalf("unreviewed product count: got %d", summary.Count)
	}
}

func TestSummaryForProductAveragesRatings(t *testing.T) {
	repo, gdb := dbRepo(t)
	productID := seedProduct(t, gdb)
	ctx := context.Background()

	for _, rating := range []int{5, 4, 3} {
		review := &models.Review{
			ProductID: productID,
			UserID:    seedReviewer(t, gdb),
			Rating:    rating,
		}
		if _, err := repo.Create(ctx, review); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	summary, err := repo.SummaryForProduct(ctx, productID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Average != 4.0 {
		t.Fatalf("average of [5,4,3]: got %f, want 4.0", summary.Average)
	}
	if summary.Count != 3 {
		t.Fatalf("count: got %d, want 3", summary.Count)
	}
}
