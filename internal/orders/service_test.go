package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

func placementService(store *fakeOrderStore, carts *fakeCartLines, writer *fakeOrderWriter) *service {
	writer.store = store
	return &service{
		orders: store,
		place: func(ctx context.Context, fn func(carts cartLines, writer orderWriter) error) error {
			return fn(carts, writer)
		},
		checkout: mustCheckoutConfig(),
	}
}

func mustCheckoutConfig() config.CheckoutConfig {
	cfg, err := config.NewCheckoutConfig("50", "5.99")
	if err != nil {
		panic(err)
	}
	return cfg
}

func activeProduct(name, price string, stock int) *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Price:      decimal.RequireFromString(price),
		StockCount: stock,
		Active:     true,
	}
}

func TestPlaceOrderSnapshotsPricesAndClearsCart(t *testing.T) {
	userID := uuid.New()
	serum := activeProduct("Rose Serum", "10", 8)
	balm := activeProduct("Lip Balm", "5", 3)

	carts := &fakeCartLines{items: []models.CartItem{
		{ID: uuid.New(), UserID: userID, ProductID: serum.ID, Quantity: 2, Product: serum},
		{ID: uuid.New(), UserID: userID, ProductID: balm.ID, Quantity: 1, Product: balm},
	}}
	writer := &fakeOrderWriter{}
	store := &fakeOrderStore{}
	svc := placementService(store, carts, writer)

	dto, err := svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
		CustomerName:    "Amara Shopper",
		CustomerEmail:   "Shopper@Example.com",
		DeliveryAddress: "1 Petal Lane",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if !carts.cleared {
		t.Fatalf("cart should be cleared inside the placement")
	}
	created := writer.created
	if created == nil {
		t.Fatalf("order header was never written")
	}
	if created.Status != enums.OrderStatusPending {
		t.Fatalf("new order status: %s", created.Status)
	}
	if created.CustomerEmail != "shopper@example.com" {
		t.Fatalf("email not normalized: %q", created.CustomerEmail)
	}
	if len(created.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(created.Items))
	}
	if !created.Items[0].Price.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("unit price not copied: %s", created.Items[0].Price)
	}
	// subtotal 25 is under the free-shipping threshold, so the flat fee applies
	if !created.TotalAmount.Equal(decimal.RequireFromString("30.99")) {
		t.Fatalf("total: %s", created.TotalAmount)
	}
	if !dto.TotalAmount.Equal(created.TotalAmount) {
		t.Fatalf("returned DTO total %s does not match stored %s", dto.TotalAmount, created.TotalAmount)
	}
}

func TestPlaceOrderWaivesShippingAboveThreshold(t *testing.T) {
	userID := uuid.New()
	cream := activeProduct("Night Cream", "30", 5)

	carts := &fakeCartLines{items: []models.CartItem{
		{ID: uuid.New(), UserID: userID, ProductID: cream.ID, Quantity: 2, Product: cream},
	}}
	writer := &fakeOrderWriter{}
	svc := placementService(&fakeOrderStore{}, carts, writer)

	_, err := svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
		CustomerName:    "Amara Shopper",
		CustomerEmail:   "shopper@example.com",
		DeliveryAddress: "1 Petal Lane",
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if !writer.created.TotalAmount.Equal(decimal.RequireFromString("60")) {
		t.Fatalf("total above threshold should equal subtotal, got %s", writer.created.TotalAmount)
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	carts := &fakeCartLines{}
	writer := &fakeOrderWriter{}
	svc := placementService(&fakeOrderStore{}, carts, writer)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for empty cart, got %v", err)
	}
	if writer.created != nil || carts.cleared {
		t.Fatalf("nothing should be written for an empty cart")
	}
}

func TestPlaceOrderRejectsUnavailableProduct(t *testing.T) {
	userID := uuid.New()
	retired := activeProduct("Retired SKU", "12", 4)
	retired.Active = false

	carts := &fakeCartLines{items: []models.CartItem{
		{ID: uuid.New(), UserID: userID, ProductID: retired.ID, Quantity: 1, Product: retired},
	}}
	writer := &fakeOrderWriter{}
	svc := placementService(&fakeOrderStore{}, carts, writer)

	_, err := svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for inactive product, got %v", err)
	}
	if writer.created != nil || carts.cleared {
		t.Fatalf("placement must stop before writing anything")
	}
}

func TestPlaceOrderWriteFailureKeepsCart(t *testing.T) {
	userID := uuid.New()
	serum := activeProduct("Rose Serum", "10", 8)

	carts := &fakeCartLines{items: []models.CartItem{
		{ID: uuid.New(), UserID: userID, ProductID: serum.ID, Quantity: 1, Product: serum},
	}}
	writer := &fakeOrderWriter{err: errors.New("connection reset")}
	svc := placementService(&fakeOrderStore{}, carts, writer)

	_, err := svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
		CustomerName:    "Amara Shopper",
		CustomerEmail:   "shopper@example.com",
		DeliveryAddress: "1 Petal Lane",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if carts.cleared {
		t.Fatalf("cart must not be cleared when the header insert fails")
	}
}

func TestCancelOrderOnlyWhilePending(t *testing.T) {
	userID := uuid.New()
	shipped := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.OrderStatusShipped,
	}
	svc := &service{orders: &fakeOrderStore{order: shipped}}

	_, err := svc.CancelOrder(context.Background(), userID, shipped.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for shipped order, got %v", err)
	}
}

func TestCancelOrderTransitionsPendingOrder(t *testing.T) {
	userID := uuid.New()
	pending := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.OrderStatusPending,
	}
	store := &fakeOrderStore{order: pending}
	svc := &service{orders: store}

	if _, err := svc.CancelOrder(context.Background(), userID, pending.ID); err != nil {
		t.Fatalf("cancel pending order: %v", err)
	}
	if store.transitionedTo != enums.OrderStatusCancelled {
		t.Fatalf("expected transition to cancelled, got %s", store.transitionedTo)
	}
}

func TestAdminUpdateStatusFollowsTransitionTable(t *testing.T) {
	confirmed := &models.Order{ID: uuid.New(), UserID: uuid.New(), Status: enums.OrderStatusConfirmed}
	store := &fakeOrderStore{order: confirmed}
	svc := &service{orders: store}

	if _, err := svc.AdminUpdateStatus(context.Background(), confirmed.ID, UpdateStatusRequest{
		Status: enums.OrderStatusProcessing,
	}); err != nil {
		t.Fatalf("confirmed -> processing: %v", err)
	}
	if store.transitionedTo != enums.OrderStatusProcessing {
		t.Fatalf("expected transition to processing, got %s", store.transitionedTo)
	}

	delivered := &models.Order{ID: uuid.New(), UserID: uuid.New(), Status: enums.OrderStatusDelivered}
	svc = &service{orders: &fakeOrderStore{order: delivered}}
	_, err := svc.AdminUpdateStatus(context.Background(), delivered.ID, UpdateStatusRequest{
		Status: enums.OrderStatusPending,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("delivered orders are terminal, got %v", err)
	}
}

func TestPlaceOrderRequiresUser(t *testing.T) {
	svc := &service{}

	_, err := svc.PlaceOrder(context.Background(), uuid.Nil, PlaceOrderRequest{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := &service{}

	_, err := svc.AdminUpdateStatus(context.Background(), uuid.New(), UpdateStatusRequest{
		Status: enums.OrderStatus("returned"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestAdminListOrdersRejectsInvalidStatusFilter(t *testing.T) {
	svc := &service{}
	bogus := enums.OrderStatus("bogus")

	_, err := svc.AdminListOrders(context.Background(), &bogus, "", 10)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bogus filter, got %v", err)
	}
}

func TestGetOrderRequiresIDs(t *testing.T) {
	svc := &service{}

	_, err := svc.GetOrder(context.Background(), uuid.Nil, uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}

	_, err = svc.GetOrder(context.Background(), uuid.New(), uuid.Nil)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing order, got %v", err)
	}
}

func TestPageFromRows(t *testing.T) {
	rows := []models.Order{
		{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Status:      enums.OrderStatusPending,
			TotalAmount: decimal.RequireFromString("42.50"),
			CreatedAt:   time.Now().UTC(),
		},
		{
			ID:          uuid.New(),
			UserID:      uuid.New(),
			Status:      enums.OrderStatusDelivered,
			TotalAmount: decimal.RequireFromString("18"),
			CreatedAt:   time.Now().UTC(),
		},
	}

	page := pageFromRows(rows, "cursor-token")
	if len(page.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(page.Orders))
	}
	if page.NextCursor != "cursor-token" {
		t.Fatalf("cursor not carried: %q", page.NextCursor)
	}
	if page.Orders[0].Status != enums.OrderStatusPending {
		t.Fatalf("status mismatch: %s", page.Orders[0].Status)
	}

	empty := pageFromRows(nil, "")
	if empty.Orders == nil {
		t.Fatalf("empty page should serialize as [], not null")
	}
}

type fakeOrderStore struct {
	order          *models.Order
	transitionedTo enums.OrderStatus
}

func (f *fakeOrderStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeOrderStore) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if f.order == nil || f.order.ID != id || f.order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeOrderStore) ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Order, string, error) {
	if f.order == nil || f.order.UserID != userID {
		return nil, "", nil
	}
	return []models.Order{*f.order}, "", nil
}

func (f *fakeOrderStore) ListAll(ctx context.Context, status *enums.OrderStatus, cursor string, limit int) ([]models.Order, string, error) {
	if f.order == nil {
		return nil, "", nil
	}
	return []models.Order{*f.order}, "", nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
	if f.order == nil || f.order.ID != id || f.order.Status != from {
		return 0, nil
	}
	f.order.Status = to
	f.transitionedTo = to
	return 1, nil
}

type fakeCartLines struct {
	items   []models.CartItem
	cleared bool
}

func (f *fakeCartLines) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return f.items, nil
}

func (f *fakeCartLines) Clear(ctx context.Context, userID uuid.UUID) error {
	f.cleared = true
	return nil
}

type fakeOrderWriter struct {
	store   *fakeOrderStore
	created *models.Order
	err     error
}

func (f *fakeOrderWriter) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	order.ID = uuid.New()
	f.created = order
	if f.store != nil {
		f.store.order = order
	}
	return order, nil
}
