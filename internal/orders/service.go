package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amara-cosmetics/amara-backend/internal/cart"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
	pkgerrors "github.com/amara-cosmetics/amara-backend/pkg/errors"
)

// Service exposes checkout, order history, and the admin fulfillment console.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (OrderDTO, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error)
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error)

	AdminGetOrder(ctx context.Context, orderID uuid.UUID) (OrderDTO, error)
	AdminListOrders(ctx context.Context, status *enums.OrderStatus, cursor string, limit int) (OrdersPageDTO, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (OrderDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, cursor string, limit int) ([]models.Order, string, error)
	ListAll(ctx context.Context, status *enums.OrderStatus, cursor string, limit int) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error)
}

type cartLines interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// placementTx runs fn against tx-scoped cart and order stores so the
// header insert, item snapshot, and cart clear commit together.
type placementTx func(ctx context.Context, fn func(carts cartLines, writer orderWriter) error) error

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	OrderRepo *Repository
	CartRepo  *cart.Repository
	DB        txRunner
	Checkout  config.CheckoutConfig
}

type service struct {
	orders   orderStore
	place    placementTx
	checkout config.CheckoutConfig
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	place := func(ctx context.Context, fn func(carts cartLines, writer orderWriter) error) error {
		return params.DB.WithTx(ctx, func(tx *gorm.DB) error {
			return fn(params.CartRepo.WithTx(tx), params.OrderRepo.WithTx(tx))
		})
	}
	return &service{
		orders:   params.OrderRepo,
		place:    place,
		checkout: params.Checkout,
	}, nil
}

// PlaceOrder converts the user's cart into an order. The header insert, item
// snapshot, and cart clear commit together or not at all.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (OrderDTO, error) {
	if userID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var orderID uuid.UUID
	err := s.place(ctx, func(carts cartLines, writer orderWriter) error {
		items, err := carts.ListItems(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}

		subtotal := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for i := range items {
			item := items[i]
			if item.Product == nil || !item.Product.Active {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cart contains an unavailable product")
			}
			if item.Product.StockCount <= 0 {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("product %q is out of stock", item.Product.Name))
			}
			subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
			})
		}

		shipping := decimal.Zero
		if !subtotal.GreaterThan(s.checkout.FreeShippingOver()) {
			shipping = s.checkout.ShippingFee()
		}

		order := &models.Order{
			UserID:          userID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
			CustomerPhone:   req.CustomerPhone,
			DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
			Status:          enums.OrderStatusPending,
			TotalAmount:     subtotal.Add(shipping),
			Notes:           req.Notes,
			Items:           orderItems,
		}
		if _, err := writer.Create(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "duplicate order")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := carts.Clear(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return OrderDTO{}, err
	}

	return s.AdminGetOrder(ctx, orderID)
}

// GetOrder returns one of the user's own orders.
func (s *service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	if userID == uuid.Nil || orderID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id and order id are required")
	}
	order, err := s.orders.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

// ListOrders returns the user's order history newest first.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID, cursor string, limit int) (OrdersPageDTO, error) {
	if userID == uuid.Nil {
		return OrdersPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, nextCursor, err := s.orders.ListByUser(ctx, userID, cursor, limit)
	if err != nil {
		return OrdersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return pageFromRows(rows, nextCursor), nil
}

// CancelOrder lets a customer cancel their own order while it is still pending.
func (s *service) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (OrderDTO, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	if order.Status != enums.OrderStatusPending {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
	}
	return s.transition(ctx, orderID, order.Status, enums.OrderStatusCancelled)
}

// AdminGetOrder returns any order by ID.
func (s *service) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (OrderDTO, error) {
	if orderID == uuid.Nil {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
		}
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return FromModel(order), nil
}

// AdminListOrders pages through all orders, optionally filtered by status.
func (s *service) AdminListOrders(ctx context.Context, status *enums.OrderStatus, cursor string, limit int) (OrdersPageDTO, error) {
	if status != nil && !status.IsValid() {
		return OrdersPageDTO{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", *status))
	}
	rows, nextCursor, err := s.orders.ListAll(ctx, status, cursor, limit)
	if err != nil {
		return OrdersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return pageFromRows(rows, nextCursor), nil
}

// AdminUpdateStatus advances the order through the validated transition table.
func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (OrderDTO, error) {
	if !req.Status.IsValid() {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", req.Status))
	}
	order, err := s.AdminGetOrder(ctx, orderID)
	if err != nil {
		return OrderDTO{}, err
	}
	if !order.Status.CanTransitionTo(req.Status) {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot transition order from %q to %q", order.Status, req.Status))
	}
	return s.transition(ctx, orderID, order.Status, req.Status)
}

func (s *service) transition(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (OrderDTO, error) {
	affected, err := s.orders.UpdateStatus(ctx, orderID, from, to)
	if err != nil {
		return OrderDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if affected == 0 {
		return OrderDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
	}
	return s.AdminGetOrder(ctx, orderID)
}

func pageFromRows(rows []models.Order, nextCursor string) OrdersPageDTO {
	orders := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		orders = append(orders, FromModel(&rows[i]))
	}
	return OrdersPageDTO{Orders: orders, NextCursor: nextCursor}
}
