package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amara-cosmetics/amara-backend/pkg/db/models"
	"github.com/amara-cosmetics/amara-backend/pkg/enums"
)

// PlaceOrderRequest carries the checkout form contact fields.
type PlaceOrderRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail   string  `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string `json:"customer_phone,omitempty" validate:"omitempty,max=32"`
	DeliveryAddress string  `json:"delivery_address" validate:"required,min=1,max=1000"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest moves an order along the fulfillment pipeline.
type UpdateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// ItemDTO is one frozen order line.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDTO is the client view of an order header plus its lines.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   *string           `json:"customer_phone,omitempty"`
	DeliveryAddress string            `json:"delivery_address"`
	Status          enums.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Notes           *string           `json:"notes,omitempty"`
	Items           []ItemDTO         `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrdersPageDTO is a cursor-paginated order listing.
type OrdersPageDTO struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// FromModel maps an order row and its items to the client view.
func FromModel(order *models.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := order.Items[i]
		dto := ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
		if item.Product != nil {
			dto.ProductName = item.Product.Name
		}
		items = append(items, dto)
	}

	return OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		Notes:           order.Notes,
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
