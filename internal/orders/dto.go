package orders

import (
	"github.com/google/uuid"

	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
)

// OrderLineInput is a single requested line on a new order.
type OrderLineInput struct {
	SKU      string
	ItemName string
	Quantity int
}

// CreateOrderInput captures the data required to place an order.
type CreateOrderInput struct {
	StoreID     uuid.UUID
	Items       []OrderLineInput
	ActorUserID uuid.UUID
	ActorRole   enums.ActorRole
}

// TransitionInput captures a requested status change on an order.
type TransitionInput struct {
	OrderID     uuid.UUID
	Status      enums.OrderStatus
	ActorUserID uuid.UUID
	ActorRole   enums.ActorRole
}

// ListFilters describe the inputs supported by the administrative order list.
type ListFilters struct {
	Status *enums.OrderStatus
}

// OrderList wraps a page of orders plus the next page cursor.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
