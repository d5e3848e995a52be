package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/internal/invoices"
	"github.com/Aniket-7751/POS-sub001/internal/pricing"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/outbox"
	"github.com/Aniket-7751/POS-sub001/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Transition(ctx context.Context, input TransitionInput) (*models.Order, error)
	ListForStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	pricing  pricing.Service
	invoices invoices.Creator
	outbox   outboxPublisher
}

// OrderCreatedEvent is emitted when a store places a new order.
type OrderCreatedEvent struct {
	OrderID   uuid.UUID         `json:"order_id"`
	StoreID   uuid.UUID         `json:"store_id"`
	Status    enums.OrderStatus `json:"status"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
}

// OrderDecisionEvent is emitted when an administrator decides an order.
type OrderDecisionEvent struct {
	OrderID uuid.UUID         `json:"order_id"`
	StoreID uuid.UUID         `json:"store_id"`
	From    enums.OrderStatus `json:"from"`
	Status  enums.OrderStatus `json:"status"`
}

// OrderFulfilledEvent surfaces the invoice linkage when fulfillment completes.
type OrderFulfilledEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	StoreID   uuid.UUID `json:"store_id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, pricingSvc pricing.Service, invoiceCreator invoices.Creator, outboxSvc outboxPublisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if pricingSvc == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if invoiceCreator == nil {
		return nil, fmt.Errorf("invoice creator required")
	}
	if outboxSvc == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		pricing:  pricingSvc,
		invoices: invoiceCreator,
		outbox:   outboxSvc,
	}, nil
}

// transitionTable lists every legal move. Anything absent, including
// re-requesting the current status, is an invalid transition.
var transitionTable = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:  {enums.OrderStatusApproved, enums.OrderStatusRejected},
	enums.OrderStatusApproved: {enums.OrderStatusFulfilled},
}

func canTransition(from, to enums.OrderStatus) bool {
	for _, candidate := range transitionTable[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Create validates the requested lines, snapshots each line's effective
// price at this instant, and persists the order as pending. Later override
// changes never alter the captured unit prices.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyOrder, "order must contain at least one line item")
	}

	lines := make([]models.OrderLineItem, 0, len(input.Items))
	total := decimal.Zero
	for _, item := range input.Items {
		sku := strings.TrimSpace(item.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item sku required")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity,
				fmt.Sprintf("quantity for sku %q must be at least 1", sku))
		}

		resolved, err := s.pricing.ResolveEffectivePrice(ctx, input.StoreID, sku)
		if err != nil {
			return nil, err
		}

		name := strings.TrimSpace(item.ItemName)
		if name == "" {
			name = resolved.ItemName
		}

		total = total.Add(resolved.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, models.OrderLineItem{
			SKU:       sku,
			ItemName:  name,
			Quantity:  item.Quantity,
			UnitPrice: resolved.Price,
		})
	}

	order := &models.Order{
		StoreID: input.StoreID,
		Status:  enums.OrderStatusPending,
		Items:   lines,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		created, err := s.repo.WithTx(tx).CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		order = created

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, &input.StoreID, input.ActorRole),
			Data: OrderCreatedEvent{
				OrderID:   order.ID,
				StoreID:   order.StoreID,
				Status:    order.Status,
				ItemCount: len(order.Items),
				Total:     total,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition applies a role-gated status change. The UPDATE is guarded on the
// current status, so of two concurrent transitions exactly one wins; the
// loser surfaces Conflict and is never retried here.
func (s *service) Transition(ctx context.Context, input TransitionInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActorRole != enums.ActorRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "administrative role required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", input.Status))
	}

	var result *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		from := order.Status
		if !canTransition(from, input.Status) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot transition order from %s to %s", from, input.Status))
		}
		if input.Status == enums.OrderStatusFulfilled && order.InvoiceID != nil {
			return pkgerrors.New(pkgerrors.CodeAlreadyInvoiced, "order already has an invoice")
		}

		rows, err := repo.UpdateStatusFrom(ctx, order.ID, from, input.Status)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently")
		}

		order.Status = input.Status
		order.UpdatedAt = time.Now().UTC()

		if input.Status == enums.OrderStatusFulfilled {
			invoice, err := s.invoices.CreateForOrder(ctx, tx, order)
			if err != nil {
				return err
			}
			linked, err := repo.SetInvoiceID(ctx, order.ID, invoice.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link invoice")
			}
			if linked == 0 {
				return pkgerrors.New(pkgerrors.CodeAlreadyInvoiced, "order already has an invoice")
			}
			order.InvoiceID = &invoice.ID

			result = order
			return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderFulfilled,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Version:       1,
				Actor:         buildActor(input.ActorUserID, nil, input.ActorRole),
				Data: OrderFulfilledEvent{
					OrderID:   order.ID,
					StoreID:   order.StoreID,
					InvoiceID: invoice.ID,
				},
			})
		}

		result = order
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderDecided,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(input.ActorUserID, nil, input.ActorRole),
			Data: OrderDecisionEvent{
				OrderID: order.ID,
				StoreID: order.StoreID,
				From:    from,
				Status:  order.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ListForStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	list, err := s.repo.ListStoreOrders(ctx, storeID, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return list, nil
}

func (s *service) ListAll(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func buildActor(userID uuid.UUID, storeID *uuid.UUID, role enums.ActorRole) *outbox.ActorRef {
	return &outbox.ActorRef{
		UserID:  userID,
		StoreID: storeID,
		Role:    string(role),
	}
}
