package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/internal/pricing"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/outbox"
	"github.com/Aniket-7751/POS-sub001/pkg/pagination"
)

type stubOrdersRepo struct {
	order            *models.Order
	createdOrder     *models.Order
	statusRows       int64
	statusErr        error
	updatedTo        enums.OrderStatus
	invoiceRows      int64
	linkedInvoiceID  uuid.UUID
	createOrderErr   error
	listErr          error
	updateStatusFrom func(orderID uuid.UUID, from, to enums.OrderStatus) (int64, error)
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createOrderErr != nil {
		return nil, s.createOrderErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.createdOrder = order
	return order, nil
}

func (s *stubOrdersRepo) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) UpdateStatusFrom(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (int64, error) {
	if s.updateStatusFrom != nil {
		return s.updateStatusFrom(orderID, from, to)
	}
	if s.statusErr != nil {
		return 0, s.statusErr
	}
	s.updatedTo = to
	return s.statusRows, nil
}

func (s *stubOrdersRepo) SetInvoiceID(ctx context.Context, orderID, invoiceID uuid.UUID) (int64, error) {
	s.linkedInvoiceID = invoiceID
	return s.invoiceRows, nil
}

func (s *stubOrdersRepo) ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &OrderList{}, nil
}

func (s *stubOrdersRepo) ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	return &OrderList{}, nil
}

type stubOutboxPublisher struct {
	events []outbox.DomainEvent
	err    error
}

func (s *stubOutboxPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type stubPricing struct {
	prices map[string]pricing.EffectivePrice
	err    error
}

func (s *stubPricing) ResolveEffectivePrice(ctx context.Context, storeID uuid.UUID, sku string) (*pricing.EffectivePrice, error) {
	if s.err != nil {
		return nil, s.err
	}
	price, ok := s.prices[sku]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnknownSKU, "sku not found")
	}
	return &price, nil
}

func (s *stubPricing) SetOverride(ctx context.Context, storeID uuid.UUID, sku string, price decimal.Decimal) (*models.StorePriceOverride, error) {
	panic("not implemented")
}

func (s *stubPricing) ListOverrides(ctx context.Context, storeID uuid.UUID) ([]models.StorePriceOverride, error) {
	panic("not implemented")
}

type stubInvoiceCreator struct {
	invoice *models.Invoice
	err     error
	called  bool
}

func (s *stubInvoiceCreator) CreateForOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.called = true
	if s.invoice == nil {
		s.invoice = &models.Invoice{ID: uuid.New(), OrderID: order.ID, StoreID: order.StoreID}
	}
	return s.invoice, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func TestListPreservesCursorValidationErrors(t *testing.T) {
	repo := &stubOrdersRepo{listErr: pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")}
	svc := newTestService(t, repo, nil, nil, &stubOutboxPublisher{})

	_, err := svc.ListForStore(context.Background(), uuid.New(), pagination.Params{Cursor: "junk"})
	if err == nil {
		t.Fatal("expected error for malformed cursor")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func newTestService(t *testing.T, repo *stubOrdersRepo, prices *stubPricing, creator *stubInvoiceCreator, events *stubOutboxPublisher) Service {
	t.Helper()
	if prices == nil {
		prices = &stubPricing{}
	}
	if creator == nil {
		creator = &stubInvoiceCreator{}
	}
	svc, err := NewService(repo, stubTxRunner{}, prices, creator, events)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestCreateSnapshotsEffectivePrices(t *testing.T) {
	storeID := uuid.New()
	repo := &stubOrdersRepo{}
	events := &stubOutboxPublisher{}
	prices := &stubPricing{prices: map[string]pricing.EffectivePrice{
		"SKU-1": {SKU: "SKU-1", ItemName: "Widget", Price: decimal.RequireFromString("9.50"), Overridden: true},
		"SKU-2": {SKU: "SKU-2", ItemName: "Gadget", Price: decimal.RequireFromString("4.00")},
	}}
	svc := newTestService(t, repo, prices, nil, events)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		StoreID:     storeID,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleStore,
		Items: []OrderLineInput{
			{SKU: "SKU-1", Quantity: 2},
			{SKU: "SKU-2", ItemName: "Gadget Deluxe", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines got %d", len(order.Items))
	}
	if !order.Items[0].UnitPrice.Equal(decimal.RequireFromString("9.50")) {
		t.Fatalf("expected override price snapshot got %s", order.Items[0].UnitPrice)
	}
	if order.Items[0].ItemName != "Widget" {
		t.Fatalf("expected catalogue name fallback got %q", order.Items[0].ItemName)
	}
	if order.Items[1].ItemName != "Gadget Deluxe" {
		t.Fatalf("expected requested name kept got %q", order.Items[1].ItemName)
	}
	if len(events.events) != 1 || events.events[0].EventType != enums.EventOrderCreated {
		t.Fatalf("expected one order.created event got %+v", events.events)
	}
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, nil, nil, &stubOutboxPublisher{})

	_, err := svc.Create(context.Background(), CreateOrderInput{
		StoreID:     uuid.New(),
		ActorUserID: uuid.New(),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeEmptyOrder) {
		t.Fatalf("expected EMPTY_ORDER got %v", err)
	}
}

func TestCreateRejectsInvalidQuantity(t *testing.T) {
	events := &stubOutboxPublisher{}
	svc := newTestService(t, &stubOrdersRepo{}, nil, nil, events)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		StoreID:     uuid.New(),
		ActorUserID: uuid.New(),
		Items:       []OrderLineInput{{SKU: "SKU-1", Quantity: 0}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidQuantity) {
		t.Fatalf("expected INVALID_QUANTITY got %v", err)
	}
	if len(events.events) != 0 {
		t.Fatal("unexpected outbox event")
	}
}

func TestCreatePropagatesUnknownSKU(t *testing.T) {
	prices := &stubPricing{prices: map[string]pricing.EffectivePrice{}}
	svc := newTestService(t, &stubOrdersRepo{}, prices, nil, &stubOutboxPublisher{})

	_, err := svc.Create(context.Background(), CreateOrderInput{
		StoreID:     uuid.New(),
		ActorUserID: uuid.New(),
		Items:       []OrderLineInput{{SKU: "GHOST", Quantity: 1}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnknownSKU) {
		t.Fatalf("expected UNKNOWN_SKU got %v", err)
	}
}

func TestTransitionApprove(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order:      &models.Order{ID: orderID, StoreID: uuid.New(), Status: enums.OrderStatusPending},
		statusRows: 1,
	}
	events := &stubOutboxPublisher{}
	svc := newTestService(t, repo, nil, nil, events)

	order, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusApproved,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleAdmin,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if order.Status != enums.OrderStatusApproved {
		t.Fatalf("expected approved got %s", order.Status)
	}
	if repo.updatedTo != enums.OrderStatusApproved {
		t.Fatalf("expected guarded update to approved got %s", repo.updatedTo)
	}
	if len(events.events) != 1 || events.events[0].EventType != enums.EventOrderDecided {
		t.Fatalf("expected order.decided event got %+v", events.events)
	}
}

func TestTransitionRequiresAdmin(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, nil, nil, &stubOutboxPublisher{})

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     uuid.New(),
		Status:      enums.OrderStatusApproved,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleStore,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED got %v", err)
	}
}

func TestTransitionRejectsIllegalMoves(t *testing.T) {
	cases := []struct {
		name string
		from enums.OrderStatus
		to   enums.OrderStatus
	}{
		{"pending to fulfilled", enums.OrderStatusPending, enums.OrderStatusFulfilled},
		{"approved to rejected", enums.OrderStatusApproved, enums.OrderStatusRejected},
		{"rejected is terminal", enums.OrderStatusRejected, enums.OrderStatusApproved},
		{"fulfilled is terminal", enums.OrderStatusFulfilled, enums.OrderStatusApproved},
		{"no-op re-request", enums.OrderStatusApproved, enums.OrderStatusApproved},
		{"back to pending", enums.OrderStatusApproved, enums.OrderStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orderID := uuid.New()
			repo := &stubOrdersRepo{
				order:      &models.Order{ID: orderID, StoreID: uuid.New(), Status: tc.from},
				statusRows: 1,
			}
			events := &stubOutboxPublisher{}
			svc := newTestService(t, repo, nil, nil, events)

			_, err := svc.Transition(context.Background(), TransitionInput{
				OrderID:     orderID,
				Status:      tc.to,
				ActorUserID: uuid.New(),
				ActorRole:   enums.ActorRoleAdmin,
			})
			if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidTransition) {
				t.Fatalf("expected INVALID_TRANSITION got %v", err)
			}
			if len(events.events) != 0 {
				t.Fatal("unexpected outbox event")
			}
		})
	}
}

func TestTransitionConcurrentLoserGetsConflict(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order:      &models.Order{ID: orderID, StoreID: uuid.New(), Status: enums.OrderStatusPending},
		statusRows: 0,
	}
	svc := newTestService(t, repo, nil, nil, &stubOutboxPublisher{})

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusApproved,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleAdmin,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT got %v", err)
	}
}

func TestTransitionFulfillCreatesAndLinksInvoice(t *testing.T) {
	orderID := uuid.New()
	storeID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:      orderID,
			StoreID: storeID,
			Status:  enums.OrderStatusApproved,
			Items: []models.OrderLineItem{
				{SKU: "SKU-1", ItemName: "Widget", Quantity: 2, UnitPrice: decimal.RequireFromString("9.50")},
			},
		},
		statusRows:  1,
		invoiceRows: 1,
	}
	creator := &stubInvoiceCreator{}
	events := &stubOutboxPublisher{}
	svc := newTestService(t, repo, nil, creator, events)

	order, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusFulfilled,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleAdmin,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if !creator.called {
		t.Fatal("expected invoice creation")
	}
	if order.InvoiceID == nil || *order.InvoiceID != creator.invoice.ID {
		t.Fatalf("expected invoice link %s got %v", creator.invoice.ID, order.InvoiceID)
	}
	if repo.linkedInvoiceID != creator.invoice.ID {
		t.Fatalf("expected repo link call with %s got %s", creator.invoice.ID, repo.linkedInvoiceID)
	}
	if len(events.events) != 1 || events.events[0].EventType != enums.EventOrderFulfilled {
		t.Fatalf("expected order.fulfilled event got %+v", events.events)
	}
}

func TestTransitionFulfillRefusesSecondInvoice(t *testing.T) {
	orderID := uuid.New()
	existing := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{
			ID:        orderID,
			StoreID:   uuid.New(),
			Status:    enums.OrderStatusApproved,
			InvoiceID: &existing,
		},
		statusRows: 1,
	}
	creator := &stubInvoiceCreator{}
	svc := newTestService(t, repo, nil, creator, &stubOutboxPublisher{})

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     orderID,
		Status:      enums.OrderStatusFulfilled,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleAdmin,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeAlreadyInvoiced) {
		t.Fatalf("expected ALREADY_INVOICED got %v", err)
	}
	if creator.called {
		t.Fatal("unexpected invoice creation")
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, nil, nil, &stubOutboxPublisher{})

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID:     uuid.New(),
		Status:      enums.OrderStatusApproved,
		ActorUserID: uuid.New(),
		ActorRole:   enums.ActorRoleAdmin,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND got %v", err)
	}
}
