package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Aniket-7751/POS-sub001/api/middleware"
	"github.com/Aniket-7751/POS-sub001/internal/orders"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/pagination"
)

type stubOrderService struct {
	created    *orders.CreateOrderInput
	transition *orders.TransitionInput
	createErr  error
	transErr   error
}

func (s *stubOrderService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &models.Order{ID: uuid.New(), StoreID: input.StoreID, Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) Transition(ctx context.Context, input orders.TransitionInput) (*models.Order, error) {
	if s.transErr != nil {
		return nil, s.transErr
	}
	s.transition = &input
	return &models.Order{ID: input.OrderID, Status: input.Status}, nil
}

func (s *stubOrderService) ListForStore(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func (s *stubOrderService) ListAll(ctx context.Context, params pagination.Params, filters orders.ListFilters) (*orders.OrderList, error) {
	return &orders.OrderList{}, nil
}

func authedRequest(method, target, body string, role enums.ActorRole, storeID *uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(role))
	if storeID != nil {
		ctx = middleware.WithStoreID(ctx, storeID.String())
	}
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload.Error.Code
}

func TestCreateOrderController(t *testing.T) {
	svc := &stubOrderService{}
	storeID := uuid.New()
	body := `{"items":[{"sku":"SKU-1","quantity":2}]}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body, enums.ActorRoleStore, &storeID)
	rec := httptest.NewRecorder()

	CreateOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.created == nil || svc.created.StoreID != storeID {
		t.Fatalf("expected create call for store %s", storeID)
	}
	if len(svc.created.Items) != 1 || svc.created.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", svc.created.Items)
	}
}

func TestCreateOrderControllerMapsEmptyOrder(t *testing.T) {
	svc := &stubOrderService{createErr: pkgerrors.New(pkgerrors.CodeEmptyOrder, "order must contain at least one line item")}
	storeID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/orders", `{"items":[]}`, enums.ActorRoleStore, &storeID)
	rec := httptest.NewRecorder()

	CreateOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != string(pkgerrors.CodeEmptyOrder) {
		t.Fatalf("expected EMPTY_ORDER wire code got %s", code)
	}
}

func TestCreateOrderControllerRequiresStoreContext(t *testing.T) {
	svc := &stubOrderService{}
	req := authedRequest(http.MethodPost, "/api/v1/orders", `{"items":[{"sku":"SKU-1","quantity":1}]}`, enums.ActorRoleAdmin, nil)
	rec := httptest.NewRecorder()

	CreateOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestTransitionOrderController(t *testing.T) {
	svc := &stubOrderService{}
	orderID := uuid.New()
	req := authedRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String(), `{"status":"approved"}`, enums.ActorRoleAdmin, nil)
	req = withURLParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()

	TransitionOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.transition == nil || svc.transition.OrderID != orderID || svc.transition.Status != enums.OrderStatusApproved {
		t.Fatalf("unexpected transition input %+v", svc.transition)
	}
}

func TestTransitionOrderControllerRejectsBadStatus(t *testing.T) {
	svc := &stubOrderService{}
	orderID := uuid.New()
	req := authedRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String(), `{"status":"shipped"}`, enums.ActorRoleAdmin, nil)
	req = withURLParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()

	TransitionOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if svc.transition != nil {
		t.Fatal("unexpected transition call")
	}
}

func TestTransitionOrderControllerMapsConflict(t *testing.T) {
	svc := &stubOrderService{transErr: pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently")}
	orderID := uuid.New()
	req := authedRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String(), `{"status":"approved"}`, enums.ActorRoleAdmin, nil)
	req = withURLParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()

	TransitionOrder(svc, nil)(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != string(pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT wire code got %s", code)
	}
}
