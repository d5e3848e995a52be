package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Aniket-7751/POS-sub001/api/middleware"
	"github.com/Aniket-7751/POS-sub001/api/responses"
	"github.com/Aniket-7751/POS-sub001/api/validators"
	"github.com/Aniket-7751/POS-sub001/internal/orders"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/logger"
)

// Empty item lists and bad quantities are the order service's rules so the
// response carries the dedicated wire codes instead of a generic one.
type createOrderRequest struct {
	Items []createOrderLine `json:"items" validate:"dive"`
}

type createOrderLine struct {
	SKU      string `json:"sku" validate:"required"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type transitionOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected fulfilled"`
}

type actor struct {
	UserID  uuid.UUID
	Role    enums.ActorRole
	StoreID *uuid.UUID
}

func actorFromContext(r *http.Request) (actor, error) {
	rawUser := middleware.UserIDFromContext(r.Context())
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	role, err := enums.ParseActorRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor role missing")
	}
	out := actor{UserID: userID, Role: role}
	if raw := middleware.StoreIDFromContext(r.Context()); raw != "" {
		storeID, err := uuid.Parse(raw)
		if err != nil {
			return actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "store identity invalid")
		}
		out.StoreID = &storeID
	}
	return out, nil
}

// CreateOrder places a new pending order for the authenticated store.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if who.StoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context required"))
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]orders.OrderLineInput, 0, len(req.Items))
		for _, item := range req.Items {
			lines = append(lines, orders.OrderLineInput{
				SKU:      item.SKU,
				ItemName: item.ItemName,
				Quantity: item.Quantity,
			})
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			StoreID:     *who.StoreID,
			Items:       lines,
			ActorUserID: who.UserID,
			ActorRole:   who.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListMyOrders returns the authenticated store's orders, newest first.
func ListMyOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if who.StoreID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "store context required"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForStore(r.Context(), *who.StoreID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminListOrders returns orders across all stores with an optional status filter.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := validators.ParseQueryStatus(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListAll(r.Context(), params, orders.ListFilters{Status: status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TransitionOrder applies an administrative status change to an order.
func TransitionOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req transitionOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
			return
		}

		order, err := svc.Transition(r.Context(), orders.TransitionInput{
			OrderID:     orderID,
			Status:      status,
			ActorUserID: who.UserID,
			ActorRole:   who.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
