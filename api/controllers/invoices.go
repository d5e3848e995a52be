package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aniket-7751/POS-sub001/api/responses"
	"github.com/Aniket-7751/POS-sub001/api/validators"
	"github.com/Aniket-7751/POS-sub001/internal/invoices"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/logger"
)

// GetInvoice returns an invoice with its line snapshot. Store actors may
// only read invoices issued to their own store.
func GetInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := validators.ParsePathUUID(chi.URLParam(r, "invoiceId"), "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Get(r.Context(), invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if who.Role != enums.ActorRoleAdmin {
			if who.StoreID == nil || *who.StoreID != invoice.StoreID {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found"))
				return
			}
		}

		responses.WriteSuccess(w, invoice)
	}
}
