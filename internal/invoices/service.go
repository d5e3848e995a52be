package invoices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
)

// Creator builds an invoice for a fulfilled order inside the transition
// transaction. Orders call this; nothing else creates invoices.
type Creator interface {
	CreateForOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Invoice, error)
}

// Service exposes invoice retrieval at the order subsystem's boundary.
type Service interface {
	Creator
	Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error)
}

type service struct {
	repo Repository
}

// NewService builds an invoice service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoices repository required")
	}
	return &service{repo: repo}, nil
}

// CreateForOrder snapshots the order's lines into a new invoice.
// AlreadyInvoiced is checked defensively; the order state machine's
// terminal-state rule should make it unreachable.
func (s *service) CreateForOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Invoice, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if order.InvoiceID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyInvoiced, "order already has an invoice")
	}
	if len(order.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyOrder, "order has no line items to invoice")
	}

	total := decimal.Zero
	lines := make([]models.InvoiceLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, models.InvoiceLineItem{
			SKU:       item.SKU,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		})
	}

	invoice := &models.Invoice{
		OrderID:  order.ID,
		StoreID:  order.StoreID,
		Total:    total,
		Items:    lines,
		IssuedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateTx(tx, invoice); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}
	return invoice, nil
}

func (s *service) Get(ctx context.Context, invoiceID uuid.UUID) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	return invoice, nil
}
