package invoices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/internal/repo"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	CreateTx(tx *gorm.DB, invoice *models.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an invoices repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// CreateTx inserts the invoice and its line snapshot inside the caller's
// transaction, so invoice creation commits with the order transition.
func (r *repository) CreateTx(tx *gorm.DB, invoice *models.Invoice) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Create(invoice).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.DB(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
