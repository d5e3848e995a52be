package pricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aniket-7751/POS-sub001/internal/repo"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
)

// Repository defines persistence operations for store price overrides.
type Repository interface {
	FindOverride(ctx context.Context, storeID uuid.UUID, sku string) (*models.StorePriceOverride, error)
	ListOverrides(ctx context.Context, storeID uuid.UUID) ([]models.StorePriceOverride, error)
	UpsertOverride(ctx context.Context, override *models.StorePriceOverride) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) FindOverride(ctx context.Context, storeID uuid.UUID, sku string) (*models.StorePriceOverride, error) {
	var override models.StorePriceOverride
	err := r.DB(ctx).
		Where("store_id = ? AND sku = ?", storeID, sku).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *repository) ListOverrides(ctx context.Context, storeID uuid.UUID) ([]models.StorePriceOverride, error) {
	var overrides []models.StorePriceOverride
	err := r.DB(ctx).
		Where("store_id = ?", storeID).
		Order("sku ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

// UpsertOverride replaces any existing row for the (store, sku) pair in a
// single statement so concurrent writers cannot interleave partial writes.
func (r *repository) UpsertOverride(ctx context.Context, override *models.StorePriceOverride) error {
	if override == nil {
		return errors.New("override required")
	}
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "sku"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(override).Error
}
