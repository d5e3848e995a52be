package catalogue

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/internal/repo"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
)

// Lookup is the read-only catalogue surface consumed by pricing and orders.
// Catalogue ownership (CRUD, media) lives with the organization platform.
type Lookup interface {
	FindBySKU(ctx context.Context, sku string) (*models.CatalogueItem, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a catalogue lookup bound to the provided DB.
func NewRepository(db *gorm.DB) Lookup {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) FindBySKU(ctx context.Context, sku string) (*models.CatalogueItem, error) {
	var item models.CatalogueItem
	if err := r.DB(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
