package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/internal/catalogue"
	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
)

// EffectivePrice is the resolved price for a (store, sku) pair together with
// its provenance.
type EffectivePrice struct {
	SKU        string          `json:"sku"`
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	Overridden bool            `json:"overridden"`
}

// Service resolves effective prices and maintains store overrides.
type Service interface {
	ResolveEffectivePrice(ctx context.Context, storeID uuid.UUID, sku string) (*EffectivePrice, error)
	SetOverride(ctx context.Context, storeID uuid.UUID, sku string, price decimal.Decimal) (*models.StorePriceOverride, error)
	ListOverrides(ctx context.Context, storeID uuid.UUID) ([]models.StorePriceOverride, error)
}

type service struct {
	catalogue catalogue.Lookup
	repo      Repository
}

// NewService builds a pricing service with the required dependencies.
func NewService(cat catalogue.Lookup, repo Repository) (Service, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalogue lookup required")
	}
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	return &service{catalogue: cat, repo: repo}, nil
}

// ResolveEffectivePrice returns the store's override price when one exists
// and the catalogue item is active, otherwise the catalogue base price.
// Inactive items fail resolution regardless of override presence.
func (s *service) ResolveEffectivePrice(ctx context.Context, storeID uuid.UUID, sku string) (*EffectivePrice, error) {
	item, err := s.lookupActiveItem(ctx, sku)
	if err != nil {
		return nil, err
	}

	override, err := s.repo.FindOverride(ctx, storeID, sku)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price override")
		}
		return &EffectivePrice{
			SKU:      item.SKU,
			ItemName: item.Name,
			Price:    item.BasePrice,
		}, nil
	}

	return &EffectivePrice{
		SKU:        item.SKU,
		ItemName:   item.Name,
		Price:      override.Price,
		Overridden: true,
	}, nil
}

// SetOverride validates and atomically replaces the override for the pair.
// Last committed write wins; there is no override history.
func (s *service) SetOverride(ctx context.Context, storeID uuid.UUID, sku string, price decimal.Decimal) (*models.StorePriceOverride, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id required")
	}
	if !price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidPrice, "price must be greater than zero")
	}

	if _, err := s.lookupItem(ctx, sku); err != nil {
		return nil, err
	}

	override := &models.StorePriceOverride{
		StoreID: storeID,
		SKU:     sku,
		Price:   price,
	}
	if err := s.repo.UpsertOverride(ctx, override); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert price override")
	}
	return override, nil
}

func (s *service) ListOverrides(ctx context.Context, storeID uuid.UUID) ([]models.StorePriceOverride, error) {
	overrides, err := s.repo.ListOverrides(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price overrides")
	}
	return overrides, nil
}

func (s *service) lookupItem(ctx context.Context, sku string) (*models.CatalogueItem, error) {
	item, err := s.catalogue.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnknownSKU, fmt.Sprintf("sku %q not found in catalogue", sku))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalogue item")
	}
	return item, nil
}

func (s *service) lookupActiveItem(ctx context.Context, sku string) (*models.CatalogueItem, error) {
	item, err := s.lookupItem(ctx, sku)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeInactiveItem, fmt.Sprintf("catalogue item %q is inactive", sku))
	}
	return item, nil
}
