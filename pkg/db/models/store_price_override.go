package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorePriceOverride holds a store-specific price for a SKU. One row per
// (store, sku) pair; writes replace the prior value, there is no history.
type StorePriceOverride struct {
	StoreID   uuid.UUID       `gorm:"column:store_id;type:uuid;primaryKey" json:"store_id"`
	SKU       string          `gorm:"column:sku;primaryKey" json:"sku"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
