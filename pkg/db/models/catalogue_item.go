package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogueItem represents an organization-owned product definition.
// The order subsystem treats it as read-only.
type CatalogueItem struct {
	SKU       string          `gorm:"column:sku;primaryKey" json:"sku"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	BasePrice decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null" json:"base_price"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
