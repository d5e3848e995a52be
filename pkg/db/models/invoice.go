package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is the billing document produced when an order is fulfilled.
// Exactly one invoice may exist per order.
type Invoice struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_invoices_order_id" json:"order_id"`
	StoreID   uuid.UUID         `gorm:"column:store_id;type:uuid;not null" json:"store_id"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items     []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	IssuedAt  time.Time         `gorm:"column:issued_at;not null" json:"issued_at"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// InvoiceLineItem snapshots an order line at invoicing time.
type InvoiceLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null" json:"invoice_id"`
	SKU       string          `gorm:"column:sku;not null" json:"sku"`
	ItemName  string          `gorm:"column:item_name;not null" json:"item_name"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null" json:"line_total"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
