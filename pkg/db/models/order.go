package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Aniket-7751/POS-sub001/pkg/enums"
)

// Order represents a store's purchase order against the catalogue.
// InvoiceID is set exactly once, when the order reaches fulfilled.
type Order struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID   uuid.UUID         `gorm:"column:store_id;type:uuid;not null" json:"store_id"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:'pending'" json:"status"`
	InvoiceID *uuid.UUID        `gorm:"column:invoice_id;type:uuid" json:"invoice_id,omitempty"`
	Items     []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
