package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	"github.com/Aniket-7751/POS-sub001/pkg/pagination"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	// UpdateStatusFrom performs a status-guarded update and reports how many
	// rows changed. Zero rows means another writer moved the order first.
	UpdateStatusFrom(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (int64, error)
	// SetInvoiceID links the invoice, refusing to overwrite an existing link.
	SetInvoiceID(ctx context.Context, orderID, invoiceID uuid.UUID) (int64, error)
	ListStoreOrders(ctx context.Context, storeID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListOrders(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
}
