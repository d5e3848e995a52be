package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Aniket-7751/POS-sub001/pkg/db/models"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	pkgerrors "github.com/Aniket-7751/POS-sub001/pkg/errors"
	"github.com/Aniket-7751/POS-sub001/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single pooled connection keeps every query on the same in-memory
	// database while isolating tests from each other.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  invoice_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  item_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLineItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, storeID uuid.UUID, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		StoreID:   storeID,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)

	line := &models.OrderLineItem{
		ID:        uuid.New(),
		OrderID:   order.ID,
		SKU:       "SKU-1",
		ItemName:  "Widget",
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("9.50"),
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(line).Error)
	return order
}

func TestRepositoryUpdateStatusFrom_guardsOnCurrentStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	rows, err := repo.UpdateStatusFrom(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// The guard no longer matches, so a second writer sees zero rows.
	rows, err = repo.UpdateStatusFrom(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusRejected)
	require.NoError(t, err)
	assert.Zero(t, rows)

	found, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusApproved, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "SKU-1", found.Items[0].SKU)
}

func TestRepositorySetInvoiceID_refusesSecondLink(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), enums.OrderStatusFulfilled, time.Now().UTC())

	first := uuid.New()
	rows, err := repo.SetInvoiceID(ctx, order.ID, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.SetInvoiceID(ctx, order.ID, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, rows)

	found, err := repo.FindOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.InvoiceID)
	assert.Equal(t, first, *found.InvoiceID)
}

func TestRepositoryListStoreOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	otherStore := uuid.New()
	now := time.Now().UTC()
	older := seedOrder(t, db, storeID, enums.OrderStatusPending, now.Add(-time.Hour))
	newer := seedOrder(t, db, storeID, enums.OrderStatusApproved, now)
	seedOrder(t, db, otherStore, enums.OrderStatusPending, now)

	list, err := repo.ListStoreOrders(ctx, storeID, pagination.Params{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, newer.ID, list.Orders[0].ID)
	assert.NotEmpty(t, list.NextCursor)

	second, err := repo.ListStoreOrders(ctx, storeID, pagination.Params{Limit: 1, Cursor: list.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Equal(t, older.ID, second.Orders[0].ID)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListStoreOrders_rejectsMalformedCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.ListStoreOrders(ctx, uuid.New(), pagination.Params{Limit: 1, Cursor: "not-a-cursor"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRepositoryListOrders_statusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seedOrder(t, db, uuid.New(), enums.OrderStatusPending, now.Add(-time.Minute))
	approved := seedOrder(t, db, uuid.New(), enums.OrderStatusApproved, now)

	status := enums.OrderStatusApproved
	list, err := repo.ListOrders(ctx, pagination.Params{Limit: 10}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, approved.ID, list.Orders[0].ID)

	all, err := repo.ListOrders(ctx, pagination.Params{Limit: 10}, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all.Orders, 2)
}
