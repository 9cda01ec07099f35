package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewline/internal/domain"
	"brewline/internal/errors"
	"brewline/internal/testutil"
)

// Unit Tests

func TestNewMySQLOrderRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

// Integration Tests

func insertTestOrder(t *testing.T, repo *MySQLOrderRepository, db *sql.DB, order domain.Order) uint {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, order)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	return id
}

func testOrder(name string) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)
	method := domain.PaymentMethodCash
	return domain.Order{
		CustomerName:  name,
		CustomerPhone: "555-0101",
		CustomerEmail: "Not provided",
		TotalAmount:   decimal.RequireFromString("135.50"),
		OrderStatus:   domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: &method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestOrderRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	id := insertTestOrder(t, repo, db, testOrder("Ana"))

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, order.ID)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, "555-0101", order.CustomerPhone)
	assert.Equal(t, domain.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("135.50")),
		"total = %s", order.TotalAmount)
	require.NotNil(t, order.PaymentMethod)
	assert.Equal(t, domain.PaymentMethodCash, *order.PaymentMethod)
	assert.Nil(t, order.CancelledAt)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	order, err := repo.FindByID(context.Background(), 9999)
	require.Error(t, err)
	assert.Nil(t, order)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	id := insertTestOrder(t, repo, db, testOrder("Ana"))

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(context.Background(), tx, id, domain.OrderStatusConfirmed))
	require.NoError(t, tx.Commit())

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.OrderStatus)
}

func TestOrderRepository_List_FilterByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	pending := testOrder("Ana")
	insertTestOrder(t, repo, db, pending)

	delivered := testOrder("Bruno")
	delivered.OrderStatus = domain.OrderStatusDelivered
	insertTestOrder(t, repo, db, delivered)

	orders, total, err := repo.List(context.Background(), ListFilter{
		Status: domain.OrderStatusDelivered,
		Limit:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "Bruno", orders[0].CustomerName)
}

func TestOrderRepository_UpdateCancellation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	id := insertTestOrder(t, repo, db, testOrder("Ana"))

	now := time.Now().UTC().Truncate(time.Second)
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.UpdateCancellation(context.Background(), tx, id, "changed my mind", "customer", now))
	require.NoError(t, tx.Commit())

	order, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.OrderStatus)
	require.NotNil(t, order.CancellationReason)
	assert.Equal(t, "changed my mind", *order.CancellationReason)
	require.NotNil(t, order.CancelledBy)
	assert.Equal(t, "customer", *order.CancelledBy)
	assert.NotNil(t, order.CancelledAt)
}
