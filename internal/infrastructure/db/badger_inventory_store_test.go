package db

import (
	"context"
	"testing"
	"time"

	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
	"github.com/damon-houk/inventory-tracker/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BadgerInventoryStore {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	store, err := OpenBadgerInventoryStore(opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func purchase(productID, name string, qty int, price float64) entity.TransactionInput {
	return entity.TransactionInput{Type: entity.Purchase, ProductID: productID, ProductName: name, Quantity: qty, Price: price}
}

func sale(productID, name string, qty int, price float64) entity.TransactionInput {
	return entity.TransactionInput{Type: entity.Sale, ProductID: productID, ProductName: name, Quantity: qty, Price: price}
}

func TestRecordTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("First purchase creates the product", func(t *testing.T) {
		product, err := store.RecordTransaction(ctx, purchase("P1", "Widget", 10, 2.00))
		require.NoError(t, err)

		assert.Equal(t, "P1", product.ProductID)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, 10, product.TotalPurchased)
		assert.Equal(t, 20.00, product.TotalCost)
		assert.Equal(t, 2.00, product.AveragePrice)
		assert.Equal(t, 10, product.CurrentStock())
	})

	t.Run("Sale updates the same product", func(t *testing.T) {
		product, err := store.RecordTransaction(ctx, sale("P1", "Widget", 4, 5.00))
		require.NoError(t, err)

		assert.Equal(t, 4, product.TotalSold)
		assert.Equal(t, 20.00, product.TotalRevenue)
		assert.Equal(t, 2.00, product.AveragePrice)
		assert.Equal(t, 6, product.CurrentStock())
	})

	t.Run("Ids are assigned monotonically and dates at commit", func(t *testing.T) {
		before := time.Now().UTC()

		transactions, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, transactions, 2)

		assert.Equal(t, int64(1), transactions[0].ID)
		assert.Equal(t, int64(2), transactions[1].ID)
		assert.False(t, transactions[0].Date.IsZero())
		assert.False(t, transactions[1].Date.After(before.Add(time.Minute)))
	})

	t.Run("Read your writes", func(t *testing.T) {
		products, err := store.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 6, products[0].CurrentStock())
	})
}

func TestProductNameSetOnFirstCreationOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.RecordTransaction(ctx, purchase("P1", "Widget", 10, 2.00))
	require.NoError(t, err)

	product, err := store.RecordTransaction(ctx, purchase("P1", "Widget Deluxe", 5, 4.00))
	require.NoError(t, err)

	assert.Equal(t, "Widget", product.Name)

	// The transaction log still carries the divergent name
	transactions, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Widget Deluxe", transactions[1].ProductName)
}

func TestListProductsSortedByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.RecordTransaction(ctx, purchase("P3", "Cog", 1, 1.00))
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, purchase("P1", "Widget", 1, 1.00))
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, purchase("P2", "Gadget", 1, 1.00))
	require.NoError(t, err)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "P2", products[1].ProductID)
	assert.Equal(t, "P3", products[2].ProductID)
}

func TestListTransactionsByType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.RecordTransaction(ctx, purchase("P1", "Widget", 10, 2.00))
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, sale("P1", "Widget", 4, 5.00))
	require.NoError(t, err)
	_, err = store.RecordTransaction(ctx, purchase("P2", "Gadget", 3, 1.50))
	require.NoError(t, err)

	purchases, err := store.ListTransactionsByType(ctx, entity.Purchase)
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, int64(1), purchases[0].ID)
	assert.Equal(t, int64(3), purchases[1].ID)

	sales, err := store.ListTransactionsByType(ctx, entity.Sale)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(2), sales[0].ID)
}

func TestFindProduct(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.RecordTransaction(ctx, purchase("P1", "Widget", 10, 2.00))
	require.NoError(t, err)

	t.Run("Existing product", func(t *testing.T) {
		product, err := store.FindProduct(ctx, "P1")
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
	})

	t.Run("Unknown product", func(t *testing.T) {
		product, err := store.FindProduct(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		assert.Nil(t, product)
	})
}

func TestSaleForUnknownProductGoesNegative(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	product, err := store.RecordTransaction(ctx, sale("P9", "Gadget", 3, 7.50))
	require.NoError(t, err)

	assert.Equal(t, 0, product.TotalPurchased)
	assert.Equal(t, 0.00, product.AveragePrice)
	assert.Equal(t, -3, product.CurrentStock())
}

func TestNotInitializedFailsFast(t *testing.T) {
	var store *BadgerInventoryStore
	ctx := context.Background()

	_, err := store.RecordTransaction(ctx, purchase("P1", "Widget", 1, 1.00))
	assert.ErrorIs(t, err, repository.ErrNotInitialized)

	_, err = store.ListProducts(ctx)
	assert.ErrorIs(t, err, repository.ErrNotInitialized)

	_, err = store.ListTransactions(ctx)
	assert.ErrorIs(t, err, repository.ErrNotInitialized)

	_, err = store.FindProduct(ctx, "P1")
	assert.ErrorIs(t, err, repository.ErrNotInitialized)

	empty := &BadgerInventoryStore{}
	_, err = empty.RecordTransaction(ctx, purchase("P1", "Widget", 1, 1.00))
	assert.ErrorIs(t, err, repository.ErrNotInitialized)
}

// A failed write must leave no trace: neither the transaction row nor the
// product update may be visible afterwards.
func TestWriteAtomicity(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	store, err := OpenBadgerInventoryStore(opts)
	require.NoError(t, err)

	_, err = store.RecordTransaction(ctx, purchase("P1", "Widget", 10, 2.00))
	require.NoError(t, err)

	// Force the engine to reject the next write by closing it underneath
	require.NoError(t, store.db.Close())

	_, err = store.RecordTransaction(ctx, sale("P1", "Widget", 4, 5.00))
	assert.ErrorIs(t, err, repository.ErrStorageWrite)

	// Reopen the same data directory: the failed sale must not have been
	// committed, partially or otherwise.
	reopened, err := OpenBadgerInventoryStore(opts)
	require.NoError(t, err)
	defer reopened.Close()

	transactions, err := reopened.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, entity.Purchase, transactions[0].Type)

	products, err := reopened.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 0, products[0].TotalSold)
	assert.Equal(t, 0.00, products[0].TotalRevenue)

	// The id counter also rolled back with the failed write
	product, err := reopened.RecordTransaction(ctx, sale("P1", "Widget", 4, 5.00))
	require.NoError(t, err)
	assert.Equal(t, 4, product.TotalSold)

	transactions, err = reopened.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, int64(2), transactions[1].ID)
}
