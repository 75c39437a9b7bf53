package repository

import (
	"context"
	"errors"

	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
)

// Storage error classes. Repository implementations wrap the underlying
// engine failure with one of these so callers can branch with errors.Is.
var (
	// ErrStorageUnavailable means the persistent engine could not be opened;
	// fatal to all further operations until reinitialized.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrNotInitialized means an operation was invoked before the store was
	// opened successfully.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrStorageWrite means the multi-table write failed; neither the
	// transaction row nor the product update was committed.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageRead means a list or scan failed.
	ErrStorageRead = errors.New("storage read failed")

	// ErrProductNotFound means no product row exists for the given id.
	ErrProductNotFound = errors.New("product not found")
)

// InventoryRepository defines durable storage for the transaction log and the
// product aggregates.
type InventoryRepository interface {
	// RecordTransaction appends the transaction with a store-assigned id and
	// timestamp, applies it to the existing product aggregate (synthesizing a
	// zeroed one on first reference), and persists both as a single atomic
	// write. It returns the updated product. Writes are serialized: a call in
	// flight commits or aborts before the next begins.
	RecordTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Product, error)

	// ListProducts returns all product aggregates sorted by product id
	ListProducts(ctx context.Context) ([]entity.Product, error)

	// ListTransactions returns the full log in id order
	ListTransactions(ctx context.Context) ([]entity.Transaction, error)

	// ListTransactionsByType returns the log entries of one type, in id order
	ListTransactionsByType(ctx context.Context, txType entity.TransactionType) ([]entity.Transaction, error)

	// FindProduct retrieves one product aggregate by id
	FindProduct(ctx context.Context, productID string) (*entity.Product, error)
}
