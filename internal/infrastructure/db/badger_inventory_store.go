package db

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/inventory-tracker/internal/domain/aggregate"
	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
	"github.com/damon-houk/inventory-tracker/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

// Key layout. The two logical tables and their secondary indexes live in one
// badger keyspace under distinct prefixes; transaction keys embed the id as
// fixed-width hex so they iterate in id order.
const (
	txPrefix             = "tx:"
	productPrefix        = "product:"
	txTypeIdxPrefix      = "idx:tx:type:"
	txDateIdxPrefix      = "idx:tx:date:"
	productNameIdxPrefix = "idx:product:name:"
	txSeqKey             = "meta:tx-seq"
)

// BadgerInventoryStore implements the inventory repository over BadgerDB.
// One write at a time: the whole read-modify-write for a recorded transaction
// runs inside a single badger update so the transaction row, its index
// entries and the product aggregate commit or abort together.
type BadgerInventoryStore struct {
	db      *badger.DB
	writeMu sync.Mutex
}

// NewBadgerInventoryStore wraps an already-open BadgerDB handle
func NewBadgerInventoryStore(db *badger.DB) *BadgerInventoryStore {
	return &BadgerInventoryStore{db: db}
}

// OpenBadgerInventoryStore opens (creating if absent) the database at the
// given options and returns a ready store. Reopening over existing data is
// safe; the key-prefix tables need no schema setup.
func OpenBadgerInventoryStore(opts badger.Options) (*BadgerInventoryStore, error) {
	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}

	return &BadgerInventoryStore{db: badgerDB}, nil
}

// Close releases the underlying database. The store must not be used after.
func (s *BadgerInventoryStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func txKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%016x", txPrefix, id))
}

func productKey(productID string) []byte {
	return []byte(productPrefix + productID)
}

// RecordTransaction appends the transaction and upserts the product aggregate
// in one atomic write, returning the updated product.
func (s *BadgerInventoryStore) RecordTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotInitialized
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var updated entity.Product

	err := s.db.Update(func(txn *badger.Txn) error {
		id, err := nextTransactionID(txn)
		if err != nil {
			return err
		}

		tx := entity.Transaction{
			ID:          id,
			Type:        input.Type,
			ProductID:   input.ProductID,
			ProductName: input.ProductName,
			Quantity:    input.Quantity,
			Price:       input.Price,
			Date:        time.Now().UTC(),
		}

		txData, err := json.Marshal(&tx)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}

		if err := txn.Set(txKey(id), txData); err != nil {
			return err
		}

		// Secondary indexes on type and date; the transaction key is
		// recoverable from the fixed-width id suffix.
		typeIdx := fmt.Sprintf("%s%s:%016x", txTypeIdxPrefix, tx.Type, id)
		if err := txn.Set([]byte(typeIdx), nil); err != nil {
			return err
		}
		dateIdx := fmt.Sprintf("%s%s:%016x", txDateIdxPrefix, tx.Date.Format(time.RFC3339Nano), id)
		if err := txn.Set([]byte(dateIdx), nil); err != nil {
			return err
		}

		existing, err := readProduct(txn, input.ProductID)
		if err != nil {
			return err
		}

		updated = aggregate.ApplyTransaction(existing, input)

		productData, err := json.Marshal(&updated)
		if err != nil {
			return fmt.Errorf("failed to marshal product: %w", err)
		}

		if err := txn.Set(productKey(updated.ProductID), productData); err != nil {
			return err
		}

		nameIdx := productNameIdxPrefix + updated.Name + ":" + updated.ProductID
		return txn.Set([]byte(nameIdx), nil)
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageWrite, err)
	}

	return &updated, nil
}

// nextTransactionID bumps the persisted counter within the caller's update,
// so id assignment commits or aborts with the rest of the write set. Ids
// start at 1 and are monotonically increasing.
func nextTransactionID(txn *badger.Txn) (int64, error) {
	var next uint64 = 1

	item, err := txn.Get([]byte(txSeqKey))
	if err == nil {
		err = item.Value(func(val []byte) error {
			if len(val) == 8 {
				next = binary.BigEndian.Uint64(val) + 1
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else if err != badger.ErrKeyNotFound {
		return 0, err
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := txn.Set([]byte(txSeqKey), buf); err != nil {
		return 0, err
	}

	return int64(next), nil
}

// readProduct returns the stored aggregate for the id, or nil when the
// product has never been seen.
func readProduct(txn *badger.Txn, productID string) (*entity.Product, error) {
	item, err := txn.Get(productKey(productID))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product entity.Product
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &product)
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// ListProducts returns all product aggregates. Badger iterates keys in byte
// order, so the result is sorted by product id.
func (s *BadgerInventoryStore) ListProducts(ctx context.Context) ([]entity.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotInitialized
	}

	products := []entity.Product{}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(productPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var product entity.Product
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &product)
			})
			if err != nil {
				return err
			}
			products = append(products, product)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageRead, err)
	}

	return products, nil
}

// ListTransactions returns the full log in id order
func (s *BadgerInventoryStore) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotInitialized
	}

	transactions := []entity.Transaction{}

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(txPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tx entity.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}
			transactions = append(transactions, tx)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageRead, err)
	}

	return transactions, nil
}

// ListTransactionsByType resolves the type index and loads the matching log
// entries, in id order.
func (s *BadgerInventoryStore) ListTransactionsByType(ctx context.Context, txType entity.TransactionType) ([]entity.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotInitialized
	}

	transactions := []entity.Transaction{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%s:", txTypeIdxPrefix, txType))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			idHex := key[bytes.LastIndexByte(key, ':')+1:]

			item, err := txn.Get(append([]byte(txPrefix), idHex...))
			if err != nil {
				return err
			}

			var tx entity.Transaction
			err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}
			transactions = append(transactions, tx)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageRead, err)
	}

	return transactions, nil
}

// FindProduct retrieves one product aggregate by id
func (s *BadgerInventoryStore) FindProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotInitialized
	}

	var product *entity.Product

	err := s.db.View(func(txn *badger.Txn) error {
		found, err := readProduct(txn, productID)
		if err != nil {
			return err
		}
		product = found
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrStorageRead, err)
	}

	if product == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrProductNotFound, productID)
	}

	return product, nil
}
