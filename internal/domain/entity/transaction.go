package entity

import (
	"errors"
	"fmt"
	"time"
)

// TransactionType distinguishes stock coming in from stock going out
type TransactionType string

const (
	// Purchase adds stock and accumulates cost
	Purchase TransactionType = "Purchase"
	// Sale removes stock and accumulates revenue
	Sale TransactionType = "Sale"
)

// ErrValidation is the class every input validation failure wraps
var ErrValidation = errors.New("validation failed")

// Transaction is one recorded Purchase or Sale event. Once persisted it is
// never mutated or deleted.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
	Date        time.Time       `json:"date"`
}

// TransactionInput is the caller-supplied part of a transaction; the store
// assigns ID and Date at commit time.
type TransactionInput struct {
	Type        TransactionType `json:"type"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
}

// Validate ensures the input meets all requirements
func (in *TransactionInput) Validate() error {
	if in.Type != Purchase && in.Type != Sale {
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, Purchase, Sale)
	}

	if in.ProductID == "" {
		return fmt.Errorf("%w: productId must not be empty", ErrValidation)
	}

	if in.ProductName == "" {
		return fmt.Errorf("%w: productName must not be empty", ErrValidation)
	}

	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be a positive value", ErrValidation)
	}

	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be a positive value", ErrValidation)
	}

	return nil
}

// Amount is the monetary value of the transaction (quantity * unit price)
func (t *Transaction) Amount() float64 {
	return float64(t.Quantity) * t.Price
}
