package service

import (
	"context"
	"fmt"

	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
	"github.com/damon-houk/inventory-tracker/internal/domain/repository"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/middleware"
)

// InventoryService handles the write path and the inventory/log reads
type InventoryService struct {
	repo   repository.InventoryRepository
	cache  *cache.DashboardCache
	logger logger.Logger
}

// NewInventoryService creates a new inventory service. The cache may be nil
// when no dashboard caching is wanted.
func NewInventoryService(repo repository.InventoryRepository, dashCache *cache.DashboardCache, log logger.Logger) *InventoryService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &InventoryService{
		repo:   repo,
		cache:  dashCache,
		logger: log,
	}
}

// RecordTransaction validates the input and persists the transaction together
// with the updated product aggregate. On validation failure nothing is
// written and the caller's input stays intact for correction.
func (s *InventoryService) RecordTransaction(ctx context.Context, txType entity.TransactionType, productID, productName string, quantity int, price float64) (*entity.Product, error) {
	requestID := middleware.GetRequestID(ctx)

	input := entity.TransactionInput{
		Type:        txType,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
	}

	if err := input.Validate(); err != nil {
		s.logger.Warn("Transaction input rejected", map[string]interface{}{
			"request_id": requestID,
			"product_id": productID,
			"error":      err.Error(),
		})
		return nil, err
	}

	product, err := s.repo.RecordTransaction(ctx, input)
	if err != nil {
		s.logger.Error("Failed to record transaction", map[string]interface{}{
			"request_id": requestID,
			"type":       txType,
			"product_id": productID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	s.logger.Info("Transaction recorded", map[string]interface{}{
		"request_id":    requestID,
		"type":          txType,
		"product_id":    productID,
		"quantity":      quantity,
		"price":         price,
		"current_stock": product.CurrentStock(),
	})

	return product, nil
}

// ListProducts returns all product aggregates
func (s *InventoryService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListTransactions returns the transaction log, optionally filtered by type.
// An empty txType means the full log.
func (s *InventoryService) ListTransactions(ctx context.Context, txType entity.TransactionType) ([]entity.Transaction, error) {
	var (
		transactions []entity.Transaction
		err          error
	)

	if txType == "" {
		transactions, err = s.repo.ListTransactions(ctx)
	} else {
		transactions, err = s.repo.ListTransactionsByType(ctx, txType)
	}

	if err != nil {
		s.logger.Error("Failed to list transactions", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"type":       txType,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}

// GetProduct retrieves one product aggregate by id
func (s *InventoryService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	return s.repo.FindProduct(ctx, productID)
}
