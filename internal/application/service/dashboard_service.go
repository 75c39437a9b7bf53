package service

import (
	"context"
	"fmt"

	"github.com/damon-houk/inventory-tracker/internal/domain/aggregate"
	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
	"github.com/damon-houk/inventory-tracker/internal/domain/repository"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/cache"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/inventory-tracker/internal/infrastructure/middleware"
)

// DashboardService computes aggregate totals over the full transaction log
// and product set.
type DashboardService struct {
	repo   repository.InventoryRepository
	cache  *cache.DashboardCache
	logger logger.Logger
}

// NewDashboardService creates a new dashboard service. The cache may be nil.
func NewDashboardService(repo repository.InventoryRepository, dashCache *cache.DashboardCache, log logger.Logger) *DashboardService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &DashboardService{
		repo:   repo,
		cache:  dashCache,
		logger: log,
	}
}

// ComputeDashboard returns revenue, cost, profit and inventory valuation.
// Results are cached until the next recorded transaction invalidates them.
func (s *DashboardService) ComputeDashboard(ctx context.Context) (*entity.DashboardTotals, error) {
	requestID := middleware.GetRequestID(ctx)

	var generation uint64
	if s.cache != nil {
		cached, gen := s.cache.Get()
		if cached != nil {
			s.logger.Debug("Dashboard served from cache", map[string]interface{}{
				"request_id": requestID,
			})
			return cached, nil
		}
		generation = gen
	}

	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		s.logger.Error("Failed to scan transactions for dashboard", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.logger.Error("Failed to scan products for dashboard", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	totals := aggregate.ComputeDashboard(transactions, products)

	if s.cache != nil {
		s.cache.Put(generation, totals)
	}

	s.logger.Info("Dashboard computed", map[string]interface{}{
		"request_id":      requestID,
		"transactions":    len(transactions),
		"products":        len(products),
		"total_revenue":   totals.TotalRevenue,
		"total_cost":      totals.TotalCost,
		"net_profit":      totals.NetProfit,
		"inventory_value": totals.InventoryValue,
	})

	return &totals, nil
}
