// Package aggregate holds the pure aggregation rules: applying one
// transaction to a product and computing dashboard totals. No I/O, no state.
package aggregate

import (
	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
)

// ApplyTransaction returns the product aggregate after the given input has
// been applied. When existing is nil a zeroed product is started from the
// input's productId and name. The function is deterministic and has no side
// effects; each transaction must be applied exactly once, since applying the
// same one twice double-counts.
func ApplyTransaction(existing *entity.Product, input entity.TransactionInput) entity.Product {
	var product entity.Product
	if existing != nil {
		product = *existing
	} else {
		product = entity.Product{
			ProductID: input.ProductID,
			Name:      input.ProductName,
		}
	}

	amount := float64(input.Quantity) * input.Price

	switch input.Type {
	case entity.Purchase:
		product.TotalPurchased += input.Quantity
		product.TotalCost += amount
	case entity.Sale:
		product.TotalSold += input.Quantity
		product.TotalRevenue += amount
	}

	if product.TotalPurchased > 0 {
		product.AveragePrice = product.TotalCost / float64(product.TotalPurchased)
	} else {
		product.AveragePrice = 0
	}

	return product
}

// ComputeDashboard folds the full transaction log and product set into
// dashboard totals. Values are left unrounded.
func ComputeDashboard(transactions []entity.Transaction, products []entity.Product) entity.DashboardTotals {
	var totals entity.DashboardTotals

	for i := range transactions {
		if transactions[i].Type == entity.Sale {
			totals.TotalRevenue += transactions[i].Amount()
		} else {
			totals.TotalCost += transactions[i].Amount()
		}
	}

	totals.NetProfit = totals.TotalRevenue - totals.TotalCost

	for i := range products {
		totals.InventoryValue += products[i].InventoryValue()
	}

	return totals
}
