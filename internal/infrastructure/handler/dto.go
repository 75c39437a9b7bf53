package handler

import (
	"math"
	"time"

	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
)

// RecordTransactionRequest is the request body for recording a transaction
type RecordTransactionRequest struct {
	Type        string  `json:"type"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// TransactionResponse is one log entry as rendered to clients
type TransactionResponse struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
}

// ProductResponse is one inventory row as rendered to clients. Monetary
// values are rounded to two decimals here and nowhere earlier.
type ProductResponse struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	TotalPurchased int     `json:"totalPurchased"`
	TotalSold      int     `json:"totalSold"`
	CurrentStock   int     `json:"currentStock"`
	AveragePrice   float64 `json:"averagePrice"`
	InventoryValue float64 `json:"inventoryValue"`
	LowStock       bool    `json:"lowStock"`
}

// DashboardResponse carries the dashboard totals, rounded for display
type DashboardResponse struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalCost      float64 `json:"totalCost"`
	NetProfit      float64 `json:"netProfit"`
	InventoryValue float64 `json:"inventoryValue"`
}

// ErrorResponse is the standardized error body
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description"`
	RequestID   string `json:"request_id"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func toTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		ProductID:   tx.ProductID,
		ProductName: tx.ProductName,
		Quantity:    tx.Quantity,
		Price:       roundCents(tx.Price),
		Date:        tx.Date.Format(time.RFC3339),
	}
}

func toProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		TotalPurchased: p.TotalPurchased,
		TotalSold:      p.TotalSold,
		CurrentStock:   p.CurrentStock(),
		AveragePrice:   roundCents(p.AveragePrice),
		InventoryValue: roundCents(p.InventoryValue()),
		LowStock:       p.LowStock(),
	}
}

func toDashboardResponse(totals entity.DashboardTotals) DashboardResponse {
	return DashboardResponse{
		TotalRevenue:   roundCents(totals.TotalRevenue),
		TotalCost:      roundCents(totals.TotalCost),
		NetProfit:      roundCents(totals.NetProfit),
		InventoryValue: roundCents(totals.InventoryValue),
	}
}
