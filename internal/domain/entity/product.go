package entity

// Product is the running aggregate of every transaction recorded for one
// product identifier. A row is synthesized on the first transaction that
// references its ProductID and updated on every one after that; it is never
// deleted. Name is set on first creation only and later transactions carrying
// a different productName do not overwrite it.
type Product struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	TotalPurchased int     `json:"totalPurchased"`
	TotalSold      int     `json:"totalSold"`
	TotalCost      float64 `json:"totalCost"`
	TotalRevenue   float64 `json:"totalRevenue"`
	AveragePrice   float64 `json:"averagePrice"`
}

// LowStockThreshold is the stock level at or below which a product is flagged
// as running low.
const LowStockThreshold = 5

// CurrentStock is purchased minus sold. It may go negative when sales are
// recorded for stock that was never purchased; that is accepted, not clamped.
func (p *Product) CurrentStock() int {
	return p.TotalPurchased - p.TotalSold
}

// InventoryValue is the current stock valued at the cost-weighted average
// purchase price.
func (p *Product) InventoryValue() float64 {
	return float64(p.CurrentStock()) * p.AveragePrice
}

// LowStock reports whether current stock is at or below the threshold
func (p *Product) LowStock() bool {
	return p.CurrentStock() <= LowStockThreshold
}
