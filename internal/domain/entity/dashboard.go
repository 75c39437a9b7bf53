package entity

// DashboardTotals are the on-demand aggregates over the full transaction log
// and product set. Values are kept unrounded; presentation layers round to
// two decimals.
type DashboardTotals struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalCost      float64 `json:"totalCost"`
	NetProfit      float64 `json:"netProfit"`
	InventoryValue float64 `json:"inventoryValue"`
}
