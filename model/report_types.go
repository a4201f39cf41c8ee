package model

type SalesReportRow struct {
	Date       string  `db:"date" json:"date"`
	OrderCount int     `db:"order_count" json:"orderCount"`
	TotalSales float64 `db:"total_sales" json:"totalSales"`
}

type ProfitLoss struct {
	Revenue  float64 `json:"revenue"`
	Cost     float64 `json:"cost"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

type TopProduct struct {
	Name         string  `db:"name" json:"name"`
	TotalSold    int     `db:"total_sold" json:"totalSold"`
	TotalRevenue float64 `db:"total_revenue" json:"totalRevenue"`
}

type DashboardStats struct {
	TodaySales             float64 `json:"todaySales"`
	TodayOrders            int     `json:"todayOrders"`
	WeekSales              float64 `json:"weekSales"`
	AvgOrderValue          float64 `json:"avgOrderValue"`
	LowStock               int     `json:"lowStock"`
	TotalProducts          int     `json:"totalProducts"`
	StockManagementEnabled bool    `json:"stockManagementEnabled"`
}
