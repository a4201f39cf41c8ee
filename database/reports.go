package database

import (
	"database/sql"
	"fmt"
	"time"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

// SalesReport returns per-day order counts and totals for completed orders
// in the inclusive date range (YYYY-MM-DD).
func SalesReport(db *sqlx.DB, startDate, endDate string) ([]model.SalesReportRow, error) {
	var rows []model.SalesReportRow
	err := db.Select(&rows, `
		SELECT DATE(created_at) AS date,
		       COUNT(*) AS order_count,
		       SUM(total_amount) AS total_sales
		FROM orders
		WHERE status = 'completed' AND DATE(created_at) BETWEEN ? AND ?
		GROUP BY DATE(created_at)
		ORDER BY date DESC`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales report: %w", err)
	}
	return rows, nil
}

// ProfitLoss computes revenue minus item cost minus expenses for the range.
// Item cost joins the current product cost; cancelled orders are excluded.
func ProfitLoss(db *sqlx.DB, startDate, endDate string) (model.ProfitLoss, error) {
	var pl model.ProfitLoss

	var revenue struct {
		TotalRevenue float64 `db:"total_revenue"`
		TotalCost    float64 `db:"total_cost"`
	}
	err := db.Get(&revenue, `
		SELECT COALESCE(SUM(oi.subtotal), 0) AS total_revenue,
		       COALESCE(SUM(oi.quantity * p.cost), 0) AS total_cost
		FROM orders o
		JOIN order_items oi ON o.id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		WHERE o.status = 'completed' AND DATE(o.created_at) BETWEEN ? AND ?`,
		startDate, endDate)
	if err != nil && err != sql.ErrNoRows {
		return pl, fmt.Errorf("failed to compute revenue: %w", err)
	}

	var expenses float64
	err = db.Get(&expenses, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE DATE(date) BETWEEN ? AND ?`, startDate, endDate)
	if err != nil && err != sql.ErrNoRows {
		return pl, fmt.Errorf("failed to compute expenses: %w", err)
	}

	pl.Revenue = revenue.TotalRevenue
	pl.Cost = revenue.TotalCost
	pl.Expenses = expenses
	pl.Profit = pl.Revenue - pl.Cost - pl.Expenses
	return pl, nil
}

func TopProducts(db *sqlx.DB, startDate, endDate string, limit int) ([]model.TopProduct, error) {
	var rows []model.TopProduct
	err := db.Select(&rows, `
		SELECT p.name,
		       SUM(oi.quantity) AS total_sold,
		       SUM(oi.subtotal) AS total_revenue
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = 'completed' AND DATE(o.created_at) BETWEEN ? AND ?
		GROUP BY p.id, p.name
		ORDER BY total_sold DESC
		LIMIT ?`, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top products: %w", err)
	}
	return rows, nil
}

// DashboardStats aggregates the home-screen figures. The low-stock count is
// only computed while stock management is enabled; the threshold comes from
// the caller so the config owns it.
func DashboardStats(db *sqlx.DB, lowStockThreshold int) (model.DashboardStats, error) {
	var stats model.DashboardStats

	now := time.Now()
	today := now.Format("2006-01-02")
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format("2006-01-02")
	thirtyDaysAgo := now.AddDate(0, 0, -30).Format("2006-01-02")

	err := db.Get(&stats.TodaySales, `
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE status = 'completed' AND DATE(created_at) = ?`, today)
	if err != nil {
		return stats, fmt.Errorf("failed to get today's sales: %w", err)
	}
	err = db.Get(&stats.TodayOrders, `
		SELECT COUNT(*) FROM orders WHERE DATE(created_at) = ?`, today)
	if err != nil {
		return stats, fmt.Errorf("failed to get today's order count: %w", err)
	}
	err = db.Get(&stats.WeekSales, `
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE status = 'completed' AND DATE(created_at) >= ?`, weekStart)
	if err != nil {
		return stats, fmt.Errorf("failed to get week sales: %w", err)
	}
	err = db.Get(&stats.AvgOrderValue, `
		SELECT COALESCE(AVG(total_amount), 0) FROM orders
		WHERE status = 'completed' AND DATE(created_at) >= ?`, thirtyDaysAgo)
	if err != nil {
		return stats, fmt.Errorf("failed to get average order value: %w", err)
	}

	stockEnabled, err := StockManagementEnabled(db)
	if err != nil {
		return stats, err
	}
	stats.StockManagementEnabled = stockEnabled
	if stockEnabled {
		err = db.Get(&stats.LowStock, `
			SELECT COUNT(*) FROM products WHERE stock < ? AND active = 1`, lowStockThreshold)
		if err != nil {
			return stats, fmt.Errorf("failed to get low stock count: %w", err)
		}
	}

	err = db.Get(&stats.TotalProducts, `SELECT COUNT(*) FROM products WHERE active = 1`)
	if err != nil {
		return stats, fmt.Errorf("failed to get product count: %w", err)
	}
	return stats, nil
}
