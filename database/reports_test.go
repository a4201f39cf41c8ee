package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfitLossAndSalesReport(t *testing.T) {
	db := newTestDB(t)
	espresso := productIDByName(t, db, "Espresso")
	cookie := productIDByName(t, db, "Cookie")

	// 3 espressos at 3.50 (cost 1.00) and 2 cookies at 2.50 (cost 0.80).
	_, err := CreateOrder(db, 1, 1, 10.50, "cash", []OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 3, Subtotal: 10.50},
	}, "")
	require.NoError(t, err)
	_, err = CreateOrder(db, 2, 1, 5.00, "card", []OrderItemInput{
		{ProductID: cookie, Name: "Cookie", Price: 2.50, Quantity: 2, Subtotal: 5.00},
	}, "")
	require.NoError(t, err)

	// A cancelled order must not count towards revenue.
	cancelledID, err := CreateOrder(db, 3, 1, 3.50, "cash", []OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
	}, "")
	require.NoError(t, err)
	_, err = CancelOrder(db, cancelledID)
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	_, err = CreateExpense(db, "Rent", 4.00, "", today, 1)
	require.NoError(t, err)

	pl, err := ProfitLoss(db, today, today)
	require.NoError(t, err)
	assert.InDelta(t, 15.50, pl.Revenue, 0.001)
	assert.InDelta(t, 4.60, pl.Cost, 0.001) // 3x1.00 + 2x0.80
	assert.InDelta(t, 4.00, pl.Expenses, 0.001)
	assert.InDelta(t, 6.90, pl.Profit, 0.001)

	rows, err := SalesReport(db, today, today)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].OrderCount)
	assert.InDelta(t, 15.50, rows[0].TotalSales, 0.001)
}

func TestTopProducts(t *testing.T) {
	db := newTestDB(t)
	espresso := productIDByName(t, db, "Espresso")
	cookie := productIDByName(t, db, "Cookie")

	_, err := CreateOrder(db, 1, 1, 17.50, "cash", []OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 5, Subtotal: 17.50},
	}, "")
	require.NoError(t, err)
	_, err = CreateOrder(db, 2, 1, 5.00, "cash", []OrderItemInput{
		{ProductID: cookie, Name: "Cookie", Price: 2.50, Quantity: 2, Subtotal: 5.00},
	}, "")
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	top, err := TopProducts(db, today, today, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Espresso", top[0].Name)
	assert.Equal(t, 5, top[0].TotalSold)
	assert.Equal(t, "Cookie", top[1].Name)
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	espresso := productIDByName(t, db, "Espresso")

	_, err := CreateOrder(db, 1, 1, 7.00, "cash", []OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 2, Subtotal: 7.00},
	}, "")
	require.NoError(t, err)

	stats, err := DashboardStats(db, 10)
	require.NoError(t, err)
	assert.InDelta(t, 7.00, stats.TodaySales, 0.001)
	assert.Equal(t, 1, stats.TodayOrders)
	assert.True(t, stats.StockManagementEnabled)
	assert.Equal(t, 10, stats.TotalProducts)

	// Below-threshold products are counted only while stock management is on.
	require.NoError(t, UpdateProduct(db, espresso, "Espresso", nullInt64(1), 3.50, 1.00, 3, "", ""))
	stats, err = DashboardStats(db, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.LowStock)

	require.NoError(t, SetStockManagementEnabled(db, false))
	stats, err = DashboardStats(db, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.LowStock)
	assert.False(t, stats.StockManagementEnabled)
}
