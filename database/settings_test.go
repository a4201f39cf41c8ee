package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounterMonotonic(t *testing.T) {
	db := newTestDB(t)

	current, err := CurrentTokenNumber(db)
	require.NoError(t, err)
	require.Equal(t, 0, current)

	for want := 1; want <= 5; want++ {
		got, err := NextTokenNumber(db)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	current, err = CurrentTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 5, current)
}

func TestTokenCounterReset(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 3; i++ {
		_, err := NextTokenNumber(db)
		require.NoError(t, err)
	}

	require.NoError(t, ResetTokenCounter(db))

	current, err := CurrentTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 0, current)

	next, err := NextTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestTokenCounterReadsZeroWhenRowMissing(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`DELETE FROM settings WHERE key = 'token_counter'`)
	require.NoError(t, err)

	current, err := CurrentTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 0, current)

	// next() recreates the row starting from zero.
	next, err := NextTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestSettingsDefaults(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`DELETE FROM settings`)
	require.NoError(t, err)

	// Absent rows fall back to documented defaults, never an error.
	enabled, err := StockManagementEnabled(db)
	require.NoError(t, err)
	assert.True(t, enabled)

	name, err := BrandName(db)
	require.NoError(t, err)
	assert.Equal(t, "Cafe POS", name)

	logo, err := BrandLogo(db)
	require.NoError(t, err)
	assert.Equal(t, "", logo)

	value, err := GetSetting(db, "no_such_key", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)
}

func TestSettingsUpsert(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, SetStockManagementEnabled(db, false))
	enabled, err := StockManagementEnabled(db)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, SetBrandName(db, "Corner Cafe"))
	require.NoError(t, SetBrandName(db, "Corner Cafe 2"))
	name, err := BrandName(db)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe 2", name)
}

func TestTokenAssignedDuringOrderCreation(t *testing.T) {
	db := newTestDB(t)
	espresso := productIDByName(t, db, "Espresso")

	tx, err := db.Beginx()
	require.NoError(t, err)
	token, err := NextTokenNumberInTx(tx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.Equal(t, 1, token)

	items := []OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
	}
	orderID, err := CreateOrder(db, token, 1, 3.50, "cash", items, "")
	require.NoError(t, err)

	order, err := GetOrderByID(db, orderID)
	require.NoError(t, err)
	assert.Equal(t, 1, order.TokenNumber)
}
