package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitDatabase(db))
	return db
}

func productByName(t *testing.T, db *sqlx.DB, name string) (id, stock int) {
	t.Helper()
	row := struct {
		ID    int `db:"id"`
		Stock int `db:"stock"`
	}{}
	require.NoError(t, db.Get(&row, `SELECT id, stock FROM products WHERE name = ?`, name))
	return row.ID, row.Stock
}

func postOrder(t *testing.T, db *sqlx.DB, payload CreatePayload) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/orders/create", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	CreateOrderHandler(db)(rec, req)
	return rec
}

func TestCreateOrderInsufficientStockConflicts(t *testing.T) {
	db := newTestDB(t)
	espresso, stock := productByName(t, db, "Espresso")

	qty := stock + 1
	rec := postOrder(t, db, CreatePayload{
		TotalAmount:   3.50 * float64(qty),
		PaymentMethod: "cash",
		Items: []database.OrderItemInput{
			{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: qty, Subtotal: 3.50 * float64(qty)},
		},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient stock for Espresso")

	// Nothing was persisted and no token was consumed.
	var orders int
	require.NoError(t, db.Get(&orders, `SELECT COUNT(*) FROM orders`))
	assert.Equal(t, 0, orders)
	current, err := database.CurrentTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 0, current)
}

func TestCreateOrderWithStockManagementDisabled(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.SetStockManagementEnabled(db, false))
	espresso, stock := productByName(t, db, "Espresso")

	qty := stock + 5
	rec := postOrder(t, db, CreatePayload{
		TotalAmount:   3.50 * float64(qty),
		PaymentMethod: "cash",
		Items: []database.OrderItemInput{
			{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: qty, Subtotal: 3.50 * float64(qty)},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The stock floor is not enforced while tracking is off.
	_, after := productByName(t, db, "Espresso")
	assert.Equal(t, -5, after)
}

func TestCreateOrderAssignsTokenWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	espresso, _ := productByName(t, db, "Espresso")

	rec := postOrder(t, db, CreatePayload{
		TotalAmount:   3.50,
		PaymentMethod: "card",
		Items: []database.OrderItemInput{
			{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp["tokenNumber"])
	assert.NotZero(t, resp["orderId"])
}

func TestCreateOrderTotalMismatchRejected(t *testing.T) {
	db := newTestDB(t)
	espresso, _ := productByName(t, db, "Espresso")

	rec := postOrder(t, db, CreatePayload{
		TotalAmount:   99.00,
		PaymentMethod: "cash",
		Items: []database.OrderItemInput{
			{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int
	require.NoError(t, db.Get(&orders, `SELECT COUNT(*) FROM orders`))
	assert.Equal(t, 0, orders)
}

func TestCreateOrderRejectsBadPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	espresso, _ := productByName(t, db, "Espresso")

	rec := postOrder(t, db, CreatePayload{
		TotalAmount:   3.50,
		PaymentMethod: "barter",
		Items: []database.OrderItemInput{
			{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOrderHandlerIdempotent(t *testing.T) {
	db := newTestDB(t)
	espresso, before := productByName(t, db, "Espresso")

	orderID, err := database.CreateOrder(db, 1, 0, 3.50, "cash", []database.OrderItemInput{
		{ProductID: espresso, Name: "Espresso", Price: 3.50, Quantity: 1, Subtotal: 3.50},
	}, "")
	require.NoError(t, err)

	cancel := func() map[string]bool {
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/api/orders/cancel/%d", orderID), nil)
		rec := httptest.NewRecorder()
		CancelOrderHandler(db)(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp map[string]bool
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	assert.True(t, cancel()["cancelled"])
	// Second cancellation is a no-op, not an error.
	assert.False(t, cancel()["cancelled"])

	// Stock was credited exactly once.
	_, after := productByName(t, db, "Espresso")
	assert.Equal(t, before, after)
}

func TestMutatingOrderEndpointsRejectGet(t *testing.T) {
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/create", nil)
	rec := httptest.NewRecorder()
	CreateOrderHandler(db)(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders/cancel/1", nil)
	rec = httptest.NewRecorder()
	CancelOrderHandler(db)(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/424242", nil)
	rec := httptest.NewRecorder()
	GetOrderHandler(db)(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
