package database

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

// ErrTotalMismatch is returned when an order's line subtotals do not
// multiply out or do not sum to the stated total.
var ErrTotalMismatch = errors.New("order total does not match line items")

// OrderItemInput is one line of a create-order request. Name and price are
// copied into the order_items row as-is for historical accuracy.
type OrderItemInput struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

func centsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// ValidateOrderTotals checks that each subtotal equals quantity x price and
// that the order total equals the sum of subtotals, to the cent.
func ValidateOrderTotals(totalAmount float64, items []OrderItemInput) error {
	var sum float64
	for _, item := range items {
		if !centsEqual(item.Subtotal, float64(item.Quantity)*item.Price) {
			return fmt.Errorf("%w: line '%s' subtotal %.2f != %d x %.2f",
				ErrTotalMismatch, item.Name, item.Subtotal, item.Quantity, item.Price)
		}
		sum += item.Subtotal
	}
	if !centsEqual(totalAmount, sum) {
		return fmt.Errorf("%w: total %.2f != sum of subtotals %.2f",
			ErrTotalMismatch, totalAmount, sum)
	}
	return nil
}

// CreateOrder persists one order row plus its item rows and debits each
// product's stock, all in a single transaction. Returns the new order id
// (the receipt number). Stock has no floor here; sufficiency checks are the
// caller's responsibility and depend on the stock_management setting.
func CreateOrder(db *sqlx.DB, tokenNumber int, userID int, totalAmount float64,
	paymentMethod string, items []OrderItemInput, notes string) (int, error) {

	if len(items) == 0 {
		return 0, errors.New("order has no items")
	}
	if err := ValidateOrderTotals(totalAmount, items); err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO orders (token_number, user_id, total_amount, payment_method, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		tokenNumber, userID, totalAmount, paymentMethod, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}
	orderID64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get order id: %w", err)
	}
	orderID := int(orderID64)

	for _, item := range items {
		_, err = tx.Exec(
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price, subtotal)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Name, item.Quantity, item.Price, item.Subtotal)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item '%s': %w", item.Name, err)
		}
		if err := AdjustStockInTx(tx, item.ProductID, -item.Quantity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit order: %w", err)
	}
	return orderID, nil
}

// CancelOrder flips the order to cancelled and credits each item's quantity
// back to its product. Returns false with no error when the order does not
// exist or is already cancelled; cancelling twice is a no-op, not a failure.
func CancelOrder(db *sqlx.DB, orderID int) (bool, error) {
	tx, err := db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.Get(&status, `SELECT status FROM orders WHERE id = ?`, orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	if status == "cancelled" {
		return false, nil
	}

	if _, err := tx.Exec(`UPDATE orders SET status = 'cancelled' WHERE id = ?`, orderID); err != nil {
		return false, fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}

	var items []model.OrderItem
	if err := tx.Select(&items, `SELECT * FROM order_items WHERE order_id = ?`, orderID); err != nil {
		return false, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	for _, item := range items {
		if err := AdjustStockInTx(tx, item.ProductID, item.Quantity); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return true, nil
}

const orderColumns = `o.id, o.token_number, o.user_id, o.total_amount, o.payment_method, o.status, o.notes, o.created_at`

func GetAllOrders(db *sqlx.DB) ([]model.Order, error) {
	var orders []model.Order
	err := db.Select(&orders, fmt.Sprintf(`
		SELECT %s, u.username
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC`, orderColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func GetRecentOrders(db *sqlx.DB, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := db.Select(&orders, fmt.Sprintf(`
		SELECT %s, u.username
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ?`, orderColumns), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return orders, nil
}

// GetOrderByID returns nil when no order exists with that id.
func GetOrderByID(db *sqlx.DB, orderID int) (*model.Order, error) {
	var order model.Order
	err := db.Get(&order, fmt.Sprintf(`
		SELECT %s, u.username
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.id = ?`, orderColumns), orderID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return &order, nil
}

// GetOrderByToken returns the most recent order displaying the given token.
// Tokens are not unique across counter resets.
func GetOrderByToken(db *sqlx.DB, token int) (*model.Order, error) {
	var order model.Order
	err := db.Get(&order, fmt.Sprintf(`
		SELECT %s, u.username
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.token_number = ?
		ORDER BY o.id DESC
		LIMIT 1`, orderColumns), token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order by token %d: %w", token, err)
	}
	return &order, nil
}

func GetOrderItems(db *sqlx.DB, orderID int) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := db.Select(&items, `SELECT * FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	return items, nil
}
