package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cafepos/auth"
	"cafepos/database"

	"github.com/jmoiron/sqlx"
)

var paymentMethods = map[string]bool{"cash": true, "card": true, "online": true}

// CreatePayload is a full order-entry submission from the POS screen.
type CreatePayload struct {
	TokenNumber   int                       `json:"tokenNumber"`
	TotalAmount   float64                   `json:"totalAmount"`
	PaymentMethod string                    `json:"paymentMethod"`
	Items         []database.OrderItemInput `json:"items"`
	Notes         string                    `json:"notes"`
}

// CreateOrderHandler persists an order. While the stock_management setting
// is enabled, lines exceeding available stock are rejected here; the
// data-access layer itself never enforces a stock floor.
func CreateOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload CreatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if len(payload.Items) == 0 {
			http.Error(w, "Order has no items", http.StatusBadRequest)
			return
		}
		if !paymentMethods[payload.PaymentMethod] {
			http.Error(w, "Payment method must be cash, card or online", http.StatusBadRequest)
			return
		}

		stockEnabled, err := database.StockManagementEnabled(db)
		if err != nil {
			http.Error(w, "Failed to read stock setting", http.StatusInternalServerError)
			return
		}
		if stockEnabled {
			for _, item := range payload.Items {
				product, err := database.GetProductByID(db, item.ProductID)
				if err != nil {
					http.Error(w, "Failed to check stock", http.StatusInternalServerError)
					return
				}
				if product == nil {
					http.Error(w, fmt.Sprintf("Unknown product id %d", item.ProductID), http.StatusBadRequest)
					return
				}
				if product.Stock < item.Quantity {
					http.Error(w, fmt.Sprintf("Insufficient stock for %s", product.Name), http.StatusConflict)
					return
				}
			}
		}

		userID := 0
		if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
			userID = claims.UserID
		}

		tokenNumber := payload.TokenNumber
		if tokenNumber == 0 {
			tokenNumber, err = database.NextTokenNumber(db)
			if err != nil {
				http.Error(w, "Failed to assign token number", http.StatusInternalServerError)
				return
			}
		}

		orderID, err := database.CreateOrder(db, tokenNumber, userID,
			payload.TotalAmount, payload.PaymentMethod, payload.Items, payload.Notes)
		if err != nil {
			if errors.Is(err, database.ErrTotalMismatch) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.Printf("Failed to create order: %v", err)
			http.Error(w, "Failed to create order", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"orderId":     orderID,
			"tokenNumber": tokenNumber,
		})
	}
}

// CancelOrderHandler is idempotent: cancelling an already-cancelled or
// unknown order reports cancelled=false rather than an error.
func CancelOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/orders/cancel/")
		orderID, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Order id is required", http.StatusBadRequest)
			return
		}
		cancelled, err := database.CancelOrder(db, orderID)
		if err != nil {
			log.Printf("Failed to cancel order %d: %v", orderID, err)
			http.Error(w, "Failed to cancel order", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"cancelled": cancelled})
	}
}

func ListOrdersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := database.GetAllOrders(db)
		if err != nil {
			http.Error(w, "Failed to get orders", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orders)
	}
}

func RecentOrdersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		orders, err := database.GetRecentOrders(db, limit)
		if err != nil {
			http.Error(w, "Failed to get recent orders", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(orders)
	}
}

// GetOrderHandler returns one order with its items.
func GetOrderHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/orders/")
		orderID, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Order id is required", http.StatusBadRequest)
			return
		}
		order, err := database.GetOrderByID(db, orderID)
		if err != nil {
			http.Error(w, "Failed to get order", http.StatusInternalServerError)
			return
		}
		if order == nil {
			http.NotFound(w, r)
			return
		}
		items, err := database.GetOrderItems(db, orderID)
		if err != nil {
			http.Error(w, "Failed to get order items", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"order": order,
			"items": items,
		})
	}
}
