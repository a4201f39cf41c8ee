package printing

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cafepos/database"
	"cafepos/receipt"

	"github.com/jmoiron/sqlx"
)

type printPayload struct {
	HTML    string `json:"html"`
	OrderID int    `json:"orderId"`
}

// PrintReceiptHandler accepts either a pre-rendered HTML string from the
// presentation layer or an order id to render server-side.
func PrintReceiptHandler(db *sqlx.DB, saveDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload printPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		content := payload.HTML
		filename := "receipt.pdf"
		if content == "" {
			if payload.OrderID == 0 {
				http.Error(w, "html or orderId is required", http.StatusBadRequest)
				return
			}
			html, err := renderOrder(db, payload.OrderID)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			content = html
			filename = fmt.Sprintf("receipt_%d.pdf", payload.OrderID)
		}

		path, err := PrintHTML(content, saveDir, filename)
		if err != nil {
			log.Printf("Print error: %v", err)
			http.Error(w, "Failed to print receipt", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"path": path})
	}
}

// ReceiptHTMLHandler returns the rendered receipt for an order so the UI
// can preview it before printing.
func ReceiptHTMLHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/orders/receipt/")
		orderID, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Order id is required", http.StatusBadRequest)
			return
		}
		html, err := renderOrder(db, orderID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}
}

func renderOrder(db *sqlx.DB, orderID int) (string, error) {
	order, err := database.GetOrderByID(db, orderID)
	if err != nil {
		return "", fmt.Errorf("failed to get order %d", orderID)
	}
	if order == nil {
		return "", fmt.Errorf("order %d not found", orderID)
	}
	items, err := database.GetOrderItems(db, orderID)
	if err != nil {
		return "", fmt.Errorf("failed to get items for order %d", orderID)
	}
	brandName, err := database.BrandName(db)
	if err != nil {
		return "", fmt.Errorf("failed to get brand name")
	}
	brandLogo, err := database.BrandLogo(db)
	if err != nil {
		return "", fmt.Errorf("failed to get brand logo")
	}
	return receipt.RenderReceiptHTML(order, items, brandName, brandLogo), nil
}
