package product

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
)

type payload struct {
	Name        string  `json:"name"`
	CategoryID  *int64  `json:"categoryId"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func (p payload) categoryID() sql.NullInt64 {
	if p.CategoryID == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p.CategoryID, Valid: true}
}

// ListProductsHandler returns every product including soft-deleted ones;
// the POS catalog uses the active listing instead.
func ListProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := database.GetAllProducts(db)
		if err != nil {
			http.Error(w, "Failed to get products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}

func ActiveProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := database.GetActiveProducts(db)
		if err != nil {
			http.Error(w, "Failed to get products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}

func SearchProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, "Search query is required", http.StatusBadRequest)
			return
		}
		products, err := database.SearchProducts(db, query)
		if err != nil {
			http.Error(w, "Failed to search products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	}
}

func CreateProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body payload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			http.Error(w, "Product name is required", http.StatusBadRequest)
			return
		}
		id, err := database.CreateProduct(db, body.Name, body.categoryID(),
			body.Price, body.Cost, body.Stock, body.Description, body.Image)
		if err != nil {
			log.Printf("Failed to create product: %v", err)
			http.Error(w, "Failed to create product", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"id": id})
	}
}

func UpdateProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/products/update/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Product id is required", http.StatusBadRequest)
			return
		}
		var body payload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateProduct(db, id, body.Name, body.categoryID(),
			body.Price, body.Cost, body.Stock, body.Description, body.Image); err != nil {
			log.Printf("Failed to update product %d: %v", id, err)
			http.Error(w, "Failed to update product", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Product updated"})
	}
}

// DeleteProductHandler soft-deletes so order history stays intact.
func DeleteProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/products/delete/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Product id is required", http.StatusBadRequest)
			return
		}
		if err := database.DeactivateProduct(db, id); err != nil {
			http.Error(w, "Failed to delete product", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Product deleted"})
	}
}
