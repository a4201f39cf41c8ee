package category

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
)

type payload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ListCategoriesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := database.GetAllCategories(db)
		if err != nil {
			http.Error(w, "Failed to get categories", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(categories)
	}
}

func CreateCategoryHandler(db *sqlx.DB) http.HandlerFunc {
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
			http.Error(w, "Category name is required", http.StatusBadRequest)
			return
		}
		id, err := database.CreateCategory(db, body.Name, body.Description)
		if err != nil {
			// Duplicate name hits the UNIQUE constraint.
			if strings.Contains(err.Error(), "UNIQUE") {
				http.Error(w, "A category with that name already exists", http.StatusConflict)
				return
			}
			http.Error(w, "Failed to create category", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"id": id})
	}
}

func UpdateCategoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/categories/update/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Category id is required", http.StatusBadRequest)
			return
		}
		var body payload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateCategory(db, id, body.Name, body.Description); err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				http.Error(w, "A category with that name already exists", http.StatusConflict)
				return
			}
			http.Error(w, "Failed to update category", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Category updated"})
	}
}

// DeleteCategoryHandler removes the category only; products keep their
// reference and list with a null category name.
func DeleteCategoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/categories/delete/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Category id is required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteCategory(db, id); err != nil {
			http.Error(w, "Failed to delete category", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Category deleted"})
	}
}
