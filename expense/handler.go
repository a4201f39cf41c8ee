package expense

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cafepos/auth"
	"cafepos/database"

	"github.com/jmoiron/sqlx"
)

type payload struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func ListExpensesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expenses, err := database.GetAllExpenses(db)
		if err != nil {
			http.Error(w, "Failed to get expenses", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

func CreateExpenseHandler(db *sqlx.DB) http.HandlerFunc {
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
		if body.Category == "" || body.Date == "" {
			http.Error(w, "Category and date are required", http.StatusBadRequest)
			return
		}
		userID := 0
		if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
			userID = claims.UserID
		}
		id, err := database.CreateExpense(db, body.Category, body.Amount, body.Description, body.Date, userID)
		if err != nil {
			http.Error(w, "Failed to create expense", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"id": id})
	}
}

func UpdateExpenseHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/expenses/update/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Expense id is required", http.StatusBadRequest)
			return
		}
		var body payload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.UpdateExpense(db, id, body.Category, body.Amount, body.Description, body.Date); err != nil {
			http.Error(w, "Failed to update expense", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Expense updated"})
	}
}

func DeleteExpenseHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		idStr := strings.TrimPrefix(r.URL.Path, "/api/expenses/delete/")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "Expense id is required", http.StatusBadRequest)
			return
		}
		if err := database.DeleteExpense(db, id); err != nil {
			http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Expense deleted"})
	}
}
