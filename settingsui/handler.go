// Package settingsui exposes the settings screen endpoints: brand identity,
// the stock management flag and the display token counter.
package settingsui

import (
	"encoding/json"
	"net/http"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
)

func GetSettingsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandName, err := database.BrandName(db)
		if err != nil {
			http.Error(w, "Failed to get settings", http.StatusInternalServerError)
			return
		}
		brandLogo, err := database.BrandLogo(db)
		if err != nil {
			http.Error(w, "Failed to get settings", http.StatusInternalServerError)
			return
		}
		stockEnabled, err := database.StockManagementEnabled(db)
		if err != nil {
			http.Error(w, "Failed to get settings", http.StatusInternalServerError)
			return
		}
		token, err := database.CurrentTokenNumber(db)
		if err != nil {
			http.Error(w, "Failed to get settings", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"brandName":       brandName,
			"brandLogo":       brandLogo,
			"stockManagement": stockEnabled,
			"tokenCounter":    token,
		})
	}
}

type updatePayload struct {
	BrandName       *string `json:"brandName"`
	BrandLogo       *string `json:"brandLogo"`
	StockManagement *bool   `json:"stockManagement"`
}

// UpdateSettingsHandler upserts only the fields present in the payload.
func UpdateSettingsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var body updatePayload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if body.BrandName != nil {
			if err := database.SetBrandName(db, *body.BrandName); err != nil {
				http.Error(w, "Failed to update brand name", http.StatusInternalServerError)
				return
			}
		}
		if body.BrandLogo != nil {
			if err := database.SetBrandLogo(db, *body.BrandLogo); err != nil {
				http.Error(w, "Failed to update brand logo", http.StatusInternalServerError)
				return
			}
		}
		if body.StockManagement != nil {
			if err := database.SetStockManagementEnabled(db, *body.StockManagement); err != nil {
				http.Error(w, "Failed to update stock management flag", http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Settings updated"})
	}
}

// NextTokenHandler advances the display counter; called once per order
// before the order is submitted.
func NextTokenHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next, err := database.NextTokenNumber(db)
		if err != nil {
			http.Error(w, "Failed to advance token counter", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"tokenNumber": next})
	}
}

// ResetTokenHandler zeroes the display counter. Orders and receipt numbers
// are untouched; typically run at the start of the day.
func ResetTokenHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := database.ResetTokenCounter(db); err != nil {
			http.Error(w, "Failed to reset token counter", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"tokenNumber": 0})
	}
}

func CurrentTokenHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := database.CurrentTokenNumber(db)
		if err != nil {
			http.Error(w, "Failed to read token counter", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"tokenNumber": current})
	}
}
