package report

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

func dateRange(r *http.Request) (string, string, error) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		return "", "", fmt.Errorf("start and end dates are required")
	}
	for _, d := range []string{start, end} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "", "", fmt.Errorf("dates must be in YYYY-MM-DD format")
		}
	}
	return start, end, nil
}

func SalesReportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := database.SalesReport(db, start, end)
		if err != nil {
			http.Error(w, "Failed to build sales report", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

func ProfitLossHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pl, err := database.ProfitLoss(db, start, end)
		if err != nil {
			http.Error(w, "Failed to compute profit/loss", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pl)
	}
}

func TopProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit := 10
		if s := r.URL.Query().Get("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		rows, err := database.TopProducts(db, start, end, limit)
		if err != nil {
			http.Error(w, "Failed to get top products", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}
}

func DashboardHandler(db *sqlx.DB, lowStockThreshold int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.DashboardStats(db, lowStockThreshold)
		if err != nil {
			log.Printf("Failed to build dashboard stats: %v", err)
			http.Error(w, "Failed to build dashboard stats", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}
}

// ExportSalesHandler streams the sales report as an .xlsx download.
func ExportSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := dateRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rows, err := database.SalesReport(db, start, end)
		if err != nil {
			http.Error(w, "Failed to build sales report", http.StatusInternalServerError)
			return
		}

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Sales"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Date", "Orders", "Total Sales"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for i, row := range rows {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Date)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.OrderCount)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.TotalSales)
		}

		filename := fmt.Sprintf("sales_%s_%s.xlsx", start, end)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := f.Write(w); err != nil {
			log.Printf("Failed to write sales export: %v", err)
		}
	}
}
