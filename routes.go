package main

import (
	"net/http"

	"cafepos/auth"
	"cafepos/category"
	"cafepos/config"
	"cafepos/expense"
	"cafepos/order"
	"cafepos/printing"
	"cafepos/product"
	"cafepos/report"
	"cafepos/settingsui"

	"github.com/jmoiron/sqlx"
)

// SetupRoutes registers every operation as an explicit named endpoint with
// a typed request payload. There is no generic method-name dispatch.
func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, cfg config.Config) {
	secret := cfg.JWTSecret

	// Session and recovery endpoints stay unauthenticated.
	mux.HandleFunc("/api/auth/login", auth.LoginHandler(dbConn, secret))
	mux.HandleFunc("/api/auth/security_question", auth.SecurityQuestionHandler(dbConn))
	mux.HandleFunc("/api/auth/forgot", auth.ForgotPasswordHandler(dbConn))
	mux.HandleFunc("/api/auth/verify_reset", auth.VerifyResetHandler(dbConn))
	mux.HandleFunc("/api/auth/reset", auth.ResetPasswordHandler(dbConn))

	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.RequireAuth(secret, h)
	}

	mux.HandleFunc("/api/auth/change_password", guard(auth.ChangePasswordHandler(dbConn)))

	mux.HandleFunc("/api/categories", guard(category.ListCategoriesHandler(dbConn)))
	mux.HandleFunc("/api/categories/create", guard(category.CreateCategoryHandler(dbConn)))
	mux.HandleFunc("/api/categories/update/", guard(category.UpdateCategoryHandler(dbConn)))
	mux.HandleFunc("/api/categories/delete/", guard(category.DeleteCategoryHandler(dbConn)))

	mux.HandleFunc("/api/products", guard(product.ListProductsHandler(dbConn)))
	mux.HandleFunc("/api/products/active", guard(product.ActiveProductsHandler(dbConn)))
	mux.HandleFunc("/api/products/search", guard(product.SearchProductsHandler(dbConn)))
	mux.HandleFunc("/api/products/create", guard(product.CreateProductHandler(dbConn)))
	mux.HandleFunc("/api/products/update/", guard(product.UpdateProductHandler(dbConn)))
	mux.HandleFunc("/api/products/delete/", guard(product.DeleteProductHandler(dbConn)))

	mux.HandleFunc("/api/orders", guard(order.ListOrdersHandler(dbConn)))
	mux.HandleFunc("/api/orders/recent", guard(order.RecentOrdersHandler(dbConn)))
	mux.HandleFunc("/api/orders/create", guard(order.CreateOrderHandler(dbConn)))
	mux.HandleFunc("/api/orders/cancel/", guard(order.CancelOrderHandler(dbConn)))
	mux.HandleFunc("/api/orders/receipt/", guard(printing.ReceiptHTMLHandler(dbConn)))
	mux.HandleFunc("/api/orders/", guard(order.GetOrderHandler(dbConn)))

	mux.HandleFunc("/api/expenses", guard(expense.ListExpensesHandler(dbConn)))
	mux.HandleFunc("/api/expenses/create", guard(expense.CreateExpenseHandler(dbConn)))
	mux.HandleFunc("/api/expenses/update/", guard(expense.UpdateExpenseHandler(dbConn)))
	mux.HandleFunc("/api/expenses/delete/", guard(expense.DeleteExpenseHandler(dbConn)))

	mux.HandleFunc("/api/reports/sales", guard(report.SalesReportHandler(dbConn)))
	mux.HandleFunc("/api/reports/sales/export", guard(report.ExportSalesHandler(dbConn)))
	mux.HandleFunc("/api/reports/profit_loss", guard(report.ProfitLossHandler(dbConn)))
	mux.HandleFunc("/api/reports/top_products", guard(report.TopProductsHandler(dbConn)))
	mux.HandleFunc("/api/reports/dashboard", guard(report.DashboardHandler(dbConn, cfg.LowStockThreshold)))

	mux.HandleFunc("/api/settings", guard(settingsui.GetSettingsHandler(dbConn)))
	mux.HandleFunc("/api/settings/update", guard(settingsui.UpdateSettingsHandler(dbConn)))
	mux.HandleFunc("/api/token/current", guard(settingsui.CurrentTokenHandler(dbConn)))
	mux.HandleFunc("/api/token/next", guard(settingsui.NextTokenHandler(dbConn)))
	mux.HandleFunc("/api/token/reset", guard(settingsui.ResetTokenHandler(dbConn)))

	mux.HandleFunc("/api/print/receipt", guard(printing.PrintReceiptHandler(dbConn, cfg.ReceiptFolderPath)))
}
