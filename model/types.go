package model

import "database/sql"

// User represents a record in the users table.
type User struct {
	ID               int            `db:"id" json:"id"`
	Username         string         `db:"username" json:"username"`
	Password         string         `db:"password" json:"-"`
	Email            sql.NullString `db:"email" json:"email"`
	Role             string         `db:"role" json:"role"`
	SecurityQuestion sql.NullString `db:"security_question" json:"securityQuestion"`
	SecurityAnswer   sql.NullString `db:"security_answer" json:"-"`
	CreatedAt        string         `db:"created_at" json:"createdAt"`
}

type Category struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID           int            `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	CategoryID   sql.NullInt64  `db:"category_id" json:"categoryId"`
	CategoryName sql.NullString `db:"category_name" json:"categoryName"`
	Price        float64        `db:"price" json:"price"`
	Cost         float64        `db:"cost" json:"cost"`
	Stock        int            `db:"stock" json:"stock"`
	Image        string         `db:"image" json:"image"`
	Description  string         `db:"description" json:"description"`
	Active       int            `db:"active" json:"active"`
	CreatedAt    string         `db:"created_at" json:"createdAt"`
}

// Order.ID is the store-assigned receipt number. TokenNumber is the
// customer-facing display counter; it is intentionally not unique, two
// orders may share a token after a counter reset.
type Order struct {
	ID            int            `db:"id" json:"id"`
	TokenNumber   int            `db:"token_number" json:"tokenNumber"`
	UserID        sql.NullInt64  `db:"user_id" json:"userId"`
	Username      sql.NullString `db:"username" json:"username"`
	TotalAmount   float64        `db:"total_amount" json:"totalAmount"`
	PaymentMethod string         `db:"payment_method" json:"paymentMethod"`
	Status        string         `db:"status" json:"status"`
	Notes         string         `db:"notes" json:"notes"`
	CreatedAt     string         `db:"created_at" json:"createdAt"`
}

// OrderItem keeps a copy of the product name and price at the time of
// sale, so history survives later product edits or deactivation.
type OrderItem struct {
	ID          int     `db:"id" json:"id"`
	OrderID     int     `db:"order_id" json:"orderId"`
	ProductID   int     `db:"product_id" json:"productId"`
	ProductName string  `db:"product_name" json:"productName"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	Subtotal    float64 `db:"subtotal" json:"subtotal"`
}

type Expense struct {
	ID            int            `db:"id" json:"id"`
	Category      string         `db:"category" json:"category"`
	Amount        float64        `db:"amount" json:"amount"`
	Description   string         `db:"description" json:"description"`
	Date          string         `db:"date" json:"date"`
	CreatedBy     sql.NullInt64  `db:"created_by" json:"createdBy"`
	CreatedByName sql.NullString `db:"created_by_name" json:"createdByName"`
	CreatedAt     string         `db:"created_at" json:"createdAt"`
}

type PasswordReset struct {
	ID        int    `db:"id" json:"id"`
	UserID    int    `db:"user_id" json:"userId"`
	ResetCode string `db:"reset_code" json:"resetCode"`
	ExpiresAt string `db:"expires_at" json:"expiresAt"`
	Used      int    `db:"used" json:"used"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
