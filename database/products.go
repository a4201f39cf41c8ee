package database

import (
	"database/sql"
	"fmt"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

const productColumns = `p.id, p.name, p.category_id, p.price, p.cost, p.stock, p.image, p.description, p.active, p.created_at, c.name AS category_name`

// GetAllProducts includes soft-deleted products, for the management screen.
func GetAllProducts(db *sqlx.DB) ([]model.Product, error) {
	var products []model.Product
	err := db.Select(&products, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.name`, productColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetActiveProducts is the POS catalog listing; soft-deleted products are
// excluded but their historical order_items remain.
func GetActiveProducts(db *sqlx.DB) ([]model.Product, error) {
	var products []model.Product
	err := db.Select(&products, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.active = 1
		ORDER BY p.name`, productColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to get active products: %w", err)
	}
	return products, nil
}

func SearchProducts(db *sqlx.DB, query string) ([]model.Product, error) {
	like := "%" + query + "%"
	var products []model.Product
	err := db.Select(&products, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.active = 1 AND (p.name LIKE ? OR p.description LIKE ?)
		ORDER BY p.name`, productColumns), like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetProductByID returns nil when no product exists with that id.
func GetProductByID(db *sqlx.DB, id int) (*model.Product, error) {
	var product model.Product
	err := db.Get(&product, fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = ?`, productColumns), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

func CreateProduct(db *sqlx.DB, name string, categoryID sql.NullInt64,
	price, cost float64, stock int, description, image string) (int, error) {
	res, err := db.Exec(
		`INSERT INTO products (name, category_id, price, cost, stock, description, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		name, categoryID, price, cost, stock, description, image)
	if err != nil {
		return 0, fmt.Errorf("failed to create product '%s': %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func UpdateProduct(db *sqlx.DB, id int, name string, categoryID sql.NullInt64,
	price, cost float64, stock int, description, image string) error {
	_, err := db.Exec(
		`UPDATE products SET name = ?, category_id = ?, price = ?, cost = ?, stock = ?, description = ?, image = ?
		 WHERE id = ?`,
		name, categoryID, price, cost, stock, description, image, id)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return nil
}

// DeactivateProduct soft-deletes; the row stays so order history keeps
// resolving its product reference.
func DeactivateProduct(db *sqlx.DB, id int) error {
	_, err := db.Exec(`UPDATE products SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product %d: %w", id, err)
	}
	return nil
}

// AdjustStockInTx applies a signed stock delta. Negative results are
// allowed; there is no enforced floor at this layer.
func AdjustStockInTx(tx *sqlx.Tx, productID, delta int) error {
	_, err := tx.Exec(`UPDATE products SET stock = stock + ? WHERE id = ?`, delta, productID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", productID, err)
	}
	return nil
}
