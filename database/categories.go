package database

import (
	"fmt"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

func GetAllCategories(db *sqlx.DB) ([]model.Category, error) {
	var categories []model.Category
	err := db.Select(&categories, `SELECT * FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// CreateCategory fails on a duplicate name; the UNIQUE constraint surfaces
// as the returned error.
func CreateCategory(db *sqlx.DB, name, description string) (int, error) {
	res, err := db.Exec(
		`INSERT INTO categories (name, description) VALUES (?, ?)`, name, description)
	if err != nil {
		return 0, fmt.Errorf("failed to create category '%s': %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func UpdateCategory(db *sqlx.DB, id int, name, description string) error {
	_, err := db.Exec(
		`UPDATE categories SET name = ?, description = ? WHERE id = ?`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return nil
}

// DeleteCategory does not cascade; products keep their category_id and the
// catalog join resolves it to NULL.
func DeleteCategory(db *sqlx.DB, id int) error {
	_, err := db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}
