package database

import (
	"fmt"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

func GetAllExpenses(db *sqlx.DB) ([]model.Expense, error) {
	var expenses []model.Expense
	err := db.Select(&expenses, `
		SELECT e.*, u.username AS created_by_name
		FROM expenses e
		LEFT JOIN users u ON e.created_by = u.id
		ORDER BY e.date DESC, e.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	return expenses, nil
}

func CreateExpense(db *sqlx.DB, category string, amount float64, description, date string, userID int) (int, error) {
	res, err := db.Exec(
		`INSERT INTO expenses (category, amount, description, date, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		category, amount, description, date, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func UpdateExpense(db *sqlx.DB, id int, category string, amount float64, description, date string) error {
	_, err := db.Exec(
		`UPDATE expenses SET category = ?, amount = ?, description = ?, date = ? WHERE id = ?`,
		category, amount, description, date, id)
	if err != nil {
		return fmt.Errorf("failed to update expense %d: %w", id, err)
	}
	return nil
}

func DeleteExpense(db *sqlx.DB, id int) error {
	_, err := db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}
	return nil
}
