package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// Migrate brings database files created by older releases up to date.
// Safe to run on every startup.
func Migrate(db *sqlx.DB) error {
	if err := addSecurityQuestionColumns(db); err != nil {
		return err
	}
	return dropTokenUniqueConstraint(db)
}

type columnInfo struct {
	CID       int     `db:"cid"`
	Name      string  `db:"name"`
	Type      string  `db:"type"`
	NotNull   int     `db:"notnull"`
	DfltValue *string `db:"dflt_value"`
	PK        int     `db:"pk"`
}

func tableHasColumn(db *sqlx.DB, table, column string) (bool, error) {
	var cols []columnInfo
	if err := db.Select(&cols, fmt.Sprintf("PRAGMA table_info(%s)", table)); err != nil {
		return false, fmt.Errorf("failed to read table_info for %s: %w", table, err)
	}
	for _, c := range cols {
		if c.Name == column {
			return true, nil
		}
	}
	return false, nil
}

func addSecurityQuestionColumns(db *sqlx.DB) error {
	has, err := tableHasColumn(db, "users", "security_question")
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	log.Println("INFO: [Migrate] Adding security question columns to users table")
	if _, err := db.Exec(`ALTER TABLE users ADD COLUMN security_question TEXT`); err != nil {
		return fmt.Errorf("failed to add security_question column: %w", err)
	}
	if _, err := db.Exec(`ALTER TABLE users ADD COLUMN security_answer TEXT`); err != nil {
		return fmt.Errorf("failed to add security_answer column: %w", err)
	}
	_, err = db.Exec(
		`UPDATE users SET security_question = ?, security_answer = ? WHERE username = 'admin'`,
		"What is your favorite cafe drink?", "espresso")
	return err
}

// dropTokenUniqueConstraint rebuilds the orders table for database files
// whose schema still enforces UNIQUE(token_number). The token is a display
// counter that resets daily, so duplicates across orders are expected.
func dropTokenUniqueConstraint(db *sqlx.DB) error {
	var hasUnique bool
	err := db.Get(&hasUnique, `
		SELECT COUNT(*) > 0 FROM sqlite_master
		WHERE type = 'table' AND name = 'orders' AND sql LIKE '%token_number%UNIQUE%'`)
	if err != nil {
		return fmt.Errorf("failed to inspect orders schema: %w", err)
	}
	if !hasUnique {
		return nil
	}

	log.Println("INFO: [Migrate] Rebuilding orders table without UNIQUE token_number")
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS orders_old`); err != nil {
		return fmt.Errorf("failed to drop stale orders_old: %w", err)
	}
	if _, err := tx.Exec(`ALTER TABLE orders RENAME TO orders_old`); err != nil {
		return fmt.Errorf("failed to rename orders table: %w", err)
	}
	_, err = tx.Exec(`
		CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			token_number INTEGER NOT NULL,
			user_id INTEGER,
			total_amount REAL NOT NULL,
			payment_method TEXT DEFAULT 'cash',
			status TEXT DEFAULT 'completed',
			notes TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to recreate orders table: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO orders (id, token_number, user_id, total_amount, payment_method, status, notes, created_at)
		SELECT id, token_number, user_id, total_amount, payment_method, status, notes, created_at
		FROM orders_old`)
	if err != nil {
		return fmt.Errorf("failed to copy orders data: %w", err)
	}
	if _, err := tx.Exec(`DROP TABLE orders_old`); err != nil {
		return fmt.Errorf("failed to drop orders_old: %w", err)
	}

	return tx.Commit()
}
