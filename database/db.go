package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Open connects to the SQLite database file, creating it if necessary.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// One writer at a time; the app is a single-terminal tool.
	db.SetMaxOpenConns(1)
	return db, nil
}

// InitDatabase applies the schema, runs migrations for old database files
// and seeds default data on first run.
func InitDatabase(db *sqlx.DB) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err := seedDefaults(db); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

var defaultSettings = map[string]string{
	"token_counter":    "0",
	"stock_management": "true",
	"brand_name":       "Cafe POS",
	"brand_logo":       "",
}

func seedDefaults(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range defaultSettings {
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO NOTHING`,
			key, value); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}

	var adminCount int
	if err := tx.Get(&adminCount, `SELECT COUNT(*) FROM users WHERE username = 'admin'`); err != nil {
		return err
	}
	if adminCount == 0 {
		log.Println("No admin user found, seeding default data...")
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO users (username, password, email, role, security_question, security_answer)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			"admin", string(hash), "admin@cafe.com", "admin",
			"What is your favorite cafe drink?", "espresso")
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		categories := [][2]string{
			{"Beverages", "Hot and cold drinks"},
			{"Food", "Snacks and meals"},
			{"Desserts", "Sweet treats"},
			{"Bakery", "Fresh baked goods"},
		}
		for _, c := range categories {
			if _, err := tx.Exec(
				`INSERT INTO categories (name, description) VALUES (?, ?)`, c[0], c[1]); err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c[0], err)
			}
		}

		products := []struct {
			name       string
			categoryID int
			price      float64
			cost       float64
			stock      int
		}{
			{"Espresso", 1, 3.50, 1.00, 100},
			{"Cappuccino", 1, 4.50, 1.50, 100},
			{"Latte", 1, 4.75, 1.50, 100},
			{"Americano", 1, 3.75, 1.00, 100},
			{"Cold Brew", 1, 5.00, 1.75, 50},
			{"Croissant", 4, 3.00, 1.00, 50},
			{"Sandwich", 2, 7.50, 3.00, 30},
			{"Muffin", 4, 3.50, 1.20, 40},
			{"Cheesecake", 3, 5.50, 2.00, 20},
			{"Cookie", 3, 2.50, 0.80, 60},
		}
		for _, p := range products {
			if _, err := tx.Exec(
				`INSERT INTO products (name, category_id, price, cost, stock) VALUES (?, ?, ?, ?, ?)`,
				p.name, p.categoryID, p.price, p.cost, p.stock); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.name, err)
			}
		}
	}

	return tx.Commit()
}
