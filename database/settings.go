package database

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// GetSetting returns the stored value for key, or fallback when the row is
// absent. A missing row is not an error.
func GetSetting(db *sqlx.DB, key, fallback string) (string, error) {
	var value string
	err := db.Get(&value, `SELECT value FROM settings WHERE key = ?`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return fallback, nil
		}
		return "", fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return value, nil
}

func SetSetting(db *sqlx.DB, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting '%s': %w", key, err)
	}
	return nil
}

// NextTokenNumberInTx increments the display token counter and returns the
// new value. Runs inside the caller's transaction so the read-then-write
// cannot interleave with another order.
func NextTokenNumberInTx(tx *sqlx.Tx) (int, error) {
	var value string
	err := tx.Get(&value, `SELECT value FROM settings WHERE key = 'token_counter'`)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to get token counter: %w", err)
	}
	current, _ := strconv.Atoi(value)

	next := current + 1
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO settings (key, value) VALUES ('token_counter', ?)`,
		strconv.Itoa(next))
	if err != nil {
		return 0, fmt.Errorf("failed to update token counter: %w", err)
	}
	return next, nil
}

// NextTokenNumber is the standalone variant used by the POS screen.
func NextTokenNumber(db *sqlx.DB) (int, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	next, err := NextTokenNumberInTx(tx)
	if err != nil {
		return 0, err
	}
	return next, tx.Commit()
}

// ResetTokenCounter sets the display counter back to zero. Receipt numbers
// and existing orders are untouched.
func ResetTokenCounter(db *sqlx.DB) error {
	return SetSetting(db, "token_counter", "0")
}

func CurrentTokenNumber(db *sqlx.DB) (int, error) {
	value, err := GetSetting(db, "token_counter", "0")
	if err != nil {
		return 0, err
	}
	current, _ := strconv.Atoi(value)
	return current, nil
}

// StockManagementEnabled defaults to true when the setting was never written.
func StockManagementEnabled(db *sqlx.DB) (bool, error) {
	value, err := GetSetting(db, "stock_management", "true")
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func SetStockManagementEnabled(db *sqlx.DB, enabled bool) error {
	return SetSetting(db, "stock_management", strconv.FormatBool(enabled))
}

func BrandName(db *sqlx.DB) (string, error) {
	return GetSetting(db, "brand_name", "Cafe POS")
}

func SetBrandName(db *sqlx.DB, name string) error {
	return SetSetting(db, "brand_name", name)
}

// BrandLogo holds a data URI, or an empty string when no logo is set.
func BrandLogo(db *sqlx.DB) (string, error) {
	return GetSetting(db, "brand_logo", "")
}

func SetBrandLogo(db *sqlx.DB, logo string) error {
	return SetSetting(db, "brand_logo", logo)
}
