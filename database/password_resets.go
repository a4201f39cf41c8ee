package database

import (
	"database/sql"
	"fmt"
	"time"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

// CreatePasswordReset stores a one-time reset code valid for one hour.
func CreatePasswordReset(db *sqlx.DB, userID int, code string) error {
	expiresAt := time.Now().UTC().Add(time.Hour).Format("2006-01-02 15:04:05")
	_, err := db.Exec(
		`INSERT INTO password_resets (user_id, reset_code, expires_at) VALUES (?, ?, ?)`,
		userID, code, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create password reset: %w", err)
	}
	return nil
}

// GetPasswordReset returns the reset row for code if it is unused and not
// expired, nil otherwise.
func GetPasswordReset(db *sqlx.DB, code string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	err := db.Get(&reset, `
		SELECT * FROM password_resets
		WHERE reset_code = ? AND used = 0 AND expires_at > datetime('now')`, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get password reset: %w", err)
	}
	return &reset, nil
}

func MarkResetUsed(db *sqlx.DB, resetID int) error {
	_, err := db.Exec(`UPDATE password_resets SET used = 1 WHERE id = ?`, resetID)
	if err != nil {
		return fmt.Errorf("failed to mark reset %d used: %w", resetID, err)
	}
	return nil
}
