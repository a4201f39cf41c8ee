package database

import (
	"database/sql"
	"fmt"

	"cafepos/model"

	"github.com/jmoiron/sqlx"
)

// GetUserByUsername returns nil when no such user exists.
func GetUserByUsername(db *sqlx.DB, username string) (*model.User, error) {
	var user model.User
	err := db.Get(&user, `SELECT * FROM users WHERE username = ?`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", username, err)
	}
	return &user, nil
}

// GetUserByEmail matches case-insensitively; stored emails keep whatever
// casing they were entered with.
func GetUserByEmail(db *sqlx.DB, email string) (*model.User, error) {
	var user model.User
	err := db.Get(&user, `SELECT * FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func GetUserByID(db *sqlx.DB, id int) (*model.User, error) {
	var user model.User
	err := db.Get(&user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// UpdatePassword stores an already-hashed password.
func UpdatePassword(db *sqlx.DB, userID int, hashedPassword string) error {
	_, err := db.Exec(`UPDATE users SET password = ? WHERE id = ?`, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password for user %d: %w", userID, err)
	}
	return nil
}
