package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Builds a database file shaped like the oldest release: UNIQUE token
// numbers and no security question columns.
func newLegacyDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			email TEXT,
			role TEXT DEFAULT 'cashier',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			token_number INTEGER NOT NULL UNIQUE,
			user_id INTEGER,
			total_amount REAL NOT NULL,
			payment_method TEXT DEFAULT 'cash',
			status TEXT DEFAULT 'completed',
			notes TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username, password) VALUES ('admin', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO orders (token_number, total_amount) VALUES (1, 3.50), (2, 5.00)`)
	require.NoError(t, err)
	return db
}

func TestMigrateDropsTokenUniqueConstraint(t *testing.T) {
	db := newLegacyDB(t)

	// The legacy schema rejects a duplicate token.
	_, err := db.Exec(`INSERT INTO orders (token_number, total_amount) VALUES (1, 2.50)`)
	require.Error(t, err)

	require.NoError(t, Migrate(db))

	// Existing rows survive the rebuild.
	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM orders`))
	assert.Equal(t, 2, count)

	// Duplicate tokens are accepted after migration.
	_, err = db.Exec(`INSERT INTO orders (token_number, total_amount) VALUES (1, 2.50)`)
	require.NoError(t, err)

	var ids []int
	require.NoError(t, db.Select(&ids, `SELECT id FROM orders ORDER BY id`))
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestMigrateAddsSecurityQuestionColumns(t *testing.T) {
	db := newLegacyDB(t)

	require.NoError(t, Migrate(db))

	has, err := tableHasColumn(db, "users", "security_question")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = tableHasColumn(db, "users", "security_answer")
	require.NoError(t, err)
	assert.True(t, has)

	var question string
	require.NoError(t, db.Get(&question, `SELECT security_question FROM users WHERE username = 'admin'`))
	assert.NotEmpty(t, question)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newLegacyDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM orders`))
	assert.Equal(t, 2, count)
}
