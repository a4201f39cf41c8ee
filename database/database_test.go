package database

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory database with the schema and seed data
// applied. A single connection is forced so every query sees the same
// in-memory store.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitDatabase(db))
	return db
}

func productIDByName(t *testing.T, db *sqlx.DB, name string) int {
	t.Helper()
	var id int
	require.NoError(t, db.Get(&id, `SELECT id FROM products WHERE name = ?`, name))
	return id
}

func productStock(t *testing.T, db *sqlx.DB, id int) int {
	t.Helper()
	var stock int
	require.NoError(t, db.Get(&stock, `SELECT stock FROM products WHERE id = ?`, id))
	return stock
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}
