package settingsui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cafepos/database"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.InitDatabase(db))
	return db
}

func TestTokenEndpointsRejectGetForMutation(t *testing.T) {
	db := newTestDB(t)
	_, err := database.NextTokenNumber(db)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/token/reset", nil)
	rec := httptest.NewRecorder()
	ResetTokenHandler(db)(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/token/next", nil)
	rec = httptest.NewRecorder()
	NextTokenHandler(db)(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	// The counter is untouched by either rejected request.
	current, err := database.CurrentTokenNumber(db)
	require.NoError(t, err)
	assert.Equal(t, 1, current)
}

func TestCurrentTokenHandler(t *testing.T) {
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodGet, "/api/token/current", nil)
	rec := httptest.NewRecorder()
	CurrentTokenHandler(db)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tokenNumber": 0}`, rec.Body.String())
}
