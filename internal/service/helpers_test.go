package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func ptr[T any](v T) *T { return &v }

func existsRow(v bool) *sqlmock.Rows { return sqlmock.NewRows([]string{"e"}).AddRow(v) }

func nowUTC() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
