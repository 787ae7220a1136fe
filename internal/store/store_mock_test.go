package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqlmock covers the failure paths a healthy SQLite file never produces.

func TestQueryDBSurfacesQueryError(t *testing.T) {
	db, mock := newSQLMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).WillReturnError(fmt.Errorf("disk I/O error"))

	_, err := queryDB(context.Background(), db, "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute query")
	assertSQLMock(t, mock)
}

func TestQueryDBSurfacesIterationError(t *testing.T) {
	db, mock := newSQLMock(t)
	rows := sqlmock.NewRows([]string{"n"}).
		AddRow(1).
		RowError(0, fmt.Errorf("connection reset"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT n FROM t")).WillReturnRows(rows)

	_, err := queryDB(context.Background(), db, "SELECT n FROM t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterate rows")
	assertSQLMock(t, mock)
}

func TestQueryDBNormalizesByteValues(t *testing.T) {
	db, mock := newSQLMock(t)
	rows := sqlmock.NewRows([]string{"ProductName"}).AddRow([]byte("Chai"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT ProductName FROM Products")).WillReturnRows(rows)

	result, err := queryDB(context.Background(), db, "SELECT ProductName FROM Products")
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "Chai", result.Rows[0]["ProductName"])
	assertSQLMock(t, mock)
}

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func assertSQLMock(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet())
}
