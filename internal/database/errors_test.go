package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsConnectionError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "bad connection", err: driver.ErrBadConn, expected: true},
		{name: "wrapped bad connection", err: fmt.Errorf("query: %w", driver.ErrBadConn), expected: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, expected: true},
		{name: "canceled", err: context.Canceled, expected: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, expected: true},
		{name: "connection does not exist", err: &pgconn.PgError{Code: "08003"}, expected: true},
		{name: "too many connections", err: &pgconn.PgError{Code: "53300"}, expected: true},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, expected: true},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, expected: true},
		{name: "query canceled", err: &pgconn.PgError{Code: "57014"}, expected: false},
		{name: "undefined table", err: &pgconn.PgError{Code: "42P01"}, expected: false},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, expected: false},
		{name: "plain error", err: errors.New("boom"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, isConnectionError(tc.err))
		})
	}
}

func TestNewBackendError(t *testing.T) {
	t.Run("connect failures are always unavailable", func(t *testing.T) {
		err := newBackendError("connect", errors.New("password authentication failed"))
		assert.True(t, err.Unavailable)
		assert.True(t, errors.Is(err, pkgerrors.ErrBackendUnavailable))
		assert.False(t, errors.Is(err, pkgerrors.ErrQueryFailed))
	})

	t.Run("query failures are query errors", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "42703", Message: "column does not exist"}
		err := newBackendError("query", cause)
		assert.False(t, err.Unavailable)
		assert.True(t, errors.Is(err, pkgerrors.ErrQueryFailed))
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "query", err.Op)
	})

	t.Run("lost connection during query is unavailable", func(t *testing.T) {
		err := newBackendError("rows", &pgconn.PgError{Code: "08006"})
		assert.True(t, err.Unavailable)
		assert.True(t, errors.Is(err, pkgerrors.ErrBackendUnavailable))
	})

	t.Run("never an invalid argument", func(t *testing.T) {
		err := newBackendError("query", errors.New("boom"))
		assert.False(t, pkgerrors.IsInvalidArgument(err))
	})
}
