package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// newBackendError wraps a driver error with the failing stage. Connect
// failures always count as the backend being unavailable.
func newBackendError(op string, err error) *pkgerrors.BackendError {
	return &pkgerrors.BackendError{
		Op:          op,
		Unavailable: op == "connect" || isConnectionError(err),
		Err:         err,
	}
}

// isConnectionError checks if error is a connection-related error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	// Timeouts and cancellations while talking to the server
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exceptions
			return true
		case strings.HasPrefix(pgErr.Code, "53"): // insufficient resources, including too many connections
			return true
		case pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03": // admin/crash shutdown, cannot connect now
			return true
		}
	}

	return false
}
