// Package errors provides secure error handling utilities
package errors

import (
	"errors"

	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
)

// MapFinderErrorSecure maps account lookup errors to user-facing errors.
// Driver messages, SQL and rejected values never reach the response; only the
// name of a rejected parameter and the rule it broke are reported.
func MapFinderErrorSecure(err error) *pkgerrors.AccountError {
	if err == nil {
		return nil
	}

	if accErr, ok := pkgerrors.GetAccountError(err); ok {
		return accErr
	}

	if argErr, ok := pkgerrors.GetInvalidArgument(err); ok {
		return pkgerrors.NewAccountValidationError(
			pkgerrors.ErrCodeInvalidArgument,
			"Invalid request parameter",
			argErr.Param+": "+argErr.Reason,
		)
	}

	if errors.Is(err, pkgerrors.ErrBackendUnavailable) {
		return pkgerrors.NewAccountUnavailableError("Service temporarily unavailable")
	}

	// Query failures and anything unclassified
	return pkgerrors.NewAccountQueryError("Account lookup failed")
}
