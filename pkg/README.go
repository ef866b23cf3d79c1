// Package pkg provides public libraries that can be imported by other projects.
//
// This package serves as the public API surface of goAccountFinder and contains:
//   - errors: the account lookup error taxonomy (invalid argument vs. backend failure)
//
// Example usage:
//
//	import "github.com/chybatronik/goAccountFinder/pkg/errors"
//
//	if errors.IsInvalidArgument(err) {
//	    accErr := errors.NewAccountValidationError(errors.ErrCodeInvalidArgument, err.Error(), "")
//	    http.Error(w, accErr.Error(), accErr.GetHTTPStatus())
//	}
package pkg
