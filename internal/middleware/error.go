package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/chybatronik/goAccountFinder/internal/errors"
	"github.com/chybatronik/goAccountFinder/internal/logging"
)

// ErrorHandler recovers panics from the wrapped handler and answers with a
// generic 500 when nothing has been sent yet.
type ErrorHandler struct {
	next   http.Handler
	logger *logging.Logger
}

// NewErrorHandler creates a new error handler middleware
func NewErrorHandler(logger *logging.Logger, next http.Handler) *ErrorHandler {
	return &ErrorHandler{
		next:   next,
		logger: logger,
	}
}

// ServeHTTP implements the http.Handler interface with panic recovery
func (eh *ErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wrapped := NewResponseWriter(w)

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}

		logger := eh.logger.WithRequestID(GetRequestID(r.Context()))
		logger.Error("Panic recovered in error handler",
			logging.FieldError, fmt.Sprint(rec),
			logging.FieldHTTPPath, r.URL.Path,
			"stack", string(debug.Stack()),
		)

		if wrapped.HeaderWritten() {
			logger.Warn("Skipping error response, headers already sent",
				logging.FieldHTTPStatus, wrapped.StatusCode())
			return
		}
		errors.WriteInternalError(wrapped, r, logger)
	}()

	eh.next.ServeHTTP(wrapped, r)
}
