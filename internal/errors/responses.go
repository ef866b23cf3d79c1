package errors

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chybatronik/goAccountFinder/internal/logging"
	"github.com/chybatronik/goAccountFinder/internal/validation"
	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
)

// RequestIDHeader carries the request ID set by the request ID middleware
const RequestIDHeader = "X-Request-ID"

const maxMessageLength = 200

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// writeSecureErrorResponse writes a secure error response
func writeSecureErrorResponse(w http.ResponseWriter, statusCode int, code, message, details string) {
	// NEVER include internal details in user-facing errors
	response := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.Encode(response)
}

// writeSecureErrorResponseWithRequest writes a secure error response and logs it with request context
func writeSecureErrorResponseWithRequest(w http.ResponseWriter, r *http.Request, logger *logging.Logger, statusCode int, code, message, details string) {
	if logger != nil {
		logger.WithRequestID(w.Header().Get(RequestIDHeader)).Warn("API error response",
			logging.FieldHTTPStatus, statusCode,
			"code", code,
			logging.FieldHTTPMethod, r.Method,
			logging.FieldHTTPPath, r.URL.Path,
		)
	}

	writeSecureErrorResponse(w, statusCode, code, message, details)
}

// WriteAccountError writes a mapped account error with its HTTP status
func WriteAccountError(w http.ResponseWriter, r *http.Request, logger *logging.Logger, accErr *pkgerrors.AccountError) {
	if accErr == nil {
		WriteInternalError(w, r, logger)
		return
	}
	status := accErr.GetHTTPStatus()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	writeSecureErrorResponseWithRequest(w, r, logger, status, accErr.Code,
		sanitizeErrorMessage(accErr.Message), sanitizeErrorMessage(accErr.Details))
}

// WriteUnsafeInputError writes a 400 naming the parameter that failed text safety checks
func WriteUnsafeInputError(w http.ResponseWriter, r *http.Request, logger *logging.Logger, param string) {
	writeSecureErrorResponseWithRequest(w, r, logger, http.StatusBadRequest,
		pkgerrors.ErrCodeUnsafeInput, "Invalid input characters detected", sanitizeErrorMessage(param))
}

// WriteMethodNotAllowedError writes a 405 and the Allow header
func WriteMethodNotAllowedError(w http.ResponseWriter, r *http.Request, logger *logging.Logger, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeSecureErrorResponseWithRequest(w, r, logger, http.StatusMethodNotAllowed,
		"METHOD_NOT_ALLOWED", "Method not allowed", "")
}

// WriteRateLimitError writes a rate limit error response (429 Too Many Requests)
func WriteRateLimitError(w http.ResponseWriter, r *http.Request, logger *logging.Logger) {
	w.Header().Set("Retry-After", "60")
	writeSecureErrorResponseWithRequest(w, r, logger, http.StatusTooManyRequests,
		"RATE_LIMIT_EXCEEDED", "Too many requests", "")
}

// WriteInternalError writes an internal server error response (500 Internal Server Error)
func WriteInternalError(w http.ResponseWriter, r *http.Request, logger *logging.Logger) {
	// Generic message for internal errors to avoid information leakage
	writeSecureErrorResponseWithRequest(w, r, logger, http.StatusInternalServerError,
		"INTERNAL_ERROR", "Internal server error", "")
}

// sanitizeErrorMessage removes potentially dangerous information from error messages
func sanitizeErrorMessage(message string) string {
	lower := strings.ToLower(message)

	dangerousTerms := []string{
		"pg_", "sqlstate", "stack trace", "panic", "goroutine",
		"select ", "insert ", "update ", "delete ", "drop ",
		"file:", "at line", "in function",
	}
	for _, term := range dangerousTerms {
		if strings.Contains(lower, term) {
			return "Request failed"
		}
	}

	return strings.TrimSpace(validation.TruncateString(message, maxMessageLength))
}
