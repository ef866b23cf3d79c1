package middleware

import (
	"context"
	"net/http"

	"github.com/chybatronik/goAccountFinder/internal/validation"
	"github.com/google/uuid"
)

// RequestIDKey is the context key for request ID
type RequestIDKey string

const (
	// RequestIDContextKey is the context key for storing request ID
	RequestIDContextKey RequestIDKey = "req_id"
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

// GenerateRequestID returns a random UUID
func GenerateRequestID() string {
	return uuid.NewString()
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return reqID
	}
	return ""
}

// SetRequestID adds request ID to context
func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, reqID)
}

// acceptableRequestID reports whether a client supplied ID can be echoed and logged
func acceptableRequestID(reqID string) bool {
	return reqID != "" && validation.ValidateFieldSecurity(reqID, RequestIDHeader, maxRequestIDLength) == nil
}

// RequestIDMiddleware ensures request ID is present and adds it to context
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if !acceptableRequestID(reqID) {
			reqID = GenerateRequestID()
		}

		// Echo for client correlation
		w.Header().Set(RequestIDHeader, reqID)

		next.ServeHTTP(w, r.WithContext(SetRequestID(r.Context(), reqID)))
	})
}
