package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/logging"
)

type annotationsKey struct{}

// requestAnnotations collects key/value pairs handlers attach to the access log line
type requestAnnotations struct {
	mu    sync.Mutex
	attrs []any
}

// AnnotateRequest adds key/value pairs to the access log entry of the request
// carried by ctx. It is a no-op outside the logging middleware.
func AnnotateRequest(ctx context.Context, args ...any) {
	ann, ok := ctx.Value(annotationsKey{}).(*requestAnnotations)
	if !ok {
		return
	}
	ann.mu.Lock()
	ann.attrs = append(ann.attrs, args...)
	ann.mu.Unlock()
}

func (a *requestAnnotations) snapshot() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.attrs...)
}

// LoggingMiddleware writes one access log entry per request, including the
// response size and whatever the handler attached with AnnotateRequest
type LoggingMiddleware struct {
	next   http.Handler
	logger *logging.Logger
}

func NewLoggingMiddleware(logger *logging.Logger, next http.Handler) *LoggingMiddleware {
	return &LoggingMiddleware{
		next:   next,
		logger: logger,
	}
}

func (lm *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	wrapped := NewResponseWriter(w)
	ann := &requestAnnotations{}

	lm.next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), annotationsKey{}, ann)))

	args := append([]any{logging.FieldBytes, wrapped.BytesWritten()}, ann.snapshot()...)
	lm.logger.Request(
		GetRequestID(r.Context()),
		r.Method,
		r.URL.Path,
		wrapped.StatusCode(),
		time.Since(start).Milliseconds(),
		args...,
	)
}
