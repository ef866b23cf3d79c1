package handlers

import (
	"net/http"

	"github.com/chybatronik/goAccountFinder/internal/logging"
	"github.com/chybatronik/goAccountFinder/internal/middleware"
)

// Route paths
const (
	PathAccounts      = "/api/accounts"
	PathValidateEmail = "/api/emails/validate"
	PathHealth        = "/health"
)

// RouterOptions configures NewRouter
type RouterOptions struct {
	Logger            *logging.Logger
	Accounts          AccountService
	Health            *HealthHandler
	RequestsPerSecond float64 // per client IP, 0 disables rate limiting
	Burst             int
	Done              <-chan struct{} // stops background middleware work; nil runs none
}

// NewRouter registers the routes and wraps them in the middleware chain:
// request ID, access log, rate limit, panic recovery.
func NewRouter(opts RouterOptions) http.Handler {
	accountHandler := NewAccountHandler(opts.Logger, opts.Accounts)

	mux := http.NewServeMux()
	mux.HandleFunc(PathAccounts, accountHandler.GetAccounts)
	mux.HandleFunc(PathValidateEmail, accountHandler.ValidateEmail)
	if opts.Health != nil {
		mux.Handle(PathHealth, opts.Health)
	}

	handler := http.Handler(mux)
	handler = middleware.NewErrorHandler(opts.Logger, handler)
	handler = middleware.SecurityRateLimit(opts.Logger, opts.RequestsPerSecond, opts.Burst, opts.Done)(handler)
	handler = middleware.NewLoggingMiddleware(opts.Logger, handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler
}
