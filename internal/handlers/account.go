// Package handlers provides HTTP request handlers for the goAccountFinder service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/errors"
	"github.com/chybatronik/goAccountFinder/internal/logging"
	"github.com/chybatronik/goAccountFinder/internal/middleware"
	"github.com/chybatronik/goAccountFinder/internal/models"
	"github.com/chybatronik/goAccountFinder/internal/types"
	"github.com/chybatronik/goAccountFinder/internal/validation"
)

// AccountService runs account lookups. *database.AccountFinder implements it.
type AccountService interface {
	FindAccounts(ctx context.Context, params types.FindAccountsParams) ([]models.Account, error)
}

// AccountHandler handles HTTP requests for account lookups
type AccountHandler struct {
	logger  *logging.Logger
	service AccountService
}

// NewAccountHandler creates a new AccountHandler instance
func NewAccountHandler(logger *logging.Logger, service AccountService) *AccountHandler {
	return &AccountHandler{
		logger:  logger,
		service: service,
	}
}

// GetAccountsResponse is the body of a successful lookup
type GetAccountsResponse struct {
	Accounts []models.Account `json:"accounts"`
	Count    int              `json:"count"`
	Limit    int64            `json:"limit"`
	Offset   int64            `json:"offset"`
}

// ValidateEmailResponse is the body of an email format check
type ValidateEmailResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// Query parameter names
const (
	paramTable   = "table"
	paramEmail   = "email"
	paramStatus  = "status"
	paramRole    = "role"
	paramSearch  = "search"
	paramSortBy  = "sort_by"
	paramSortDir = "sort_dir"
	paramLimit   = "limit"
	paramOffset  = "offset"
	paramValue   = "value"
)

// queryValue returns the parameter when present, even if empty, and def otherwise
func queryValue(query url.Values, name, def string) string {
	if !query.Has(name) {
		return def
	}
	return query.Get(name)
}

// parseFindAccountsParams maps the query string onto lookup params. Absent
// parameters take their defaults; present ones are passed through verbatim
// and validated by the finder.
func parseFindAccountsParams(query url.Values) types.FindAccountsParams {
	return types.FindAccountsParams{
		Table:   queryValue(query, paramTable, types.DefaultTable),
		Email:   queryValue(query, paramEmail, ""),
		Status:  queryValue(query, paramStatus, types.DefaultStatus),
		Role:    queryValue(query, paramRole, types.DefaultRole),
		Search:  queryValue(query, paramSearch, types.DefaultSearch),
		SortBy:  queryValue(query, paramSortBy, types.DefaultSortBy),
		SortDir: queryValue(query, paramSortDir, types.DefaultSortDir),
		Limit:   queryValue(query, paramLimit, types.DefaultLimit),
		Offset:  queryValue(query, paramOffset, types.DefaultOffset),
	}
}

// textFilters lists the free-text filters that are bound as values
func textFilters(params types.FindAccountsParams) []validation.InputField {
	return []validation.InputField{
		{Name: paramEmail, Value: params.Email, MaxLen: validation.MaxFilterLength},
		{Name: paramStatus, Value: params.Status, MaxLen: validation.MaxFilterLength},
		{Name: paramRole, Value: params.Role, MaxLen: validation.MaxFilterLength},
		{Name: paramSearch, Value: params.Search, MaxLen: validation.MaxFilterLength},
	}
}

func (h *AccountHandler) extractRequestID(r *http.Request) string {
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		return reqID
	}
	return "unknown"
}

// writeJSON writes a 200 response
func (h *AccountHandler) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", logging.FieldError, err)
	}
}

// GetAccounts handles GET /api/accounts
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	logger := h.logger.WithRequestID(h.extractRequestID(r))

	if r.Method != http.MethodGet {
		logger.Warn("Invalid HTTP method for account lookup",
			"method", r.Method,
			"expected_method", http.MethodGet,
		)
		errors.WriteMethodNotAllowedError(w, r, logger, http.MethodGet)
		return
	}

	params := parseFindAccountsParams(r.URL.Query())

	if field, err := validation.ValidateInputBatch(textFilters(params)); err != nil {
		logger.Warn("Unsafe account filter rejected",
			"param", field.Name,
			logging.FieldError, err,
		)
		errors.WriteUnsafeInputError(w, r, logger, field.Name)
		return
	}

	accounts, err := h.service.FindAccounts(r.Context(), params)
	if err != nil {
		accErr := errors.MapFinderErrorSecure(err)
		if accErr.GetHTTPStatus() >= http.StatusInternalServerError {
			logger.Error("Account lookup failed", logging.FieldError, err, logging.FieldTable, params.Table)
		} else {
			logger.Warn("Account lookup rejected", logging.FieldError, err)
		}
		errors.WriteAccountError(w, r, logger, accErr)
		return
	}

	if accounts == nil {
		accounts = []models.Account{}
	}

	// Both parsed successfully inside the finder
	limit, _ := strconv.ParseInt(params.Limit, 10, 64)
	offset, _ := strconv.ParseInt(params.Offset, 10, 64)

	h.writeJSON(w, GetAccountsResponse{
		Accounts: accounts,
		Count:    len(accounts),
		Limit:    limit,
		Offset:   offset,
	})

	middleware.AnnotateRequest(r.Context(),
		logging.FieldTable, params.Table,
		logging.FieldRowCount, len(accounts),
	)

	logger.Info("Account lookup request completed",
		logging.FieldTable, params.Table,
		logging.FieldRowCount, len(accounts),
		logging.FieldDurationMs, time.Since(startTime).Milliseconds(),
	)
}

// ValidateEmail handles GET /api/emails/validate
func (h *AccountHandler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errors.WriteMethodNotAllowedError(w, r, h.logger, http.MethodGet)
		return
	}

	value := r.URL.Query().Get(paramValue)
	h.writeJSON(w, ValidateEmailResponse{
		Value: value,
		Valid: validation.IsValidEmail(value),
	})
}
