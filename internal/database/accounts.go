package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/logging"
	"github.com/chybatronik/goAccountFinder/internal/models"
	"github.com/chybatronik/goAccountFinder/internal/types"
	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
)

// Performance constants for account lookups
const (
	// Default timeout for one lookup, connect included
	DefaultOperationTimeout = 5 * time.Second
	// Performance warning threshold
	PerformanceWarningThreshold = 100 * time.Millisecond
	// Critical performance threshold
	PerformanceCriticalThreshold = 180 * time.Millisecond
	// Upper bound for releasing a connection once the lookup is over
	closeTimeout = time.Second
)

// AccountQuery is a fully validated lookup. Identifier fields are closed
// enumerations so nothing outside the whitelists can reach the SQL text.
type AccountQuery struct {
	Table   Table
	SortBy  SortColumn
	SortDir SortDirection
	Email   string
	Status  string
	Role    string
	Search  string
	Limit   int64
	Offset  int64
}

// ParseFindAccountsParams validates table, sort column, sort direction, limit
// and offset in that order. It performs no I/O.
func ParseFindAccountsParams(params types.FindAccountsParams) (AccountQuery, error) {
	table, err := ParseTable(params.Table)
	if err != nil {
		return AccountQuery{}, err
	}

	sortBy, err := ParseSortColumn(params.SortBy)
	if err != nil {
		return AccountQuery{}, err
	}

	sortDir, err := ParseSortDirection(params.SortDir)
	if err != nil {
		return AccountQuery{}, err
	}

	limit, err := parseNonNegative("limit", params.Limit)
	if err != nil {
		return AccountQuery{}, err
	}

	offset, err := parseNonNegative("offset", params.Offset)
	if err != nil {
		return AccountQuery{}, err
	}

	return AccountQuery{
		Table:   table,
		SortBy:  sortBy,
		SortDir: sortDir,
		Email:   params.Email,
		Status:  params.Status,
		Role:    params.Role,
		Search:  params.Search,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func parseNonNegative(param, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, pkgerrors.NewInvalidArgumentError(param, value, "must be a base-10 integer")
	}
	if n < 0 {
		return 0, pkgerrors.NewInvalidArgumentError(param, value, "must be >= 0")
	}
	return n, nil
}

// BuildFindAccountsQuery renders the lookup SQL and its positional arguments:
// email pattern, status, role, search pattern (twice), limit, offset.
func BuildFindAccountsQuery(q AccountQuery) (string, []any) {
	sql := fmt.Sprintf(
		"SELECT id, email, created_at, role FROM %s "+
			"WHERE email LIKE $1 AND status = $2 AND role = $3 "+
			"AND (email LIKE $4 OR CAST(id AS TEXT) LIKE $5) "+
			"ORDER BY %s %s LIMIT $6 OFFSET $7",
		q.Table.Identifier(), q.SortBy.Identifier(), q.SortDir.String())

	searchPattern := containsPattern(q.Search)
	args := []any{
		containsPattern(q.Email),
		q.Status,
		q.Role,
		searchPattern,
		searchPattern,
		q.Limit,
		q.Offset,
	}
	return sql, args
}

// containsPattern wraps value for a substring LIKE match. LIKE wildcards in
// value are passed through unescaped.
func containsPattern(value string) string {
	return "%" + value + "%"
}

// AccountFinder runs account lookups, one dedicated connection per call
type AccountFinder struct {
	connector Connector
	logger    *logging.Logger
	timeout   time.Duration
}

// NewAccountFinder creates an AccountFinder. A nil logger falls back to a
// JSON logger on stdout and a non-positive timeout to DefaultOperationTimeout.
func NewAccountFinder(connector Connector, logger *logging.Logger, timeout time.Duration) *AccountFinder {
	if logger == nil {
		logger = logging.NewStructuredLogger(logging.LevelInfo, "goAccountFinder", "database")
	}
	if timeout <= 0 {
		timeout = DefaultOperationTimeout
	}
	return &AccountFinder{
		connector: connector,
		logger:    logger,
		timeout:   timeout,
	}
}

// FindAccountsAdvanced validates params and runs one lookup over a fresh connection
func FindAccountsAdvanced(ctx context.Context, connector Connector, params types.FindAccountsParams) ([]models.Account, error) {
	return NewAccountFinder(connector, nil, DefaultOperationTimeout).FindAccounts(ctx, params)
}

// FindAccounts validates params, then connects, queries and returns every row.
// Validation failures return an InvalidArgumentError before any connection is
// attempted; driver failures return a BackendError. The connection is closed
// on every path once it was opened.
func (f *AccountFinder) FindAccounts(ctx context.Context, params types.FindAccountsParams) ([]models.Account, error) {
	query, err := ParseFindAccountsParams(params)
	if err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	sql, args := BuildFindAccountsQuery(query)

	connectStart := time.Now()
	conn, err := f.connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", newBackendError("connect", err))
	}
	defer f.release(ctx, conn)
	connectDuration := time.Since(connectStart)

	// Thresholds apply to the query alone; connecting is reported separately
	start := time.Now()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", query.Table, newBackendError("query", err))
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Email, &account.CreatedAt, &account.Role); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", newBackendError("scan", err))
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", newBackendError("rows", err))
	}

	f.logPerformanceMetrics(query.Table, len(accounts), time.Since(start), connectDuration)

	return accounts, nil
}

// release closes conn even when ctx has already expired
func (f *AccountFinder) release(ctx context.Context, conn Conn) {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()

	if err := conn.Close(closeCtx); err != nil {
		f.logger.Debug("database: failed to close connection", logging.FieldError, err)
	}
}

// logPerformanceMetrics logs query latency against the warning and critical
// thresholds. Connect time is logged alongside but never raises the level.
func (f *AccountFinder) logPerformanceMetrics(table Table, rowCount int, duration, connectDuration time.Duration) {
	args := []any{
		logging.FieldOperation, "FindAccounts",
		logging.FieldTable, table.String(),
		logging.FieldRowCount, rowCount,
		logging.FieldDurationMs, duration.Milliseconds(),
		logging.FieldConnectMs, connectDuration.Milliseconds(),
	}

	switch {
	case duration > PerformanceCriticalThreshold:
		f.logger.Error("Account lookup performance critical",
			append(args, "threshold_ms", PerformanceCriticalThreshold.Milliseconds(), "performance_level", "critical")...)
	case duration > PerformanceWarningThreshold:
		f.logger.Warn("Account lookup performance warning",
			append(args, "threshold_ms", PerformanceWarningThreshold.Milliseconds(), "performance_level", "warning")...)
	default:
		f.logger.Info("Account lookup performance metric",
			append(args, "performance_level", "optimal")...)
	}
}
