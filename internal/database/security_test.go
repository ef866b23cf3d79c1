package database

import (
	"strings"
	"testing"

	"github.com/chybatronik/goAccountFinder/internal/types"
)

func TestFindAccountsSQLInjectionProtection(t *testing.T) {
	// Every attempt must be rejected by the identifier whitelists
	injectionAttempts := []types.FindAccountsParams{
		types.NewFindAccountsParams("accounts; DROP TABLE users;", "a"),
		types.NewFindAccountsParams(`accounts" --`, "a"),
		types.NewFindAccountsParams("accounts UNION SELECT * FROM pg_shadow", "a"),
		types.NewFindAccountsParams("(SELECT 1)", "a"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "id; DROP TABLE users; --", "ASC"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "email'; UPDATE accounts SET role = 'admin'; --", "ASC"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "(SELECT CASE WHEN (1=1) THEN id ELSE id END)", "ASC"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "id UNION SELECT password FROM admin_users --", "ASC"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "1 OR 1=1", "ASC"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "id", "ASC; DROP TABLE users; --"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "id", "DESC NULLS FIRST"),
		withSort(types.NewFindAccountsParams("accounts", "a"), "id", "1"),
	}

	for _, params := range injectionAttempts {
		if _, err := ParseFindAccountsParams(params); err == nil {
			t.Errorf("expected injection attempt to be rejected: table=%q sort_by=%q sort_dir=%q",
				params.Table, params.SortBy, params.SortDir)
		}
	}
}

func TestFindAccountsValuesStayOutOfSQL(t *testing.T) {
	payloads := []string{
		"'; DROP TABLE accounts; --",
		"' OR '1'='1",
		"admin' UNION SELECT password FROM admin_users --",
		"$1",
	}

	for _, payload := range payloads {
		params := types.FindAccountsParams{
			Table:   "accounts",
			Email:   payload,
			Status:  payload,
			Role:    payload,
			Search:  payload,
			SortBy:  "email",
			SortDir: "desc",
			Limit:   "5",
			Offset:  "0",
		}

		query, err := ParseFindAccountsParams(params)
		if err != nil {
			t.Fatalf("value filters must not be validated as identifiers: %v", err)
		}

		sql, args := BuildFindAccountsQuery(query)
		if strings.Contains(sql, payload) && payload != "$1" {
			t.Errorf("payload %q leaked into SQL text: %s", payload, sql)
		}
		if strings.Contains(sql, "'") {
			t.Errorf("SQL text must not contain string literals: %s", sql)
		}
		if len(args) != 7 {
			t.Fatalf("expected 7 arguments, got %d", len(args))
		}
		if args[1] != payload || args[2] != payload {
			t.Errorf("status and role must be bound verbatim, got %v", args)
		}
	}
}

func TestBuildFindAccountsQueryUsesOnlyWhitelistedIdentifiers(t *testing.T) {
	for _, table := range AllowedTables() {
		for _, column := range AllowedSortColumns() {
			for _, dir := range []string{"asc", "desc"} {
				params := withSort(types.NewFindAccountsParams(table, ""), column, dir)
				query, err := ParseFindAccountsParams(params)
				if err != nil {
					t.Fatalf("whitelisted combination rejected: %v", err)
				}

				sql, _ := BuildFindAccountsQuery(query)
				if !strings.Contains(sql, `FROM "`+table+`"`) {
					t.Errorf("expected quoted table %q in %s", table, sql)
				}
				if !strings.Contains(sql, `ORDER BY "`+column+`" `+strings.ToUpper(dir)) {
					t.Errorf("expected ORDER BY %q %s in %s", column, dir, sql)
				}
				if strings.Contains(sql, ";") || strings.Contains(sql, "--") {
					t.Errorf("unexpected statement separator or comment in %s", sql)
				}
			}
		}
	}
}

func withSort(params types.FindAccountsParams, sortBy, sortDir string) types.FindAccountsParams {
	params.SortBy = sortBy
	params.SortDir = sortDir
	return params
}
