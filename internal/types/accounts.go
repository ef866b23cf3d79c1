// Package types provides shared types for the goAccountFinder service
package types

// Defaults applied by NewFindAccountsParams. DefaultTable is only used by
// callers that let the table be omitted.
const (
	DefaultTable   = "accounts"
	DefaultStatus  = "active"
	DefaultRole    = "user"
	DefaultSearch  = ""
	DefaultSortBy  = "created_at"
	DefaultSortDir = "DESC"
	DefaultLimit   = "50"
	DefaultOffset  = "0"
)

// FindAccountsParams is the raw filter request for an account lookup.
// Every field is untrusted; Table, SortBy and SortDir are checked against
// whitelists and Limit/Offset are parsed before any query is built.
type FindAccountsParams struct {
	Table   string
	Email   string
	Status  string
	Role    string
	Search  string
	SortBy  string
	SortDir string
	Limit   string
	Offset  string
}

// NewFindAccountsParams returns params for table and email with every other
// field set to its default.
func NewFindAccountsParams(table, email string) FindAccountsParams {
	return FindAccountsParams{
		Table:   table,
		Email:   email,
		Status:  DefaultStatus,
		Role:    DefaultRole,
		Search:  DefaultSearch,
		SortBy:  DefaultSortBy,
		SortDir: DefaultSortDir,
		Limit:   DefaultLimit,
		Offset:  DefaultOffset,
	}
}
