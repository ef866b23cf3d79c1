package database

import (
	"slices"
	"strings"

	pkgerrors "github.com/chybatronik/goAccountFinder/pkg/errors"
	"github.com/jackc/pgx/v5"
)

// Table is a table the account lookup may read from. The zero value is not a
// valid table; values only come from ParseTable or the constants below.
type Table uint8

const (
	TableAccounts Table = iota + 1
	TableUsers
	TableCustomers
)

var tableNames = [...]string{
	TableAccounts:  "accounts",
	TableUsers:     "users",
	TableCustomers: "customers",
}

// SortColumn is a column the account lookup may order by.
type SortColumn uint8

const (
	SortByID SortColumn = iota + 1
	SortByEmail
	SortByCreatedAt
	SortByRole
	SortByStatus
)

var sortColumnNames = [...]string{
	SortByID:        "id",
	SortByEmail:     "email",
	SortByCreatedAt: "created_at",
	SortByRole:      "role",
	SortByStatus:    "status",
}

// SortDirection is ASC or DESC.
type SortDirection uint8

const (
	SortAscending SortDirection = iota + 1
	SortDescending
)

var sortDirectionKeywords = [...]string{
	SortAscending:  "ASC",
	SortDescending: "DESC",
}

// AllowedTables returns the whitelisted table names in declaration order
func AllowedTables() []string {
	return slices.Clone(tableNames[1:])
}

// AllowedSortColumns returns the whitelisted sort columns in declaration order
func AllowedSortColumns() []string {
	return slices.Clone(sortColumnNames[1:])
}

// ParseTable matches name exactly (case-sensitive, no trimming).
func ParseTable(name string) (Table, error) {
	for i := 1; i < len(tableNames); i++ {
		if tableNames[i] == name {
			return Table(i), nil
		}
	}
	return 0, pkgerrors.NewInvalidArgumentError("table_name", name,
		"must be one of: "+strings.Join(AllowedTables(), ", "))
}

// ParseSortColumn matches name exactly (case-sensitive, no trimming).
func ParseSortColumn(name string) (SortColumn, error) {
	for i := 1; i < len(sortColumnNames); i++ {
		if sortColumnNames[i] == name {
			return SortColumn(i), nil
		}
	}
	return 0, pkgerrors.NewInvalidArgumentError("sort_by", name,
		"must be one of: "+strings.Join(AllowedSortColumns(), ", "))
}

// ParseSortDirection accepts asc/desc in any letter case.
func ParseSortDirection(dir string) (SortDirection, error) {
	switch strings.ToUpper(dir) {
	case "ASC":
		return SortAscending, nil
	case "DESC":
		return SortDescending, nil
	}
	return 0, pkgerrors.NewInvalidArgumentError("sort_dir", dir, "must be ASC or DESC")
}

// Valid reports whether t is one of the declared tables
func (t Table) Valid() bool {
	return t >= TableAccounts && int(t) < len(tableNames)
}

func (t Table) String() string {
	if !t.Valid() {
		return ""
	}
	return tableNames[t]
}

// Identifier returns the quoted SQL identifier for the table
func (t Table) Identifier() string {
	return pgx.Identifier{t.String()}.Sanitize()
}

// Valid reports whether c is one of the declared sort columns
func (c SortColumn) Valid() bool {
	return c >= SortByID && int(c) < len(sortColumnNames)
}

func (c SortColumn) String() string {
	if !c.Valid() {
		return ""
	}
	return sortColumnNames[c]
}

// Identifier returns the quoted SQL identifier for the column
func (c SortColumn) Identifier() string {
	return pgx.Identifier{c.String()}.Sanitize()
}

// Valid reports whether d is ASC or DESC
func (d SortDirection) Valid() bool {
	return d >= SortAscending && int(d) < len(sortDirectionKeywords)
}

// String returns the SQL keyword
func (d SortDirection) String() string {
	if !d.Valid() {
		return ""
	}
	return sortDirectionKeywords[d]
}
