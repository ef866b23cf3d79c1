package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/chybatronik/goAccountFinder/internal/config"
	"github.com/jackc/pgx/v5"
)

// Conn is the part of a database connection the account lookup needs.
// *pgx.Conn satisfies it.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connector opens a dedicated connection per call. There is no pooling:
// every lookup connects, runs one query and closes.
type Connector interface {
	Connect(ctx context.Context) (Conn, error)
}

// PgConnector connects to PostgreSQL with pgx
type PgConnector struct {
	connConfig *pgx.ConnConfig
}

// ConnectionString builds a postgres URL from the database config. User,
// password and database name are escaped so any characters are allowed.
func ConnectionString(db config.DatabaseConfig) string {
	query := url.Values{}
	query.Set("sslmode", db.SSLMode)
	query.Set("connect_timeout", strconv.Itoa(db.ConnectTimeout))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// NewPgConnector parses the database config once; Connect reuses it
func NewPgConnector(db config.DatabaseConfig) (*PgConnector, error) {
	connConfig, err := pgx.ParseConfig(ConnectionString(db))
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	return &PgConnector{connConfig: connConfig}, nil
}

// Connect opens a new connection. The caller owns it and must Close it.
func (c *PgConnector) Connect(ctx context.Context) (Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, c.connConfig.Copy())
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// ValidateConnection opens a connection, pings and closes it
func ValidateConnection(ctx context.Context, connector Connector) error {
	if connector == nil {
		return fmt.Errorf("connector is nil")
	}

	conn, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
