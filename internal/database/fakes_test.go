package database

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, "debug", "goAccountFinder", "test")
}

// fakeRows is an in-memory pgx.Rows over (id, email, created_at, role) tuples
type fakeRows struct {
	rows    [][]any
	idx     int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeRows) Close() { r.closed = true }

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			v, ok := row[i].(int64)
			if !ok {
				return fmt.Errorf("scan column %d: cannot assign %T to int64", i, row[i])
			}
			*p = v
		case *string:
			v, ok := row[i].(string)
			if !ok {
				return fmt.Errorf("scan column %d: cannot assign %T to string", i, row[i])
			}
			*p = v
		case *time.Time:
			v, ok := row[i].(time.Time)
			if !ok {
				return fmt.Errorf("scan column %d: cannot assign %T to time.Time", i, row[i])
			}
			*p = v
		default:
			return fmt.Errorf("scan column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) { return r.rows[r.idx-1], nil }

func (r *fakeRows) RawValues() [][]byte { return nil }

func (r *fakeRows) Conn() *pgx.Conn { return nil }

// fakeConn records what the finder sends and how often it is closed
type fakeConn struct {
	rows       *fakeRows
	queryErr   error
	pingErr    error
	blockQuery bool

	queryCalls int
	closeCalls int
	lastSQL    string
	lastArgs   []any
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.queryCalls++
	c.lastSQL = sql
	c.lastArgs = args
	if c.blockQuery {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return c.rows, nil
}

func (c *fakeConn) Ping(ctx context.Context) error { return c.pingErr }

func (c *fakeConn) Close(ctx context.Context) error {
	c.closeCalls++
	return nil
}

// fakeConnector hands out a fresh fakeConn per Connect
type fakeConnector struct {
	mu           sync.Mutex
	connectErr   error
	connectDelay time.Duration
	newConn      func() *fakeConn
	conns        []*fakeConn
}

func (f *fakeConnector) Connect(ctx context.Context) (Conn, error) {
	if f.connectDelay > 0 {
		time.Sleep(f.connectDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.connectErr != nil {
		f.conns = append(f.conns, nil)
		return nil, f.connectErr
	}
	conn := &fakeConn{rows: &fakeRows{}}
	if f.newConn != nil {
		conn = f.newConn()
	}
	f.conns = append(f.conns, conn)
	return conn, nil
}

func (f *fakeConnector) connectCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

func (f *fakeConnector) lastConn() *fakeConn {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.conns) == 0 {
		return nil
	}
	return f.conns[len(f.conns)-1]
}
