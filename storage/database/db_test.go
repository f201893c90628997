package database

import (
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }

// flakyDriver refuses its first `failures` connections.
type flakyDriver struct {
	mu       sync.Mutex
	failures int
}

func (d *flakyDriver) Open(string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("connection refused")
	}
	return stubConn{}, nil
}

func Test_ping(t *testing.T) {
	sql.Register("flaky", &flakyDriver{failures: 2})
	db, err := sql.Open("flaky", "")
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	defer db.Close()

	if err := ping(db); err != nil {
		t.Errorf("ping() did not wait out the first refused connections: %v", err)
	}
}
