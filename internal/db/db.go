package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Placeholder returns the bind parameter for position n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Open connects to the local store database. postgres:// URLs use lib/pq;
// anything else is treated as a SQLite file path (or ":memory:").
func Open(url string) (*sql.DB, Dialect, error) {
	dialect := SQLite
	dsn := url
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialect = Postgres
	} else if url != ":memory:" && !strings.Contains(url, "?") {
		dsn = url + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open local store: %w", err)
	}
	if dialect == SQLite {
		// One writer; also keeps a :memory: database alive across calls.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("connect to local store: %w", err)
	}
	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, "", err
	}
	log.Printf("Local store ready (%s)", dialect)
	return conn, dialect, nil
}

// Migrate creates the key/value table used for durable client state.
func Migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS local_storage (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate local_storage: %w", err)
	}
	return nil
}
