// Package pgexec is the default Executor: one PostgreSQL round trip per
// statement over lib/pq. Open a fresh connection, execute, read the
// first column of the first row, close. No pooling and no retry; a slow
// or unavailable server blocks the caller for one connection attempt
// plus one statement.
package pgexec

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/tanzilli/pgauth/pkg/config"
)

// Executor implements store.Executor against PostgreSQL.
type Executor struct{}

// New returns an Executor.
func New() *Executor { return &Executor{} }

// QueryFirst implements store.Executor.
func (e *Executor) QueryFirst(ctx context.Context, conn config.Connection, statement string) (string, bool, error) {
	db, err := sql.Open("postgres", DSN(conn))
	if err != nil {
		return "", false, fmt.Errorf("opening connection: %w", err)
	}
	defer db.Close()

	// One connection, dropped when we are done.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	var value sql.NullString
	err = db.QueryRowContext(ctx, statement).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		// Also the path for INSERT statements, whose results callers
		// ignore.
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return value.String, true, nil
}

// DSN builds a lib/pq keyword/value connection string from the
// directory's connection settings, including only the parameters that
// are set.
func DSN(conn config.Connection) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+quote(value))
		}
	}
	add("host", conn.Host)
	add("port", conn.Port)
	add("dbname", conn.Database)
	add("user", conn.User)
	add("password", conn.Password)
	add("options", conn.Options)
	return strings.Join(parts, " ")
}

// quote wraps a DSN value in single quotes, escaping for lib/pq.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
