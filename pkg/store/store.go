// Package store builds the SQL statements for password lookup, group
// lookup and access logging, and hands them to an Executor for a
// single-shot round trip. Statements are literal text: every external
// value is escaped before interpolation and the finished statement is
// length-checked.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tanzilli/pgauth/pkg/config"
	"github.com/tanzilli/pgauth/pkg/logging"
	"github.com/tanzilli/pgauth/pkg/sqlescape"
)

// MaxStatementLen caps every outgoing statement. A statement that would
// exceed it aborts with ErrStatementTooLong.
const MaxStatementLen = 8192

// timeFormat is the layout for log table date values.
const timeFormat = "2006-01-02 15:04:05"

// Store issues credential queries for one directory configuration.
type Store struct {
	cfg  *config.Directory
	exec Executor
}

// New returns a Store bound to a directory config and an executor.
func New(cfg *config.Directory, exec Executor) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("directory config is required")
	}
	if exec == nil {
		return nil, fmt.Errorf("executor is required")
	}
	return &Store{cfg: cfg, exec: exec}, nil
}

// safeUser returns the username case-normalized and escaped for literal
// embedding.
func (s *Store) safeUser(username string) string {
	return sqlescape.Escape(s.cfg.NormalizeUsername(username))
}

// LookupPassword fetches the stored password for username. found is
// false when the user has no row. A missing directive yields a
// ConfigError, an over-long statement ErrStatementTooLong, and an
// executor failure a StoreError.
func (s *Store) LookupPassword(ctx context.Context, username string) (stored string, found bool, err error) {
	var missing []string
	if s.cfg.PasswordTable == "" {
		missing = append(missing, "password table")
	}
	if s.cfg.PasswordField == "" {
		missing = append(missing, "password field")
	}
	if s.cfg.UsernameField == "" {
		missing = append(missing, "username field")
	}
	if len(missing) > 0 {
		return "", false, &ConfigError{Op: "password lookup", Missing: missing}
	}

	stmt := fmt.Sprintf("select %s from %s where %s='%s' %s",
		s.cfg.PasswordField, s.cfg.PasswordTable,
		s.cfg.UsernameField, s.safeUser(username), s.cfg.PasswordWhere)
	if len(stmt) > MaxStatementLen {
		return "", false, ErrStatementTooLong
	}

	value, found, err := s.exec.QueryFirst(ctx, s.cfg.Connection, stmt)
	if err != nil {
		return "", false, &StoreError{Op: "password lookup", Err: err}
	}
	return value, found, nil
}

// LookupGroup reports whether username belongs to group. Any non-null
// result row means membership.
func (s *Store) LookupGroup(ctx context.Context, group, username string) (bool, error) {
	var missing []string
	if s.cfg.GroupTable == "" {
		missing = append(missing, "group table")
	}
	if s.cfg.GroupField == "" {
		missing = append(missing, "group field")
	}
	if s.cfg.GroupUserField == "" {
		missing = append(missing, "group user field")
	}
	if len(missing) > 0 {
		return false, &ConfigError{Op: "group lookup", Missing: missing}
	}

	stmt := fmt.Sprintf("select %s from %s where %s='%s' and %s='%s' %s",
		s.cfg.GroupField, s.cfg.GroupTable,
		s.cfg.GroupUserField, s.safeUser(username),
		s.cfg.GroupField, sqlescape.Escape(group), s.cfg.GroupWhere)
	if len(stmt) > MaxStatementLen {
		return false, ErrStatementTooLong
	}

	_, found, err := s.exec.QueryFirst(ctx, s.cfg.Connection, stmt)
	if err != nil {
		return false, &StoreError{Op: "group lookup", Err: err}
	}
	return found, nil
}

// AccessEntry is one access-log row. Password holds the submission in
// the scheme's stored form, not cleartext, unless the directory stores
// cleartext passwords.
type AccessEntry struct {
	Username    string
	Password    string
	RequestLine string
	RemoteAddr  string
	Time        time.Time

	// Initial is false for internal sub-requests, which are never
	// logged.
	Initial bool
}

// LogAccess inserts an access-log row. It silently no-ops for
// sub-requests and when the required log table, username field or date
// field are not configured. An executor failure is reported to the
// operator log but never fails the request.
func (s *Store) LogAccess(ctx context.Context, entry AccessEntry) {
	if !entry.Initial {
		return
	}
	if s.cfg.LogTable == "" || s.cfg.LogUsernameField == "" || s.cfg.LogDateField == "" {
		return
	}

	fields := s.cfg.LogUsernameField + "," + s.cfg.LogDateField
	values := fmt.Sprintf("'%s','%s'", s.safeUser(entry.Username), entry.Time.Format(timeFormat))

	if s.cfg.LogAddressField != "" {
		fields += ", " + s.cfg.LogAddressField
		values += fmt.Sprintf(", '%s'", sqlescape.Escape(entry.RemoteAddr))
	}
	if s.cfg.LogPasswordField != "" {
		fields += ", " + s.cfg.LogPasswordField
		values += fmt.Sprintf(", '%s'", sqlescape.Escape(entry.Password))
	}
	if s.cfg.LogURIField != "" {
		fields += ", " + s.cfg.LogURIField
		values += fmt.Sprintf(", '%s'", sqlescape.Escape(entry.RequestLine))
	}

	stmt := fmt.Sprintf("insert into %s (%s) values(%s) ; ", s.cfg.LogTable, fields, values)
	if len(stmt) > MaxStatementLen {
		logging.App.Warn("access log statement too long, skipped", "user", entry.Username)
		return
	}

	if _, _, err := s.exec.QueryFirst(ctx, s.cfg.Connection, stmt); err != nil {
		logging.App.Warn("access log insert failed", "user", entry.Username, "error", err)
	}
}
