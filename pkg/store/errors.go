package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStatementTooLong is returned when a constructed statement would
// exceed MaxStatementLen. Treated as a potential SQL truncation attack,
// never as a silent truncation.
var ErrStatementTooLong = errors.New("statement exceeds maximum length, possible sql truncation attack")

// ConfigError reports directives missing for an operation. Callers that
// can defer to another authority treat it like "not configured".
type ConfigError struct {
	Op      string
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing parameters for %s: %s", e.Op, strings.Join(e.Missing, ", "))
}

// StoreError reports a connection or execution failure from the
// executor, carrying the underlying diagnostic. Surfaced to operators
// only, never to clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
