package store

import (
	"context"

	"github.com/tanzilli/pgauth/pkg/config"
)

// MemoryExecutor answers statements from an in-memory map, recording
// every statement it sees. Used by tests in place of a real database.
type MemoryExecutor struct {
	// Rows maps an exact statement to the value of its first row.
	Rows map[string]string
	// Err, when set, fails every call.
	Err error
	// Statements records each statement in execution order.
	Statements []string
}

// NewMemoryExecutor returns an executor answering from rows.
func NewMemoryExecutor(rows map[string]string) *MemoryExecutor {
	if rows == nil {
		rows = make(map[string]string)
	}
	return &MemoryExecutor{Rows: rows}
}

// QueryFirst implements Executor.
func (m *MemoryExecutor) QueryFirst(ctx context.Context, conn config.Connection, statement string) (string, bool, error) {
	m.Statements = append(m.Statements, statement)
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.Rows[statement]
	return v, ok, nil
}
