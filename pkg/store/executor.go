package store

import (
	"context"

	"github.com/tanzilli/pgauth/pkg/config"
)

// Executor runs one complete statement against the backing database.
// Each call is a full round trip: open a connection from conn, execute,
// read the first column of the first row, close. No pooling, no retry,
// no transaction spans two statements. INSERT results are ignored by
// callers, so found is false for statements that return no rows.
type Executor interface {
	QueryFirst(ctx context.Context, conn config.Connection, statement string) (value string, found bool, err error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, conn config.Connection, statement string) (string, bool, error)

// QueryFirst implements Executor.
func (f ExecutorFunc) QueryFirst(ctx context.Context, conn config.Connection, statement string) (string, bool, error) {
	return f(ctx, conn, statement)
}
