package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/lessonplanner/internal/db"
)

// FailOnNthExecUoW makes the FailOn-th write (1-based) inside a transaction
// return Err. Reads are never counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := &db.WrappedUnitOfWork{
		DB: u.DB,
		Wrap: func(tx db.DBTX) db.DBTX {
			return &countingExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
		},
	}
	return inner.WithinTx(ctx, fn)
}

type countingExec struct {
	db.DBTX
	n      atomic.Int32
	failOn int32
	err    error
}

func (c *countingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.n.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
