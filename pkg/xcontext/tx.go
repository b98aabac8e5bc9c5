package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type txBox struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction that DB(ctx) returns until it is
// committed or rolled back. Usage mirrors a deferred rollback guard:
//
//	ctx = xcontext.WithDBTransaction(ctx)
//	defer xcontext.WithRollbackDBTransaction(ctx)
//	...
//	xcontext.WithCommitDBTransaction(ctx)
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txBox{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if box, ok := ctx.Value(txKey{}).(*txBox); ok && !box.done {
		box.tx.Commit()
		box.done = true
	}

	return ctx
}

// WithRollbackDBTransaction is a no-op after a commit, so it is safe to defer
// unconditionally.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if box, ok := ctx.Value(txKey{}).(*txBox); ok && !box.done {
		box.tx.Rollback()
		box.done = true
	}

	return ctx
}
