package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

var (
	ErrNoTransaction     = errors.New("storage: no active transaction")
	ErrTransactionActive = errors.New("storage: transaction already active")
)

// Transactional is implemented by stores that take part in the manual
// begin/commit/rollback convention used by the admin clients.
type Transactional interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type txKey struct {
	db *bun.DB
}

type txScope struct {
	tx    bun.Tx
	owner any
	done  bool
}

// Begin opens a transaction on db and stores it in the returned context. When
// the context already carries an open transaction for the same database the
// caller joins it instead; only the owner can complete it.
func Begin(ctx context.Context, db *bun.DB, owner any) (context.Context, error) {
	if db == nil {
		return ctx, fmt.Errorf("storage: database not configured")
	}
	if scope := lookup(ctx, db); scope != nil && !scope.done {
		return ctx, nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ctx, fmt.Errorf("storage: begin transaction: %w", err)
	}
	return context.WithValue(ctx, txKey{db: db}, &txScope{tx: tx, owner: owner}), nil
}

// Commit completes the transaction when owner opened it. Joined participants
// return nil so callers can commit every store in sequence.
func Commit(ctx context.Context, db *bun.DB, owner any) error {
	scope := lookup(ctx, db)
	if scope == nil {
		return ErrNoTransaction
	}
	if scope.owner != owner || scope.done {
		return nil
	}
	scope.done = true
	if err := scope.tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction when owner opened it.
func Rollback(ctx context.Context, db *bun.DB, owner any) error {
	scope := lookup(ctx, db)
	if scope == nil {
		return ErrNoTransaction
	}
	if scope.owner != owner || scope.done {
		return nil
	}
	scope.done = true
	if err := scope.tx.Rollback(); err != nil {
		return fmt.Errorf("storage: rollback transaction: %w", err)
	}
	return nil
}

// IDB returns the active transaction for db or db itself.
func IDB(ctx context.Context, db *bun.DB) bun.IDB {
	if scope := lookup(ctx, db); scope != nil && !scope.done {
		return scope.tx
	}
	return db
}

// InTx reports whether ctx carries an open transaction for db.
func InTx(ctx context.Context, db *bun.DB) bool {
	scope := lookup(ctx, db)
	return scope != nil && !scope.done
}

func lookup(ctx context.Context, db *bun.DB) *txScope {
	if ctx == nil || db == nil {
		return nil
	}
	scope, _ := ctx.Value(txKey{db: db}).(*txScope)
	return scope
}
