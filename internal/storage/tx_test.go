package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/pkg/testsupport"
	"github.com/uptrace/bun"
)

type note struct {
	bun.BaseModel `bun:"table:notes,alias:n"`

	ID   int64  `bun:",pk,autoincrement"`
	Body string `bun:"body,notnull"`
}

func countNotes(t *testing.T, ctx context.Context, idb bun.IDB) int {
	t.Helper()
	count, err := idb.NewSelect().Model((*note)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count notes: %v", err)
	}
	return count
}

func TestBeginJoinsExistingTransaction(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*note)(nil))
	owner, joiner := new(int), new(int)

	txCtx, err := storage.Begin(ctx, db, owner)
	if err != nil {
		t.Fatalf("begin owner: %v", err)
	}
	joinedCtx, err := storage.Begin(txCtx, db, joiner)
	if err != nil {
		t.Fatalf("begin joiner: %v", err)
	}
	if joinedCtx != txCtx {
		t.Fatalf("expected joiner to reuse the owner's context")
	}

	if _, err := storage.IDB(joinedCtx, db).NewInsert().Model(&note{Body: "a"}).Exec(joinedCtx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := storage.Commit(joinedCtx, db, joiner); err != nil {
		t.Fatalf("joiner commit: %v", err)
	}
	if !storage.InTx(joinedCtx, db) {
		t.Fatalf("expected joiner commit to leave the transaction open")
	}
	if err := storage.Commit(joinedCtx, db, owner); err != nil {
		t.Fatalf("owner commit: %v", err)
	}
	if storage.InTx(joinedCtx, db) {
		t.Fatalf("expected owner commit to close the transaction")
	}
	if got := countNotes(t, ctx, db); got != 1 {
		t.Fatalf("expected committed row, got %d", got)
	}
}

func TestOwnerRollbackDiscardsJoinedWrites(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*note)(nil))
	owner, joiner := new(int), new(int)

	txCtx, err := storage.Begin(ctx, db, owner)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	txCtx, _ = storage.Begin(txCtx, db, joiner)
	if _, err := storage.IDB(txCtx, db).NewInsert().Model(&note{Body: "b"}).Exec(txCtx); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := storage.Rollback(txCtx, db, joiner); err != nil {
		t.Fatalf("joiner rollback: %v", err)
	}
	if err := storage.Rollback(txCtx, db, owner); err != nil {
		t.Fatalf("owner rollback: %v", err)
	}
	if err := storage.Rollback(txCtx, db, owner); err != nil {
		t.Fatalf("repeated rollback should be a no-op: %v", err)
	}
	if got := countNotes(t, ctx, db); got != 0 {
		t.Fatalf("expected rolled back rows to be gone, got %d", got)
	}
}

func TestCommitWithoutTransaction(t *testing.T) {
	db := testsupport.NewBunDB(t)
	if err := storage.Commit(context.Background(), db, new(int)); !errors.Is(err, storage.ErrNoTransaction) {
		t.Fatalf("expected ErrNoTransaction, got %v", err)
	}
}
