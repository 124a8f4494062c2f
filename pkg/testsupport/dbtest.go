package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBCounter atomic.Uint64

// NewSQLiteMemoryDB opens a private shared-cache in-memory database so
// parallel tests never observe each other's tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:shopadmin_test_%d?mode=memory&cache=shared", memoryDBCounter.Add(1))
	return sql.Open("sqlite3", name)
}

// NewBunDB returns a single-connection sqlite bun database with tables
// created for the supplied models. The database is closed on test cleanup.
func NewBunDB(t testing.TB, models ...any) *bun.DB {
	t.Helper()

	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
	return db
}
