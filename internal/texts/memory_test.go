package texts

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
)

func TestMemoryContentStoreSaveAssignsIDAndUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContentStore()

	item := NewContentItem()
	item.LanguageID = "en"
	item.Type = "name"
	item.SetContent("Standard shipping")

	created, err := store.Save(ctx, item)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected id to be assigned")
	}
	if item.ID != uuid.Nil {
		t.Fatalf("expected input item to stay untouched")
	}

	created.SetContent("Standard shipping (2-3 days)")
	updated, err := store.Save(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected id to be preserved, got %s", updated.ID)
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Content != "Standard shipping (2-3 days)" {
		t.Fatalf("unexpected content %q", fetched.Content)
	}
}

func TestMemoryContentStoreSaveUnknownIDReturnsNotFound(t *testing.T) {
	store := NewMemoryContentStore()
	item := NewContentItem()
	item.ID = uuid.New()

	_, err := store.Save(context.Background(), item)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestMemoryContentStoreRollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContentStore()

	kept, err := store.Save(ctx, NewContentItem())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	txCtx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := store.Save(txCtx, NewContentItem()); err != nil {
		t.Fatalf("save in tx: %v", err)
	}
	if err := store.DeleteMany(txCtx, []uuid.UUID{kept.ID}); err != nil {
		t.Fatalf("delete in tx: %v", err)
	}
	if err := store.Rollback(txCtx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	items, _ := store.List(ctx)
	if len(items) != 1 || items[0].ID != kept.ID {
		t.Fatalf("expected only the seeded item after rollback, got %+v", items)
	}
	if err := store.Commit(ctx); !errors.Is(err, storage.ErrNoTransaction) {
		t.Fatalf("expected commit without begin to fail, got %v", err)
	}
}

func TestMemoryTypeStoreSearchFiltersByDomain(t *testing.T) {
	store := NewMemoryTypeStore(
		&TextType{Domain: domain.DomainService, Code: "short"},
		&TextType{Domain: domain.DomainService, Code: "name"},
		&TextType{Domain: domain.DomainProduct, Code: "name"},
	)

	records, err := store.Search(context.Background(), domain.DomainService)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(records) != 2 || records[0].Code != "name" || records[1].Code != "short" {
		t.Fatalf("unexpected records %+v", records)
	}

	if _, err := store.GetByCode(context.Background(), domain.DomainService, "long"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found for missing code, got %v", err)
	}
}

func TestMemoryContentStoreRollbackDiscardsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContentStore()

	txCtx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	other := NewContentItem()
	other.LanguageID = "de"
	other.Type = "name"
	other.SetContent("Abholung")
	if _, err := store.Save(ctx, other); err != nil {
		t.Fatalf("save outside transaction: %v", err)
	}
	if _, err := store.Begin(ctx); !errors.Is(err, storage.ErrTransactionActive) {
		t.Fatalf("expected second writer to be refused a transaction, got %v", err)
	}

	if err := store.Rollback(txCtx); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected rollback to restore the empty snapshot, got %d items", len(items))
	}
}
