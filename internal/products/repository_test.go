package products_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/pkg/testsupport"
)

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*products.Product)(nil))

	repos := map[string]products.Repository{
		"memory": products.NewMemoryRepository(),
		"bun":    products.NewBunRepository(db),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			created, err := repo.Create(ctx, &products.Product{Code: "demo-article", Label: "Demo article", Type: "default", SiteID: "1."})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			fetched, err := repo.GetByID(ctx, created.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if fetched.Label != "Demo article" {
				t.Fatalf("unexpected label %q", fetched.Label)
			}
			records, err := repo.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("expected 1 product, got %d", len(records))
			}
			if _, err := repo.GetByCode(ctx, "unknown"); !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}
