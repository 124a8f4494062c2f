package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-shop-admin/internal/stock"
	"github.com/goliatone/go-shop-admin/pkg/testsupport"
	"github.com/google/uuid"
)

func TestStores(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunDB(t, (*stock.StockItem)(nil))

	stores := map[string]stock.Store{
		"memory": stock.NewMemoryStore(),
		"bun":    stock.NewBunStore(db),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			productID := uuid.New()
			level := 12
			back := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

			item := stock.NewStockItem(productID, "1.")
			item.Type = "warehouse"
			item.TypeID = uuid.New()
			item.StockLevel = &level
			item.DateBack = &back
			saved, err := store.Save(ctx, item)
			if err != nil {
				t.Fatalf("save: %v", err)
			}

			unlimited := stock.NewStockItem(productID, "1.")
			unlimited.Type = "default"
			unlimited.TypeID = uuid.New()
			if _, err := store.Save(ctx, unlimited); err != nil {
				t.Fatalf("save unlimited: %v", err)
			}

			items, err := store.FindByProduct(ctx, productID)
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if len(items) != 2 || items[0].Type != "default" || items[0].StockLevel != nil {
				t.Fatalf("unexpected items %+v", items)
			}
			if items[1].StockLevel == nil || *items[1].StockLevel != 12 {
				t.Fatalf("expected stock level 12, got %v", items[1].StockLevel)
			}

			txCtx, err := store.Begin(ctx)
			if err != nil {
				t.Fatalf("begin: %v", err)
			}
			if err := store.DeleteMany(txCtx, []uuid.UUID{saved.ID}); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := store.Rollback(txCtx); err != nil {
				t.Fatalf("rollback: %v", err)
			}
			items, _ = store.FindByProduct(ctx, productID)
			if len(items) != 2 {
				t.Fatalf("expected rollback to restore deleted item, got %d", len(items))
			}
		})
	}
}
