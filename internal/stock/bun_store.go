package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const stockTypeNamespace = "stock_type"

func NewStockTypeRepository(db *bun.DB) repository.Repository[*StockType] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*StockType]{
		NewRecord: func() *StockType { return &StockType{} },
		GetID: func(t *StockType) uuid.UUID {
			return t.ID
		},
		SetID: func(t *StockType, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(t *StockType) string {
			return t.Code
		},
	})
}

// BunStore implements Store on bun.
type BunStore struct {
	db  *bun.DB
	now func() time.Time
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db, now: time.Now}
}

func (s *BunStore) Begin(ctx context.Context) (context.Context, error) {
	return storage.Begin(ctx, s.db, s)
}

func (s *BunStore) Commit(ctx context.Context) error {
	return storage.Commit(ctx, s.db, s)
}

func (s *BunStore) Rollback(ctx context.Context) error {
	return storage.Rollback(ctx, s.db, s)
}

func (s *BunStore) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockItem, error) {
	var items []*StockItem
	if err := storage.IDB(ctx, s.db).NewSelect().
		Model(&items).
		Where("?TableAlias.product_id = ?", productID).
		OrderExpr("?TableAlias.type ASC").
		Scan(ctx); err != nil {
		return nil, storage.WrapPersistence(err, "stock", "find")
	}
	return items, nil
}

func (s *BunStore) Save(ctx context.Context, item *StockItem) (*StockItem, error) {
	if item == nil {
		return nil, ErrItemRequired
	}
	record := cloneItem(item)
	now := s.now().UTC()
	record.UpdatedAt = now
	idb := storage.IDB(ctx, s.db)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
		record.CreatedAt = now
		if _, err := idb.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, storage.WrapPersistence(err, "stock", "insert")
		}
		return record, nil
	}

	res, err := idb.NewUpdate().
		Model(record).
		Column("product_id", "site_id", "type_id", "type", "stock_level", "date_back", "timeframe", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, storage.WrapPersistence(err, "stock", "update")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, &storage.NotFoundError{Resource: "stock", Key: record.ID.String()}
	}
	return record, nil
}

func (s *BunStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := storage.IDB(ctx, s.db).NewDelete().
		Model((*StockItem)(nil)).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Exec(ctx); err != nil {
		return storage.WrapPersistence(err, "stock", "delete")
	}
	return nil
}

// BunTypeStore implements TypeStore with optional caching.
type BunTypeStore struct {
	db    *bun.DB
	repo  repository.Repository[*StockType]
	cache storage.CacheOptions
}

func NewBunTypeStore(db *bun.DB) *BunTypeStore {
	return NewBunTypeStoreWithCache(db, nil, nil)
}

func NewBunTypeStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunTypeStore {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunTypeStore{
		db:    db,
		repo:  storage.WrapWithCache(NewStockTypeRepository(db), opts),
		cache: opts,
	}
}

func (s *BunTypeStore) List(ctx context.Context) ([]*StockType, error) {
	if storage.InTx(ctx, s.db) {
		var records []*StockType
		if err := storage.IDB(ctx, s.db).NewSelect().
			Model(&records).
			OrderExpr("?TableAlias.code ASC").
			Scan(ctx); err != nil {
			return nil, storage.WrapPersistence(err, "stock_type", "list")
		}
		return records, nil
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, storage.WrapPersistence(err, "stock_type", "list")
	}
	return records, nil
}

func (s *BunTypeStore) Save(ctx context.Context, record *StockType) (*StockType, error) {
	if record == nil {
		return nil, ErrTypeRequired
	}
	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, err := storage.IDB(ctx, s.db).NewInsert().
		Model(&copied).
		On("CONFLICT (id) DO UPDATE").
		Set("code = EXCLUDED.code").
		Set("label = EXCLUDED.label").
		Set("status = EXCLUDED.status").
		Exec(ctx); err != nil {
		return nil, storage.WrapPersistence(err, "stock_type", "save")
	}
	if err := s.cache.Invalidate(ctx, stockTypeNamespace); err != nil {
		return nil, fmt.Errorf("stock: invalidate cache: %w", err)
	}
	return &copied, nil
}
