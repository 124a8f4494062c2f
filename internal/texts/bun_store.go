package texts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	contentNamespace  = "text"
	textTypeNamespace = "text_type"
)

// BunContentStore implements ContentStore on bun. Writes go through the
// ambient transaction when one is active for the database.
type BunContentStore struct {
	db    *bun.DB
	repo  repository.Repository[*ContentItem]
	cache storage.CacheOptions
	now   func() time.Time
}

// NewBunContentStore creates a content store without caching.
func NewBunContentStore(db *bun.DB) *BunContentStore {
	return NewBunContentStoreWithCache(db, nil, nil)
}

// NewBunContentStoreWithCache creates a content store whose read path is cached.
func NewBunContentStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunContentStore {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunContentStore{
		db:    db,
		repo:  storage.WrapWithCache(NewContentItemRepository(db), opts),
		cache: opts,
		now:   time.Now,
	}
}

func (s *BunContentStore) Begin(ctx context.Context) (context.Context, error) {
	return storage.Begin(ctx, s.db, s)
}

func (s *BunContentStore) Commit(ctx context.Context) error {
	if err := storage.Commit(ctx, s.db, s); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, contentNamespace)
}

func (s *BunContentStore) Rollback(ctx context.Context) error {
	return storage.Rollback(ctx, s.db, s)
}

func (s *BunContentStore) Get(ctx context.Context, id uuid.UUID) (*ContentItem, error) {
	if storage.InTx(ctx, s.db) {
		record := &ContentItem{}
		err := storage.IDB(ctx, s.db).NewSelect().
			Model(record).
			Where("?TableAlias.id = ?", id).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &storage.NotFoundError{Resource: "text", Key: id.String()}
		}
		if err != nil {
			return nil, storage.WrapPersistence(err, "text", "get")
		}
		return record, nil
	}
	record, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, storage.MapRepositoryError(err, "text", id.String())
	}
	return record, nil
}

func (s *BunContentStore) Save(ctx context.Context, item *ContentItem) (*ContentItem, error) {
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
			return nil, storage.WrapPersistence(err, "text", "insert")
		}
	} else {
		res, err := idb.NewUpdate().
			Model(record).
			Column("site_id", "domain", "type_id", "type", "language_id", "label", "content", "status", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, storage.WrapPersistence(err, "text", "update")
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, &storage.NotFoundError{Resource: "text", Key: record.ID.String()}
		}
	}
	if err := s.cache.Invalidate(ctx, contentNamespace); err != nil {
		return nil, fmt.Errorf("texts: invalidate cache: %w", err)
	}
	return record, nil
}

func (s *BunContentStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := storage.IDB(ctx, s.db).NewDelete().
		Model((*ContentItem)(nil)).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Exec(ctx); err != nil {
		return storage.WrapPersistence(err, "text", "delete")
	}
	return s.cache.Invalidate(ctx, contentNamespace)
}

// BunTypeStore implements TypeStore with optional caching on reads.
type BunTypeStore struct {
	db    *bun.DB
	repo  repository.Repository[*TextType]
	cache storage.CacheOptions
}

func NewBunTypeStore(db *bun.DB) *BunTypeStore {
	return NewBunTypeStoreWithCache(db, nil, nil)
}

func NewBunTypeStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunTypeStore {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunTypeStore{
		db:    db,
		repo:  storage.WrapWithCache(NewTextTypeRepository(db), opts),
		cache: opts,
	}
}

func (s *BunTypeStore) Search(ctx context.Context, domain string) ([]*TextType, error) {
	if storage.InTx(ctx, s.db) {
		var records []*TextType
		if err := storage.IDB(ctx, s.db).NewSelect().
			Model(&records).
			Where("?TableAlias.domain = ?", domain).
			OrderExpr("?TableAlias.code ASC").
			Scan(ctx); err != nil {
			return nil, storage.WrapPersistence(err, "text_type", "search")
		}
		return records, nil
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.domain = ?", domain).
				OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, storage.WrapPersistence(err, "text_type", "search")
	}
	return records, nil
}

func (s *BunTypeStore) GetByCode(ctx context.Context, domain, code string) (*TextType, error) {
	records, err := s.Search(ctx, domain)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.Code == code {
			return record, nil
		}
	}
	return nil, &storage.NotFoundError{Resource: "text_type", Key: domain + "/" + code}
}

// Save upserts record by id.
func (s *BunTypeStore) Save(ctx context.Context, record *TextType) (*TextType, error) {
	if record == nil {
		return nil, ErrTypeRequired
	}
	copied := cloneType(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, err := storage.IDB(ctx, s.db).NewInsert().
		Model(copied).
		On("CONFLICT (id) DO UPDATE").
		Set("domain = EXCLUDED.domain").
		Set("code = EXCLUDED.code").
		Set("label = EXCLUDED.label").
		Set("status = EXCLUDED.status").
		Exec(ctx); err != nil {
		return nil, storage.WrapPersistence(err, "text_type", "save")
	}
	if err := s.cache.Invalidate(ctx, textTypeNamespace); err != nil {
		return nil, fmt.Errorf("texts: invalidate cache: %w", err)
	}
	return copied, nil
}
