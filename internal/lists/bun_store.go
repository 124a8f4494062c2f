package lists

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const listTypeNamespace = "service_list_type"

// BunLinkStore implements LinkStore on bun.
type BunLinkStore struct {
	db   *bun.DB
	refs texts.ContentStore
	now  func() time.Time
}

// NewBunLinkStore constructs the store. refs is used when Save is asked to
// populate ref items and should share db.
func NewBunLinkStore(db *bun.DB, refs texts.ContentStore) *BunLinkStore {
	return &BunLinkStore{db: db, refs: refs, now: time.Now}
}

func (s *BunLinkStore) Begin(ctx context.Context) (context.Context, error) {
	return storage.Begin(ctx, s.db, s)
}

func (s *BunLinkStore) Commit(ctx context.Context) error {
	return storage.Commit(ctx, s.db, s)
}

func (s *BunLinkStore) Rollback(ctx context.Context) error {
	return storage.Rollback(ctx, s.db, s)
}

func (s *BunLinkStore) FindByParent(ctx context.Context, parentID uuid.UUID, domain string) ([]*LinkItem, error) {
	var links []*LinkItem
	if err := storage.IDB(ctx, s.db).NewSelect().
		Model(&links).
		Relation("RefItem").
		Where("?TableAlias.parent_id = ?", parentID).
		Where("?TableAlias.domain = ?", domain).
		OrderExpr("?TableAlias.position ASC").
		Scan(ctx); err != nil {
		return nil, storage.WrapPersistence(err, "service_list", "find")
	}
	for _, link := range links {
		if link.RefItem != nil && link.RefItem.ID == uuid.Nil {
			link.RefItem = nil
		}
	}
	return links, nil
}

func (s *BunLinkStore) Save(ctx context.Context, item *LinkItem, populateRef bool) (*LinkItem, error) {
	if item == nil {
		return nil, ErrLinkRequired
	}
	record := cloneLink(item)
	if populateRef && record.RefItem != nil {
		if s.refs == nil {
			return nil, ErrRefStoreMissing
		}
		ref, err := s.refs.Save(ctx, record.RefItem)
		if err != nil {
			return nil, err
		}
		record.RefItem = ref
		record.RefID = ref.ID
	}

	now := s.now().UTC()
	record.UpdatedAt = now
	idb := storage.IDB(ctx, s.db)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
		record.CreatedAt = now
		if _, err := idb.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, storage.WrapPersistence(err, "service_list", "insert")
		}
	} else {
		res, err := idb.NewUpdate().
			Model(record).
			Column("parent_id", "site_id", "domain", "type_id", "type", "ref_id", "position", "status", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return nil, storage.WrapPersistence(err, "service_list", "update")
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return nil, &storage.NotFoundError{Resource: "service_list", Key: record.ID.String()}
		}
	}

	if !populateRef {
		record.RefItem = nil
	}
	return record, nil
}

func (s *BunLinkStore) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := storage.IDB(ctx, s.db).NewDelete().
		Model((*LinkItem)(nil)).
		Where("?TableAlias.id IN (?)", bun.In(ids)).
		Exec(ctx); err != nil {
		return storage.WrapPersistence(err, "service_list", "delete")
	}
	return nil
}

// BunTypeStore implements TypeStore with optional caching.
type BunTypeStore struct {
	db    *bun.DB
	repo  repository.Repository[*ListType]
	cache storage.CacheOptions
}

func NewBunTypeStore(db *bun.DB) *BunTypeStore {
	return NewBunTypeStoreWithCache(db, nil, nil)
}

func NewBunTypeStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunTypeStore {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunTypeStore{
		db:    db,
		repo:  storage.WrapWithCache(NewListTypeRepository(db), opts),
		cache: opts,
	}
}

func (s *BunTypeStore) FindByCode(ctx context.Context, code, domain string) (*ListType, error) {
	apply := func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.code = ?", code).
			Where("?TableAlias.domain = ?", domain)
	}

	var records []*ListType
	if storage.InTx(ctx, s.db) {
		if err := apply(storage.IDB(ctx, s.db).NewSelect().Model(&records)).Limit(1).Scan(ctx); err != nil {
			return nil, storage.WrapPersistence(err, "service_list_type", "find")
		}
	} else {
		found, _, err := s.repo.List(ctx,
			repository.SelectRawProcessor(apply),
			repository.SelectPaginate(1, 0),
		)
		if err != nil {
			return nil, storage.WrapPersistence(err, "service_list_type", "find")
		}
		records = found
	}
	if len(records) == 0 {
		return nil, &storage.NotFoundError{Resource: "service_list_type", Key: fmt.Sprintf("%s/%s", domain, code)}
	}
	return records[0], nil
}

func (s *BunTypeStore) Save(ctx context.Context, record *ListType) (*ListType, error) {
	if record == nil {
		return nil, ErrListTypeRequired
	}
	copied := cloneListType(record)
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
		return nil, storage.WrapPersistence(err, "service_list_type", "save")
	}
	if err := s.cache.Invalidate(ctx, listTypeNamespace); err != nil {
		return nil, fmt.Errorf("lists: invalidate cache: %w", err)
	}
	return copied, nil
}
