package lists

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/google/uuid"
)

// MemoryLinkStore keeps links in memory and loads ref items from refs.
// It is single-writer while a transaction is open; see storage.Snapshot.
type MemoryLinkStore struct {
	mu       sync.RWMutex
	links    map[uuid.UUID]*LinkItem
	refs     texts.ContentStore
	snapshot storage.Snapshot[uuid.UUID, *LinkItem]
	now      func() time.Time
}

// NewMemoryLinkStore constructs the store. refs may be nil when ref items are
// never needed.
func NewMemoryLinkStore(refs texts.ContentStore) *MemoryLinkStore {
	return &MemoryLinkStore{
		links: make(map[uuid.UUID]*LinkItem),
		refs:  refs,
		now:   time.Now,
	}
}

func (m *MemoryLinkStore) Begin(ctx context.Context) (context.Context, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ctx, m.snapshot.Begin(m.links, cloneLink)
}

func (m *MemoryLinkStore) Commit(context.Context) error {
	return m.snapshot.Commit()
}

func (m *MemoryLinkStore) Rollback(context.Context) error {
	saved, err := m.snapshot.Rollback()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.links = saved
	m.mu.Unlock()
	return nil
}

func (m *MemoryLinkStore) FindByParent(ctx context.Context, parentID uuid.UUID, domain string) ([]*LinkItem, error) {
	m.mu.RLock()
	out := make([]*LinkItem, 0)
	for _, link := range m.links {
		if link.ParentID != parentID || link.Domain != domain {
			continue
		}
		out = append(out, cloneLink(link))
	}
	m.mu.RUnlock()

	sortLinks(out)
	if m.refs == nil {
		return out, nil
	}
	for _, link := range out {
		ref, err := m.refs.Get(ctx, link.RefID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		link.RefItem = ref
	}
	return out, nil
}

func (m *MemoryLinkStore) Save(ctx context.Context, item *LinkItem, populateRef bool) (*LinkItem, error) {
	if item == nil {
		return nil, ErrLinkRequired
	}
	record := cloneLink(item)
	if populateRef && record.RefItem != nil {
		if m.refs == nil {
			return nil, ErrRefStoreMissing
		}
		ref, err := m.refs.Save(ctx, record.RefItem)
		if err != nil {
			return nil, err
		}
		record.RefItem = ref
		record.RefID = ref.ID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
		record.CreatedAt = now
	} else {
		existing, ok := m.links[record.ID]
		if !ok {
			return nil, &storage.NotFoundError{Resource: "service_list", Key: record.ID.String()}
		}
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now

	stored := cloneLink(record)
	stored.RefItem = nil
	m.links[stored.ID] = stored

	if !populateRef {
		record.RefItem = nil
	}
	return record, nil
}

func (m *MemoryLinkStore) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.links, id)
	}
	return nil
}

func sortLinks(links []*LinkItem) {
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Position == links[j].Position {
			return links[i].ID.String() < links[j].ID.String()
		}
		return links[i].Position < links[j].Position
	})
}

// MemoryTypeStore keeps list types in memory.
type MemoryTypeStore struct {
	mu    sync.RWMutex
	types map[uuid.UUID]*ListType
}

func NewMemoryTypeStore(seed ...*ListType) *MemoryTypeStore {
	store := &MemoryTypeStore{types: make(map[uuid.UUID]*ListType)}
	for _, record := range seed {
		if record == nil {
			continue
		}
		copied := cloneListType(record)
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		store.types[copied.ID] = copied
	}
	return store
}

func (m *MemoryTypeStore) FindByCode(_ context.Context, code, domain string) (*ListType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.types {
		if record.Code == code && record.Domain == domain {
			return cloneListType(record), nil
		}
	}
	return nil, &storage.NotFoundError{Resource: "service_list_type", Key: domain + "/" + code}
}

func (m *MemoryTypeStore) Save(_ context.Context, record *ListType) (*ListType, error) {
	if record == nil {
		return nil, ErrListTypeRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneListType(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.types[copied.ID] = copied
	return cloneListType(copied), nil
}
