package texts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
)

// MemoryContentStore is an in-memory ContentStore for scaffolding and tests.
// It is single-writer while a transaction is open; see storage.Snapshot.
type MemoryContentStore struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]*ContentItem
	snapshot storage.Snapshot[uuid.UUID, *ContentItem]
	now      func() time.Time
}

// NewMemoryContentStore creates an empty store.
func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{
		items: make(map[uuid.UUID]*ContentItem),
		now:   time.Now,
	}
}

func (m *MemoryContentStore) Begin(ctx context.Context) (context.Context, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ctx, m.snapshot.Begin(m.items, cloneItem)
}

func (m *MemoryContentStore) Commit(context.Context) error {
	return m.snapshot.Commit()
}

func (m *MemoryContentStore) Rollback(context.Context) error {
	saved, err := m.snapshot.Rollback()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items = saved
	m.mu.Unlock()
	return nil
}

// Get retrieves an item by id.
func (m *MemoryContentStore) Get(_ context.Context, id uuid.UUID) (*ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, &storage.NotFoundError{Resource: "text", Key: id.String()}
	}
	return cloneItem(item), nil
}

// Save inserts or updates item.
func (m *MemoryContentStore) Save(_ context.Context, item *ContentItem) (*ContentItem, error) {
	if item == nil {
		return nil, ErrItemRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	copied := cloneItem(item)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
		copied.CreatedAt = now
	} else {
		existing, ok := m.items[copied.ID]
		if !ok {
			return nil, &storage.NotFoundError{Resource: "text", Key: copied.ID.String()}
		}
		copied.CreatedAt = existing.CreatedAt
	}
	copied.UpdatedAt = now
	m.items[copied.ID] = copied
	return cloneItem(copied), nil
}

// DeleteMany removes every listed item. Unknown ids are ignored.
func (m *MemoryContentStore) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.items, id)
	}
	return nil
}

// List returns every stored item ordered by creation time.
func (m *MemoryContentStore) List(context.Context) ([]*ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ContentItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, cloneItem(item))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// MemoryTypeStore keeps text types in memory.
type MemoryTypeStore struct {
	mu    sync.RWMutex
	types map[uuid.UUID]*TextType
}

// NewMemoryTypeStore constructs the store, optionally seeded with records.
func NewMemoryTypeStore(seed ...*TextType) *MemoryTypeStore {
	store := &MemoryTypeStore{types: make(map[uuid.UUID]*TextType)}
	for _, record := range seed {
		if record == nil {
			continue
		}
		copied := cloneType(record)
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		store.types[copied.ID] = copied
	}
	return store
}

// Search lists the types of domain ordered by code.
func (m *MemoryTypeStore) Search(_ context.Context, domain string) ([]*TextType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*TextType, 0, len(m.types))
	for _, record := range m.types {
		if record.Domain != domain {
			continue
		}
		out = append(out, cloneType(record))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetByCode fetches a single type.
func (m *MemoryTypeStore) GetByCode(_ context.Context, domain, code string) (*TextType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.types {
		if record.Domain == domain && record.Code == code {
			return cloneType(record), nil
		}
	}
	return nil, &storage.NotFoundError{Resource: "text_type", Key: domain + "/" + code}
}

// Save inserts or replaces a type.
func (m *MemoryTypeStore) Save(_ context.Context, record *TextType) (*TextType, error) {
	if record == nil {
		return nil, ErrTypeRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneType(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.types[copied.ID] = copied
	return cloneType(copied), nil
}
