package stock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrItemRequired = errors.New("stock: stock item is required")
	ErrTypeRequired = errors.New("stock: stock type is required")
)

// Store persists stock items.
type Store interface {
	storage.Transactional

	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockItem, error)
	Save(ctx context.Context, item *StockItem) (*StockItem, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

// TypeStore lists stock types.
type TypeStore interface {
	List(ctx context.Context) ([]*StockType, error)
	Save(ctx context.Context, record *StockType) (*StockType, error)
}

// MemoryStore is an in-memory Store. It is single-writer while a
// transaction is open; see storage.Snapshot.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]*StockItem
	snapshot storage.Snapshot[uuid.UUID, *StockItem]
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[uuid.UUID]*StockItem), now: time.Now}
}

func (m *MemoryStore) Begin(ctx context.Context) (context.Context, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ctx, m.snapshot.Begin(m.items, cloneItem)
}

func (m *MemoryStore) Commit(context.Context) error {
	return m.snapshot.Commit()
}

func (m *MemoryStore) Rollback(context.Context) error {
	saved, err := m.snapshot.Rollback()
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.items = saved
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) FindByProduct(_ context.Context, productID uuid.UUID) ([]*StockItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*StockItem, 0)
	for _, item := range m.items {
		if item.ProductID == productID {
			out = append(out, cloneItem(item))
		}
	}
	sortItems(out)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, item *StockItem) (*StockItem, error) {
	if item == nil {
		return nil, ErrItemRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	record := cloneItem(item)
	now := m.now().UTC()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
		record.CreatedAt = now
	} else {
		existing, ok := m.items[record.ID]
		if !ok {
			return nil, &storage.NotFoundError{Resource: "stock", Key: record.ID.String()}
		}
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now
	m.items[record.ID] = record
	return cloneItem(record), nil
}

func (m *MemoryStore) DeleteMany(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.items, id)
	}
	return nil
}

// MemoryTypeStore is an in-memory TypeStore.
type MemoryTypeStore struct {
	mu    sync.RWMutex
	types map[uuid.UUID]*StockType
}

func NewMemoryTypeStore(seed ...*StockType) *MemoryTypeStore {
	store := &MemoryTypeStore{types: make(map[uuid.UUID]*StockType)}
	for _, record := range seed {
		if record == nil {
			continue
		}
		copied := *record
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		store.types[copied.ID] = &copied
	}
	return store
}

func (m *MemoryTypeStore) List(context.Context) ([]*StockType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*StockType, 0, len(m.types))
	for _, record := range m.types {
		copied := *record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemoryTypeStore) Save(_ context.Context, record *StockType) (*StockType, error) {
	if record == nil {
		return nil, ErrTypeRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.types[copied.ID] = &copied
	out := copied
	return &out, nil
}

func sortItems(items []*StockItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Type == items[j].Type {
			return items[i].ID.String() < items[j].ID.String()
		}
		return items[i].Type < items[j].Type
	})
}
