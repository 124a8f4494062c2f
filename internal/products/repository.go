package products

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrProductRequired = errors.New("products: product is required")
	ErrCodeRequired    = errors.New("products: code is required")
)

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, record *Product) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
}

func NewProductRepository(db *bun.DB) repository.Repository[*Product] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(p *Product) string {
			return p.Code
		},
	})
}

type BunRepository struct {
	repo repository.Repository[*Product]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunRepository{repo: storage.WrapWithCache(NewProductRepository(db), opts)}
}

func (r *BunRepository) Create(ctx context.Context, record *Product) (*Product, error) {
	if err := prepare(record); err != nil {
		return nil, err
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, storage.WrapPersistence(err, "product", "create")
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, storage.MapRepositoryError(err, "product", id.String())
	}
	return record, nil
}

func (r *BunRepository) GetByCode(ctx context.Context, code string) (*Product, error) {
	record, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, storage.MapRepositoryError(err, "product", code)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Product, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, storage.WrapPersistence(err, "product", "list")
	}
	return records, nil
}

// MemoryRepository is an in-memory Repository.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[uuid.UUID]*Product)}
}

func (m *MemoryRepository) Create(_ context.Context, record *Product) (*Product, error) {
	if err := prepare(record); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *record
	m.products[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.products[id]
	if !ok {
		return nil, &storage.NotFoundError{Resource: "product", Key: id.String()}
	}
	copied := *record
	return &copied, nil
}

func (m *MemoryRepository) GetByCode(_ context.Context, code string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.products {
		if record.Code == code {
			copied := *record
			return &copied, nil
		}
	}
	return nil, &storage.NotFoundError{Resource: "product", Key: code}
}

func (m *MemoryRepository) List(context.Context) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Product, 0, len(m.products))
	for _, record := range m.products {
		copied := *record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func prepare(record *Product) error {
	if record == nil {
		return ErrProductRequired
	}
	record.Code = strings.TrimSpace(record.Code)
	if record.Code == "" {
		return ErrCodeRequired
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	return nil
}
