package services

import (
	"context"
	"errors"
	"fmt"
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
	ErrServiceRequired = errors.New("services: service is required")
	ErrCodeRequired    = errors.New("services: code is required")
)

// Repository persists services.
type Repository interface {
	Create(ctx context.Context, record *Service) (*Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetByCode(ctx context.Context, code string) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
}

func NewServiceRepository(db *bun.DB) repository.Repository[*Service] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Service]{
		NewRecord: func() *Service { return &Service{} },
		GetID: func(s *Service) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Service, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(s *Service) string {
			return s.Code
		},
	})
}

// BunRepository implements Repository with optional caching.
type BunRepository struct {
	repo repository.Repository[*Service]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	opts := storage.CacheOptions{Service: cacheService, Serializer: serializer}
	return &BunRepository{repo: storage.WrapWithCache(NewServiceRepository(db), opts)}
}

func (r *BunRepository) Create(ctx context.Context, record *Service) (*Service, error) {
	if err := prepare(record); err != nil {
		return nil, err
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, storage.WrapPersistence(err, "service", "create")
	}
	return created, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, storage.MapRepositoryError(err, "service", id.String())
	}
	return record, nil
}

func (r *BunRepository) GetByCode(ctx context.Context, code string) (*Service, error) {
	record, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, storage.MapRepositoryError(err, "service", code)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Service, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.position ASC").OrderExpr("?TableAlias.code ASC")
		}),
	)
	if err != nil {
		return nil, storage.WrapPersistence(err, "service", "list")
	}
	return records, nil
}

// MemoryRepository is an in-memory Repository.
type MemoryRepository struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*Service
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{services: make(map[uuid.UUID]*Service)}
}

func (m *MemoryRepository) Create(_ context.Context, record *Service) (*Service, error) {
	if err := prepare(record); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := cloneService(record)
	m.services[copied.ID] = copied
	return cloneService(copied), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.services[id]
	if !ok {
		return nil, &storage.NotFoundError{Resource: "service", Key: id.String()}
	}
	return cloneService(record), nil
}

func (m *MemoryRepository) GetByCode(_ context.Context, code string) (*Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, record := range m.services {
		if record.Code == code {
			return cloneService(record), nil
		}
	}
	return nil, &storage.NotFoundError{Resource: "service", Key: code}
}

func (m *MemoryRepository) List(context.Context) ([]*Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Service, 0, len(m.services))
	for _, record := range m.services {
		out = append(out, cloneService(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].Code < out[j].Code
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func prepare(record *Service) error {
	if record == nil {
		return ErrServiceRequired
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

func cloneService(src *Service) *Service {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Config != nil {
		copied.Config = make(map[string]any, len(src.Config))
		for key, value := range src.Config {
			copied.Config[key] = value
		}
	}
	return &copied
}

// String renders the service for log output.
func (s *Service) String() string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s/%s", s.Type, s.Code)
}
