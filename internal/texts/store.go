package texts

import (
	"context"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
)

// ContentStore persists localized text items.
type ContentStore interface {
	storage.Transactional

	Get(ctx context.Context, id uuid.UUID) (*ContentItem, error)
	// Save inserts items without an id and updates the rest, returning the
	// stored copy with its id populated.
	Save(ctx context.Context, item *ContentItem) (*ContentItem, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

// TypeStore exposes the text types available per domain.
type TypeStore interface {
	Search(ctx context.Context, domain string) ([]*TextType, error)
	GetByCode(ctx context.Context, domain, code string) (*TextType, error)
	Save(ctx context.Context, record *TextType) (*TextType, error)
}
