package lists

import (
	"context"
	"errors"

	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrLinkRequired     = errors.New("lists: link item is required")
	ErrListTypeRequired = errors.New("lists: list type is required")
	ErrRefStoreMissing  = errors.New("lists: content store required to populate ref items")
)

// LinkStore persists parent-to-text links.
type LinkStore interface {
	storage.Transactional

	// FindByParent returns the links of parentID in domain ordered by
	// position, each carrying its referenced text item when it exists.
	FindByParent(ctx context.Context, parentID uuid.UUID, domain string) ([]*LinkItem, error)
	// Save stores item. When populateRef is set the attached RefItem is saved
	// first and RefID points at the stored copy.
	Save(ctx context.Context, item *LinkItem, populateRef bool) (*LinkItem, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) error
}

// TypeStore resolves relation types.
type TypeStore interface {
	FindByCode(ctx context.Context, code, domain string) (*ListType, error)
	Save(ctx context.Context, record *ListType) (*ListType, error)
}
