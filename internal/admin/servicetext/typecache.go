package servicetext

import (
	"context"

	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/google/uuid"
)

// TypeCache resolves text type codes to ids for one reconciliation session.
// It loads the domain's types on first use and is read-only afterwards; do
// not share an instance between concurrent sessions.
type TypeCache struct {
	store  texts.TypeStore
	domain string
	ids    map[string]uuid.UUID
}

// NewTypeCache builds an empty cache over the types of domain.
func NewTypeCache(store texts.TypeStore, domain string) *TypeCache {
	return &TypeCache{store: store, domain: domain}
}

// ID returns the type id for code or an *UnknownTypeError.
func (c *TypeCache) ID(ctx context.Context, code string) (uuid.UUID, error) {
	if err := c.load(ctx); err != nil {
		return uuid.Nil, err
	}
	if id, ok := c.ids[code]; ok {
		return id, nil
	}
	return uuid.Nil, &UnknownTypeError{TypeDomain: c.domain, Code: code}
}

func (c *TypeCache) load(ctx context.Context) error {
	if c.ids != nil {
		return nil
	}
	if c.store == nil {
		return ErrStoreRequired
	}
	records, err := c.store.Search(ctx, c.domain)
	if err != nil {
		return err
	}
	ids := make(map[string]uuid.UUID, len(records))
	for _, record := range records {
		ids[record.Code] = record.ID
	}
	c.ids = ids
	return nil
}
