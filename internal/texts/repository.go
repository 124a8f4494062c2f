package texts

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewContentItemRepository(db *bun.DB) repository.Repository[*ContentItem] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ContentItem]{
		NewRecord: func() *ContentItem { return &ContentItem{} },
		GetID: func(c *ContentItem) uuid.UUID {
			return c.ID
		},
		SetID: func(c *ContentItem, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *ContentItem) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
}

func NewTextTypeRepository(db *bun.DB) repository.Repository[*TextType] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TextType]{
		NewRecord: func() *TextType { return &TextType{} },
		GetID: func(t *TextType) uuid.UUID {
			return t.ID
		},
		SetID: func(t *TextType, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(t *TextType) string {
			return t.Code
		},
	})
}
