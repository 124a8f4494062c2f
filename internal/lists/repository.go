package lists

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewListTypeRepository(db *bun.DB) repository.Repository[*ListType] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ListType]{
		NewRecord: func() *ListType { return &ListType{} },
		GetID: func(t *ListType) uuid.UUID {
			return t.ID
		},
		SetID: func(t *ListType, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(t *ListType) string {
			return t.Code
		},
	})
}
