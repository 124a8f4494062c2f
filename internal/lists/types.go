package lists

import (
	"time"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ListType is the relation type of a link, e.g. "default".
type ListType struct {
	bun.BaseModel `bun:"table:service_list_types,alias:slt"`

	ID        uuid.UUID     `bun:",pk,type:uuid"            json:"id"`
	Domain    string        `bun:"domain,notnull"           json:"domain"`
	Code      string        `bun:"code,notnull"             json:"code"`
	Label     string        `bun:"label,notnull"            json:"label"`
	Status    domain.Status `bun:"status,notnull,default:1" json:"status"`
	CreatedAt time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// LinkItem is an ordered, typed association from a parent to a text item.
type LinkItem struct {
	bun.BaseModel `bun:"table:service_lists,alias:sl"`

	ID        uuid.UUID          `bun:",pk,type:uuid"               json:"id"`
	ParentID  uuid.UUID          `bun:"parent_id,notnull,type:uuid" json:"parent_id"`
	SiteID    string             `bun:"site_id,notnull"             json:"site_id"`
	Domain    string             `bun:"domain,notnull"              json:"domain"`
	TypeID    uuid.UUID          `bun:"type_id,notnull,type:uuid"   json:"type_id"`
	Type      string             `bun:"type,notnull"                json:"type"`
	RefID     uuid.UUID          `bun:"ref_id,notnull,type:uuid"    json:"ref_id"`
	Position  int                `bun:"position,notnull,default:0"  json:"position"`
	Status    domain.Status      `bun:"status,notnull,default:1"    json:"status"`
	CreatedAt time.Time          `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time          `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	RefItem   *texts.ContentItem `bun:"rel:belongs-to,join:ref_id=id" json:"ref_item,omitempty"`
}

// NewLinkItem returns an unsaved text link of the default relation type.
func NewLinkItem(parentID uuid.UUID) *LinkItem {
	return &LinkItem{
		ParentID: parentID,
		Domain:   domain.DomainText,
		Type:     domain.ListTypeDefault,
		Status:   domain.StatusEnabled,
	}
}

func cloneLink(src *LinkItem) *LinkItem {
	if src == nil {
		return nil
	}
	copied := *src
	copied.RefItem = nil
	if src.RefItem != nil {
		ref := *src.RefItem
		copied.RefItem = &ref
	}
	return &copied
}

func cloneListType(src *ListType) *ListType {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
