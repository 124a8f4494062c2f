package texts

import (
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LabelLimit is the number of characters of content copied into Label.
const LabelLimit = 255

// TextType is a semantic text category (name, short, long) scoped to a domain.
type TextType struct {
	bun.BaseModel `bun:"table:text_types,alias:tt"`

	ID        uuid.UUID     `bun:",pk,type:uuid"                json:"id"`
	Domain    string        `bun:"domain,notnull"               json:"domain"`
	Code      string        `bun:"code,notnull"                 json:"code"`
	Label     string        `bun:"label,notnull"                json:"label"`
	Status    domain.Status `bun:"status,notnull,default:1"     json:"status"`
	CreatedAt time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// ContentItem is a localized text value owned by a domain.
type ContentItem struct {
	bun.BaseModel `bun:"table:texts,alias:txt"`

	ID         uuid.UUID     `bun:",pk,type:uuid"                json:"id"`
	SiteID     string        `bun:"site_id,notnull"              json:"site_id"`
	Domain     string        `bun:"domain,notnull"               json:"domain"`
	TypeID     uuid.UUID     `bun:"type_id,notnull,type:uuid"    json:"type_id"`
	Type       string        `bun:"type,notnull"                 json:"type"`
	LanguageID string        `bun:"language_id"                  json:"language_id"`
	Label      string        `bun:"label,notnull"                json:"label"`
	Content    string        `bun:"content,notnull"              json:"content"`
	Status     domain.Status `bun:"status,notnull,default:1"     json:"status"`
	CreatedAt  time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewContentItem returns an unsaved text item for the service domain.
func NewContentItem() *ContentItem {
	return &ContentItem{
		Domain: domain.DomainService,
		Status: domain.StatusEnabled,
	}
}

// SetContent stores body and derives the label from its first characters.
func (c *ContentItem) SetContent(body string) {
	c.Content = body
	c.Label = Label(body)
}

// Label truncates body to LabelLimit characters.
func Label(body string) string {
	if utf8.RuneCountInString(body) <= LabelLimit {
		return body
	}
	runes := []rune(body)
	return string(runes[:LabelLimit])
}

func cloneItem(src *ContentItem) *ContentItem {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

func cloneType(src *TextType) *TextType {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}
