package products

import (
	"time"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Product is the parent of stock rows.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`

	ID        uuid.UUID     `bun:",pk,type:uuid"            json:"id"`
	SiteID    string        `bun:"site_id,notnull"          json:"site_id"`
	Type      string        `bun:"type,notnull"             json:"type"`
	Code      string        `bun:"code,notnull"             json:"code"`
	Label     string        `bun:"label,notnull"            json:"label"`
	Status    domain.Status `bun:"status,notnull,default:1" json:"status"`
	CreatedAt time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
