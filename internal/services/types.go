package services

import (
	"time"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is a payment or delivery option that owns localized texts.
type Service struct {
	bun.BaseModel `bun:"table:services,alias:svc"`

	ID        uuid.UUID      `bun:",pk,type:uuid"            json:"id"`
	SiteID    string         `bun:"site_id,notnull"          json:"site_id"`
	Type      string         `bun:"type,notnull"             json:"type"`
	Code      string         `bun:"code,notnull"             json:"code"`
	Label     string         `bun:"label,notnull"            json:"label"`
	Provider  string         `bun:"provider,notnull"         json:"provider"`
	Position  int            `bun:"position,notnull,default:0" json:"position"`
	Status    domain.Status  `bun:"status,notnull,default:1" json:"status"`
	Config    map[string]any `bun:"config,type:jsonb"        json:"config,omitempty"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

const (
	TypePayment  = "payment"
	TypeDelivery = "delivery"
)
