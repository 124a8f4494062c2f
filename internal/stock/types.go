package stock

import (
	"time"

	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StockType names a stock location or warehouse.
type StockType struct {
	bun.BaseModel `bun:"table:stock_types,alias:stt"`

	ID        uuid.UUID     `bun:",pk,type:uuid"            json:"id"`
	Code      string        `bun:"code,notnull"             json:"code"`
	Label     string        `bun:"label,notnull"            json:"label"`
	Status    domain.Status `bun:"status,notnull,default:1" json:"status"`
	CreatedAt time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// StockItem holds the stock level of a product at one location. A nil
// StockLevel means unlimited stock.
type StockItem struct {
	bun.BaseModel `bun:"table:stock,alias:st"`

	ID         uuid.UUID  `bun:",pk,type:uuid"                json:"id"`
	ProductID  uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id"`
	SiteID     string     `bun:"site_id,notnull"              json:"site_id"`
	TypeID     uuid.UUID  `bun:"type_id,notnull,type:uuid"    json:"type_id"`
	Type       string     `bun:"type,notnull"                 json:"type"`
	StockLevel *int       `bun:"stock_level"                  json:"stock_level,omitempty"`
	DateBack   *time.Time `bun:"date_back,nullzero"           json:"date_back,omitempty"`
	Timeframe  string     `bun:"timeframe,notnull"            json:"timeframe"`
	CreatedAt  time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NewStockItem returns an unsaved stock item for productID.
func NewStockItem(productID uuid.UUID, siteID string) *StockItem {
	return &StockItem{ProductID: productID, SiteID: siteID}
}

func cloneItem(src *StockItem) *StockItem {
	if src == nil {
		return nil
	}
	copied := *src
	if src.StockLevel != nil {
		level := *src.StockLevel
		copied.StockLevel = &level
	}
	if src.DateBack != nil {
		back := *src.DateBack
		copied.DateBack = &back
	}
	return &copied
}
