package migrations

import (
	"context"
	"fmt"

	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/stock"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/uptrace/bun"
)

// Models lists every table owned by the module in creation order.
func Models() []any {
	return []any{
		(*services.Service)(nil),
		(*products.Product)(nil),
		(*texts.TextType)(nil),
		(*texts.ContentItem)(nil),
		(*lists.ListType)(nil),
		(*lists.LinkItem)(nil),
		(*stock.StockType)(nil),
		(*stock.StockItem)(nil),
	}
}

type index struct {
	name    string
	model   any
	columns []string
	unique  bool
}

func indexes() []index {
	return []index{
		{name: "services_code_uidx", model: (*services.Service)(nil), columns: []string{"site_id", "code"}, unique: true},
		{name: "products_code_uidx", model: (*products.Product)(nil), columns: []string{"site_id", "code"}, unique: true},
		{name: "text_types_domain_code_uidx", model: (*texts.TextType)(nil), columns: []string{"domain", "code"}, unique: true},
		{name: "texts_domain_type_idx", model: (*texts.ContentItem)(nil), columns: []string{"domain", "type"}},
		{name: "service_list_types_domain_code_uidx", model: (*lists.ListType)(nil), columns: []string{"domain", "code"}, unique: true},
		{name: "service_lists_parent_idx", model: (*lists.LinkItem)(nil), columns: []string{"parent_id", "domain", "position"}},
		{name: "stock_types_code_uidx", model: (*stock.StockType)(nil), columns: []string{"code"}, unique: true},
		{name: "stock_product_type_uidx", model: (*stock.StockItem)(nil), columns: []string{"product_id", "site_id", "type"}, unique: true},
	}
}

// Apply creates every table and index when missing.
func Apply(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("migrations: database not configured")
	}
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range Models() {
			if _, err := tx.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("migrations: create table %T: %w", model, err)
			}
		}
		for _, idx := range indexes() {
			query := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists()
			if idx.unique {
				query = query.Unique()
			}
			if _, err := query.Exec(ctx); err != nil {
				return fmt.Errorf("migrations: create index %s: %w", idx.name, err)
			}
		}
		return nil
	})
}
