package productstock

import (
	"context"
	"strconv"

	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/stock"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"github.com/google/uuid"
)

// Result summarises the store mutations of one reconciliation.
type Result struct {
	Created int
	Updated int
	Deleted int
}

// Reconciler synchronises the submitted stock table of a product with its
// stored stock items. Items inherited from another site are never changed.
type Reconciler struct {
	items  stock.Store
	types  stock.TypeStore
	logger interfaces.Logger
}

// NewReconciler builds a stock reconciler.
func NewReconciler(items stock.Store, types stock.TypeStore, logger interfaces.Logger) (*Reconciler, error) {
	if items == nil || types == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Reconciler{items: items, types: types, logger: logger}, nil
}

// Reconcile validates rows and applies them to the stock of product. Callers
// own the transaction around the call.
func (r *Reconciler) Reconcile(ctx context.Context, product *products.Product, rows []Row) (Result, error) {
	var result Result
	if product == nil {
		return result, ErrItemRequired
	}
	if err := ValidateRows(rows); err != nil {
		return result, err
	}
	typeIDs, err := r.typeIDs(ctx)
	if err != nil {
		return result, err
	}
	for _, row := range rows {
		if _, ok := typeIDs[row.Type]; !ok {
			return result, &UnknownTypeError{Code: row.Type}
		}
	}

	current, err := r.items.FindByProduct(ctx, product.ID)
	if err != nil {
		return result, err
	}
	existing := make(map[string]*stock.StockItem, len(current))
	for _, item := range current {
		existing[item.ID.String()] = item
	}

	// One row per type and site; inherited rows keep the site they came from.
	seen := make(map[string]struct{}, len(rows))
	submitted := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		site := product.SiteID
		if item, ok := existing[row.ID]; ok {
			site = item.SiteID
			submitted[row.ID] = struct{}{}
		}
		key := site + "\x00" + row.Type
		if _, dup := seen[key]; dup {
			return result, &DuplicateTypeError{Code: row.Type}
		}
		seen[key] = struct{}{}
	}

	// Removed rows go first so a type re-added in the same submission does
	// not collide with the row it replaces.
	var removed []uuid.UUID
	for _, item := range current {
		if inherited(item, product) {
			continue
		}
		if _, keep := submitted[item.ID.String()]; !keep {
			removed = append(removed, item.ID)
		}
	}
	if len(removed) > 0 {
		if err := r.items.DeleteMany(ctx, removed); err != nil {
			return result, err
		}
		result.Deleted = len(removed)
	}

	for _, row := range rows {
		item, found := existing[row.ID]
		if found && inherited(item, product) {
			continue
		}
		if found {
			result.Updated++
		} else {
			item = stock.NewStockItem(product.ID, product.SiteID)
			result.Created++
		}

		level, _ := parseStockLevel(row.StockLevel)
		back, _ := parseDateBack(row.DateBack)
		item.TypeID = typeIDs[row.Type]
		item.Type = row.Type
		item.StockLevel = level
		item.DateBack = back
		item.Timeframe = row.Timeframe
		if _, err := r.items.Save(ctx, item); err != nil {
			return result, err
		}
	}

	r.logger.Debug("productstock.reconcile.completed",
		"product_id", product.ID.String(),
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
	)
	return result, nil
}

// Project renders the stored stock of product as table rows ordered by type.
// With copying set the item ids are left out so a save creates new items.
func (r *Reconciler) Project(ctx context.Context, product *products.Product, copying bool) ([]Row, error) {
	if product == nil {
		return nil, ErrItemRequired
	}
	current, err := r.items.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(current))
	for _, item := range current {
		row := Row{
			SiteID:    item.SiteID,
			Type:      item.Type,
			Timeframe: item.Timeframe,
		}
		if !copying {
			row.ID = item.ID.String()
		}
		if item.StockLevel != nil {
			row.StockLevel = strconv.Itoa(*item.StockLevel)
		}
		if item.DateBack != nil {
			row.DateBack = item.DateBack.UTC().Format(DateBackLayout)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *Reconciler) typeIDs(ctx context.Context) (map[string]uuid.UUID, error) {
	records, err := r.types.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(records))
	for _, record := range records {
		ids[record.Code] = record.ID
	}
	return ids, nil
}

func inherited(item *stock.StockItem, product *products.Product) bool {
	return item.SiteID != product.SiteID
}
