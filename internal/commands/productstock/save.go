package productstockcmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/admin/productstock"
	"github.com/goliatone/go-shop-admin/internal/commands"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"github.com/google/uuid"
)

const saveMessageType = "shop.admin.product_stock.save"

// ProductLookup resolves the product whose stock is saved.
type ProductLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*products.Product, error)
}

// StockSaver is the admin client operation invoked by the handler.
type StockSaver interface {
	Save(ctx context.Context, view *admin.View) (string, error)
}

// SaveCommand replaces the stock rows of a product.
type SaveCommand struct {
	ProductID uuid.UUID          `json:"product_id"`
	Stock     []productstock.Row `json:"stock"`
	Locale    string             `json:"locale,omitempty"`
}

// Type implements command.Message.
func (SaveCommand) Type() string { return saveMessageType }

// Validate ensures the message is well-formed. Each stock row runs its own field rules.
func (m SaveCommand) Validate() error {
	errs := validation.Errors{}
	if m.ProductID == uuid.Nil {
		errs["product_id"] = validation.NewError("shop.admin.product_stock.save.product_id_required", "product_id is required")
	}
	if err := validation.Validate(m.Stock); err != nil {
		errs["stock"] = err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveHandler runs the product stock client's Save for a command message.
type SaveHandler struct {
	inner *commands.Handler[SaveCommand]
}

// NewSaveHandler constructs a handler wired to the product lookup and stock client.
func NewSaveHandler(lookup ProductLookup, client StockSaver, logger interfaces.Logger, opts ...commands.HandlerOption[SaveCommand]) *SaveHandler {
	exec := func(ctx context.Context, msg SaveCommand) error {
		if lookup == nil || client == nil {
			return productstock.ErrStoreRequired
		}
		item, err := lookup.GetByID(ctx, msg.ProductID)
		if err != nil {
			return err
		}
		view := admin.NewView(map[string]any{productstock.ParamStock: msg.Stock})
		view.Set(admin.KeyItem, item)
		view.Set(admin.KeyLocale, msg.Locale)
		if _, err := client.Save(ctx, view); err != nil {
			if failure, ok := view.Error(productstock.DefaultErrorField); ok {
				return errors.Join(err, failure)
			}
			return err
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveCommand]{
		commands.WithLogger[SaveCommand](logger),
		commands.WithOperation[SaveCommand]("product_stock.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveHandler{
		inner: commands.NewHandler[SaveCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveCommand].Execute.
func (h *SaveHandler) Execute(ctx context.Context, msg SaveCommand) error {
	return h.inner.Execute(ctx, msg)
}
