package productstock

import (
	"context"
	"time"

	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const (
	KeyStockData  = "stockData"
	KeyStockTypes = "stockTypes"
	KeyStockBody  = "stockBody"

	// ParamStock is the submitted parameter holding the stock table.
	ParamStock = "stock"

	DefaultTemplate   = "product/item-stock-default"
	DefaultErrorField = "product-item-stock"
	SubClientPrefix   = "product/stock"
)

// Config controls rendering and sub-clients of the stock client.
type Config struct {
	Subparts   []string
	Template   string
	ErrorField string
}

// DefaultConfig returns the stock product stock settings.
func DefaultConfig() Config {
	return Config{Template: DefaultTemplate, ErrorField: DefaultErrorField}
}

// Option mutates the client configuration.
type Option func(*Client)

// WithClock overrides the clock used for audit timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithAuditRecorder overrides the audit recorder dependency.
func WithAuditRecorder(recorder audit.Recorder) Option {
	return func(c *Client) { c.audit = recorder }
}

// WithLogger sets the logger used for save diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTranslator sets the translator for domain error messages.
func WithTranslator(translator interfaces.Translator) Option {
	return func(c *Client) { c.translator = translator }
}

// WithRenderer sets the template renderer.
func WithRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Client) { c.renderer = renderer }
}

// WithRegistry sets the registry the configured subparts resolve from.
func WithRegistry(registry *admin.Registry) Option {
	return func(c *Client) { c.registry = registry }
}

// Client is the admin section editing the stock of a product.
type Client struct {
	reconciler *Reconciler
	cfg        Config

	subclients []admin.Client
	registry   *admin.Registry
	audit      audit.Recorder
	logger     interfaces.Logger
	translator interfaces.Translator
	renderer   interfaces.TemplateRenderer
	clock      func() time.Time
}

var _ admin.Client = (*Client)(nil)

// NewClient constructs the product stock client.
func NewClient(reconciler *Reconciler, cfg Config, opts ...Option) (*Client, error) {
	if reconciler == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.ErrorField == "" {
		cfg.ErrorField = DefaultErrorField
	}
	client := &Client{
		reconciler: reconciler,
		cfg:        cfg,
		logger:     logging.NoOp(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	subclients, err := client.registry.Resolve(SubClientPrefix, cfg.Subparts)
	if err != nil {
		return nil, err
	}
	client.subclients = subclients
	return client, nil
}

// Reconciler exposes the reconciler used by Save.
func (c *Client) Reconciler() *Reconciler {
	return c.reconciler
}

func (c *Client) Copy(ctx context.Context, view *admin.View) (string, error) {
	return c.show(ctx, view, admin.StageCopy, true)
}

func (c *Client) Create(ctx context.Context, view *admin.View) (string, error) {
	if err := c.addViewData(ctx, view); err != nil {
		return "", err
	}
	rows := ParseRows(view.Param(ParamStock, map[string]any{}))
	view.Set(KeyStockData, RowsMap(rows))
	return c.render(ctx, view, admin.StageCreate)
}

func (c *Client) Get(ctx context.Context, view *admin.View) (string, error) {
	return c.show(ctx, view, admin.StageGet, false)
}

// Save applies the submitted stock table inside a stock store transaction.
func (c *Client) Save(ctx context.Context, view *admin.View) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	item, err := itemFrom(view)
	if err != nil {
		return "", c.fail(ctx, view, c.logger, err)
	}
	logger := logging.WithParentContext(c.logger, item.ID.String(), item.SiteID, "save")

	store := c.reconciler.items
	txCtx, err := store.Begin(ctx)
	if err != nil {
		return "", c.fail(ctx, view, logger, err)
	}

	rows := ParseRows(view.Param(ParamStock, map[string]any{}))
	result, err := c.reconciler.Reconcile(txCtx, item, rows)
	if err == nil {
		var body string
		body, err = admin.RunSubClients(txCtx, c.subclients, view, admin.StageSave)
		view.Append(KeyStockBody, body)
	}
	if err == nil {
		err = store.Commit(txCtx)
	}
	if err != nil {
		if rbErr := store.Rollback(txCtx); rbErr != nil {
			logger.Warn("productstock.rollback.failed", "error", rbErr)
		}
		return "", c.fail(ctx, view, logger, err)
	}

	c.recordAudit(ctx, audit.Event{
		EntityType: domain.DomainProduct,
		EntityID:   item.ID.String(),
		Action:     audit.ActionProductStockSaved,
		Metadata: map[string]any{
			"created": result.Created,
			"updated": result.Updated,
			"deleted": result.Deleted,
		},
	})
	logger.Info("productstock.save.completed",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
	)
	return "", nil
}

func (c *Client) show(ctx context.Context, view *admin.View, stage admin.Stage, copying bool) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := c.addViewData(ctx, view); err != nil {
		return "", err
	}
	item, err := itemFrom(view)
	if err != nil {
		return "", err
	}
	rows, err := c.reconciler.Project(ctx, item, copying)
	if err != nil {
		return "", err
	}
	view.Set(KeyStockData, RowsMap(rows))
	return c.render(ctx, view, stage)
}

func (c *Client) render(ctx context.Context, view *admin.View, stage admin.Stage) (string, error) {
	body, err := admin.RunSubClients(ctx, c.subclients, view, stage)
	if err != nil {
		return "", err
	}
	view.Append(KeyStockBody, body)
	return admin.Render(c.renderer, c.cfg.Template, view)
}

func (c *Client) addViewData(ctx context.Context, view *admin.View) error {
	if view == nil {
		return ErrItemRequired
	}
	types, err := c.reconciler.types.List(ctx)
	if err != nil {
		return err
	}
	view.Set(KeyStockTypes, types)
	return nil
}

func (c *Client) fail(ctx context.Context, view *admin.View, logger interfaces.Logger, err error) error {
	locale := ""
	if view != nil {
		locale = view.Locale()
	}
	failure := admin.Classify(err, c.cfg.ErrorField, c.translator, locale)
	if view != nil {
		view.AddError(failure)
	}
	logger.WithContext(ctx).Error("productstock.save.failed",
		"error", err,
		"kind", failure.Kind.String(),
	)
	return admin.OperationFailed(failure)
}

func (c *Client) recordAudit(ctx context.Context, event audit.Event) {
	if c.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.clock()
	}
	if err := c.audit.Record(ctx, event); err != nil {
		c.logger.Warn("productstock.audit.failed", "error", err)
	}
}

func itemFrom(view *admin.View) (*products.Product, error) {
	if view == nil {
		return nil, ErrItemRequired
	}
	item, ok := view.Get(admin.KeyItem, nil).(*products.Product)
	if !ok || item == nil {
		return nil, ErrItemRequired
	}
	return item, nil
}
