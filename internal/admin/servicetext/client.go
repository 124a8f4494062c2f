package servicetext

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/domain"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const (
	KeyTextData  = "textData"
	KeyTextTypes = "textTypes"
	KeyTextBody  = "textBody"

	// ParamText is the submitted parameter holding the text grid.
	ParamText = "text"

	DefaultTemplate   = "service/item-text-default"
	DefaultErrorField = "service-item-text"
	SubClientPrefix   = "service/text"
)

// DefaultTypes are the text types managed when none are configured.
var DefaultTypes = []string{"name", "short", "long"}

// Config controls which text types the client manages and how it renders.
type Config struct {
	Types      []string
	Subparts   []string
	Template   string
	ErrorField string
}

// DefaultConfig returns the stock service text settings.
func DefaultConfig() Config {
	return Config{
		Types:      append([]string(nil), DefaultTypes...),
		Template:   DefaultTemplate,
		ErrorField: DefaultErrorField,
	}
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
	return func(c *Client) {
		c.audit = recorder
	}
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
	return func(c *Client) {
		c.translator = translator
	}
}

// WithRenderer sets the template renderer.
func WithRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Client) {
		c.renderer = renderer
	}
}

// WithRegistry sets the registry the configured subparts resolve from.
func WithRegistry(registry *admin.Registry) Option {
	return func(c *Client) {
		c.registry = registry
	}
}

// Client is the admin section editing the texts of a service.
type Client struct {
	reconciler *Reconciler
	textTypes  texts.TypeStore
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

// NewClient constructs the service text client. The managed types are those
// of the reconciler; cfg.Types is read by the container when it builds one.
func NewClient(reconciler *Reconciler, textTypes texts.TypeStore, cfg Config, opts ...Option) (*Client, error) {
	if reconciler == nil || textTypes == nil {
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
		textTypes:  textTypes,
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

// Copy prepares the form for a copy of the service; link ids are dropped.
func (c *Client) Copy(ctx context.Context, view *admin.View) (string, error) {
	return c.show(ctx, view, admin.StageCopy, true)
}

// Create echoes the submitted text grid back into the form.
func (c *Client) Create(ctx context.Context, view *admin.View) (string, error) {
	if err := c.addViewData(ctx, view); err != nil {
		return "", err
	}
	form := ParseForm(view.Param(ParamText, map[string]any{}))
	view.Set(KeyTextData, form.Map())
	return c.render(ctx, view, admin.StageCreate)
}

// Get prepares the form with the stored texts of the service.
func (c *Client) Get(ctx context.Context, view *admin.View) (string, error) {
	return c.show(ctx, view, admin.StageGet, false)
}

// Save reconciles the submitted text grid inside one transaction spanning the
// link and text stores. On failure the error is recorded in the view under
// the configured field and ErrOperationFailed is returned.
func (c *Client) Save(ctx context.Context, view *admin.View) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	item, err := itemFrom(view)
	if err != nil {
		return "", c.fail(ctx, view, c.logger, err)
	}
	logger := logging.WithParentContext(c.logger, item.ID.String(), item.SiteID, "save")

	links, contents := c.reconciler.links, c.reconciler.contents
	txCtx, err := links.Begin(ctx)
	if err != nil {
		return "", c.fail(ctx, view, logger, err)
	}
	txCtx, err = contents.Begin(txCtx)
	if err != nil {
		c.rollback(txCtx, logger, links)
		return "", c.fail(ctx, view, logger, err)
	}

	result, err := c.apply(txCtx, view, item)
	if err == nil {
		err = contents.Commit(txCtx)
	}
	if err == nil {
		err = links.Commit(txCtx)
	}
	if err != nil {
		c.rollback(txCtx, logger, contents, links)
		return "", c.fail(ctx, view, logger, err)
	}

	c.recordAudit(ctx, audit.Event{
		EntityType: domain.DomainService,
		EntityID:   item.ID.String(),
		Action:     audit.ActionServiceTextSaved,
		Metadata: map[string]any{
			"created": result.Created,
			"updated": result.Updated,
			"deleted": result.Deleted,
		},
	})
	logger.Info("servicetext.save.completed",
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
	)
	return "", nil
}

func (c *Client) apply(ctx context.Context, view *admin.View, item *services.Service) (Result, error) {
	form := ParseForm(view.Param(ParamText, map[string]any{}))
	cache := NewTypeCache(c.textTypes, domain.DomainService)
	result, err := c.reconciler.Reconcile(ctx, item, form, cache)
	if err != nil {
		return result, err
	}
	body, err := admin.RunSubClients(ctx, c.subclients, view, admin.StageSave)
	if err != nil {
		return result, err
	}
	view.Append(KeyTextBody, body)
	return result, nil
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
	form, err := c.reconciler.Project(ctx, item, copying)
	if err != nil {
		return "", err
	}
	view.Set(KeyTextData, form.Map())
	return c.render(ctx, view, stage)
}

func (c *Client) render(ctx context.Context, view *admin.View, stage admin.Stage) (string, error) {
	body, err := admin.RunSubClients(ctx, c.subclients, view, stage)
	if err != nil {
		return "", err
	}
	view.Append(KeyTextBody, body)
	return admin.Render(c.renderer, c.cfg.Template, view)
}

func (c *Client) addViewData(ctx context.Context, view *admin.View) error {
	if view == nil {
		return ErrItemRequired
	}
	if len(view.PageLanguages()) == 0 {
		return noLanguagesError()
	}
	types, err := c.textTypes.Search(ctx, domain.DomainService)
	if err != nil {
		return err
	}
	view.Set(KeyTextTypes, types)
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
	logger.WithContext(ctx).Error("servicetext.save.failed",
		"error", err,
		"kind", failure.Kind.String(),
	)
	return admin.OperationFailed(failure)
}

func (c *Client) rollback(ctx context.Context, logger interfaces.Logger, stores ...interface {
	Rollback(context.Context) error
}) {
	for _, store := range stores {
		if err := store.Rollback(ctx); err != nil {
			logger.Warn("servicetext.rollback.failed", "error", err)
		}
	}
}

func (c *Client) recordAudit(ctx context.Context, event audit.Event) {
	if c.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = c.clock()
	}
	if err := c.audit.Record(ctx, event); err != nil {
		c.logger.Warn("servicetext.audit.failed", "error", err)
	}
}

func itemFrom(view *admin.View) (*services.Service, error) {
	if view == nil {
		return nil, ErrItemRequired
	}
	item, ok := view.Get(admin.KeyItem, nil).(*services.Service)
	if !ok || item == nil {
		return nil, ErrItemRequired
	}
	return item, nil
}

// IsNoLanguages reports whether err was caused by an empty language list.
func IsNoLanguages(err error) bool {
	return errors.Is(err, ErrNoLanguages)
}
