package di

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-shop-admin/internal/adapters/noop"
	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/admin/productstock"
	"github.com/goliatone/go-shop-admin/internal/admin/servicetext"
	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/i18n"
	"github.com/goliatone/go-shop-admin/internal/lists"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/internal/logging/console"
	"github.com/goliatone/go-shop-admin/internal/logging/gologger"
	"github.com/goliatone/go-shop-admin/internal/migrations"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/runtimeconfig"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/internal/stock"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/internal/texts"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Container wires the stores, admin clients and ambient services of the module.
type Container struct {
	Config runtimeconfig.Config

	template       interfaces.TemplateRenderer
	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	serviceRepo services.Repository
	productRepo products.Repository
	contents    texts.ContentStore
	textTypes   texts.TypeStore
	links       lists.LinkStore
	listTypes   lists.TypeStore
	stockItems  stock.Store
	stockTypes  stock.TypeStore

	i18nSvc     i18n.Service
	recorder    audit.Recorder
	subClients  *admin.Registry
	clock       func() time.Time
	serviceText *servicetext.Client
	stockClient *productstock.Client
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithTemplate overrides the default template renderer.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sets the destination of the console logger provider.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithBunDB binds the stores to an existing database instead of opening one
// from the storage config. The caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithI18nService overrides the default i18n service binding.
func WithI18nService(svc i18n.Service) Option {
	return func(c *Container) {
		c.i18nSvc = svc
	}
}

// WithAuditRecorder overrides the in-memory audit recorder.
func WithAuditRecorder(recorder audit.Recorder) Option {
	return func(c *Container) {
		c.recorder = recorder
	}
}

// WithSubClients supplies the registry the admin clients resolve their
// configured subparts from.
func WithSubClients(registry *admin.Registry) Option {
	return func(c *Container) {
		c.subClients = registry
	}
}

// WithClock overrides the time source used for audit events.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		template: noop.Template(),
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	if err := c.migrate(context.Background()); err != nil {
		c.Close()
		return nil, err
	}
	if c.recorder == nil && cfg.Features.Audit {
		c.recorder = audit.NewMemoryRecorder(cfg.Audit.Retention)
	}
	if c.subClients == nil {
		c.subClients = admin.NewRegistry()
	}
	if err := c.configureClients(); err != nil {
		c.Close()
		return nil, err
	}

	logging.StorageLogger(c.loggerProvider).Debug("container.configured",
		"storage", c.storageProvider(),
		"cache", c.cacheService != nil,
		"audit", c.recorder != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		level := consoleLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if c.bunDB == nil && strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		db, err := storage.Open(storage.Config{
			Driver: c.Config.Storage.Driver,
			DSN:    c.Config.Storage.DSN,
			Debug:  c.Config.Storage.Debug,
		})
		if err != nil {
			return fmt.Errorf("di: open storage: %w", err)
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if c.bunDB != nil {
		contents := texts.NewBunContentStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.contents = contents
		c.textTypes = texts.NewBunTypeStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.links = lists.NewBunLinkStore(c.bunDB, contents)
		c.listTypes = lists.NewBunTypeStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.stockItems = stock.NewBunStore(c.bunDB)
		c.stockTypes = stock.NewBunTypeStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.serviceRepo = services.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.productRepo = products.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return nil
	}

	contents := texts.NewMemoryContentStore()
	c.contents = contents
	c.textTypes = texts.NewMemoryTypeStore()
	c.links = lists.NewMemoryLinkStore(contents)
	c.listTypes = lists.NewMemoryTypeStore()
	c.stockItems = stock.NewMemoryStore()
	c.stockTypes = stock.NewMemoryTypeStore()
	c.serviceRepo = services.NewMemoryRepository()
	c.productRepo = products.NewMemoryRepository()
	return nil
}

func (c *Container) migrate(ctx context.Context) error {
	if !c.Config.Storage.Migrate {
		return nil
	}
	if c.bunDB != nil {
		if err := migrations.Apply(ctx, c.bunDB); err != nil {
			return err
		}
	}
	return migrations.Seed(ctx, migrations.Seeds{
		TextTypes:     c.textTypes,
		ListTypes:     c.listTypes,
		StockTypes:    c.stockTypes,
		TextTypeCodes: c.Config.Admin.ServiceText.Types,
	})
}

func (c *Container) configureClients() error {
	translator := c.I18nService().Translator()

	reconciler, err := servicetext.NewReconciler(c.contents, c.links, c.listTypes,
		c.Config.Admin.ServiceText.Types, logging.ServiceTextLogger(c.loggerProvider))
	if err != nil {
		return err
	}
	textCfg := servicetext.DefaultConfig()
	textCfg.Types = c.Config.Admin.ServiceText.Types
	textCfg.Subparts = c.Config.Admin.ServiceText.Subparts
	if tpl := strings.TrimSpace(c.Config.Admin.ServiceText.Template); tpl != "" {
		textCfg.Template = tpl
	}
	textOpts := []servicetext.Option{
		servicetext.WithLogger(logging.ServiceTextLogger(c.loggerProvider)),
		servicetext.WithTranslator(translator),
		servicetext.WithRenderer(c.template),
		servicetext.WithRegistry(c.subClients),
	}
	if c.recorder != nil {
		textOpts = append(textOpts, servicetext.WithAuditRecorder(c.recorder))
	}
	if c.clock != nil {
		textOpts = append(textOpts, servicetext.WithClock(c.clock))
	}
	c.serviceText, err = servicetext.NewClient(reconciler, c.textTypes, textCfg, textOpts...)
	if err != nil {
		return err
	}

	stockReconciler, err := productstock.NewReconciler(c.stockItems, c.stockTypes,
		logging.ProductStockLogger(c.loggerProvider))
	if err != nil {
		return err
	}
	stockCfg := productstock.DefaultConfig()
	stockCfg.Subparts = c.Config.Admin.ProductStock.Subparts
	if tpl := strings.TrimSpace(c.Config.Admin.ProductStock.Template); tpl != "" {
		stockCfg.Template = tpl
	}
	stockOpts := []productstock.Option{
		productstock.WithLogger(logging.ProductStockLogger(c.loggerProvider)),
		productstock.WithTranslator(translator),
		productstock.WithRenderer(c.template),
		productstock.WithRegistry(c.subClients),
	}
	if c.recorder != nil {
		stockOpts = append(stockOpts, productstock.WithAuditRecorder(c.recorder))
	}
	if c.clock != nil {
		stockOpts = append(stockOpts, productstock.WithClock(c.clock))
	}
	c.stockClient, err = productstock.NewClient(stockReconciler, stockCfg, stockOpts...)
	return err
}

func (c *Container) storageProvider() string {
	if c.bunDB != nil {
		return "bun"
	}
	return "memory"
}

// Close releases the database opened by the container. Databases supplied
// through WithBunDB are left open.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

// DB exposes the bun database, nil for the memory backend.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// LoggerProvider exposes the configured logger provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// ServiceRepository exposes the parent services.
func (c *Container) ServiceRepository() services.Repository {
	return c.serviceRepo
}

// ProductRepository exposes the parent products.
func (c *Container) ProductRepository() products.Repository {
	return c.productRepo
}

// ContentStore exposes the text content store.
func (c *Container) ContentStore() texts.ContentStore {
	return c.contents
}

// TextTypeStore exposes the text type store.
func (c *Container) TextTypeStore() texts.TypeStore {
	return c.textTypes
}

// LinkStore exposes the list link store.
func (c *Container) LinkStore() lists.LinkStore {
	return c.links
}

// ListTypeStore exposes the list type store.
func (c *Container) ListTypeStore() lists.TypeStore {
	return c.listTypes
}

// StockStore exposes the stock item store.
func (c *Container) StockStore() stock.Store {
	return c.stockItems
}

// StockTypeStore exposes the stock type store.
func (c *Container) StockTypeStore() stock.TypeStore {
	return c.stockTypes
}

// AuditRecorder returns the audit recorder, nil when the audit feature is off.
func (c *Container) AuditRecorder() audit.Recorder {
	return c.recorder
}

// SubClients exposes the sub-client registry shared by the admin clients.
func (c *Container) SubClients() *admin.Registry {
	return c.subClients
}

// ServiceTextClient returns the service text admin client.
func (c *Container) ServiceTextClient() *servicetext.Client {
	return c.serviceText
}

// ProductStockClient returns the product stock admin client.
func (c *Container) ProductStockClient() *productstock.Client {
	return c.stockClient
}

// I18nService returns the configured i18n service (lazy).
func (c *Container) I18nService() i18n.Service {
	if c.i18nSvc != nil {
		return c.i18nSvc
	}

	if !c.Config.Features.I18N {
		c.i18nSvc = i18n.NewNoOpService()
		return c.i18nSvc
	}

	cfg := i18n.FromModuleConfig(c.Config.DefaultLocale, c.Config.Languages)

	fixture, err := i18n.DefaultFixture()
	if err != nil {
		c.i18nSvc = i18n.NewNoOpService()
		return c.i18nSvc
	}
	if len(cfg.Locales) == 0 {
		cfg.Locales = fixture.Config.Locales
	}

	service, err := i18n.NewInMemoryService(cfg, fixture.Translations)
	if err != nil {
		c.i18nSvc = i18n.NewNoOpService()
		return c.i18nSvc
	}

	c.i18nSvc = service
	return c.i18nSvc
}
