package shopadmin

import (
	"github.com/goliatone/go-shop-admin/commands"
	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/admin/productstock"
	"github.com/goliatone/go-shop-admin/internal/admin/servicetext"
	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/di"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/services"
)

// View exports the request-scoped data bag passed to admin clients.
type View = admin.View

// Failure exports the classified error stored on a View after a failed save.
type Failure = admin.Failure

// ServiceTextClient exports the service text admin client.
type ServiceTextClient = *servicetext.Client

// ProductStockClient exports the product stock admin client.
type ProductStockClient = *productstock.Client

// ServiceRepository exports the parent service repository contract.
type ServiceRepository = services.Repository

// ProductRepository exports the parent product repository contract.
type ProductRepository = products.Repository

// AuditRecorder exports the audit recorder contract.
type AuditRecorder = audit.Recorder

// StockRow exports one submitted stock row.
type StockRow = productstock.Row

// ErrOperationFailed is returned by Save when the admin operation failed.
var ErrOperationFailed = admin.ErrOperationFailed

const (
	KeyItem          = admin.KeyItem
	KeyPageLanguages = admin.KeyPageLanguages
	KeyLocale        = admin.KeyLocale
)

// NewView creates a view over submitted parameters.
func NewView(params map[string]any) *View {
	return admin.NewView(params)
}

// Module represents the top level shop admin runtime façade.
type Module struct {
	container     *di.Container
	subscriptions []commands.CommandSubscription
}

// New constructs a module using the provided configuration and optional DI overrides.
// When both the commands feature and AutoRegisterDispatcher are enabled the
// command handlers are subscribed to the go-command dispatcher.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	module := &Module{container: container}
	if cfg.Features.Commands && cfg.Commands.AutoRegisterDispatcher {
		result, err := module.RegisterCommands(commands.RegistrationOptions{
			Dispatcher: commands.GlobalDispatcher{},
		})
		if err != nil {
			_ = container.Close()
			return nil, err
		}
		module.subscriptions = result.Subscriptions
	}
	return module, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// ServiceText returns the service text admin client.
func (m *Module) ServiceText() ServiceTextClient {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ServiceTextClient()
}

// ProductStock returns the product stock admin client.
func (m *Module) ProductStock() ProductStockClient {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ProductStockClient()
}

// Services returns the service repository.
func (m *Module) Services() ServiceRepository {
	return m.container.ServiceRepository()
}

// Products returns the product repository.
func (m *Module) Products() ProductRepository {
	return m.container.ProductRepository()
}

// Audit returns the audit recorder, nil when the audit feature is disabled.
func (m *Module) Audit() AuditRecorder {
	return m.container.AuditRecorder()
}

// RegisterCommands builds the command handlers and hands them to the supplied integrations.
func (m *Module) RegisterCommands(opts commands.RegistrationOptions) (*commands.RegistrationResult, error) {
	return commands.RegisterContainerCommands(m.container, opts)
}

// Close drops dispatcher subscriptions and releases storage opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	for _, sub := range m.subscriptions {
		sub.Unsubscribe()
	}
	m.subscriptions = nil
	return m.container.Close()
}
