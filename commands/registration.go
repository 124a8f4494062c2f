package commands

import (
	"errors"
	"strings"

	command "github.com/goliatone/go-command"
	internalcommands "github.com/goliatone/go-shop-admin/internal/commands"
	auditcmd "github.com/goliatone/go-shop-admin/internal/commands/audit"
	productstockcmd "github.com/goliatone/go-shop-admin/internal/commands/productstock"
	servicetextcmd "github.com/goliatone/go-shop-admin/internal/commands/servicetext"
	"github.com/goliatone/go-shop-admin/internal/di"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry = di.CommandRegistry

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher = di.CommandDispatcher

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription = di.CommandSubscription

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar = di.CronRegistrar

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// CleanupAuditCron overrides the default cron expression applied to the audit cleanup handler.
	CleanupAuditCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher/cron integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	if opts.Registry != nil && opts.CronRegistrar != nil {
		if reg, ok := opts.Registry.(interface {
			SetCronRegister(func(command.HandlerConfig, any) error) *command.Registry
		}); ok && reg != nil {
			reg.SetCronRegister(opts.CronRegistrar)
		}
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	timeout := internalcommands.ResolveTimeout(cfg.Commands.Timeout)

	loggerFor := func(module string) interfaces.Logger {
		return internalcommands.CommandLogger(provider, module)
	}

	if client := container.ServiceTextClient(); client != nil {
		register(servicetextcmd.NewSaveHandler(container.ServiceRepository(), client, loggerFor("service_text"),
			internalcommands.WithTimeout[servicetextcmd.SaveCommand](timeout)))
	}

	if client := container.ProductStockClient(); client != nil {
		register(productstockcmd.NewSaveHandler(container.ProductRepository(), client, loggerFor("product_stock"),
			internalcommands.WithTimeout[productstockcmd.SaveCommand](timeout)))
	}

	if recorder := container.AuditRecorder(); recorder != nil && cfg.Features.Audit {
		auditLogger := loggerFor("audit")
		register(auditcmd.NewExportHandler(recorder, auditLogger, auditcmd.ExportWithTimeout(timeout)))
		cleanupOpts := []auditcmd.CleanupHandlerOption{auditcmd.CleanupWithTimeout(timeout)}
		expr := strings.TrimSpace(opts.CleanupAuditCron)
		if expr == "" {
			expr = strings.TrimSpace(cfg.Commands.CleanupAuditCron)
		}
		if expr != "" {
			cleanupOpts = append(cleanupOpts, auditcmd.CleanupWithCronExpression(expr))
		}
		register(auditcmd.NewCleanupHandler(recorder, auditLogger, cleanupOpts...))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure the admin clients are configured")
	}

	return result, errs
}
