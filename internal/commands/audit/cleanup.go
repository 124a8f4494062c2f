package auditcmd

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-shop-admin/internal/commands"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const cleanupMessageType = "shop.admin.audit.cleanup"

// Cleaner extends Log with the ability to drop recorded events.
type Cleaner interface {
	Log
	Clear(ctx context.Context) error
}

// CleanupCommand removes recorded audit events. DryRun only reports the count.
type CleanupCommand struct {
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (CleanupCommand) Type() string { return cleanupMessageType }

// Validate satisfies command.Message.
func (m CleanupCommand) Validate() error {
	return validation.ValidateStruct(&m)
}

type cleanupHandlerConfig struct {
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// CleanupHandlerOption customises the cleanup handler.
type CleanupHandlerOption func(*cleanupHandlerConfig)

// CleanupWithCronConfig overrides the cron registration options for the cleanup handler.
func CleanupWithCronConfig(config command.HandlerConfig) CleanupHandlerOption {
	return func(cfg *cleanupHandlerConfig) {
		cfg.cronConfig = config
	}
}

// CleanupWithCronExpression overrides the cron expression for the cleanup handler.
func CleanupWithCronExpression(expression string) CleanupHandlerOption {
	return func(cfg *cleanupHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cronConfig.Expression = trimmed
		}
	}
}

// CleanupWithTimeout overrides the default execution timeout.
func CleanupWithTimeout(timeout time.Duration) CleanupHandlerOption {
	return func(cfg *cleanupHandlerConfig) {
		cfg.timeout = timeout
	}
}

// CleanupHandler clears the audit log, by default once a day.
type CleanupHandler struct {
	cleaner    Cleaner
	logger     interfaces.Logger
	cronConfig command.HandlerConfig
	timeout    time.Duration
}

// NewCleanupHandler constructs a handler over cleaner.
func NewCleanupHandler(cleaner Cleaner, logger interfaces.Logger, opts ...CleanupHandlerOption) *CleanupHandler {
	cfg := cleanupHandlerConfig{
		cronConfig: command.HandlerConfig{
			Expression: "@daily",
		},
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &CleanupHandler{
		cleaner:    cleaner,
		logger:     commands.EnsureLogger(logger),
		cronConfig: cfg.cronConfig,
		timeout:    cfg.timeout,
	}
}

// Execute satisfies command.Commander[CleanupCommand].
func (h *CleanupHandler) Execute(ctx context.Context, msg CleanupCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	events, err := h.cleaner.List(ctx)
	if err != nil {
		return commands.WrapExecuteError(err)
	}

	logger := logging.WithFields(h.logger, map[string]any{
		"operation": "audit.cleanup",
	})

	if msg.DryRun {
		logging.WithFields(logger, map[string]any{
			"dry_run":        true,
			"existing_count": len(events),
		}).Debug("audit.command.cleanup.dry_run")
		return nil
	}

	if err := h.cleaner.Clear(ctx); err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(logger, map[string]any{
		"removed": len(events),
	}).Debug("audit.command.cleanup.removed")
	return nil
}

// CronHandler satisfies command.CronCommand by binding cleanup execution to a cron runner.
func (h *CleanupHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), CleanupCommand{})
	}
}

// CronOptions satisfies command.CronCommand by returning the configured cron metadata.
func (h *CleanupHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

// CLIHandler exposes the cleanup handler to CLI integrations.
func (h *CleanupHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for audit cleanup.
func (h *CleanupHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"audit", "cleanup"},
		Group:       "audit",
		Description: "Remove recorded admin audit events",
	}
}
