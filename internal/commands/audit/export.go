package auditcmd

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-shop-admin/internal/audit"
	"github.com/goliatone/go-shop-admin/internal/commands"
	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const exportMessageType = "shop.admin.audit.export"

// Log exposes read access to recorded admin saves.
type Log interface {
	List(ctx context.Context) ([]audit.Event, error)
}

// ExportCommand emits recorded audit events through the logger.
type ExportCommand struct {
	MaxRecords *int   `json:"max_records,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate ensures the command payload is well-formed.
func (m ExportCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.MaxRecords, validation.By(func(any) error {
			if m.MaxRecords != nil && *m.MaxRecords < 0 {
				return validation.NewError("shop.admin.audit.export.max_records_invalid", "max_records must be zero or positive")
			}
			return nil
		})),
		validation.Field(&m.EntityType, validation.Length(0, 32)),
	)
}

// ExportHandler logs recorded audit events up to the requested limit.
type ExportHandler struct {
	log     Log
	logger  interfaces.Logger
	timeout time.Duration
}

// ExportHandlerOption customises the export handler.
type ExportHandlerOption func(*ExportHandler)

// ExportWithTimeout overrides the default execution timeout.
func ExportWithTimeout(timeout time.Duration) ExportHandlerOption {
	return func(h *ExportHandler) {
		h.timeout = timeout
	}
}

// NewExportHandler constructs a handler reading from log.
func NewExportHandler(log Log, logger interfaces.Logger, opts ...ExportHandlerOption) *ExportHandler {
	handler := &ExportHandler{
		log:     log,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Execute satisfies command.Commander[ExportCommand].
func (h *ExportHandler) Execute(ctx context.Context, msg ExportCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	events, err := h.log.List(ctx)
	if err != nil {
		return commands.WrapExecuteError(err)
	}
	if msg.EntityType != "" {
		filtered := events[:0]
		for _, event := range events {
			if event.EntityType == msg.EntityType {
				filtered = append(filtered, event)
			}
		}
		events = filtered
	}

	limit := len(events)
	if msg.MaxRecords != nil && *msg.MaxRecords < limit {
		limit = *msg.MaxRecords
	}

	baseLogger := logging.WithFields(h.logger, map[string]any{
		"operation": "audit.export",
	})
	for idx := 0; idx < limit; idx++ {
		event := events[idx]
		logging.WithFields(baseLogger, map[string]any{
			"index":       idx,
			"entity_type": event.EntityType,
			"entity_id":   event.EntityID,
			"action":      event.Action,
			"occurred_at": event.OccurredAt.Format(time.RFC3339),
			"metadata":    event.Metadata,
		}).Debug("audit.command.export.event")
	}

	logging.WithFields(baseLogger, map[string]any{
		"exported": limit,
		"total":    len(events),
	}).Info("audit.command.export.completed")
	return nil
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for audit export.
func (h *ExportHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"audit", "export"},
		Group:       "audit",
		Description: "Export admin audit events to the configured logger",
	}
}
