package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const (
	rootModule         = "shop.admin"
	serviceTextModule  = "shop.admin.servicetext"
	productStockModule = "shop.admin.productstock"
	storageModule      = "shop.admin.storage"
)

const (
	fieldParentID = "parent_id"
	fieldSiteID   = "site_id"
	fieldAction   = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ServiceTextLogger returns the logger namespace reserved for the service text client.
func ServiceTextLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serviceTextModule)
}

// ProductStockLogger returns the logger namespace reserved for the product stock client.
func ProductStockLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, productStockModule)
}

// StorageLogger returns the logger namespace reserved for storage wiring.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// WithParentContext enriches the logger with the parent entity the admin
// operation works on. Empty values are ignored.
func WithParentContext(logger interfaces.Logger, parentID, siteID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(parentID); trimmed != "" {
		fields[fieldParentID] = trimmed
	}
	if trimmed := strings.TrimSpace(siteID); trimmed != "" {
		fields[fieldSiteID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
