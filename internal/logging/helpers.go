package logging

import (
	"maps"

	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

// WithFields returns a child of logger carrying fields. Loggers without the
// FieldsLogger extension, a nil logger and empty fields come back unchanged.
// The map is copied so callers may keep mutating theirs.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}
