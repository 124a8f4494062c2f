package logging

import (
	"context"
	"maps"
)

type contextKey string

const contextFieldsKey contextKey = "shop.admin.logging.fields"

// ContextWithFields stores fields such as a request or command id on ctx.
// Console and go-logger loggers bound with WithContext add them to every
// entry. Keys already on ctx are kept unless fields overrides them.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextFieldsKey, merged)
}

// ContextFields returns a copy of the fields stored by ContextWithFields, or
// nil when ctx carries none.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextFieldsKey).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
