package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-shop-admin/internal/logging"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

// DefaultCommandTimeout bounds a save or audit command when the module
// configuration leaves Commands.Timeout at zero.
const DefaultCommandTimeout = 30 * time.Second

// ResolveTimeout maps the configured command timeout onto the value handed to
// handler options. Zero selects DefaultCommandTimeout.
func ResolveTimeout(configured time.Duration) time.Duration {
	if configured == 0 {
		return DefaultCommandTimeout
	}
	if configured < 0 {
		return 0
	}
	return configured
}

// EnsureContext returns ctx, or context.Background when ctx is nil.
func EnsureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// WithCommandTimeout derives a deadline-bound context. Non-positive values
// leave ctx untouched.
func WithCommandTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// EnsureLogger substitutes the no-op logger for nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
