// Package fixtures holds in-memory stand-ins for the registry, dispatcher and
// cron hooks accepted by commands.RegisterContainerCommands.
package fixtures

import (
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-shop-admin/internal/di"
)

// RecordingRegistry is a di.CommandRegistry that keeps every handler it is
// given. A non-nil Err is returned instead of recording.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{Handlers: []any{}}
}

func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration is one schedule handed to the cron hook, such as the
// audit cleanup expression and its handler.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler any
}

// CronRecorder backs a di.CronRegistrar. A non-nil Err fails every call.
type CronRecorder struct {
	Registrations []CronRegistration
	Err           error
}

func NewCronRecorder() *CronRecorder {
	return &CronRecorder{Registrations: []CronRegistration{}}
}

// Registrar returns the hook to pass as RegistrationOptions.CronRegistrar.
func (c *CronRecorder) Registrar() di.CronRegistrar {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.Err != nil {
			return c.Err
		}
		c.Registrations = append(c.Registrations, CronRegistration{Config: cfg, Handler: handler})
		return nil
	}
}

// RecordingDispatcher is a di.CommandDispatcher that hands out
// RecordingSubscriptions instead of subscribing to go-command.
type RecordingDispatcher struct {
	Handlers      []any
	Subscriptions []*RecordingSubscription
	Err           error
}

func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{
		Handlers:      []any{},
		Subscriptions: []*RecordingSubscription{},
	}
}

func (d *RecordingDispatcher) RegisterCommand(handler any) (di.CommandSubscription, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	sub := &RecordingSubscription{Handler: handler}
	d.Handlers = append(d.Handlers, handler)
	d.Subscriptions = append(d.Subscriptions, sub)
	return sub, nil
}

// RecordingSubscription notes whether the module released it.
type RecordingSubscription struct {
	Handler      any
	Unsubscribed bool
}

func (s *RecordingSubscription) Unsubscribe() {
	s.Unsubscribed = true
}

// HandlerOf finds the first handler of type T, e.g. *auditcmd.CleanupHandler.
func HandlerOf[T any](handlers []any) (T, bool) {
	for _, handler := range handlers {
		if typed, ok := handler.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
