package commands

import (
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	auditcmd "github.com/goliatone/go-shop-admin/internal/commands/audit"
	productstockcmd "github.com/goliatone/go-shop-admin/internal/commands/productstock"
	servicetextcmd "github.com/goliatone/go-shop-admin/internal/commands/servicetext"
)

// GlobalDispatcher subscribes the module's handlers to the go-command
// dispatcher so hosts can call dispatcher.Dispatch with the command messages.
type GlobalDispatcher struct {
	// Retries is the number of extra attempts for a failed handler.
	Retries int
}

// RegisterCommand satisfies CommandDispatcher.
func (d GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *servicetextcmd.SaveHandler:
		return subscribe[servicetextcmd.SaveCommand](h, d.Retries), nil
	case *productstockcmd.SaveHandler:
		return subscribe[productstockcmd.SaveCommand](h, d.Retries), nil
	case *auditcmd.ExportHandler:
		return subscribe[auditcmd.ExportCommand](h, d.Retries), nil
	case *auditcmd.CleanupHandler:
		return subscribe[auditcmd.CleanupCommand](h, d.Retries), nil
	default:
		return nil, fmt.Errorf("commands: no dispatcher binding for %T", handler)
	}
}

func subscribe[T command.Message](handler command.Commander[T], retries int) CommandSubscription {
	if retries > 0 {
		return dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(retries))
	}
	return dispatcher.SubscribeCommand(handler)
}
