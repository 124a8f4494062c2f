package servicetextcmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-shop-admin/internal/admin"
	"github.com/goliatone/go-shop-admin/internal/admin/servicetext"
	"github.com/goliatone/go-shop-admin/internal/commands"
	"github.com/goliatone/go-shop-admin/internal/services"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
	"github.com/google/uuid"
)

const saveMessageType = "shop.admin.service_text.save"

// ServiceLookup resolves the service whose texts are saved.
type ServiceLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*services.Service, error)
}

// TextSaver is the admin client operation invoked by the handler.
type TextSaver interface {
	Save(ctx context.Context, view *admin.View) (string, error)
}

// SaveCommand submits the text grid of a service outside an HTTP request.
type SaveCommand struct {
	ServiceID uuid.UUID      `json:"service_id"`
	Languages []string       `json:"languages"`
	Text      map[string]any `json:"text"`
	Locale    string         `json:"locale,omitempty"`
}

// Type implements command.Message.
func (SaveCommand) Type() string { return saveMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SaveCommand) Validate() error {
	errs := validation.Errors{}
	if m.ServiceID == uuid.Nil {
		errs["service_id"] = validation.NewError("shop.admin.service_text.save.service_id_required", "service_id is required")
	}
	if err := validation.Validate(m.Languages, validation.Required, validation.Each(validation.Required)); err != nil {
		errs["languages"] = err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveHandler runs the service text client's Save for a command message.
type SaveHandler struct {
	inner *commands.Handler[SaveCommand]
}

// NewSaveHandler constructs a handler wired to the service lookup and text client.
func NewSaveHandler(lookup ServiceLookup, client TextSaver, logger interfaces.Logger, opts ...commands.HandlerOption[SaveCommand]) *SaveHandler {
	exec := func(ctx context.Context, msg SaveCommand) error {
		if lookup == nil || client == nil {
			return servicetext.ErrStoreRequired
		}
		item, err := lookup.GetByID(ctx, msg.ServiceID)
		if err != nil {
			return err
		}
		view := admin.NewView(map[string]any{servicetext.ParamText: msg.Text})
		view.Set(admin.KeyItem, item)
		view.Set(admin.KeyPageLanguages, msg.Languages)
		view.Set(admin.KeyLocale, msg.Locale)
		if _, err := client.Save(ctx, view); err != nil {
			if failure, ok := view.Error(servicetext.DefaultErrorField); ok {
				return errors.Join(err, failure)
			}
			return err
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SaveCommand]{
		commands.WithLogger[SaveCommand](logger),
		commands.WithOperation[SaveCommand]("service_text.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveHandler{
		inner: commands.NewHandler[SaveCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveCommand].Execute.
func (h *SaveHandler) Execute(ctx context.Context, msg SaveCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CLIHandler exposes the handler to CLI integrations.
func (h *SaveHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for saving service texts.
func (h *SaveHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"service", "text", "save"},
		Group:       "service",
		Description: "Save the localized texts of a service",
	}
}
