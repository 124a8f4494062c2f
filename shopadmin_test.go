package shopadmin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	shopadmin "github.com/goliatone/go-shop-admin"
	servicetextcmd "github.com/goliatone/go-shop-admin/internal/commands/servicetext"
	"github.com/goliatone/go-shop-admin/internal/services"
)

func TestConfigValidateRejectsInvalidTextType(t *testing.T) {
	cfg := shopadmin.DefaultConfig()
	cfg.Admin.ServiceText.Types = []string{"name", "Short Text"}

	if err := cfg.Validate(); !errors.Is(err, shopadmin.ErrTextTypeInvalid) {
		t.Fatalf("expected ErrTextTypeInvalid, got %v", err)
	}
}

func TestNewReturnsConfigErrors(t *testing.T) {
	cfg := shopadmin.DefaultConfig()
	cfg.Storage.Provider = "bun"

	if _, err := shopadmin.New(cfg); !errors.Is(err, shopadmin.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestModuleSavesAndProjectsServiceTexts(t *testing.T) {
	cfg := shopadmin.DefaultConfig()
	cfg.Languages = []string{"en", "es"}
	module, err := shopadmin.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	ctx := context.Background()

	service, err := module.Services().Create(ctx, &services.Service{
		SiteID: "default",
		Type:   services.TypePayment,
		Code:   "prepay",
		Label:  "Prepayment",
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	view := shopadmin.NewView(map[string]any{
		"text": map[string]any{
			"langid": map[string]any{"0": "en", "1": "es"},
			"name":   map[string]any{"content": map[string]any{"0": "Prepayment", "1": "Prepago"}},
		},
	})
	view.Set(shopadmin.KeyItem, service)
	if _, err := module.ServiceText().Save(ctx, view); err != nil {
		t.Fatalf("save: %v", err)
	}

	copyView := shopadmin.NewView(nil)
	copyView.Set(shopadmin.KeyItem, service)
	copyView.Set(shopadmin.KeyPageLanguages, cfg.Languages)
	if _, err := module.ServiceText().Copy(ctx, copyView); err != nil {
		t.Fatalf("copy: %v", err)
	}
	data, ok := copyView.Get("textData", nil).(map[string]any)
	if !ok {
		t.Fatalf("expected textData map, got %T", copyView.Get("textData", nil))
	}
	langs, _ := data["langid"].(map[string]any)
	if len(langs) != 2 || langs["en"] != "en" || langs["es"] != "es" {
		t.Fatalf("expected en and es projected, got %v", data["langid"])
	}
	name, _ := data["name"].(map[string]any)
	listIDs, _ := name["listid"].(map[string]any)
	if id, ok := listIDs["en"]; !ok || id != "" {
		t.Fatalf("expected copy to clear list ids, got %v", name["listid"])
	}

	events, err := module.Audit().List(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("expected one audit event, got %d (%v)", len(events), err)
	}
}

func TestModuleAutoRegistersDispatcher(t *testing.T) {
	cfg := shopadmin.DefaultConfig()
	cfg.Commands.AutoRegisterDispatcher = true
	module, err := shopadmin.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	ctx := context.Background()

	service, err := module.Services().Create(ctx, &services.Service{
		SiteID: "default",
		Type:   services.TypeDelivery,
		Code:   "parcel",
		Label:  "Parcel",
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	err = dispatcher.Dispatch(ctx, servicetextcmd.SaveCommand{
		ServiceID: service.ID,
		Languages: []string{"en"},
		Text: map[string]any{
			"langid": map[string]any{"0": "en"},
			"long":   map[string]any{"content": map[string]any{"0": "Delivered in two days"}},
		},
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	events, _ := module.Audit().List(ctx)
	if len(events) != 1 {
		t.Fatalf("expected dispatch to save through the client, got %d audit events", len(events))
	}
}
