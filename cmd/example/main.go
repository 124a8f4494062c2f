package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	shopadmin "github.com/goliatone/go-shop-admin"
	"github.com/goliatone/go-shop-admin/commands"
	"github.com/goliatone/go-shop-admin/internal/products"
	"github.com/goliatone/go-shop-admin/internal/services"
)

func main() {
	dsn := flag.String("dsn", "", "sqlite dsn; empty uses the in-memory stores")
	debug := flag.Bool("debug", false, "log SQL queries")
	flag.Parse()

	if err := run(context.Background(), *dsn, *debug); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context, dsn string, debug bool) error {
	cfg := shopadmin.DefaultConfig()
	cfg.Languages = []string{"en", "de"}
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "console"
	if dsn != "" {
		cfg.Storage.Provider = "bun"
		cfg.Storage.Driver = "sqlite3"
		cfg.Storage.DSN = dsn
		cfg.Storage.Debug = debug
	}

	module, err := shopadmin.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	service, err := module.Services().Create(ctx, &services.Service{
		SiteID: cfg.SiteID,
		Type:   services.TypeDelivery,
		Code:   "standard",
		Label:  "Standard delivery",
	})
	if err != nil {
		return err
	}

	save := shopadmin.NewView(map[string]any{
		"text": map[string]any{
			"langid": map[string]any{"0": "en", "1": "de"},
			"name":   map[string]any{"content": map[string]any{"0": "Standard delivery", "1": "Standardversand"}},
			"short":  map[string]any{"content": map[string]any{"0": "3-5 days", "1": "3-5 Tage"}},
		},
	})
	save.Set(shopadmin.KeyItem, service)
	if _, err := module.ServiceText().Save(ctx, save); err != nil {
		return err
	}

	invalid := shopadmin.NewView(map[string]any{
		"text": map[string]any{
			"langid": map[string]any{"0": "de", "1": "de"},
			"name":   map[string]any{"content": map[string]any{"0": "Eins", "1": "Zwei"}},
		},
	})
	invalid.Set(shopadmin.KeyItem, service)
	invalid.Set(shopadmin.KeyLocale, "de")
	if _, err := module.ServiceText().Save(ctx, invalid); errors.Is(err, shopadmin.ErrOperationFailed) {
		fmt.Fprintf(os.Stdout, "rejected: %v\n", invalid.ErrorMessages())
	}

	product, err := module.Products().Create(ctx, &products.Product{
		SiteID: cfg.SiteID,
		Type:   "default",
		Code:   "tshirt",
		Label:  "T-Shirt",
	})
	if err != nil {
		return err
	}
	stock := shopadmin.NewView(map[string]any{
		"stock": []shopadmin.StockRow{{Type: "default", StockLevel: "25"}},
	})
	stock.Set(shopadmin.KeyItem, product)
	if _, err := module.ProductStock().Save(ctx, stock); err != nil {
		return err
	}

	result, err := module.RegisterCommands(commands.RegistrationOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "commands: %d handlers\n", len(result.Handlers))

	events, err := module.Audit().List(ctx)
	if err != nil {
		return err
	}
	for _, event := range events {
		fmt.Fprintf(os.Stdout, "%s %s %s %v\n", event.Action, event.EntityType, event.EntityID, event.Metadata)
	}
	return nil
}
