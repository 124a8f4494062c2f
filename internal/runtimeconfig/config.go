package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

var (
	ErrDefaultLocaleRequired   = errors.New("shop admin config: default locale is required")
	ErrStorageProviderUnknown  = errors.New("shop admin config: storage provider is invalid")
	ErrStorageDSNRequired      = errors.New("shop admin config: storage dsn is required for the bun provider")
	ErrStorageDriverUnknown    = errors.New("shop admin config: storage driver is invalid")
	ErrCacheTTLInvalid         = errors.New("shop admin config: cache ttl must be zero or positive")
	ErrTextTypesRequired       = errors.New("shop admin config: at least one managed text type is required")
	ErrTextTypeInvalid         = errors.New("shop admin config: text type code is not a valid slug")
	ErrTextTypeDuplicate       = errors.New("shop admin config: text type code is listed twice")
	ErrCommandsRequireAudit    = errors.New("shop admin config: audit command cron requires the audit feature")
	ErrLoggingProviderRequired = errors.New("shop admin config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("shop admin config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("shop admin config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("shop admin config: logging format is invalid")
	ErrAuditRetentionInvalid   = errors.New("shop admin config: audit retention must be zero or positive")
	ErrCommandTimeoutInvalid   = errors.New("shop admin config: command timeout must be zero or positive")
)

// Config aggregates storage, admin client and feature settings for the module.
type Config struct {
	DefaultLocale string
	// Languages are the page languages offered by the admin forms.
	Languages []string
	SiteID    string
	Storage   StorageConfig
	Cache     CacheConfig
	Admin     AdminConfig
	Audit     AuditConfig
	Features  Features
	Commands  CommandsConfig
	Logging   LoggingConfig
}

// StorageConfig selects the backend used by the stores.
type StorageConfig struct {
	// Provider is "memory" or "bun".
	Provider string
	Driver   string
	DSN      string
	Debug    bool
	// Migrate creates the schema and seeds default types on startup.
	Migrate bool
}

// CacheConfig captures read cache toggles for bun repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// AdminConfig configures the admin clients.
type AdminConfig struct {
	ServiceText  ServiceTextConfig
	ProductStock ProductStockConfig
}

// ServiceTextConfig lists the managed text types and sub-clients of the
// service text client.
type ServiceTextConfig struct {
	Types    []string
	Subparts []string
	Template string
}

// ProductStockConfig configures the product stock client.
type ProductStockConfig struct {
	Subparts []string
	Template string
}

// AuditConfig bounds the in-memory audit log.
type AuditConfig struct {
	// Retention is the number of events kept; zero keeps everything.
	Retention int
}

// Features toggles module functionality.
type Features struct {
	Audit    bool
	Commands bool
	Logger   bool
	I18N     bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	CleanupAuditCron       string
	// Timeout bounds every command execution. Zero keeps the package default.
	Timeout time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the baseline configuration: memory stores, the
// name/short/long text types and console logging.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Languages:     []string{"en"},
		SiteID:        "default",
		Storage: StorageConfig{
			Provider: "memory",
			Driver:   "sqlite3",
			Migrate:  true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Admin: AdminConfig{
			ServiceText: ServiceTextConfig{
				Types:    []string{"name", "short", "long"},
				Template: "service/item-text-default",
			},
			ProductStock: ProductStockConfig{
				Template: "product/item-stock-default",
			},
		},
		Audit: AuditConfig{Retention: 1000},
		Features: Features{
			Audit:    true,
			Commands: true,
			I18N:     true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	switch normalize(cfg.Storage.Provider) {
	case "", "memory":
	case "bun":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
		switch normalize(cfg.Storage.Driver) {
		case "", "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if err := validateTextTypes(cfg.Admin.ServiceText.Types); err != nil {
		return err
	}
	if cfg.Audit.Retention < 0 {
		return ErrAuditRetentionInvalid
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Commands.AutoRegisterCron && !cfg.Features.Audit {
		return ErrCommandsRequireAudit
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func validateTextTypes(codes []string) error {
	if len(codes) == 0 {
		return ErrTextTypesRequired
	}
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if !slug.IsValid(code) {
			return fmt.Errorf("%w: %q", ErrTextTypeInvalid, code)
		}
		if _, ok := seen[code]; ok {
			return fmt.Errorf("%w: %q", ErrTextTypeDuplicate, code)
		}
		seen[code] = struct{}{}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
