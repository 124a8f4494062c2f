package runtimeconfig_test

import (
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-shop-admin/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if got := cfg.Admin.ServiceText.Types; len(got) != 3 || got[0] != "name" || got[1] != "short" || got[2] != "long" {
		t.Fatalf("unexpected default text types %v", got)
	}
}

func TestConfigValidate_RequiresDSNForBun(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownStorage(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Provider = "redis" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		{
			name: "driver",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Storage.Provider = "bun"
				cfg.Storage.DSN = "file::memory:"
				cfg.Storage.Driver = "mysql"
			},
			want: runtimeconfig.ErrStorageDriverUnknown,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_TextTypes(t *testing.T) {
	cases := []struct {
		name  string
		types []string
		want  error
	}{
		{name: "empty", types: nil, want: runtimeconfig.ErrTextTypesRequired},
		{name: "not a slug", types: []string{"name", "Long Text"}, want: runtimeconfig.ErrTextTypeInvalid},
		{name: "duplicate", types: []string{"name", "name"}, want: runtimeconfig.ErrTextTypeDuplicate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Admin.ServiceText.Types = tc.types
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_CronRequiresAudit(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Audit = false
	cfg.Commands.AutoRegisterCron = true

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCommandsRequireAudit) {
		t.Fatalf("expected ErrCommandsRequireAudit, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeCommandTimeout(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Timeout = -time.Second

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCommandTimeoutInvalid) {
		t.Fatalf("expected ErrCommandTimeoutInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}
