package shopadmin

import "github.com/goliatone/go-shop-admin/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrTextTypesRequired       = runtimeconfig.ErrTextTypesRequired
	ErrTextTypeInvalid         = runtimeconfig.ErrTextTypeInvalid
	ErrTextTypeDuplicate       = runtimeconfig.ErrTextTypeDuplicate
	ErrCommandsRequireAudit    = runtimeconfig.ErrCommandsRequireAudit
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrAuditRetentionInvalid   = runtimeconfig.ErrAuditRetentionInvalid
	ErrCommandTimeoutInvalid   = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config             = runtimeconfig.Config
	StorageConfig      = runtimeconfig.StorageConfig
	CacheConfig        = runtimeconfig.CacheConfig
	AdminConfig        = runtimeconfig.AdminConfig
	ServiceTextConfig  = runtimeconfig.ServiceTextConfig
	ProductStockConfig = runtimeconfig.ProductStockConfig
	AuditConfig        = runtimeconfig.AuditConfig
	Features           = runtimeconfig.Features
	CommandsConfig     = runtimeconfig.CommandsConfig
	LoggingConfig      = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
