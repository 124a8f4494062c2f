package i18n

import "strings"

type Config struct {
	DefaultLocale string   `json:"default_locale"`
	Locales       []string `json:"locales"`
}

func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: strings.TrimSpace(defaultLocale),
		Locales:       locales,
	}
}
