package i18n

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

type Service interface {
	Translator() interfaces.Translator
	DefaultLocale() string
}

type NoOpService struct{}

func NewNoOpService() Service {
	return NoOpService{}
}

func (NoOpService) Translator() interfaces.Translator {
	return noopTranslator{}
}

func (NoOpService) DefaultLocale() string {
	return ""
}

type noopTranslator struct{}

func (noopTranslator) Translate(_ string, key string, args ...any) (string, error) {
	return format(key, args), nil
}

// InMemoryService serves translations from a locale -> key -> message map.
type InMemoryService struct {
	defaultLocale string
	catalogue     map[string]map[string]string
}

// NewInMemoryService builds a service from cfg and translations. Locale keys
// are matched case-insensitively.
func NewInMemoryService(cfg Config, translations map[string]map[string]string) (*InMemoryService, error) {
	catalogue := make(map[string]map[string]string, len(translations))
	for locale, messages := range translations {
		key := normalizeLocale(locale)
		if key == "" {
			return nil, fmt.Errorf("i18n: empty locale in catalogue")
		}
		entries := make(map[string]string, len(messages))
		for k, v := range messages {
			entries[k] = v
		}
		catalogue[key] = entries
	}
	return &InMemoryService{
		defaultLocale: normalizeLocale(cfg.DefaultLocale),
		catalogue:     catalogue,
	}, nil
}

func (s *InMemoryService) Translator() interfaces.Translator {
	return s
}

func (s *InMemoryService) DefaultLocale() string {
	return s.defaultLocale
}

// Translate looks key up in locale, its regional parent, then the default
// locale. Missing keys render the key itself.
func (s *InMemoryService) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range s.candidates(locale) {
		if messages, ok := s.catalogue[candidate]; ok {
			if msg, ok := messages[key]; ok {
				return format(msg, args), nil
			}
		}
	}
	return format(key, args), nil
}

func (s *InMemoryService) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if idx := strings.IndexAny(locale, "-_"); idx > 0 {
			out = append(out, locale[:idx])
		}
	}
	if s.defaultLocale != "" {
		out = append(out, s.defaultLocale)
	}
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}

func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
