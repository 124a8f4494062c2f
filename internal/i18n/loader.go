package i18n

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Fixture is a message catalogue: locale settings plus translations keyed by
// locale, then by the English message used as the key.
type Fixture struct {
	Config       Config                       `json:"config"`
	Translations map[string]map[string]string `json:"translations"`
}

//go:embed data/messages.json
var defaultCatalogue []byte

// DefaultFixture decodes the admin error messages shipped with the module.
func DefaultFixture() (*Fixture, error) {
	fx, err := decodeFixture(defaultCatalogue)
	if err != nil {
		return nil, fmt.Errorf("i18n: embedded catalogue: %w", err)
	}
	return fx, nil
}

// Loader reads a host-supplied catalogue in the same JSON layout.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and decodes the catalogue file. Unknown JSON keys are rejected.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: read catalogue %q: %w", l.path, err)
	}
	fx, err := decodeFixture(data)
	if err != nil {
		return nil, fmt.Errorf("i18n: decode catalogue %q: %w", l.path, err)
	}
	return fx, nil
}

func decodeFixture(data []byte) (*Fixture, error) {
	fx := &Fixture{}
	if len(data) > 0 {
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(fx); err != nil {
			return nil, err
		}
	}
	if fx.Translations == nil {
		fx.Translations = map[string]map[string]string{}
	}
	return fx, nil
}
