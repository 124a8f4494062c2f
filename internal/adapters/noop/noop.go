package noop

import (
	"io"

	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

// Template returns a template renderer that bypasses rendering.
func Template() interfaces.TemplateRenderer {
	return templateAdapter{}
}

type templateAdapter struct{}

func (templateAdapter) Render(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RenderTemplate(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (templateAdapter) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (templateAdapter) GlobalContext(any) error {
	return nil
}
