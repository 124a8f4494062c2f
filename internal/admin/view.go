package admin

import (
	"maps"
	"strconv"
	"strings"
)

const (
	KeyItem          = "item"
	KeyPageLanguages = "pageLanguages"
	KeyErrors        = "errors"
	KeyLocale        = "locale"
	KeySiteID        = "siteId"
)

// View is the request-scoped data bag shared by an admin client and its
// sub-clients. It carries submitted parameters and the values assigned for
// rendering. A View is not safe for concurrent use.
type View struct {
	data   map[string]any
	params map[string]any
	errors map[string]*Failure
	order  []string
}

// NewView creates a view over the submitted parameters.
func NewView(params map[string]any) *View {
	if params == nil {
		params = map[string]any{}
	}
	return &View{
		data:   map[string]any{},
		params: params,
		errors: map[string]*Failure{},
	}
}

// Get returns the value assigned to key or def when unset.
func (v *View) Get(key string, def any) any {
	if value, ok := v.data[key]; ok {
		return value
	}
	return def
}

// Set assigns value to key.
func (v *View) Set(key string, value any) {
	v.data[key] = value
}

// String returns the string value of key or an empty string.
func (v *View) String(key string) string {
	value, _ := v.data[key].(string)
	return value
}

// Append concatenates body to the string stored at key.
func (v *View) Append(key, body string) {
	v.data[key] = v.String(key) + body
}

// Data returns a copy of the assigned values including the errors map,
// suitable as template data.
func (v *View) Data() map[string]any {
	out := maps.Clone(v.data)
	if len(v.errors) > 0 {
		out[KeyErrors] = v.ErrorMessages()
	}
	return out
}

// Param walks the submitted parameters along a slash separated path such as
// "text/langid" and returns def when any segment is missing.
func (v *View) Param(path string, def any) any {
	var current any = v.params
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}
		next, ok := lookup(current, segment)
		if !ok {
			return def
		}
		current = next
	}
	return current
}

// Params returns the submitted parameters.
func (v *View) Params() map[string]any {
	return v.params
}

// AddError records failure under its field. The first failure for a field
// wins, later ones are dropped.
func (v *View) AddError(failure *Failure) {
	if failure == nil {
		return
	}
	if _, exists := v.errors[failure.Field]; exists {
		return
	}
	v.errors[failure.Field] = failure
	v.order = append(v.order, failure.Field)
}

// Error returns the failure stored for field.
func (v *View) Error(field string) (*Failure, bool) {
	failure, ok := v.errors[field]
	return failure, ok
}

// ErrorMessages returns the user facing messages keyed by field.
func (v *View) ErrorMessages() map[string]string {
	out := make(map[string]string, len(v.errors))
	for _, field := range v.order {
		out[field] = v.errors[field].Message
	}
	return out
}

// PageLanguages returns the languages enabled for editing.
func (v *View) PageLanguages() []string {
	switch langs := v.data[KeyPageLanguages].(type) {
	case []string:
		return langs
	case []any:
		out := make([]string, 0, len(langs))
		for _, lang := range langs {
			if s, ok := lang.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Locale returns the locale used for user facing messages.
func (v *View) Locale() string {
	return v.String(KeyLocale)
}

func lookup(node any, key string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[key]
		return value, ok
	case map[string]string:
		value, ok := typed[key]
		return value, ok
	case map[string][]string:
		value, ok := typed[key]
		return value, ok
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	case []string:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	default:
		return nil, false
	}
}
