package servicetext

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	formLangID  = "langid"
	formSiteID  = "siteid"
	formListID  = "listid"
	formContent = "content"
)

// FormData is the text section of the edit form. Rows are keyed by an index
// when submitted and by language id when projected from stored links.
type FormData struct {
	LangID map[string]string
	SiteID map[string]string
	Types  map[string]TypeData
}

// TypeData holds the cells of one text type, keyed like FormData.LangID.
type TypeData struct {
	ListID  map[string]string
	Content map[string]string
}

// NewFormData returns an empty form.
func NewFormData() FormData {
	return FormData{
		LangID: map[string]string{},
		SiteID: map[string]string{},
		Types:  map[string]TypeData{},
	}
}

// Type returns the cells of code, creating them when missing.
func (f FormData) Type(code string) TypeData {
	data, ok := f.Types[code]
	if !ok {
		data = TypeData{ListID: map[string]string{}, Content: map[string]string{}}
		f.Types[code] = data
	}
	return data
}

// ParseForm converts submitted parameters into FormData. Nested maps and
// index slices are accepted; unknown shapes are ignored.
func ParseForm(value any) FormData {
	switch typed := value.(type) {
	case FormData:
		return typed
	case *FormData:
		if typed != nil {
			return *typed
		}
	}
	form := NewFormData()
	root, _ := value.(map[string]any)
	for key, raw := range root {
		switch key {
		case formLangID:
			form.LangID = stringMap(raw)
		case formSiteID:
			form.SiteID = stringMap(raw)
		default:
			cells, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			form.Types[key] = TypeData{
				ListID:  stringMap(cells[formListID]),
				Content: stringMap(cells[formContent]),
			}
		}
	}
	return form
}

// Map renders the form in the nested shape used by templates and commands.
func (f FormData) Map() map[string]any {
	out := map[string]any{}
	if len(f.LangID) > 0 {
		out[formLangID] = copyStrings(f.LangID)
	}
	if len(f.SiteID) > 0 {
		out[formSiteID] = copyStrings(f.SiteID)
	}
	for code, data := range f.Types {
		cells := map[string]any{}
		if len(data.ListID) > 0 {
			cells[formListID] = copyStrings(data.ListID)
		}
		if len(data.Content) > 0 {
			cells[formContent] = copyStrings(data.Content)
		}
		out[code] = cells
	}
	return out
}

// Contents maps (languageId, type) to content for every non-empty cell.
func (f FormData) Contents() map[string]map[string]string {
	out := map[string]map[string]string{}
	for _, row := range f.rows() {
		for code, data := range f.Types {
			content := strings.TrimSpace(data.Content[row.key])
			if content == "" {
				continue
			}
			if out[row.languageID] == nil {
				out[row.languageID] = map[string]string{}
			}
			out[row.languageID][code] = content
		}
	}
	return out
}

type formRow struct {
	key        string
	position   int
	languageID string
}

// rows orders the submitted row keys: numeric keys by value first, then the
// remaining keys lexically. Numeric keys keep their value as position, other
// keys use their ordinal.
func (f FormData) rows() []formRow {
	rows := make([]formRow, 0, len(f.LangID))
	for key, lang := range f.LangID {
		rows = append(rows, formRow{key: key, languageID: strings.TrimSpace(lang)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ni, errI := strconv.Atoi(rows[i].key)
		nj, errJ := strconv.Atoi(rows[j].key)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return rows[i].key < rows[j].key
		}
	})
	for idx := range rows {
		if n, err := strconv.Atoi(rows[idx].key); err == nil {
			rows[idx].position = n
			continue
		}
		rows[idx].position = idx
	}
	return rows
}

func stringMap(raw any) map[string]string {
	out := map[string]string{}
	switch typed := raw.(type) {
	case map[string]string:
		for key, value := range typed {
			out[key] = value
		}
	case map[string]any:
		for key, value := range typed {
			out[key] = stringValue(value)
		}
	case []string:
		for idx, value := range typed {
			out[strconv.Itoa(idx)] = value
		}
	case []any:
		for idx, value := range typed {
			out[strconv.Itoa(idx)] = stringValue(value)
		}
	}
	return out
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func copyStrings(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
