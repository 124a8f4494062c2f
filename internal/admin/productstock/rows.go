package productstock

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field names posted by the stock table.
const (
	FieldID         = "stock.id"
	FieldSiteID     = "stock.siteid"
	FieldType       = "stock.type"
	FieldStockLevel = "stock.stocklevel"
	FieldDateBack   = "stock.dateback"
	FieldTimeframe  = "stock.timeframe"
)

var rowFields = []string{FieldID, FieldSiteID, FieldType, FieldStockLevel, FieldDateBack, FieldTimeframe}

// Row is one line of the stock table. Values are kept as submitted; an empty
// stock level means unlimited stock.
type Row struct {
	ID         string `json:"stock.id"`
	SiteID     string `json:"stock.siteid"`
	Type       string `json:"stock.type"`
	StockLevel string `json:"stock.stocklevel"`
	DateBack   string `json:"stock.dateback"`
	Timeframe  string `json:"stock.timeframe"`
}

func (r Row) get(field string) string {
	switch field {
	case FieldID:
		return r.ID
	case FieldSiteID:
		return r.SiteID
	case FieldType:
		return r.Type
	case FieldStockLevel:
		return r.StockLevel
	case FieldDateBack:
		return r.DateBack
	case FieldTimeframe:
		return r.Timeframe
	}
	return ""
}

func (r *Row) set(field, value string) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldID:
		r.ID = value
	case FieldSiteID:
		r.SiteID = value
	case FieldType:
		r.Type = value
	case FieldStockLevel:
		r.StockLevel = value
	case FieldDateBack:
		r.DateBack = value
	case FieldTimeframe:
		r.Timeframe = value
	}
}

// ParseRows reads the submitted stock table. Both the column layout posted
// by the form (field => index => value) and a list of row maps are accepted.
func ParseRows(value any) []Row {
	switch typed := value.(type) {
	case []Row:
		return append([]Row(nil), typed...)
	case []map[string]any:
		rows := make([]Row, 0, len(typed))
		for _, entry := range typed {
			rows = append(rows, rowFromMap(entry))
		}
		return rows
	case []any:
		rows := make([]Row, 0, len(typed))
		for _, entry := range typed {
			if m, ok := entry.(map[string]any); ok {
				rows = append(rows, rowFromMap(m))
			}
		}
		return rows
	case map[string]any:
		return rowsFromColumns(typed)
	}
	return nil
}

// RowsMap renders rows in the column layout used by the form.
func RowsMap(rows []Row) map[string]any {
	out := make(map[string]any, len(rowFields))
	for _, field := range rowFields {
		column := make(map[string]any, len(rows))
		for idx, row := range rows {
			column[strconv.Itoa(idx)] = row.get(field)
		}
		out[field] = column
	}
	return out
}

func rowFromMap(entry map[string]any) Row {
	var row Row
	for _, field := range rowFields {
		if value, ok := entry[field]; ok {
			row.set(field, stringValue(value))
		}
	}
	return row
}

func rowsFromColumns(columns map[string]any) []Row {
	cells := map[string]map[string]string{}
	for _, field := range rowFields {
		for key, value := range column(columns[field]) {
			if cells[key] == nil {
				cells[key] = map[string]string{}
			}
			cells[key][field] = value
		}
	}
	keys := make([]string, 0, len(cells))
	for key := range cells {
		keys = append(keys, key)
	}
	sortKeys(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		var row Row
		for field, value := range cells[key] {
			row.set(field, value)
		}
		rows = append(rows, row)
	}
	return rows
}

func column(raw any) map[string]string {
	out := map[string]string{}
	switch typed := raw.(type) {
	case map[string]any:
		for key, value := range typed {
			out[key] = stringValue(value)
		}
	case map[string]string:
		for key, value := range typed {
			out[key] = value
		}
	case []any:
		for idx, value := range typed {
			out[strconv.Itoa(idx)] = stringValue(value)
		}
	case []string:
		for idx, value := range typed {
			out[strconv.Itoa(idx)] = value
		}
	}
	return out
}

// sortKeys orders numeric keys by value ahead of the remaining keys.
func sortKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
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
