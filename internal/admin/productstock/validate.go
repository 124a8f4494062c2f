package productstock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const (
	invalidStockMessage = "Invalid stock data"
	invalidStockCode    = "PRODUCT_STOCK_INVALID"

	// DateBackLayout is the format stored dates are rendered with.
	DateBackLayout = "2006-01-02 15:04:05"
)

var dateBackLayouts = []string{DateBackLayout, "2006-01-02T15:04", "2006-01-02T15:04:05"}

var (
	ErrUnknownType   = errors.New("productstock: unknown stock type")
	ErrDuplicateType = errors.New("productstock: stock type used by more than one row")
	ErrItemRequired  = errors.New("productstock: product item is required")
	ErrStoreRequired = errors.New("productstock: stock and type stores are required")
)

// UnknownTypeError reports a stock type code with no stored type.
type UnknownTypeError struct {
	Code string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("Unknown type %q", e.Code)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

func (e *UnknownTypeError) Domain() bool { return true }

func (e *UnknownTypeError) MessageKey() (string, []any) {
	return "Unknown type \"%s\"", []any{e.Code}
}

// DuplicateTypeError reports a stock type submitted in more than one row.
type DuplicateTypeError struct {
	Code string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("Stock type %q is used by more than one row", e.Code)
}

func (e *DuplicateTypeError) Unwrap() error { return ErrDuplicateType }

func (e *DuplicateTypeError) Domain() bool { return true }

func (e *DuplicateTypeError) MessageKey() (string, []any) {
	return "Stock type \"%s\" is used by more than one row", []any{e.Code}
}

// Validate checks a single row.
func (r Row) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.Length(1, 32)),
		validation.Field(&r.StockLevel, validation.By(stockLevelRule)),
		validation.Field(&r.DateBack, validation.By(dateBackRule)),
		validation.Field(&r.Timeframe, validation.Length(0, 16)),
	)
}

// ValidateRows checks the fields of every row. Errors are keyed by row index.
func ValidateRows(rows []Row) error {
	errs := validation.Errors{}
	for idx, row := range rows {
		if err := row.Validate(); err != nil {
			errs[strconv.Itoa(idx)] = err
		}
	}
	if len(errs) > 0 {
		return goerrors.FromOzzoValidation(errs, invalidStockMessage).WithTextCode(invalidStockCode)
	}
	return nil
}

func stockLevelRule(value any) error {
	raw, _ := value.(string)
	_, err := parseStockLevel(raw)
	return err
}

func dateBackRule(value any) error {
	raw, _ := value.(string)
	_, err := parseDateBack(raw)
	return err
}

// parseStockLevel returns nil for unlimited stock.
func parseStockLevel(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validation.NewError("validation_stock_level_integer", "must be a whole number")
	}
	if level < 0 {
		return nil, validation.NewError("validation_stock_level_negative", "must not be negative")
	}
	return &level, nil
}

func parseDateBack(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateBackLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed, nil
		}
	}
	return nil, validation.NewError("validation_date_back_format", "must be a date like 2006-01-02 15:04:05")
}
