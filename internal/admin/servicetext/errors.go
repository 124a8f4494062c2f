package servicetext

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	noLanguagesMessage = "No languages available. Please enable at least one language"
	noLanguagesCode    = "SERVICE_TEXT_NO_LANGUAGES"
)

var (
	ErrUnknownType       = errors.New("servicetext: unknown text type")
	ErrDuplicateLanguage = errors.New("servicetext: language used by more than one row")
	ErrDuplicateLink     = errors.New("servicetext: link used by more than one cell")
	ErrNoLanguages       = errors.New("servicetext: no languages available")
	ErrItemRequired      = errors.New("servicetext: service item is required")
	ErrStoreRequired     = errors.New("servicetext: content, link and type stores are required")
)

// UnknownTypeError reports a text type code with no stored type record.
type UnknownTypeError struct {
	TypeDomain string
	Code       string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("Unknown type %q", e.Code)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

func (e *UnknownTypeError) Domain() bool {
	return true
}

func (e *UnknownTypeError) MessageKey() (string, []any) {
	return "Unknown type \"%s\"", []any{e.Code}
}

// DuplicateLanguageError reports a language submitted in more than one row.
type DuplicateLanguageError struct {
	LanguageID string
}

func (e *DuplicateLanguageError) Error() string {
	return fmt.Sprintf("Language %q is used by more than one row", e.LanguageID)
}

func (e *DuplicateLanguageError) Unwrap() error {
	return ErrDuplicateLanguage
}

func (e *DuplicateLanguageError) Domain() bool {
	return true
}

func (e *DuplicateLanguageError) MessageKey() (string, []any) {
	return "Language \"%s\" is used by more than one row", []any{e.LanguageID}
}

// DuplicateLinkError reports a list id submitted for more than one cell.
type DuplicateLinkError struct {
	LinkID string
}

func (e *DuplicateLinkError) Error() string {
	return fmt.Sprintf("Text link %q is used by more than one cell", e.LinkID)
}

func (e *DuplicateLinkError) Unwrap() error {
	return ErrDuplicateLink
}

func (e *DuplicateLinkError) Domain() bool {
	return true
}

func (e *DuplicateLinkError) MessageKey() (string, []any) {
	return "Text link \"%s\" is used by more than one cell", []any{e.LinkID}
}

func noLanguagesError() error {
	return goerrors.Wrap(ErrNoLanguages, goerrors.CategoryValidation, noLanguagesMessage).
		WithTextCode(noLanguagesCode)
}
