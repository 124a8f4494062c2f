package admin

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-shop-admin/internal/storage"
	"github.com/goliatone/go-shop-admin/pkg/interfaces"
)

const operationFailedCode = "ADMIN_OPERATION_FAILED"

// ErrOperationFailed is returned to the presentation layer when a save failed
// and both stores were rolled back. Details live in the view errors.
var ErrOperationFailed = errors.New("admin: operation failed")

// FailureKind discriminates user-correctable failures from unexpected ones.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureDomain
)

func (k FailureKind) String() string {
	if k == FailureDomain {
		return "domain"
	}
	return "generic"
}

// DomainError marks errors whose message is meant for the editor.
type DomainError interface {
	error
	Domain() bool
}

// TranslatableError exposes a message key and arguments for localization.
type TranslatableError interface {
	error
	MessageKey() (string, []any)
}

// Failure is the tagged error stored in the view for a failed operation.
type Failure struct {
	Kind     FailureKind
	Field    string
	Message  string
	Location string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify builds the Failure for err. Domain failures get a translated
// message; generic failures carry the raw message and source location.
func Classify(err error, field string, translator interfaces.Translator, locale string) *Failure {
	if err == nil {
		return nil
	}
	var existing *Failure
	if errors.As(err, &existing) {
		copied := *existing
		copied.Field = field
		return &copied
	}

	failure := &Failure{Field: field, Err: err}
	if IsDomain(err) {
		failure.Kind = FailureDomain
		failure.Message = translate(err, translator, locale)
		return failure
	}

	failure.Kind = FailureGeneric
	failure.Message = err.Error()
	var ge *goerrors.Error
	if errors.As(err, &ge) && ge.Location != nil {
		failure.Location = ge.Location.String()
		failure.Message = fmt.Sprintf("%s, %s", ge.Message, failure.Location)
	}
	return failure
}

// IsDomain reports whether err should be shown to the editor as is.
func IsDomain(err error) bool {
	var domainErr DomainError
	if errors.As(err, &domainErr) && domainErr.Domain() {
		return true
	}
	if errors.Is(err, storage.ErrNotFound) {
		return true
	}
	for _, category := range []goerrors.Category{
		goerrors.CategoryValidation,
		goerrors.CategoryNotFound,
		goerrors.CategoryConflict,
		goerrors.CategoryBadInput,
	} {
		if goerrors.IsCategory(err, category) {
			return true
		}
	}
	return false
}

// OperationFailed wraps failure into the error returned by Save.
func OperationFailed(failure *Failure) error {
	wrapped := goerrors.Wrap(ErrOperationFailed, goerrors.CategoryOperation, "admin operation failed").
		WithTextCode(operationFailedCode)
	if failure != nil {
		wrapped = wrapped.WithMetadata(map[string]any{
			"field": failure.Field,
			"kind":  failure.Kind.String(),
		})
	}
	return wrapped
}

func translate(err error, translator interfaces.Translator, locale string) string {
	key, args := err.Error(), []any(nil)
	var translatable TranslatableError
	if errors.As(err, &translatable) {
		key, args = translatable.MessageKey()
	} else {
		var ge *goerrors.Error
		if errors.As(err, &ge) && ge.Message != "" {
			key = ge.Message
		}
	}
	if translator == nil {
		if len(args) > 0 {
			return fmt.Sprintf(key, args...)
		}
		return key
	}
	msg, terr := translator.Translate(locale, key, args...)
	if terr != nil || msg == "" {
		if len(args) > 0 {
			return fmt.Sprintf(key, args...)
		}
		return key
	}
	return msg
}
