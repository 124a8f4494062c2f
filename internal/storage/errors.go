package storage

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

const persistenceFailedCode = "PERSISTENCE_FAILED"

// ErrNotFound is the sentinel every NotFoundError unwraps to.
var ErrNotFound = errors.New("storage: record not found")

// NotFoundError represents missing records from store lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// WrapPersistence tags store failures so callers can tell them apart from
// domain errors. Nil errors and not-found errors pass through unchanged.
func WrapPersistence(err error, resource, operation string) error {
	if err == nil {
		return nil
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("%s %s failed", resource, operation)).
		WithTextCode(persistenceFailedCode).
		WithMetadata(map[string]any{"resource": resource, "operation": operation})
}

// MapRepositoryError converts go-repository-bun not-found errors into
// NotFoundError and tags everything else as a persistence failure.
func MapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return WrapPersistence(err, resource, "lookup")
}
