package texts

import "errors"

var (
	ErrItemRequired = errors.New("texts: content item is required")
	ErrTypeRequired = errors.New("texts: text type is required")
)
