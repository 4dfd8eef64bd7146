// Package apperr defines sentinel errors shared across application layers.
package apperr

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")
)
