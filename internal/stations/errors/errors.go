package errors

import "errors"

var (
	ErrNotFound = errors.New("station not found")

	ErrInvalidID = errors.New("invalid station ID format")
)
