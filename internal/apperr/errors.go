package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidPath   = errors.New("invalid path")

	// ErrInvalidPageCount is the only error shown to the user as a notice.
	ErrInvalidPageCount = errors.New("total pages must be greater than 0")
)
