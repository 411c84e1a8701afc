package structs

import "errors"

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("no rows in result set")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrBusy         = errors.New("operation already in progress")
	ErrNotConfirmed = errors.New("destructive action not confirmed")
)
