// Package apperr holds the error taxonomy shared by every layer of the service.
// Domain code wraps these sentinels with fmt.Errorf("...: %w", ...) and the HTTP
// layer maps them to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource conflict")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMisconfigured     = errors.New("server misconfigured")
)
