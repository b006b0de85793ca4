package backend

import "errors"

var (
	ErrNotFound            = errors.New("no rows matched the request")
	ErrUnauthenticated     = errors.New("no active session")
	ErrForbidden           = errors.New("the row-level security policy does not allow this request")
	ErrConstraint          = errors.New("the request violates a constraint")
	ErrFunctionUnavailable = errors.New("the function is not available on this backend")
	ErrUnavailable         = errors.New("the backend is unavailable")
	ErrInvalidQuery        = errors.New("invalid query")
)
