package finance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/walletwise/finance/pkg/backend"
)

// Error kinds. Use errors.Is to check the kind of an error returned by the Client.
var (
	ErrAuthentication = errors.New("authentication required")
	ErrValidation     = errors.New("validation failed")
	ErrBackend        = errors.New("backend request failed")
	ErrNotFound       = errors.New("resource not found")
)

// Error is the error type returned by all operations of the Client.
//
// Message is localized and safe to show to users. The cause in Err is
// meant for logs only.
type Error struct {
	Kind    error
	Message string
	Field   string // Input field that failed validation, if any
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// fieldError is a failed validation of a single input field. Its message is
// a catalog key with an optional %s for the label of the field.
type fieldError struct {
	field string
	msg   string
}

func invalid(field, msg string) error {
	return fieldError{field: field, msg: msg}
}

func (e fieldError) Error() string {
	if strings.Contains(e.msg, "%s") {
		return fmt.Sprintf(e.msg, labels[e.field])
	}
	return e.msg
}

// validation converts the error of a Validate method into a localized Error.
func (c *Client) validation(err error) error {
	var fe fieldError
	if !errors.As(err, &fe) {
		return &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}

	msg := c.printer.Sprintf(fe.msg)
	if strings.Contains(fe.msg, "%s") {
		msg = c.printer.Sprintf(fe.msg, c.printer.Sprintf(labels[fe.field]))
	}

	return &Error{
		Kind:    ErrValidation,
		Message: msg,
		Field:   fe.field,
		Err:     err,
	}
}

func (c *Client) authentication() error {
	return &Error{
		Kind:    ErrAuthentication,
		Message: c.printer.Sprintf(msgAuthentication),
	}
}

// fail converts an error of the backend into an Error and logs its cause.
func (c *Client) fail(op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	kind, msg := ErrBackend, msgBackend
	switch {
	case errors.Is(err, backend.ErrUnauthenticated):
		kind, msg = ErrAuthentication, msgAuthentication
	case errors.Is(err, backend.ErrNotFound):
		kind, msg = ErrNotFound, msgNotFound
	case errors.Is(err, backend.ErrForbidden):
		msg = msgForbidden
	case errors.Is(err, backend.ErrConstraint):
		msg = msgConstraint
	case errors.Is(err, backend.ErrUnavailable):
		msg = msgUnavailable
	}

	c.logger.Error().Str("operation", op).Err(err).Msg("backend request failed")

	return &Error{
		Kind:    kind,
		Message: c.printer.Sprintf(msg),
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

// notFound returns the error for a single resource that does not exist.
func (c *Client) notFound(op, resource string, id fmt.Stringer) error {
	return &Error{
		Kind:    ErrNotFound,
		Message: c.printer.Sprintf(msgNotFound),
		Err:     fmt.Errorf("%s: %w: %s %s", op, backend.ErrNotFound, resource, id),
	}
}
