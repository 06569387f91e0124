// Package errs defines the error kinds shared by stores, services and
// controllers, and how each kind maps to an HTTP status.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation                = errors.New("validation error")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrNotFound                  = errors.New("not found")
	ErrConflict                  = errors.New("conflict")
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrPersistence               = errors.New("persistence error")
)

// GenericMessage is what callers see for failures whose detail stays in the logs.
const GenericMessage = "Something went wrong"

// Error is a kinded error carrying a message that is safe to show to callers.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func Validation(msg string) error   { return newError(ErrValidation, msg, nil) }
func Unauthorized(msg string) error { return newError(ErrUnauthorized, msg, nil) }
func Forbidden(msg string) error    { return newError(ErrForbidden, msg, nil) }
func NotFound(msg string) error     { return newError(ErrNotFound, msg, nil) }
func Conflict(msg string) error     { return newError(ErrConflict, msg, nil) }

// ClassificationUnavailable reports that the external classifier could not
// produce a label and no local fallback applies.
func ClassificationUnavailable(cause error) error {
	return newError(ErrClassificationUnavailable, "Image classification service is unavailable", cause)
}

// Persistence wraps a store failure. op names the failed operation.
func Persistence(op string, cause error) error {
	return newError(ErrPersistence, "failed to "+op, cause)
}

// Wrap adds context and preserves the error chain.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context and preserves the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	args = append(args, err)
	return fmt.Errorf(format+": %w", args...)
}

// HTTPStatus returns the response status for err.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrClassificationUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message to put in an error response. Internal
// failures collapse to GenericMessage.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return GenericMessage
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
