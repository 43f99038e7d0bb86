// Package apperr defines the error kinds surfaced to API callers.
package apperr

import "errors"

// Kinds. Match with errors.Is.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrConflict            = errors.New("conflict")
)

// Error carries a caller-facing detail message and wraps one of the kinds above.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, detail string) error {
	return &Error{Kind: kind, Detail: detail}
}

func InvalidCredentials(detail string) error  { return newErr(ErrInvalidCredentials, detail) }
func Forbidden(detail string) error           { return newErr(ErrForbidden, detail) }
func NotFoundOrForbidden(detail string) error { return newErr(ErrNotFoundOrForbidden, detail) }
func NotFound(detail string) error            { return newErr(ErrNotFound, detail) }
func Validation(detail string) error          { return newErr(ErrValidation, detail) }
func Conflict(detail string) error            { return newErr(ErrConflict, detail) }

// Detail returns the caller-facing message of err, or "" when err is not an *Error.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return ""
}
