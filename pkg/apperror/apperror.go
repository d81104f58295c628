package apperror

import "errors"

// Kind classifies an application error. Handlers translate it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the single error type returned by application services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind against the sentinel values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is(err, apperror.ErrNotFound) style checks.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrInternal   = &Error{Kind: KindInternal}
)

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func Internal(err error) *Error { return &Error{Kind: KindInternal, Err: err} }

// KindOf reports the kind of err. Errors that are not *Error are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// From returns err as *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
