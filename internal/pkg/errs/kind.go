package errs

import "errors"

// Kind is the failure class every core operation reports.
type Kind int

const (
	KindNone Kind = iota
	KindNotAuthenticated
	KindForbidden
	KindNotFound
	KindInvalidInput
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNotAuthenticated:
		return "NotAuthenticated"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindInvalidInput:
		return "InvalidInput"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// KindOf classifies err. Errors that match no known sentinel are Internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotAuthenticated):
		return KindNotAuthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrPreconditionFailed):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
