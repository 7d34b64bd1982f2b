package domain

import "errors"

// Error kinds shared by every layer. Call sites wrap them with detail using
// fmt.Errorf("%w: ...", ErrX) and callers classify with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotAvailable   = errors.New("item not available")
	ErrNotAllowed     = errors.New("not allowed")
	ErrConflict       = errors.New("conflict")
)

// Kind returns the short name of the error kind err belongs to, or "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotAvailable):
		return "not_available"
	case errors.Is(err, ErrNotAllowed):
		return "not_allowed"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
