package dashboard

import "errors"

var (
	// ErrSourceUnavailable wraps a failed snapshot fetch.
	ErrSourceUnavailable = errors.New("record source unavailable")
	// ErrMutationFailed wraps a failed create or delete.
	ErrMutationFailed = errors.New("record mutation failed")
	// ErrInvalidState indicates an unknown filter, sort key, direction or page.
	ErrInvalidState = errors.New("invalid dashboard state")
)
