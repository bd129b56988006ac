package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the analysis API does not answer within the configured timeout.
	ErrTimeout = errors.New("analysis request timed out")

	// ErrTransport is returned when the analysis API cannot be reached at all.
	ErrTransport = errors.New("analysis request failed")

	// ErrDecode is returned when a success response carries a body that is not an analysis document.
	ErrDecode = errors.New("analysis response could not be decoded")
)

// StatusError is returned for non-2xx responses. Message holds the
// error text the server put in its body, if any.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("analysis API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analysis API returned status %d", e.StatusCode)
}
