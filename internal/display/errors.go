package display

import "errors"

var (
	// ErrNoDisplays is returned when enumeration finds nothing to draw on.
	ErrNoDisplays = errors.New("no displays found")
	// ErrNoPrimary is returned when no enumerated display is flagged primary.
	ErrNoPrimary = errors.New("no primary display")
)

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
