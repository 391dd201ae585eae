package dirnav

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an entry index does not address the current listing.
	ErrIndexOutOfRange = errors.New("entry index out of range")

	// ErrStaleIndex is returned when an entry index was read from an older listing.
	ErrStaleIndex = errors.New("entry index belongs to an outdated listing")
)

// StartupError reports that the initial location could not be determined.
// There is no state to recover into, so Initialize returns it to the caller.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("failed to determine working directory: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// ListingError reports a failed directory read. It never escapes the Navigator:
// it is recorded as the last error and the stack is rolled back.
type ListingError struct {
	Path string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("an error occurred listing %s: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}
