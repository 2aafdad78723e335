package soundpool

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidHandle reports an operation addressing a pool handle that was
// never allocated or has already been disposed. This is a caller contract
// violation, fatal to the single call only.
var ErrInvalidHandle = errors.New("invalid pool handle")

// LoadError reports a failed load: an I/O fault while materializing the clip
// or a nonzero status from the mixer's load-complete notification.
type LoadError struct {
	Status int32
	cause  error
}

func (e *LoadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("load failed (%v)", e.cause)
	}
	return fmt.Sprintf("load failed with status [%d]", e.Status)
}

func (e *LoadError) Unwrap() error {
	return e.cause
}

// URILoadError reports a fetch or open fault while resolving a URI load,
// kept distinct from LoadError for diagnostic clarity.
type URILoadError struct {
	URI   string
	cause error
}

func (e *URILoadError) Error() string {
	return fmt.Sprintf("loading uri [%s] failed (%v)", e.URI, e.cause)
}

func (e *URILoadError) Unwrap() error {
	return e.cause
}
