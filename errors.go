package silhouette

import (
	"errors"
	"fmt"
)

// ErrInvalidBitmap is returned for nil, zero-area or malformed bitmaps.
var ErrInvalidBitmap = errors.New("silhouette: invalid bitmap")

// TransformError reports an unexpected fault inside one variant's
// sub-pipeline. It never aborts sibling variants.
type TransformError struct {
	Source  string
	Variant string
	Err     error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("silhouette: variant %q of %q: %v", e.Variant, e.Source, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// panicError wraps a recovered panic value.
type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
