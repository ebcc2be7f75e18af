package dialect

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFeature is matched by every UnsupportedFeatureError.
	ErrUnsupportedFeature = errors.New("unsupported dialect feature")
	ErrUnknownDialect     = errors.New("unknown dialect")
)

// UnsupportedFeatureError is returned when a query needs a feature the
// dialect has no strategy for.
type UnsupportedFeatureError struct {
	Dialect string
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("dialect %q does not support %s", e.Dialect, e.Feature)
}

func (e *UnsupportedFeatureError) Is(target error) bool {
	return target == ErrUnsupportedFeature
}
