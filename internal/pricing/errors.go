package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is matched by every InvalidOptionError.
var ErrInvalidOption = errors.New("invalid print option")

// InvalidOptionError is returned in strict mode for values outside the
// enumerated option sets.
type InvalidOptionError struct {
	Field string
	Value string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}
