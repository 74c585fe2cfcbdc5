package sim

import (
	"errors"
	"fmt"
)

// InvariantError reports a run-time invariant violation: a feature
// value outside [0,1] or an inconsistent population count. It is a
// defect, not a recoverable condition; Run aborts and reports the
// failing step and quantity.
type InvariantError struct {
	Step     int
	Quantity string
	Value    float64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("sim: invariant violated at step %d: %s = %v", e.Step, e.Quantity, e.Value)
}

// IsInvariantError reports whether err is (or wraps) an InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
