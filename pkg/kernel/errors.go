package kernel

import "fmt"

// InvariantViolation reports a broken internal contract: store-tag
// mismatches, index corruption, ordering non-totality on ground terms. It is
// fatal and never recovered; the engine surfaces it as a panic carrying a
// structured diagnostic.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Msg
}

func panicInvariant(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
