package ball

import (
	"fmt"
)

// PreconditionViolation is the panic value raised when an operation is called with
// arguments outside its contract (malformed lengths, non-invertible series, ...).
// It signals a programming error and is not meant to be recovered from.
type PreconditionViolation struct {
	Op     string
	Reason string
}

func (e *PreconditionViolation) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Reason)
}

// InternalInconsistency is the panic value raised when a quantity that is mathematically
// guaranteed to satisfy an invariant fails to do so numerically.
type InternalInconsistency struct {
	Op     string
	Reason string
}

func (e *InternalInconsistency) Error() string {
	return fmt.Sprintf("%s: internal inconsistency: %s", e.Op, e.Reason)
}

// Precondition panics with a *PreconditionViolation built from op and the formatted reason.
func Precondition(op, format string, args ...interface{}) {
	panic(&PreconditionViolation{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// Inconsistency panics with an *InternalInconsistency built from op and the formatted reason.
func Inconsistency(op, format string, args ...interface{}) {
	panic(&InternalInconsistency{Op: op, Reason: fmt.Sprintf(format, args...)})
}
