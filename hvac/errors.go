package hvac

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConverged is the kind of every *ConvergenceWarning.
	ErrNotConverged = errors.New("hvac: rating solver did not converge")

	ErrSpeeds       = errors.New("hvac: unsupported number of speeds")
	ErrInvalidInput = errors.New("hvac: invalid input")
)

func speedError(n int) error {
	return fmt.Errorf("%w: %d (want 1, 2 or 4)", ErrSpeeds, n)
}

// ConvergenceWarning records that a rating solve fell back to the linear
// correlation. It is returned alongside the value, never as the error.
type ConvergenceWarning struct {
	Rating     string // "SEER" or "HSPF"
	Target     float64
	Fallback   float64
	Iterations int
	Bracketed  bool
}

func (w *ConvergenceWarning) Error() string {
	reason := "iteration cap reached"
	if !w.Bracketed {
		reason = "root not bracketed"
	}
	return fmt.Sprintf("%v: %s %.3f (%s after %d iterations), using %.4f",
		ErrNotConverged, w.Rating, w.Target, reason, w.Iterations, w.Fallback)
}

func (w *ConvergenceWarning) Unwrap() error { return ErrNotConverged }

// InputError reports an out-of-range equipment parameter.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("hvac: %s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
