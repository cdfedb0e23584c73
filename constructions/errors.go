package constructions

import (
	"errors"
	"fmt"
)

// Validation sentinels. A *ValidationError unwraps to one of these.
var (
	ErrPathFractionSum     = errors.New("constructions: path fractions must sum to 1")
	ErrNegativePathFrac    = errors.New("constructions: path fraction is negative")
	ErrNoLayers            = errors.New("constructions: construction has no layers")
	ErrLayerMaterialCount  = errors.New("constructions: layer material count does not match the path count")
	ErrLayerThickness      = errors.New("constructions: parallel materials differ in thickness")
	ErrNonContiguous       = errors.New("constructions: parallel layers are not contiguous")
	ErrMixedGlazing        = errors.New("constructions: glazing mixed with opaque materials")
	ErrGlazingParallel     = errors.New("constructions: glazing cannot be part of a parallel layer")
	ErrParallelNotOpaque   = errors.New("constructions: parallel layer material has no mass")
	ErrInvalidMaterial     = errors.New("constructions: material properties out of range")
	ErrNotParallel         = errors.New("constructions: layer is not a parallel layer")
	ErrLayerIndex          = errors.New("constructions: layer index out of range")
	ErrUnknownBaseMaterial = errors.New("constructions: unknown base material")
)

// ValidationError reports the construction and layer that failed validation.
type ValidationError struct {
	Construction string
	Layer        string // empty for construction-level failures
	Err          error
}

func (e *ValidationError) Error() string {
	if e.Layer == "" {
		return fmt.Sprintf("construction %q: %v", e.Construction, e.Err)
	}
	return fmt.Sprintf("construction %q, layer %q: %v", e.Construction, e.Layer, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrInvalidInput is the sentinel behind every *InputError.
var ErrInvalidInput = errors.New("constructions: invalid input")

// InputError is returned by the assembly builders for an out-of-range argument.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("constructions: %s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
