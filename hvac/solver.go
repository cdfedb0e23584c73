package hvac

import (
	"log"

	"envelope_hvac_calc/mathtools"
)

// bisection limits validated against the reference correlations
const (
	SolverTolerance = 1.0e-4
	SolverMaxIter   = 100
)

// SolverOptions bounds a rating solve. A nil Logger uses log.Default().
type SolverOptions struct {
	Lo      float64
	Hi      float64
	Tol     float64
	MaxIter int
	Logger  *log.Logger
}

// DefaultEERSolverOptions brackets EER in [0.1, 30].
func DefaultEERSolverOptions() SolverOptions {
	return SolverOptions{Lo: 0.1, Hi: 30.0, Tol: SolverTolerance, MaxIter: SolverMaxIter}
}

// DefaultCOPSolverOptions brackets COP in [0.1, 15].
func DefaultCOPSolverOptions() SolverOptions {
	return SolverOptions{Lo: 0.1, Hi: 15.0, Tol: SolverTolerance, MaxIter: SolverMaxIter}
}

func (o SolverOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Solution is a solved rated efficiency. Warning is set when Value is the
// linear fallback.
type Solution struct {
	Value      float64
	Iterations int
	Warning    *ConvergenceWarning
}

// Converged reports whether Value came from the bisection.
func (s Solution) Converged() bool { return s.Warning == nil }

func solve(rating string, target float64, f func(float64) float64, fallback func(float64) float64, opts SolverOptions) Solution {
	res := mathtools.Bisect(func(x float64) float64 { return f(x) - target }, opts.Lo, opts.Hi, opts.Tol, opts.MaxIter)
	if res.Bracketed && res.Converged {
		return Solution{Value: res.Root, Iterations: res.Iterations}
	}

	w := &ConvergenceWarning{
		Rating:     rating,
		Target:     target,
		Fallback:   fallback(target),
		Iterations: res.Iterations,
		Bracketed:  res.Bracketed,
	}
	opts.logger().Printf("warning: %v", w)
	return Solution{Value: w.Fallback, Iterations: res.Iterations, Warning: w}
}

/*
SolveEER finds the rated design-speed EER that reproduces the SEER.

	Args:
		m: cooling model
		seer: target SEER, Btu/Wh
		opts: bracket, tolerance and iteration cap

	Returns:
		Solution; on failure Value is FallbackEER(seer) and Warning is set.
*/
func SolveEER(m CoolingModel, seer float64, opts SolverOptions) Solution {
	return solve("SEER", seer, m.SEER, FallbackEER, opts)
}

// SolveCOP finds the rated nominal-speed COP that reproduces the HSPF.
func SolveCOP(m HeatingModel, hspf float64, opts SolverOptions) Solution {
	return solve("HSPF", hspf, m.HSPF, FallbackCOP, opts)
}
