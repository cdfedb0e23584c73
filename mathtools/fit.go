package mathtools

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateFit is returned when the anchor points do not determine a quadratic.
var ErrDegenerateFit = errors.New("mathtools: anchor points do not determine a quadratic")

/*
QuadraticThrough fits y = c0 + c1 x + c2 x^2 exactly through three anchor points.

	Args:
		xs: anchor abscissas [3], pairwise distinct
		ys: anchor ordinates [3]

	Returns:
		coefficients [3]
*/
func QuadraticThrough(xs, ys [3]float64) ([]float64, error) {
	if xs[0] == xs[1] || xs[1] == xs[2] || xs[0] == xs[2] {
		return nil, fmt.Errorf("%w: repeated abscissa in %v", ErrDegenerateFit, xs)
	}
	a := mat.NewDense(3, 3, []float64{
		1.0, xs[0], xs[0] * xs[0],
		1.0, xs[1], xs[1] * xs[1],
		1.0, xs[2], xs[2] * xs[2],
	})
	b := mat.NewVecDense(3, []float64{ys[0], ys[1], ys[2]})

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateFit, err)
	}
	return []float64{c.AtVec(0), c.AtVec(1), c.AtVec(2)}, nil
}
