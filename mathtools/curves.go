// Package mathtools holds the curve forms and small numerical routines shared by
// the envelope and equipment calculations.
package mathtools

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// CurveKind is the functional form of a performance curve.
type CurveKind int

const (
	CurveQuadratic CurveKind = iota
	CurveCubic
	CurveBiquadratic
)

func (k CurveKind) String() string {
	switch k {
	case CurveQuadratic:
		return "Quadratic"
	case CurveCubic:
		return "Cubic"
	case CurveBiquadratic:
		return "Biquadratic"
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

/*
Curve is a performance curve as handed to the host model.

	Notes:
		MinX..MaxY are the validity range the host enforces. Evaluate does not clamp.
*/
type Curve struct {
	Name         string
	Kind         CurveKind
	Coefficients []float64
	MinX, MaxX   float64
	MinY, MaxY   float64
}

// Evaluate returns the curve value. y is ignored for single-variable curves.
func (c Curve) Evaluate(x, y float64) float64 {
	switch c.Kind {
	case CurveQuadratic:
		return Quadratic(x, c.Coefficients)
	case CurveCubic:
		return Cubic(x, c.Coefficients)
	case CurveBiquadratic:
		return Biquadratic(x, y, c.Coefficients)
	}
	panic(fmt.Sprintf("mathtools: unknown curve kind %v", c.Kind))
}

/*
Biquadratic curve.

	Args:
		x: first independent variable
		y: second independent variable
		c: coefficients [6]

	Returns:
		c0 + c1 x + c2 x^2 + c3 y + c4 y^2 + c5 x y
*/
func Biquadratic(x, y float64, c []float64) float64 {
	return floats.Dot(c, []float64{1.0, x, x * x, y, y * y, x * y})
}

// Quadratic returns c0 + c1 x + c2 x^2.
func Quadratic(x float64, c []float64) float64 {
	return floats.Dot(c, []float64{1.0, x, x * x})
}

// Cubic returns c0 + c1 x + c2 x^2 + c3 x^3.
func Cubic(x float64, c []float64) float64 {
	return floats.Dot(c, []float64{1.0, x, x * x, x * x * x})
}

/*
Converts biquadratic coefficients written for degF arguments to coefficients for
degC arguments, so that BiquadraticIPToSI(c) evaluated at (C(x), C(y)) equals c at (x, y).
*/
func BiquadraticIPToSI(c []float64) []float64 {
	return []float64{
		c[0] + 32.0*(c[1]+c[3]) + 1024.0*(c[2]+c[4]+c[5]),
		9.0/5.0*c[1] + 576.0/5.0*c[2] + 288.0/5.0*c[5],
		81.0 / 25.0 * c[2],
		9.0/5.0*c[3] + 576.0/5.0*c[4] + 288.0/5.0*c[5],
		81.0 / 25.0 * c[4],
		81.0 / 25.0 * c[5],
	}
}

// BiquadraticSIToIP is the inverse of BiquadraticIPToSI.
func BiquadraticSIToIP(c []float64) []float64 {
	return []float64{
		c[0] - 160.0/9.0*(c[1]+c[3]) + 25600.0/81.0*(c[2]+c[4]+c[5]),
		5.0 / 9.0 * (c[1] - 320.0/9.0*c[2] - 160.0/9.0*c[5]),
		25.0 / 81.0 * c[2],
		5.0 / 9.0 * (c[3] - 320.0/9.0*c[4] - 160.0/9.0*c[5]),
		25.0 / 81.0 * c[4],
		25.0 / 81.0 * c[5],
	}
}

// Interp2 interpolates (or extrapolates) linearly through (x0, f0) and (x1, f1).
func Interp2(x, x0, x1, f0, f1 float64) float64 {
	return f0 + (x-x0)/(x1-x0)*(f1-f0)
}

// InterpClamped interpolates a table with ascending xs, holding the end values outside it.
func InterpClamped(x float64, xs, fs []float64) float64 {
	if x <= xs[0] {
		return fs[0]
	}
	n := len(xs)
	if x >= xs[n-1] {
		return fs[n-1]
	}
	for i := 1; i < n; i++ {
		if x <= xs[i] {
			return Interp2(x, xs[i-1], xs[i], fs[i-1], fs[i])
		}
	}
	return fs[n-1]
}
