package mathtools

// Bisection is the outcome of a bracketed root search.
type Bisection struct {
	Root       float64
	Iterations int
	Bracketed  bool // f(lo) and f(hi) had opposite signs (or one was zero)
	Converged  bool // half-bracket width reached tol
}

/*
Bisect searches [lo, hi] for a root of f.

	Args:
		f: function whose root is sought
		lo, hi: initial bracket
		tol: convergence tolerance on the half-bracket width
		max_iter: iteration cap

	Returns:
		Bisection. Root is the last midpoint; it is only meaningful when Converged.

	Notes:
		The bracket is narrowed on the sign of f at the midpoint relative to f(lo).
*/
func Bisect(f func(float64) float64, lo, hi, tol float64, max_iter int) Bisection {
	f_lo := f(lo)
	f_hi := f(hi)
	if f_lo == 0 {
		return Bisection{Root: lo, Bracketed: true, Converged: true}
	}
	if f_hi == 0 {
		return Bisection{Root: hi, Bracketed: true, Converged: true}
	}
	if f_lo*f_hi > 0 {
		return Bisection{Root: (lo + hi) / 2.0}
	}

	res := Bisection{Bracketed: true}
	mid := (lo + hi) / 2.0
	for n := 1; n <= max_iter; n++ {
		res.Iterations = n
		f_mid := f(mid)
		if f_mid == 0 {
			res.Root = mid
			res.Converged = true
			return res
		} else if f_lo*f_mid < 0 {
			hi = mid
		} else {
			lo = mid
			f_lo = f_mid
		}

		mid = (lo + hi) / 2.0
		if (hi-lo)/2.0 <= tol {
			res.Converged = true
			break
		}
	}
	res.Root = mid
	return res
}
