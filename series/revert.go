package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// RevertSeries sets res to the compositional inverse of a truncated to length n,
// that is the series r with a(r(x)) = x. The constant term of a must be exactly
// zero and its linear coefficient must not contain zero.
//
// Lagrange inversion is used below RevertLagrangeFastCutoff, its baby-step
// giant-step variant below RevertNewtonCutoff, and Newton iteration above.
func (eval *Evaluator) RevertSeries(a *Poly, n int, prec uint, res *Poly) {
	eval.revertSeries("RevertSeries", a, n, prec, res, func(a *Poly, n int, res *Poly) {
		switch {
		case n < eval.RevertLagrangeFastCutoff:
			eval.revertSeriesLagrange(a, n, prec, res)
		case n < eval.RevertNewtonCutoff:
			eval.revertSeriesLagrangeFast(a, n, prec, res)
		default:
			eval.revertSeriesNewton(a, n, prec, res)
		}
	})
}

// RevertSeriesLagrange computes the compositional inverse by Lagrange inversion:
// with h = x/a(x), the coefficient of x^k of the inverse is [x^(k-1)] h^k / k.
func (eval *Evaluator) RevertSeriesLagrange(a *Poly, n int, prec uint, res *Poly) {
	eval.revertSeries("RevertSeriesLagrange", a, n, prec, res, func(a *Poly, n int, res *Poly) {
		eval.revertSeriesLagrange(a, n, prec, res)
	})
}

// RevertSeriesLagrangeFast computes the compositional inverse by Lagrange inversion,
// writing h^k = h^j (h^m)^i with m ~ sqrt(n) so that every coefficient is a single
// dot product.
func (eval *Evaluator) RevertSeriesLagrangeFast(a *Poly, n int, prec uint, res *Poly) {
	eval.revertSeries("RevertSeriesLagrangeFast", a, n, prec, res, func(a *Poly, n int, res *Poly) {
		eval.revertSeriesLagrangeFast(a, n, prec, res)
	})
}

// RevertSeriesNewton computes the compositional inverse by Newton iteration
// r <- r - (a(r) - x) / a'(r), doubling the number of correct coefficients at every step.
func (eval *Evaluator) RevertSeriesNewton(a *Poly, n int, prec uint, res *Poly) {
	eval.revertSeries("RevertSeriesNewton", a, n, prec, res, func(a *Poly, n int, res *Poly) {
		eval.revertSeriesNewton(a, n, prec, res)
	})
}

// revertSeries checks the preconditions, handles n <= 2 and calls f with a result
// that does not alias a.
func (eval *Evaluator) revertSeries(op string, a *Poly, n int, prec uint, res *Poly, f func(a *Poly, n int, res *Poly)) {

	checkLength(op, n)

	if a.Length() < 2 || !a.Coeffs[0].IsZero() || a.Coeffs[1].ContainsZero() {
		ball.Precondition(op, "series must have an exactly zero constant term and an invertible linear coefficient")
	}

	t := NewPoly(n)

	if n <= 2 {
		t.SetLength(n)
		if n == 2 {
			t.Coeffs[1].Inv(&a.Coeffs[1], prec)
		}
	} else {
		f(a, n, t)
	}

	res.Swap(t)
}

// lagrangeKernel returns h = x/a(x) truncated to length n-1.
func (eval *Evaluator) lagrangeKernel(a *Poly, n int, prec uint) *Poly {
	g := NewPoly(n - 1)
	eval.ShiftRight(a, 1, g)
	h := NewPoly(n - 1)
	eval.InvSeries(g, n-1, prec, h)
	return h
}

func (eval *Evaluator) revertSeriesLagrange(a *Poly, n int, prec uint, res *Poly) {

	h := eval.lagrangeKernel(a, n, prec)

	res.SetLength(n)
	res.Coeffs[0].Zero()

	p := h.CopyNew()
	for k := 1; k < n; k++ {
		res.Coeffs[k].DivInt64(p.Coeff(k-1), int64(k), prec)
		if k < n-1 {
			eval.Mullow(p, h, n-1, prec, p)
		}
	}
}

func (eval *Evaluator) revertSeriesLagrangeFast(a *Poly, n int, prec uint, res *Poly) {

	h := eval.lagrangeKernel(a, n, prec)

	m := 1
	for m*m < n-1 {
		m++
	}

	// baby steps h^1, ..., h^m, zero padded to n-1
	pows := make([]*Poly, m+1)
	pows[1] = h.CopyNew()
	for j := 2; j <= m; j++ {
		pows[j] = NewPoly(n - 1)
		eval.Mullow(pows[j-1], h, n-1, prec, pows[j])
	}
	for j := 1; j <= m; j++ {
		pows[j].SetLength(n - 1)
	}

	res.SetLength(n)
	res.Coeffs[0].Zero()

	giant := NewPoly(n - 1).One()
	giant.SetLength(n - 1)

	for i := 0; i*m+1 < n; i++ {

		if i > 0 {
			eval.Mullow(giant, pows[m], n-1, prec, giant)
			giant.SetLength(n - 1)
		}

		for j := 1; j <= m; j++ {
			k := i*m + j
			if k >= n {
				break
			}
			// [x^(k-1)] h^j (h^m)^i
			res.Coeffs[k].Dot(nil, false, pows[j].Coeffs, 0, 1, giant.Coeffs, k-1, -1, k, prec)
			res.Coeffs[k].DivInt64(&res.Coeffs[k], int64(k), prec)
		}
	}
}

func (eval *Evaluator) revertSeriesNewton(a *Poly, n int, prec uint, res *Poly) {

	ladder := newtonLadder(n, utils.Max(eval.RevertLagrangeFastCutoff, 3))

	m := ladder[len(ladder)-1]
	eval.revertSeriesLagrange(a, m, prec, res)

	da := NewPoly(a.Length())
	eval.Derivative(a, prec, da)

	f, d, u := NewPoly(n), NewPoly(n), NewPoly(n)

	for i := len(ladder) - 2; i >= 0; i-- {

		m2 := ladder[i]

		// a(r) - x = O(x^m)
		eval.ComposeSeries(a, res, m2, prec, f)
		f.SetLength(m2)
		f.Coeffs[1].SubInt64(&f.Coeffs[1], 1, prec)

		eval.ComposeSeries(da, res, m2, prec, d)
		eval.DivSeries(f, d, m2, prec, u)

		res.SetLength(m2)
		for j := m; j < m2; j++ {
			res.Coeffs[j].Neg(u.Coeff(j))
		}

		m = m2
	}
}
