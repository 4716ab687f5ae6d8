package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// Mul sets res to the full product a * b.
func (eval *Evaluator) Mul(a, b *Poly, prec uint, res *Poly) {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		res.Zero()
		return
	}
	eval.Mullow(a, b, la+lb-1, prec, res)
}

// Sqr sets res to a^2.
func (eval *Evaluator) Sqr(a *Poly, prec uint, res *Poly) {
	eval.Mul(a, a, prec, res)
}

// Sqrlow sets res to a^2 truncated to length n.
func (eval *Evaluator) Sqrlow(a *Poly, n int, prec uint, res *Poly) {
	eval.Mullow(a, a, n, prec, res)
}

// Mullow sets res to the product a * b truncated to length n.
//
// Operands of length at most two are handled by unrolled formulas. Operands with a
// non-finite coefficient, or shorter than MullowClassicalCutoff (halved above 1024
// bits of precision), use the classical convolution. Longer operands use the block
// algorithm of MullowBlock.
func (eval *Evaluator) Mullow(a, b *Poly, n int, prec uint, res *Poly) {

	eval.withOperands("Mullow", a, b, n, res, func(a, b []ball.Ball, n int, res *Poly) {
		eval.mullow(a, b, n, prec, res)
	})
}

// MullowClassical sets res to a * b truncated to length n using the classical
// quadratic convolution, one dot product per output coefficient.
func (eval *Evaluator) MullowClassical(a, b *Poly, n int, prec uint, res *Poly) {
	eval.withOperands("MullowClassical", a, b, n, res, func(a, b []ball.Ball, n int, res *Poly) {
		mullowClassical(a, b, n, prec, res)
	})
}

// MullowBlock sets res to a * b truncated to length n using the block algorithm.
func (eval *Evaluator) MullowBlock(a, b *Poly, n int, prec uint, res *Poly) {
	eval.withOperands("MullowBlock", a, b, n, res, func(a, b []ball.Ball, n int, res *Poly) {
		if !coeffsFinite(a) || !coeffsFinite(b) {
			res.setIndeterminate(n)
			return
		}
		eval.mullowBlock(a, b, n, prec, res)
	})
}

// withOperands truncates the operands to length n, handles the empty product and
// routes the result through a temporary when res aliases an operand.
func (eval *Evaluator) withOperands(op string, a, b *Poly, n int, res *Poly, f func(a, b []ball.Ball, n int, res *Poly)) {

	checkLength(op, n)

	la, lb := utils.Min(a.Length(), n), utils.Min(b.Length(), n)
	if la == 0 || lb == 0 {
		res.Zero()
		return
	}
	n = utils.Min(n, la+lb-1)

	if res.aliases(a) || res.aliases(b) {
		t := NewPoly(n)
		f(a.Coeffs[:la], b.Coeffs[:lb], n, t)
		res.Swap(t)
		return
	}

	f(a.Coeffs[:la], b.Coeffs[:lb], n, res)
}

// mullow writes a * b truncated to n into res, which must not alias a or b.
// a and b are non-empty and n <= len(a)+len(b)-1.
func (eval *Evaluator) mullow(a, b []ball.Ball, n int, prec uint, res *Poly) {

	la, lb := len(a), len(b)

	switch {
	case la == 1 || lb == 1:
		res.SetLength(n)
		if la == 1 {
			for i := 0; i < n; i++ {
				res.Coeffs[i].Mul(&a[0], &b[i], prec)
			}
		} else {
			for i := 0; i < n; i++ {
				res.Coeffs[i].Mul(&a[i], &b[0], prec)
			}
		}
		return
	case la == 2 && lb == 2:
		res.SetLength(n)
		res.Coeffs[0].Mul(&a[0], &b[0], prec)
		if n > 1 {
			res.Coeffs[1].Dot(nil, false, a, 0, 1, b, 1, -1, 2, prec)
		}
		if n > 2 {
			res.Coeffs[2].Mul(&a[1], &b[1], prec)
		}
		return
	}

	cutoff := eval.MullowClassicalCutoff
	if prec > 1024 {
		cutoff = utils.Max(cutoff/2, 1)
	}

	if utils.Min(la, lb) < cutoff || !coeffsFinite(a) || !coeffsFinite(b) {
		mullowClassical(a, b, n, prec, res)
		return
	}

	eval.mullowBlock(a, b, n, prec, res)
}

func coeffsFinite(a []ball.Ball) bool {
	for i := range a {
		if !a[i].IsFinite() {
			return false
		}
	}
	return true
}

// mullowClassical writes the truncated convolution of a and b into res.
// A square (a and b sharing storage) accumulates each symmetric pair once,
// doubles the half sums, then adds the diagonal terms.
func mullowClassical(a, b []ball.Ball, n int, prec uint, res *Poly) {

	la, lb := len(a), len(b)
	res.SetLength(n)

	if la == lb && &a[0] == &b[0] {

		for i := 0; i < n; i++ {
			lo := utils.Max(0, i-la+1)
			// pairs (j, i-j) with j < i-j
			cnt := (i+1)/2 - lo
			if cnt > 0 {
				res.Coeffs[i].Dot(nil, false, a, lo, 1, a, i-lo, -1, cnt, prec)
			} else {
				res.Coeffs[i].Zero()
			}
		}

		mul2ExpCoeffs(res.Coeffs, 1)

		var t ball.Ball
		for i := 0; i < n; i += 2 {
			if i/2 < la {
				t.Sqr(&a[i/2], prec)
				res.Coeffs[i].Add(&res.Coeffs[i], &t, prec)
			}
		}
		return
	}

	for i := 0; i < n; i++ {
		lo := utils.Max(0, i-lb+1)
		hi := utils.Min(i, la-1)
		res.Coeffs[i].Dot(nil, false, a, lo, 1, b, i-lo, -1, hi-lo+1, prec)
	}
}

// mul2ExpCoeffs multiplies every ball of v by 2^e in place.
func mul2ExpCoeffs(v []ball.Ball, e int) {
	for i := range v {
		v[i].Mul2Exp(&v[i], e)
	}
}
