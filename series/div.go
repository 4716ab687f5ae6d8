package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// InvSeries sets res to 1/a truncated to length n.
//
// The constant term of a must not be exactly zero; a constant term containing zero
// gives an indeterminate series. Below InvNewtonCutoff the coefficients are computed
// by the basecase recurrence, above it by Newton iteration z <- z(2 - a z), every
// step only computing the newly revealed coefficients.
func (eval *Evaluator) InvSeries(a *Poly, n int, prec uint, res *Poly) {

	checkLength("InvSeries", n)

	if a.Length() == 0 || a.Coeffs[0].IsZero() {
		ball.Precondition("InvSeries", "constant term is exactly zero")
	}

	if n == 0 {
		res.Zero()
		return
	}

	if a.Coeffs[0].ContainsZero() {
		res.setIndeterminate(n)
		return
	}

	if res.aliases(a) {
		t := NewPoly(n)
		eval.invSeries(a, n, prec, t)
		res.Swap(t)
		return
	}

	eval.invSeries(a, n, prec, res)
}

func (eval *Evaluator) invSeries(a *Poly, n int, prec uint, res *Poly) {

	ladder := newtonLadder(n, eval.InvNewtonCutoff)

	m := ladder[len(ladder)-1]
	invSeriesBasecase(a, m, prec, res)

	t, u := NewPoly(n), NewPoly(n)

	for i := len(ladder) - 2; i >= 0; i-- {

		m2 := ladder[i]

		// a r = 1 + x^m t
		eval.Mullow(a, res, m2, prec, t)
		eval.ShiftRight(t, m, t)

		// the new coefficients are those of -r t
		eval.Mullow(res, t, m2-m, prec, u)

		res.SetLength(m2)
		for j := 0; j < m2-m; j++ {
			res.Coeffs[m+j].Neg(u.Coeff(j))
		}

		m = m2
	}
}

// invSeriesBasecase computes r_0 = 1/a_0 and r_k = -(1/a_0) sum_{j=1}^{k} a_j r_{k-j}.
func invSeriesBasecase(a *Poly, n int, prec uint, res *Poly) {

	la := utils.Min(a.Length(), n)

	res.SetLength(n)

	var inv ball.Ball
	inv.Inv(&a.Coeffs[0], prec)
	res.Coeffs[0].Set(&inv)

	for k := 1; k < n; k++ {
		l := utils.Min(k, la-1)
		res.Coeffs[k].Dot(nil, true, a.Coeffs, 1, 1, res.Coeffs, k-1, -1, l, prec)
		res.Coeffs[k].Mul(&res.Coeffs[k], &inv, prec)
	}
}

// DivSeries sets res to a/b truncated to length n.
//
// The constant term of b must not be exactly zero; a constant term containing zero
// gives an indeterminate series. A divisor of length one or two is handled by
// scalar division and by the geometric recurrence; otherwise the quotient is given by
// the basecase recurrence below DivNewtonCutoff and by a * (1/b) above it.
func (eval *Evaluator) DivSeries(a, b *Poly, n int, prec uint, res *Poly) {

	checkLength("DivSeries", n)

	if b.Length() == 0 || b.Coeffs[0].IsZero() {
		ball.Precondition("DivSeries", "divisor has an exactly zero constant term")
	}

	if n == 0 || a.Length() == 0 {
		res.Zero()
		return
	}

	if b.Coeffs[0].ContainsZero() {
		res.setIndeterminate(n)
		return
	}

	if res.aliases(a) || res.aliases(b) {
		t := NewPoly(n)
		eval.divSeries(a, b, n, prec, t)
		res.Swap(t)
		return
	}

	eval.divSeries(a, b, n, prec, res)
}

func (eval *Evaluator) divSeries(a, b *Poly, n int, prec uint, res *Poly) {

	la, lb := utils.Min(a.Length(), n), utils.Min(b.Length(), n)

	b0 := &b.Coeffs[0]

	switch {
	case lb == 1:
		res.SetLength(la)
		for i := 0; i < la; i++ {
			res.Coeffs[i].Div(&a.Coeffs[i], b0, prec)
		}

	case lb == 2:
		// q_k = (a_k - b_1 q_{k-1}) / b_0
		res.SetLength(n)
		res.Coeffs[0].Div(&a.Coeffs[0], b0, prec)
		var t ball.Ball
		for k := 1; k < n; k++ {
			t.Mul(&b.Coeffs[1], &res.Coeffs[k-1], prec)
			t.Sub(a.Coeff(k), &t, prec)
			res.Coeffs[k].Div(&t, b0, prec)
		}

	case n <= eval.DivNewtonCutoff:
		// q_k = (a_k - sum_{j=1}^{k} b_j q_{k-j}) / b_0
		res.SetLength(n)
		for k := 0; k < n; k++ {
			l := utils.Min(k, lb-1)
			res.Coeffs[k].Dot(a.Coeff(k), true, b.Coeffs, 1, 1, res.Coeffs, k-1, -1, l, prec)
			res.Coeffs[k].Div(&res.Coeffs[k], b0, prec)
		}

	default:
		inv := NewPoly(n)
		eval.invSeries(b, n, prec, inv)
		eval.Mullow(inv, a, n, prec, res)
	}
}

// DivRem sets q and r to the quotient and the remainder of the Euclidean division
// of a by b, computed by dividing the reversed series. It panics if the leading
// coefficient of b contains zero.
func (eval *Evaluator) DivRem(a, b *Poly, prec uint, q, r *Poly) {

	la, lb := a.Length(), b.Length()

	if lb == 0 || b.Coeffs[lb-1].ContainsZero() {
		ball.Precondition("DivRem", "leading coefficient of the divisor contains zero")
	}

	if la < lb {
		rem := a.CopyNew()
		q.Zero()
		r.Swap(rem)
		return
	}

	lq := la - lb + 1

	ra, rb := NewPoly(la), NewPoly(lb)
	eval.Reverse(a, la, la, ra)
	eval.Reverse(b, lb, lb, rb)

	quo := NewPoly(lq)
	eval.DivSeries(ra, rb, lq, prec, quo)
	eval.Reverse(quo, quo.Length(), lq, quo)

	rem := NewPoly(lb)
	if lb > 1 {
		eval.Mullow(b, quo, lb-1, prec, rem)
		eval.SubSeries(a, rem, lb-1, prec, rem)
		rem.Normalise()
	}

	q.Swap(quo)
	r.Swap(rem)
}

// Div sets q to the quotient of the Euclidean division of a by b.
func (eval *Evaluator) Div(a, b *Poly, prec uint, q *Poly) {
	eval.DivRem(a, b, prec, q, NewPoly(0))
}

// Rem sets r to the remainder of the Euclidean division of a by b.
func (eval *Evaluator) Rem(a, b *Poly, prec uint, r *Poly) {
	eval.DivRem(a, b, prec, NewPoly(0), r)
}
