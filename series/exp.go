package series

import (
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// unary truncates h to length n (an empty h reads as the constant 0), sets res to
// n indeterminate coefficients if h is not finite, and otherwise calls f with a fresh
// result that is swapped into res afterwards.
func (eval *Evaluator) unary(op string, h *Poly, n int, res *Poly, f func(h *Poly, n int, res *Poly)) {

	checkLength(op, n)

	if n == 0 {
		res.Zero()
		return
	}

	hl := utils.Min(h.Length(), n)

	ht := &Poly{Coeffs: h.Coeffs[:hl]}
	if hl == 0 {
		ht = NewPoly(1)
		ht.SetLength(1)
	}

	if !ht.IsFinite() {
		res.setIndeterminate(n)
		return
	}

	t := NewPoly(n)
	f(ht, n, t)
	res.Swap(t)
}

// nonConstant returns a copy of h with an exactly zero constant term.
func nonConstant(h *Poly) *Poly {
	hz := h.CopyNew()
	if hz.Length() > 0 {
		hz.Coeffs[0].Zero()
	}
	return hz
}

// setConstant sets res to the length-n series c.
func setConstant(c *ball.Ball, n int, res *Poly) {
	res.SetLength(n)
	res.Coeffs[0].Set(c)
	for i := 1; i < n; i++ {
		res.Coeffs[i].Zero()
	}
}

// ExpSeries sets res to exp(h) truncated to length n.
//
// A linear h has a closed form. Otherwise exp(h - h_0) is computed by the recurrence
// k f_k = sum_j j h_j f_(k-j) below ExpNewtonCutoff, and by Newton iteration
// f <- f + f (h - log f) above it.
func (eval *Evaluator) ExpSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("ExpSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		eval.expSeries(h, n, prec, res)
	})
}

func (eval *Evaluator) expSeries(h *Poly, n int, prec uint, res *Poly) {

	var c ball.Ball
	c.Exp(&h.Coeffs[0], prec)

	hl := h.Length()

	switch {
	case hl == 1:
		setConstant(&c, n, res)
		return

	case hl == 2:
		// exp(h_0 + h_1 x) = e^h_0 sum_k h_1^k x^k / k!
		res.SetLength(n)
		res.Coeffs[0].Set(&c)
		for k := 1; k < n; k++ {
			res.Coeffs[k].Mul(&res.Coeffs[k-1], &h.Coeffs[1], prec)
			res.Coeffs[k].DivInt64(&res.Coeffs[k], int64(k), prec)
		}
		return
	}

	hz := nonConstant(h)

	ladder := newtonLadder(n, eval.ExpNewtonCutoff)

	m := ladder[len(ladder)-1]
	expSeriesBasecase(hz, m, prec, res)

	l := NewPoly(n)

	for i := len(ladder) - 2; i >= 0; i-- {

		m2 := ladder[i]

		// h - log f = O(x^m)
		eval.LogSeries(res, m2, prec, l)
		eval.SubSeries(hz, l, m2, prec, l)
		eval.ShiftRight(l, m, l)

		eval.Mullow(res, l, m2-m, prec, l)

		res.SetLength(m2)
		for j := 0; j < m2-m; j++ {
			res.Coeffs[m+j].Set(l.Coeff(j))
		}

		m = m2
	}

	eval.ScalarMul(res, &c, prec, res)
}

// expSeriesBasecase writes exp(h) into res for h with a zero constant term.
func expSeriesBasecase(h *Poly, n int, prec uint, res *Poly) {

	hl := utils.Min(h.Length(), n)

	// dh_(j-1) = j h_j
	dh := make([]ball.Ball, utils.Max(hl-1, 0))
	for j := 1; j < hl; j++ {
		dh[j-1].MulInt64(&h.Coeffs[j], int64(j), prec)
	}

	res.SetLength(n)
	res.Coeffs[0].One()
	for k := 1; k < n; k++ {
		l := utils.Min(k, hl-1)
		res.Coeffs[k].Dot(nil, false, dh, 0, 1, res.Coeffs, k-1, -1, l, prec)
		res.Coeffs[k].DivInt64(&res.Coeffs[k], int64(k), prec)
	}
}

// LogSeries sets res to log(f) truncated to length n, computed as
// log(f_0) + integral(f'/f). If f_0 is not positive, res is indeterminate.
func (eval *Evaluator) LogSeries(f *Poly, n int, prec uint, res *Poly) {
	eval.unary("LogSeries", f, n, res, func(f *Poly, n int, res *Poly) {

		if !f.Coeffs[0].IsPositive() {
			res.setIndeterminate(n)
			return
		}

		var c ball.Ball
		c.Log(&f.Coeffs[0], prec)
		eval.logDerivativeIntegral(f, f, n, prec, res)
		res.Coeffs[0].Swap(&c)
	})
}

// Log1pSeries sets res to log(1 + f) truncated to length n.
// If 1 + f_0 is not positive, res is indeterminate.
func (eval *Evaluator) Log1pSeries(f *Poly, n int, prec uint, res *Poly) {
	eval.unary("Log1pSeries", f, n, res, func(f *Poly, n int, res *Poly) {

		g := f.CopyNew()
		g.Coeffs[0].AddInt64(&g.Coeffs[0], 1, prec)

		if !g.Coeffs[0].IsPositive() {
			res.setIndeterminate(n)
			return
		}

		var c ball.Ball
		c.Log1p(&f.Coeffs[0], prec)
		eval.logDerivativeIntegral(f, g, n, prec, res)
		res.Coeffs[0].Swap(&c)
	})
}

// logDerivativeIntegral writes integral(f'/g) truncated to n into res.
func (eval *Evaluator) logDerivativeIntegral(f, g *Poly, n int, prec uint, res *Poly) {

	if f.Length() <= 1 || n == 1 {
		res.SetLength(n)
		for i := range res.Coeffs {
			res.Coeffs[i].Zero()
		}
		return
	}

	d := NewPoly(f.Length() - 1)
	eval.Derivative(f, prec, d)
	eval.DivSeries(d, g, n-1, prec, d)
	eval.integralSeries(d, n, prec, res)
	res.SetLength(n)
}

// PowUintSeries sets res to f^e truncated to length n by binary powering.
func (eval *Evaluator) PowUintSeries(f *Poly, e uint64, n int, prec uint, res *Poly) {
	eval.unary("PowUintSeries", f, n, res, func(f *Poly, n int, res *Poly) {
		eval.powUintSeries(f, e, n, prec, res)
	})
}

func (eval *Evaluator) powUintSeries(f *Poly, e uint64, n int, prec uint, res *Poly) {

	if e == 0 {
		res.One()
		return
	}

	b := f.CopyNew()
	res.One()
	for {
		if e&1 == 1 {
			eval.Mullow(res, b, n, prec, res)
		}
		e >>= 1
		if e == 0 {
			return
		}
		eval.Sqrlow(b, n, prec, b)
	}
}

// PowBallSeries sets res to f^c truncated to length n for a constant exponent c.
//
// Exact exponents 0, -1, 1/2, -1/2 and small non-negative integers are handled by
// dedicated algorithms. Otherwise f_0 must be positive and res is given by the
// recurrence g_k = sum_j ((c+1) j - k) f_j g_(k-j) / (k f_0) below ExpNewtonCutoff,
// and by exp(c log f) above it.
func (eval *Evaluator) PowBallSeries(f *Poly, c *ball.Ball, n int, prec uint, res *Poly) {

	var e ball.Ball
	e.Set(c)

	eval.unary("PowBallSeries", f, n, res, func(f *Poly, n int, res *Poly) {

		if !e.IsFinite() {
			res.setIndeterminate(n)
			return
		}

		if e.IsInt() {
			if v, acc := e.Mid().Int64(); acc == big.Exact {
				switch {
				case v == 0:
					setConstant(new(ball.Ball).One(), n, res)
					return
				case v > 0 && v <= 1<<20:
					eval.powUintSeries(f, uint64(v), n, prec, res)
					return
				case v == -1:
					if f.Coeffs[0].ContainsZero() {
						res.setIndeterminate(n)
						return
					}
					eval.InvSeries(f, n, prec, res)
					return
				}
			}
		}

		if e.IsExact() && e.Mid().MantExp(nil) == 0 && e.Mid().Sign() != 0 {
			// e = +-1/2
			if m, _ := e.Mid().Float64(); m == 0.5 {
				eval.sqrtSeries(f, n, prec, res)
				return
			} else if m == -0.5 {
				eval.rsqrtSeries(f, n, prec, res)
				return
			}
		}

		if !f.Coeffs[0].IsPositive() {
			res.setIndeterminate(n)
			return
		}

		if n <= eval.ExpNewtonCutoff {
			var g0 ball.Ball
			g0.Pow(&f.Coeffs[0], &e, prec)
			millerPow(f, &e, &g0, n, prec, res)
			return
		}

		l := NewPoly(n)
		eval.LogSeries(f, n, prec, l)
		eval.ScalarMul(l, &e, prec, l)
		eval.ExpSeries(l, n, prec, res)
	})
}

// millerPow writes f^c into res using the recurrence of J. C. P. Miller, with g_0 = f_0^c.
func millerPow(f *Poly, c, g0 *ball.Ball, n int, prec uint, res *Poly) {

	fl := utils.Min(f.Length(), n)

	var inv, c1, w, t ball.Ball
	inv.Inv(&f.Coeffs[0], prec)
	c1.AddInt64(c, 1, prec)

	res.SetLength(n)
	res.Coeffs[0].Set(g0)

	for k := 1; k < n; k++ {
		var s ball.Ball
		for j := 1; j <= k && j < fl; j++ {
			// (c+1) j - k
			w.MulInt64(&c1, int64(j), prec)
			w.SubInt64(&w, int64(k), prec)
			t.Mul(&f.Coeffs[j], &res.Coeffs[k-j], prec)
			s.AddMul(&w, &t, prec)
		}
		s.Mul(&s, &inv, prec)
		res.Coeffs[k].DivInt64(&s, int64(k), prec)
	}
}

// PowSeries sets res to f^g = exp(g log f) truncated to length n.
func (eval *Evaluator) PowSeries(f, g *Poly, n int, prec uint, res *Poly) {

	if g.Length() <= 1 {
		eval.PowBallSeries(f, g.Coeff(0), n, prec, res)
		return
	}

	eval.unary("PowSeries", f, n, res, func(f *Poly, n int, res *Poly) {
		l := NewPoly(n)
		eval.LogSeries(f, n, prec, l)
		eval.Mullow(l, g, n, prec, l)
		eval.ExpSeries(l, n, prec, res)
	})
}

// RsqrtSeries sets res to 1/sqrt(f) truncated to length n, by the power recurrence
// below RsqrtNewtonCutoff and by Newton iteration y <- y - y (f y^2 - 1) / 2 above it.
// If f_0 is not positive, res is indeterminate.
func (eval *Evaluator) RsqrtSeries(f *Poly, n int, prec uint, res *Poly) {
	eval.unary("RsqrtSeries", f, n, res, func(f *Poly, n int, res *Poly) {
		eval.rsqrtSeries(f, n, prec, res)
	})
}

func (eval *Evaluator) rsqrtSeries(f *Poly, n int, prec uint, res *Poly) {

	if !f.Coeffs[0].IsPositive() {
		res.setIndeterminate(n)
		return
	}

	var y0, c ball.Ball
	y0.Rsqrt(&f.Coeffs[0], prec)

	if f.Length() == 1 {
		setConstant(&y0, n, res)
		return
	}

	c.SetFrac(-1, 2, prec)

	ladder := newtonLadder(n, eval.RsqrtNewtonCutoff)

	m := ladder[len(ladder)-1]
	millerPow(f, &c, &y0, m, prec, res)

	t := NewPoly(n)

	for i := len(ladder) - 2; i >= 0; i-- {

		m2 := ladder[i]

		// f y^2 - 1 = O(x^m)
		eval.Sqrlow(res, m2, prec, t)
		eval.Mullow(f, t, m2, prec, t)
		eval.ShiftRight(t, m, t)
		eval.Mullow(res, t, m2-m, prec, t)

		res.SetLength(m2)
		for j := 0; j < m2-m; j++ {
			res.Coeffs[m+j].Mul2Exp(t.Coeff(j), -1)
			res.Coeffs[m+j].Neg(&res.Coeffs[m+j])
		}

		m = m2
	}
}

// SqrtSeries sets res to sqrt(f) = f / sqrt(f) truncated to length n.
// If f_0 is not positive, res is indeterminate, except for the zero series.
func (eval *Evaluator) SqrtSeries(f *Poly, n int, prec uint, res *Poly) {
	eval.unary("SqrtSeries", f, n, res, func(f *Poly, n int, res *Poly) {
		eval.sqrtSeries(f, n, prec, res)
	})
}

func (eval *Evaluator) sqrtSeries(f *Poly, n int, prec uint, res *Poly) {

	if f.IsZero() {
		res.SetLength(n)
		for i := range res.Coeffs {
			res.Coeffs[i].Zero()
		}
		return
	}

	if !f.Coeffs[0].IsPositive() {
		res.setIndeterminate(n)
		return
	}

	var s ball.Ball
	s.Sqrt(&f.Coeffs[0], prec)

	if f.Length() == 1 {
		setConstant(&s, n, res)
		return
	}

	eval.rsqrtSeries(f, n, prec, res)
	eval.Mullow(f, res, n, prec, res)
	res.SetLength(n)
	res.Coeffs[0].Swap(&s)
}
