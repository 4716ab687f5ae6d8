package series

import (
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
)

var half = big.NewFloat(0.5)

// hurwitzInt sets z to zeta(k, x) for an integer k >= 2. When x is an exact small
// positive integer the closed form zeta(k) - sum_{j<x} j^-k is used.
func (eval *Evaluator) hurwitzInt(z *ball.Ball, k int, x *ball.Ball, prec uint) {

	s := ball.NewInt64(int64(k))

	if x.IsInt() {
		if v, acc := x.Mid().Int64(); acc == big.Exact && v >= 1 && v <= 64 {
			r := eval.adaptive("HurwitzZeta", prec, func(z *ball.Ball, wp uint) {
				z.Zeta(s, wp)
			})
			q := new(big.Rat)
			for j := int64(1); j < v; j++ {
				d := new(big.Int).Exp(big.NewInt(j), big.NewInt(int64(k)), nil)
				q.Add(q, new(big.Rat).SetFrac(big.NewInt(1), d))
			}
			var t ball.Ball
			t.SetRat(q, prec+8)
			z.Sub(r, &t, prec)
			return
		}
	}

	z.Set(eval.adaptive("HurwitzZeta", prec, func(z *ball.Ball, wp uint) {
		z.HurwitzZeta(s, x, wp)
	}))
}

// composeExpansion sets res to sum_k c_k (h - h_0)^k truncated to length n.
func (eval *Evaluator) composeExpansion(c, h *Poly, n int, prec uint, res *Poly) {
	eval.ComposeSeries(c, nonConstant(h), n, prec, res)
	res.SetLength(n)
}

// LgammaSeries sets res to log(Gamma(h)) truncated to length n, from the expansion
// lgamma(x + t) = lgamma(x) + digamma(x) t + sum_{k>=2} (-1)^k zeta(k, x) t^k / k.
// If h_0 is not positive, res is indeterminate.
func (eval *Evaluator) LgammaSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("LgammaSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		x := &h.Coeffs[0]
		if !x.IsPositive() {
			res.setIndeterminate(n)
			return
		}

		wp := prec + 8

		c := NewPoly(n)
		c.SetLength(n)
		c.Coeffs[0].Set(eval.adaptive("Lgamma", wp, func(z *ball.Ball, wp uint) {
			z.Lgamma(x, wp)
		}))
		if n > 1 {
			c.Coeffs[1].Set(eval.adaptive("Digamma", wp, func(z *ball.Ball, wp uint) {
				z.Digamma(x, wp)
			}))
		}
		for k := 2; k < n; k++ {
			eval.hurwitzInt(&c.Coeffs[k], k, x, wp)
			c.Coeffs[k].DivInt64(&c.Coeffs[k], int64(k), wp)
			if k&1 == 1 {
				c.Coeffs[k].Neg(&c.Coeffs[k])
			}
		}

		eval.composeExpansion(c, h, n, prec, res)
	})
}

// DigammaSeries sets res to digamma(h) truncated to length n, from the expansion
// digamma(x + t) = digamma(x) + sum_{k>=1} (-1)^(k+1) zeta(k+1, x) t^k.
// The reflection digamma(h) = digamma(1-h) - pi cot(pi h) is applied when h_0 < 1/2.
func (eval *Evaluator) DigammaSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("DigammaSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		x := &h.Coeffs[0]

		if x.Mid().Cmp(half) < 0 {

			wp := prec + 8

			g := NewPoly(h.Length())
			eval.Neg(h, g)
			g.Coeffs[0].AddInt64(&g.Coeffs[0], 1, wp)
			eval.DigammaSeries(g, n, wp, res)

			var pi ball.Ball
			c := NewPoly(n)
			eval.CotPiSeries(h, n, wp, c)
			eval.ScalarMul(c, pi.Pi(wp), wp, c)

			eval.SubSeries(res, c, n, prec, res)
			return
		}

		if !x.IsPositive() {
			res.setIndeterminate(n)
			return
		}

		wp := prec + 8

		c := NewPoly(n)
		c.SetLength(n)
		c.Coeffs[0].Set(eval.adaptive("Digamma", wp, func(z *ball.Ball, wp uint) {
			z.Digamma(x, wp)
		}))
		for k := 1; k < n; k++ {
			eval.hurwitzInt(&c.Coeffs[k], k+1, x, wp)
			if k&1 == 0 {
				c.Coeffs[k].Neg(&c.Coeffs[k])
			}
		}

		eval.composeExpansion(c, h, n, prec, res)
	})
}

// GammaSeries sets res to Gamma(h) truncated to length n, as exp(lgamma(h)) when
// h_0 >= 1/2 and by the reflection Gamma(h) = pi / (sin(pi h) Gamma(1-h)) otherwise.
func (eval *Evaluator) GammaSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("GammaSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		wp := prec + 8

		if h.Coeffs[0].Mid().Cmp(half) >= 0 {
			eval.LgammaSeries(h, n, wp, res)
			eval.ExpSeries(res, n, prec, res)
			return
		}

		d := eval.reflectedGamma(h, n, wp)
		if d.Coeffs[0].ContainsZero() {
			res.setIndeterminate(n)
			return
		}

		var pi ball.Ball
		p := NewPoly(1)
		p.SetCoeff(0, pi.Pi(wp))
		eval.DivSeries(p, d, n, prec, res)
	})
}

// RgammaSeries sets res to 1/Gamma(h) truncated to length n, as exp(-lgamma(h)) when
// h_0 >= 1/2 and by the reflection 1/Gamma(h) = sin(pi h) Gamma(1-h) / pi otherwise.
func (eval *Evaluator) RgammaSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("RgammaSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		wp := prec + 8

		if h.Coeffs[0].Mid().Cmp(half) >= 0 {
			eval.LgammaSeries(h, n, wp, res)
			eval.Neg(res, res)
			eval.ExpSeries(res, n, prec, res)
			return
		}

		d := eval.reflectedGamma(h, n, wp)

		var pi ball.Ball
		eval.ScalarDiv(d, pi.Pi(wp), prec, res)
	})
}

// reflectedGamma returns sin(pi h) Gamma(1-h) truncated to length n.
func (eval *Evaluator) reflectedGamma(h *Poly, n int, prec uint) *Poly {

	g := NewPoly(h.Length())
	eval.Neg(h, g)
	g.Coeffs[0].AddInt64(&g.Coeffs[0], 1, prec)

	eval.LgammaSeries(g, n, prec, g)
	eval.ExpSeries(g, n, prec, g)

	s := NewPoly(n)
	eval.SinPiSeries(h, n, prec, s)
	eval.Mullow(s, g, n, prec, s)
	s.SetLength(n)

	return s
}
