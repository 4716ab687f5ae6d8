package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/cball"
)

// mulIPow sets z to z i^k.
func mulIPow(z *cball.Ball, k int) {
	for j := 0; j < k&3; j++ {
		z.MulI(z)
	}
}

// thetaExpansion returns the Taylor coefficients of theta(t + y) in y, with
// theta(t) = Im(lgamma(1/4 + i t/2)) - t log(pi)/2.
func thetaExpansion(t *ball.Ball, n int, prec uint) *Poly {

	var z, c cball.Ball
	z.Re.SetFrac(1, 4, prec)
	z.Im.Mul2Exp(t, -1)

	res := NewPoly(n)
	res.SetLength(n)

	var k1 ball.Ball
	for k := 0; k < n; k++ {

		switch k {
		case 0:
			c.Lgamma(&z, prec)
		case 1:
			c.Digamma(&z, prec)
		default:
			// (-1)^k zeta(k, z) / k
			k1.SetInt64(int64(k))
			c.HurwitzZeta(&k1, &z, prec)
			c.Re.DivInt64(&c.Re, int64(k), prec)
			c.Im.DivInt64(&c.Im, int64(k), prec)
			if k&1 == 1 {
				c.Neg(&c)
			}
		}

		// (i/2)^k
		mulIPow(&c, k)
		c.Mul2Exp(&c, -k)

		res.Coeffs[k].Set(&c.Im)
	}

	if !res.IsFinite() {
		res.setIndeterminate(n)
		return res
	}

	var lp ball.Ball
	lp.Pi(prec)
	lp.Log(&lp, prec)
	lp.Mul2Exp(&lp, -1)

	var u ball.Ball
	u.Mul(t, &lp, prec)
	res.Coeffs[0].Sub(&res.Coeffs[0], &u, prec)
	if n > 1 {
		res.Coeffs[1].Sub(&res.Coeffs[1], &lp, prec)
	}

	return res
}

// RiemannSiegelThetaSeries sets res to the Riemann-Siegel theta function
// theta(h) = Im(lgamma(1/4 + i h/2)) - h log(pi)/2 truncated to length n.
func (eval *Evaluator) RiemannSiegelThetaSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("RiemannSiegelThetaSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		c := thetaExpansion(&h.Coeffs[0], n, prec+8)
		eval.composeExpansion(c, h, n, prec, res)
	})
}

// RiemannSiegelZSeries sets res to the Riemann-Siegel function
// Z(h) = e^(i theta(h)) zeta(1/2 + i h) truncated to length n.
//
// The function is real on the real line: the imaginary part of the product is
// checked to contain zero, and an InternalInconsistency panic is raised otherwise.
func (eval *Evaluator) RiemannSiegelZSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("RiemannSiegelZSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		wp := prec + 8
		t := &h.Coeffs[0]

		// e^(i theta(t + y)) = cos + i sin
		theta := thetaExpansion(t, n, wp)
		s, c := NewPoly(n), NewPoly(n)
		eval.SinCosSeries(theta, n, wp, s, c)

		// zeta(1/2 + i t + i y) = sum_k z_k i^k y^k
		var half ball.Ball
		half.SetFrac(1, 2, wp)
		z := cball.ZetaSeries(cball.New(&half, t), ball.NewInt64(1), n, wp)

		zr, zi := NewPoly(n), NewPoly(n)
		zr.SetLength(n)
		zi.SetLength(n)
		for k := range z {
			mulIPow(&z[k], k)
			zr.Coeffs[k].Set(&z[k].Re)
			zi.Coeffs[k].Set(&z[k].Im)
		}

		if !zr.IsFinite() || !zi.IsFinite() || !s.IsFinite() || !c.IsFinite() {
			res.setIndeterminate(n)
			return
		}

		// Re = c zr - s zi, Im = c zi + s zr
		u, v := NewPoly(n), NewPoly(n)
		eval.Mullow(c, zr, n, wp, u)
		eval.Mullow(s, zi, n, wp, v)
		re := NewPoly(n)
		eval.SubSeries(u, v, n, wp, re)

		eval.Mullow(c, zi, n, wp, u)
		eval.Mullow(s, zr, n, wp, v)
		eval.AddSeries(u, v, n, wp, v)

		for k := range v.Coeffs {
			if !v.Coeffs[k].ContainsZero() {
				ball.Inconsistency("RiemannSiegelZSeries", "imaginary part of coefficient %d excludes zero: %s", k, v.Coeffs[k].String())
			}
		}

		re.SetLength(n)
		eval.composeExpansion(re, h, n, prec, res)
	})
}
