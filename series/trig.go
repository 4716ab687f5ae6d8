package series

import (
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// sinCosRecurrence writes the series s and c with the given constant terms and
// s' = c h', c' = -s h' (c' = s h' if hyperbolic), that is k s_k = sum_j j h_j c_(k-j)
// and k c_k = -sum_j j h_j s_(k-j).
func sinCosRecurrence(h *Poly, s0, c0 *ball.Ball, hyperbolic bool, n int, prec uint, s, c *Poly) {

	hl := utils.Min(h.Length(), n)

	dh := make([]ball.Ball, utils.Max(hl-1, 0))
	for j := 1; j < hl; j++ {
		dh[j-1].MulInt64(&h.Coeffs[j], int64(j), prec)
	}

	s.SetLength(n)
	c.SetLength(n)
	s.Coeffs[0].Set(s0)
	c.Coeffs[0].Set(c0)

	for k := 1; k < n; k++ {
		l := utils.Min(k, hl-1)
		s.Coeffs[k].Dot(nil, false, dh, 0, 1, c.Coeffs, k-1, -1, l, prec)
		s.Coeffs[k].DivInt64(&s.Coeffs[k], int64(k), prec)
		c.Coeffs[k].Dot(nil, !hyperbolic, dh, 0, 1, s.Coeffs, k-1, -1, l, prec)
		c.Coeffs[k].DivInt64(&c.Coeffs[k], int64(k), prec)
	}
}

// pair runs f on h truncated to length n with two fresh results swapped into s and c.
// Either output may be nil.
func (eval *Evaluator) pair(op string, h *Poly, n int, s, c *Poly, f func(h *Poly, n int, s, c *Poly)) {

	checkLength(op, n)

	if s == nil {
		s = NewPoly(0)
	}
	if c == nil {
		c = NewPoly(0)
	}

	if n == 0 {
		s.Zero()
		c.Zero()
		return
	}

	hl := utils.Min(h.Length(), n)
	ht := &Poly{Coeffs: h.Coeffs[:hl]}
	if hl == 0 {
		ht = NewPoly(1)
		ht.SetLength(1)
	}

	if !ht.IsFinite() {
		s.setIndeterminate(n)
		c.setIndeterminate(n)
		return
	}

	ts, tc := NewPoly(n), NewPoly(n)
	f(ht, n, ts, tc)
	s.Swap(ts)
	c.Swap(tc)
}

// SinCosSeries sets s and c to sin(h) and cos(h) truncated to length n.
func (eval *Evaluator) SinCosSeries(h *Poly, n int, prec uint, s, c *Poly) {
	eval.pair("SinCosSeries", h, n, s, c, func(h *Poly, n int, s, c *Poly) {
		var s0, c0 ball.Ball
		ball.SinCos(&s0, &c0, &h.Coeffs[0], prec)
		sinCosRecurrence(h, &s0, &c0, false, n, prec, s, c)
	})
}

// SinSeries sets res to sin(h) truncated to length n.
func (eval *Evaluator) SinSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinCosSeries(h, n, prec, res, nil)
}

// CosSeries sets res to cos(h) truncated to length n.
func (eval *Evaluator) CosSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinCosSeries(h, n, prec, nil, res)
}

// SinCosPiSeries sets s and c to sin(pi h) and cos(pi h) truncated to length n.
func (eval *Evaluator) SinCosPiSeries(h *Poly, n int, prec uint, s, c *Poly) {
	eval.pair("SinCosPiSeries", h, n, s, c, func(h *Poly, n int, s, c *Poly) {
		var s0, c0, pi ball.Ball
		ball.SinCosPi(&s0, &c0, &h.Coeffs[0], prec)
		hp := NewPoly(h.Length())
		eval.ScalarMul(h, pi.Pi(prec), prec, hp)
		sinCosRecurrence(hp, &s0, &c0, false, n, prec, s, c)
	})
}

// SinPiSeries sets res to sin(pi h) truncated to length n.
func (eval *Evaluator) SinPiSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinCosPiSeries(h, n, prec, res, nil)
}

// CosPiSeries sets res to cos(pi h) truncated to length n.
func (eval *Evaluator) CosPiSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinCosPiSeries(h, n, prec, nil, res)
}

// SinhCoshSeries sets s and c to sinh(h) and cosh(h) truncated to length n.
func (eval *Evaluator) SinhCoshSeries(h *Poly, n int, prec uint, s, c *Poly) {
	eval.pair("SinhCoshSeries", h, n, s, c, func(h *Poly, n int, s, c *Poly) {
		var s0, c0 ball.Ball
		ball.SinhCosh(&s0, &c0, &h.Coeffs[0], prec)
		sinCosRecurrence(h, &s0, &c0, true, n, prec, s, c)
	})
}

// SinhSeries sets res to sinh(h) truncated to length n.
func (eval *Evaluator) SinhSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinhCoshSeries(h, n, prec, res, nil)
}

// CoshSeries sets res to cosh(h) truncated to length n.
func (eval *Evaluator) CoshSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.SinhCoshSeries(h, n, prec, nil, res)
}

// TanSeries sets res to tan(h) truncated to length n, as sin(h)/cos(h) below
// TanNewtonCutoff and by Newton iteration t <- t - (atan(t) - h)(1 + t^2) above it.
// If cos(h_0) contains zero, res is indeterminate.
func (eval *Evaluator) TanSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("TanSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		s, c := NewPoly(0), NewPoly(0)

		m := utils.Min(n, eval.TanNewtonCutoff)
		eval.SinCosSeries(h, m, prec, s, c)

		if c.Coeffs[0].ContainsZero() {
			res.setIndeterminate(n)
			return
		}

		eval.DivSeries(s, c, m, prec, res)

		if m == n {
			return
		}

		ladder := newtonLadder(n, m)

		a, u := NewPoly(n), NewPoly(n)

		for i := len(ladder) - 2; i >= 0; i-- {

			m2 := ladder[i]

			// atan(t) - h = O(x^m), the constant terms may differ by a multiple of pi
			eval.AtanSeries(res, m2, prec, a)
			eval.SubSeries(a, h, m2, prec, a)
			eval.ShiftRight(a, m, a)

			eval.Sqrlow(res, m2-m, prec, u)
			u.SetLength(utils.Max(u.Length(), 1))
			u.Coeffs[0].AddInt64(&u.Coeffs[0], 1, prec)
			eval.Mullow(u, a, m2-m, prec, u)

			res.SetLength(m2)
			for j := 0; j < m2-m; j++ {
				res.Coeffs[m+j].Neg(u.Coeff(j))
			}

			m = m2
		}
	})
}

// CotPiSeries sets res to cot(pi h) truncated to length n.
// If sin(pi h_0) contains zero, res is indeterminate.
func (eval *Evaluator) CotPiSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("CotPiSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		s, c := NewPoly(n), NewPoly(n)
		eval.SinCosPiSeries(h, n, prec, s, c)
		if s.Coeffs[0].ContainsZero() {
			res.setIndeterminate(n)
			return
		}
		eval.DivSeries(c, s, n, prec, res)
	})
}

// AtanSeries sets res to atan(h) = atan(h_0) + integral(h'/(1+h^2)) truncated to length n.
func (eval *Evaluator) AtanSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("AtanSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		var c ball.Ball
		c.Atan(&h.Coeffs[0], prec)

		if h.Length() == 1 || n == 1 {
			setConstant(&c, n, res)
			return
		}

		// 1 + h^2
		q := NewPoly(n)
		eval.Sqrlow(h, n-1, prec, q)
		q.SetLength(utils.Max(q.Length(), 1))
		q.Coeffs[0].AddInt64(&q.Coeffs[0], 1, prec)

		d := NewPoly(n)
		eval.Derivative(h, prec, d)
		eval.DivSeries(d, q, n-1, prec, d)

		eval.integralSeries(d, n, prec, res)
		res.SetLength(n)
		res.Coeffs[0].Swap(&c)
	})
}

// AsinSeries sets res to asin(h) = asin(h_0) + integral(h'/sqrt(1-h^2)) truncated to length n.
// If 1 - h_0^2 is not positive and h is not constant, res is indeterminate.
func (eval *Evaluator) AsinSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("AsinSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		var c ball.Ball
		c.Asin(&h.Coeffs[0], prec)
		eval.asinAcos(h, &c, false, n, prec, res)
	})
}

// AcosSeries sets res to acos(h) = acos(h_0) - integral(h'/sqrt(1-h^2)) truncated to length n.
// If 1 - h_0^2 is not positive and h is not constant, res is indeterminate.
func (eval *Evaluator) AcosSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("AcosSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		var c ball.Ball
		c.Acos(&h.Coeffs[0], prec)
		eval.asinAcos(h, &c, true, n, prec, res)
	})
}

func (eval *Evaluator) asinAcos(h *Poly, c *ball.Ball, acos bool, n int, prec uint, res *Poly) {

	if h.Length() == 1 || n == 1 {
		setConstant(c, n, res)
		return
	}

	// 1 - h^2
	q := NewPoly(n)
	eval.Sqrlow(h, n-1, prec, q)
	eval.Neg(q, q)
	q.SetLength(utils.Max(q.Length(), 1))
	q.Coeffs[0].AddInt64(&q.Coeffs[0], 1, prec)

	if !q.Coeffs[0].IsPositive() {
		res.setIndeterminate(n)
		return
	}

	eval.RsqrtSeries(q, n-1, prec, q)

	d := NewPoly(n)
	eval.Derivative(h, prec, d)
	eval.Mullow(d, q, n-1, prec, d)
	if acos {
		eval.Neg(d, d)
	}

	eval.integralSeries(d, n, prec, res)
	res.SetLength(n)
	res.Coeffs[0].Set(c)
}

// SincSeries sets res to sinc(h) = sin(h)/h truncated to length n.
//
// The Taylor coefficients of sinc are computed at the exact midpoint m of h_0 and
// composed with h - h_0. Since |sinc^(k)(x)| <= 1/(k+1) for real x, the coefficient k
// of the expansion at any point of h_0 is within rad(h_0)/((k+2) k!) of its value at m.
// A midpoint zero (or negligible) uses the exact expansion at zero.
func (eval *Evaluator) SincSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("SincSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		h0 := &h.Coeffs[0]

		var r ball.Mag
		r.Set(h0.Rad())

		c := NewPoly(n)

		if e := h0.Mid().MantExp(nil); h0.Mid().Sign() == 0 || e < -int(prec)/2 {

			// sinc(x) = sum_k (-1)^k x^2k / (2k+1)!
			var m ball.Mag
			r.Add(&r, m.SetFloat(h0.Mid()))

			c.SetLength(n)
			f := big.NewInt(1)
			for k := 0; 2*k < n; k++ {
				if k > 0 {
					f.Mul(f, big.NewInt(int64((2*k)*(2*k+1))))
				}
				q := new(big.Rat).SetFrac(big.NewInt(1), f)
				if k&1 == 1 {
					q.Neg(q)
				}
				c.Coeffs[2*k].SetRat(q, prec)
			}

		} else {

			wp := prec + 10
			if e < 0 {
				wp += uint((n + 1) * -e)
			}

			var m, s0, c0 ball.Ball
			m.GetMid(h0)

			// sin(m + t)
			s, tc := NewPoly(n), NewPoly(n)
			lin := NewPoly(2)
			lin.SetLength(2)
			lin.Coeffs[0].Set(&m)
			lin.Coeffs[1].One()
			ball.SinCos(&s0, &c0, &m, wp)
			sinCosRecurrence(lin, &s0, &c0, false, n, wp, s, tc)

			// 1/(m + t)
			eval.InvSeries(lin, n, wp, tc)

			eval.Mullow(s, tc, n, wp, c)
		}

		if !r.IsZero() {
			// rad / ((k+2) k!)
			var e ball.Mag
			e.Set(&r)
			for k := 0; k < c.Length(); k++ {
				if k > 0 {
					e.QuoUint64(&e, uint64(k))
				}
				var ek ball.Mag
				ek.QuoUint64(&e, uint64(k+2))
				c.Coeffs[k].AddError(&ek)
			}
		}

		eval.ComposeSeries(c, nonConstant(h), n, prec, res)
		res.SetRound(res, prec)
		res.SetLength(n)
	})
}

// SincPiSeries sets res to sinc(pi h) truncated to length n.
func (eval *Evaluator) SincPiSeries(h *Poly, n int, prec uint, res *Poly) {
	eval.unary("SincPiSeries", h, n, res, func(h *Poly, n int, res *Poly) {
		var pi ball.Ball
		hp := NewPoly(h.Length())
		eval.ScalarMul(h, pi.Pi(prec+8), prec+8, hp)
		eval.SincSeries(hp, n, prec, res)
	})
}
