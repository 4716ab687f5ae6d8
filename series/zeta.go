package series

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils/bernoulli"
)

// ZetaSeries sets res to the Hurwitz zeta function zeta(h(x), a) truncated to length n,
// for a real shift a > 0. If deflate is true, the pole is removed: res is then the
// series of zeta(h, a) - 1/(h - 1), which is finite at h_0 = 1.
//
// The Taylor coefficients of zeta(s + y, a) at s = h_0 are obtained from the
// Euler-Maclaurin formula expanded in y, and composed with h - h_0.
// If a is not positive, or if h_0 contains 1 and the pole cannot be removed exactly,
// res is indeterminate.
func (eval *Evaluator) ZetaSeries(h *Poly, a *ball.Ball, deflate bool, n int, prec uint, res *Poly) {
	eval.unary("ZetaSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		s := &h.Coeffs[0]

		if !a.IsFinite() || !a.IsPositive() {
			res.setIndeterminate(n)
			return
		}

		if s.ContainsInt64(1) && (!deflate || !s.IsExact()) {
			res.setIndeterminate(n)
			return
		}

		c := NewPoly(n)
		c.SetLength(n)

		wp := prec + 8
		for try := 0; ; try++ {

			zetaEulerMaclaurin(c.Coeffs, s, a, deflate, wp)

			if try == eval.MaxPrecisionRetries || !c.Coeffs[0].IsFinite() ||
				c.Coeffs[0].ContainsZero() || c.Coeffs[0].RelAccuracyBits() >= int(prec)-8 {
				break
			}

			wp *= 2
			eval.debug("op", "ZetaSeries", "msg", "insufficient accuracy, retrying", "prec", prec, "wp", wp)
		}

		eval.composeExpansion(c, h, n, prec, res)
	})
}

// powSeries sets r[j] = c (-l)^j / j!: the Taylor coefficients in y of c u^-y with l = log(u).
func powSeries(r []ball.Ball, c, l *ball.Ball, prec uint) {
	var nl ball.Ball
	nl.Neg(l)
	for j := range r {
		if j == 0 {
			r[0].Set(c)
			continue
		}
		r[j].Mul(&r[j-1], &nl, prec)
		r[j].DivInt64(&r[j], int64(j), prec)
	}
}

// risingLinear sets r to r * (c + y) truncated to length len(r), in place.
func risingLinear(r []ball.Ball, c *ball.Ball, prec uint) {
	var t ball.Ball
	for k := len(r) - 1; k >= 0; k-- {
		t.Mul(&r[k], c, prec)
		if k > 0 {
			t.Add(&t, &r[k-1], prec)
		}
		r[k].Swap(&t)
	}
}

// zetaEulerMaclaurin sets res[k] to the coefficients in y of zeta(s + y, a), minus
// 1/(s - 1 + y) if deflate is true. When deflate is true and s contains 1, s must be
// exactly 1. The remainder is bounded on the disk |y| <= 1/2 and transferred to the
// coefficients by the Cauchy inequalities.
func zetaEulerMaclaurin(res []ball.Ball, s, a *ball.Ball, deflate bool, prec uint) {

	n := len(res)

	wp := prec + 24 + uint(n)

	var sa ball.Mag
	s.AbsUpper(&sa)
	sabs := sa.Float64() + 0.5
	sigma, _ := s.Lower().Float64()
	sigma -= 0.5
	alo, _ := a.Lower().Float64()

	nt, m, bound := ball.EulerMaclaurinParams(sabs, sigma, alo, wp, float64(n))
	if math.IsInf(bound, 1) {
		for i := range res {
			res[i].Indeterminate()
		}
		return
	}

	for i := range res {
		res[i].Zero()
	}

	var ns ball.Ball
	ns.Neg(s)

	terms := make([]ball.Ball, n)

	// sum_{k<nt} (a+k)^-(s+y)
	var u, l, p ball.Ball
	for k := 0; k < nt; k++ {
		u.AddInt64(a, int64(k), wp)
		l.Log(&u, wp)
		p.Mul(&ns, &l, wp)
		p.Exp(&p, wp)
		powSeries(terms, &p, &l, wp)
		for j := range res {
			res[j].Add(&res[j], &terms[j], wp)
		}
	}

	// e = u^-(s+y) with u = a + nt
	e := make([]ball.Ball, n)
	u.AddInt64(a, int64(nt), wp)
	l.Log(&u, wp)
	p.Mul(&ns, &l, wp)
	p.Exp(&p, wp)
	powSeries(e, &p, &l, wp)

	// u^(1-s-y) / (s-1+y), possibly deflated
	var t ball.Ball
	switch {
	case deflate && s.IsOne():
		// (u^-y - 1) / y
		var nl ball.Ball
		nl.Neg(&l)
		t.One()
		for k := 0; k < n; k++ {
			t.Mul(&t, &nl, wp)
			t.DivInt64(&t, int64(k+1), wp)
			terms[k].Set(&t)
		}
	default:
		// q_k = (u e_k - [deflate && k == 0] - q_{k-1}) / (s-1)
		var sm1 ball.Ball
		sm1.SubInt64(s, 1, wp)
		for k := 0; k < n; k++ {
			t.Mul(&e[k], &u, wp)
			if deflate && k == 0 {
				t.SubInt64(&t, 1, wp)
			}
			if k > 0 {
				t.Sub(&t, &terms[k-1], wp)
			}
			terms[k].Div(&t, &sm1, wp)
		}
	}
	for j := range res {
		res[j].Add(&res[j], &terms[j], wp)
	}

	// u^-(s+y) / 2
	for j := range res {
		t.Mul2Exp(&e[j], -1)
		res[j].Add(&res[j], &t, wp)
	}

	// sum_{j=1}^m B_2j / (2j)! (s+y)_{2j-1} u^(1-2j), then times e
	bs := bernoulli.Numbers(2*m + 1)

	rf := make([]ball.Ball, n)
	rf[0].Set(s)
	if n > 1 {
		rf[1].One()
	}

	b := make([]ball.Ball, n)

	var ui2, w, cf, c ball.Ball
	ui2.Sqr(&u, wp)
	ui2.Inv(&ui2, wp)
	w.Inv(&u, wp)
	fact := big.NewInt(2)
	for j := 1; j <= m; j++ {
		if j > 1 {
			c.AddInt64(s, int64(2*j-3), wp)
			risingLinear(rf, &c, wp)
			c.AddInt64(s, int64(2*j-2), wp)
			risingLinear(rf, &c, wp)
			w.Mul(&w, &ui2, wp)
			fact.Mul(fact, big.NewInt(int64((2*j-1)*(2*j))))
		}
		cf.SetRat(new(big.Rat).SetFrac(bs[2*j].Num(), new(big.Int).Mul(bs[2*j].Denom(), fact)), wp)
		cf.Mul(&cf, &w, wp)
		for k := range b {
			b[k].AddMul(&rf[k], &cf, wp)
		}
	}

	for k := 0; k < n; k++ {
		t.Dot(&res[k], false, b, 0, 1, e, k, -1, k+1, wp)
		res[k].Swap(&t)
	}

	if !math.IsInf(bound, -1) {
		var er ball.Mag
		er.SetPow2(int(math.Ceil(bound)))
		for k := range res {
			res[k].AddError(&er)
		}
	}

	for k := range res {
		res[k].SetRound(&res[k], prec)
	}
}
