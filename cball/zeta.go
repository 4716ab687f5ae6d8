package cball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils/bernoulli"
)

// HurwitzZeta sets z to zeta(s, a) = sum_{k>=0} (a+k)^-s for a real s and a complex
// shift a with Re(a) > 0, evaluated by the Euler-Maclaurin formula.
// If s contains 1 or Re(a) is not positive, z is indeterminate.
func (z *Ball) HurwitzZeta(s *ball.Ball, a *Ball, prec uint) *Ball {

	if a.IsReal() {
		z.Re.HurwitzZeta(s, &a.Re, prec)
		z.Im.Zero()
		return z
	}

	if !s.IsFinite() || !a.IsFinite() || s.ContainsInt64(1) || !a.Re.IsPositive() {
		return z.Indeterminate()
	}

	wp := prec + 24

	var sa ball.Mag
	s.AbsUpper(&sa)
	sigma, _ := s.Lower().Float64()
	alo, _ := a.Re.Lower().Float64()

	n, m, bound := ball.EulerMaclaurinParams(sa.Float64(), sigma, alo, wp, 0)
	if math.IsInf(bound, 1) {
		return z.Indeterminate()
	}

	var ns ball.Ball
	ns.Neg(s)

	// sum_{k<n} (a+k)^-s
	var sum, u, t Ball
	sum.Zero()
	for k := 0; k < n; k++ {
		u.AddInt64(a, int64(k), wp)
		t.PowReal(&u, &ns, wp)
		sum.Add(&sum, &t, wp)
	}

	// p = u^-s with u = a + n
	var p, ui, ui2 Ball
	u.AddInt64(a, int64(n), wp)
	p.PowReal(&u, &ns, wp)
	ui.Inv(&u, wp)
	ui2.Mul(&ui, &ui, wp)

	// u^(1-s) / (s-1) + u^-s / 2
	var q ball.Ball
	q.SubInt64(s, 1, wp)
	t.Mul(&u, &p, wp)
	t.DivReal(&t, &q, wp)
	sum.Add(&sum, &t, wp)
	t.Mul2Exp(&p, -1)
	sum.Add(&sum, &t, wp)

	// sum_{j=1}^m B_2j / (2j)! (s)_{2j-1} u^(-s-2j+1)
	bs := bernoulli.Numbers(2*m + 1)
	var r Ball
	var f, c ball.Ball
	r.MulReal(&p, s, wp)
	r.Mul(&r, &ui, wp)
	fact := big.NewInt(2)
	for j := 1; j <= m; j++ {
		if j > 1 {
			f.AddInt64(s, int64(2*j-3), wp)
			r.MulReal(&r, &f, wp)
			f.AddInt64(s, int64(2*j-2), wp)
			r.MulReal(&r, &f, wp)
			r.Mul(&r, &ui2, wp)
			fact.Mul(fact, big.NewInt(int64((2*j-1)*(2*j))))
		}
		c.SetRat(new(big.Rat).SetFrac(bs[2*j].Num(), new(big.Int).Mul(bs[2*j].Denom(), fact)), wp)
		t.MulReal(&r, &c, wp)
		sum.Add(&sum, &t, wp)
	}

	if !math.IsInf(bound, -1) {
		var e ball.Mag
		e.SetPow2(int(math.Ceil(bound)))
		sum.Re.AddError(&e)
		sum.Im.AddError(&e)
	}

	z.Re.SetRound(&sum.Re, prec)
	z.Im.SetRound(&sum.Im, prec)
	return z
}

// mulLinear sets r to r * (c + y) truncated to length len(r), in place.
func mulLinear(r []Ball, c *Ball, prec uint) {
	var t Ball
	for k := len(r) - 1; k >= 0; k-- {
		t.Mul(&r[k], c, prec)
		if k > 0 {
			t.Add(&t, &r[k-1], prec)
		}
		r[k].Swap(&t)
	}
}

// expSeriesReal sets r[j] = c (-L)^j / j! for j < len(r): the Taylor coefficients in y
// of c u^-y for a real L = log(u).
func expSeriesReal(r []Ball, c *Ball, l *ball.Ball, prec uint) {
	var nl ball.Ball
	nl.Neg(l)
	for j := range r {
		if j == 0 {
			r[0].Set(c)
			continue
		}
		r[j].MulReal(&r[j-1], &nl, prec)
		var d ball.Ball
		d.SetInt64(int64(j))
		r[j].DivReal(&r[j], &d, prec)
	}
}

// ZetaSeries returns the first n Taylor coefficients in y of zeta(s + y, a), for a
// complex point s and a real shift a > 0. The Euler-Maclaurin formula is expanded in
// series form; its remainder is bounded on the disk |y| <= 1/2 and transferred to the
// coefficients by the Cauchy inequalities.
// If s contains 1 or a is not positive, all coefficients are indeterminate.
func ZetaSeries(s *Ball, a *ball.Ball, n int, prec uint) []Ball {

	res := make([]Ball, n)
	if n == 0 {
		return res
	}

	if !s.IsFinite() || !a.IsFinite() || !a.IsPositive() || (s.Re.ContainsInt64(1) && s.Im.ContainsZero()) {
		for i := range res {
			res[i].Indeterminate()
		}
		return res
	}

	wp := prec + 24 + uint(n)

	// Cauchy radius 1/2: coefficient k of the remainder is at most 2^k sup |R|
	var sa ball.Mag
	sa.Set(s.Abs(64).AbsUpper(new(ball.Mag)))
	sabs := sa.Float64() + 0.5
	sigma, _ := s.Re.Lower().Float64()
	sigma -= 0.5
	alo, _ := a.Lower().Float64()

	nt, m, bound := ball.EulerMaclaurinParams(sabs, sigma, alo, wp, float64(n))
	if math.IsInf(bound, 1) {
		for i := range res {
			res[i].Indeterminate()
		}
		return res
	}

	for i := range res {
		res[i].Zero()
	}

	var ns Ball
	ns.Neg(s)

	terms := make([]Ball, n)

	// sum_{k<nt} (a+k)^-(s+y)
	var u, l ball.Ball
	var p Ball
	for k := 0; k < nt; k++ {
		u.AddInt64(a, int64(k), wp)
		l.Log(&u, wp)
		p.MulReal(&ns, &l, wp)
		p.Exp(&p, wp)
		expSeriesReal(terms, &p, &l, wp)
		for j := range res {
			res[j].Add(&res[j], &terms[j], wp)
		}
	}

	// e = u^-(s+y) with u = a + nt
	e := make([]Ball, n)
	u.AddInt64(a, int64(nt), wp)
	l.Log(&u, wp)
	p.MulReal(&ns, &l, wp)
	p.Exp(&p, wp)
	expSeriesReal(e, &p, &l, wp)

	// u^(1-s-y) / (s-1+y): q_k = (u e_k - q_{k-1}) / (s-1)
	var sm1, t Ball
	sm1.AddInt64(s, -1, wp)
	for k := 0; k < n; k++ {
		t.MulReal(&e[k], &u, wp)
		if k > 0 {
			t.Sub(&t, &terms[k-1], wp)
		}
		terms[k].Div(&t, &sm1, wp)
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
	rf := make([]Ball, n)
	rf[0].Set(s)
	if n > 1 {
		rf[1].One()
	}
	for k := 2; k < n; k++ {
		rf[k].Zero()
	}

	b := make([]Ball, n)
	for k := range b {
		b[k].Zero()
	}

	var ui2, w, cf ball.Ball
	ui2.Sqr(&u, wp)
	ui2.Inv(&ui2, wp)
	w.Inv(&u, wp)
	fact := big.NewInt(2)
	var c Ball
	for j := 1; j <= m; j++ {
		if j > 1 {
			c.AddInt64(s, int64(2*j-3), wp)
			mulLinear(rf, &c, wp)
			c.AddInt64(s, int64(2*j-2), wp)
			mulLinear(rf, &c, wp)
			w.Mul(&w, &ui2, wp)
			fact.Mul(fact, big.NewInt(int64((2*j-1)*(2*j))))
		}
		cf.SetRat(new(big.Rat).SetFrac(bs[2*j].Num(), new(big.Int).Mul(bs[2*j].Denom(), fact)), wp)
		cf.Mul(&cf, &w, wp)
		for k := range b {
			t.MulReal(&rf[k], &cf, wp)
			b[k].Add(&b[k], &t, wp)
		}
	}

	for k := 0; k < n; k++ {
		var acc Ball
		acc.Zero()
		for i := 0; i <= k; i++ {
			t.Mul(&b[i], &e[k-i], wp)
			acc.Add(&acc, &t, wp)
		}
		res[k].Add(&res[k], &acc, wp)
	}

	if !math.IsInf(bound, -1) {
		var er ball.Mag
		er.SetPow2(int(math.Ceil(bound)))
		for k := range res {
			res[k].Re.AddError(&er)
			res[k].Im.AddError(&er)
		}
	}

	for k := range res {
		res[k].Re.SetRound(&res[k].Re, prec)
		res[k].Im.SetRound(&res[k].Im, prec)
	}

	return res
}
