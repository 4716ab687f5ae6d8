package cball

import (
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils/bernoulli"
)

// remainderBound returns an upper bound of 2 |q| / c^k for the exact lower bound c > 0.
func remainderBound(q *big.Rat, c *big.Float, k int) *ball.Mag {
	var t, d ball.Ball
	t.SetRat(q, 64)
	t.Mul2Exp(&t, 1)
	d.SetFloat(c)
	d.PowInt(&d, int64(k), 64)
	t.Div(&t, &d, 64)
	return t.AbsUpper(new(ball.Mag))
}

// shift returns w = x + r with the number r of recurrence steps moving Re(x) into the
// range of validity of the asymptotic expansions.
func shift(w, x *Ball, wp uint) (r int) {
	r = ball.StirlingShift(&x.Re, wp)
	w.AddInt64(x, int64(r), wp)
	return
}

// Lgamma sets z to the principal branch of log Gamma(x), which is continuous on Re(x) > 0.
// If Re(x) is not positive, z is indeterminate.
func (z *Ball) Lgamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() || !x.Re.IsPositive() {
		return z.Indeterminate()
	}

	if x.IsReal() {
		z.Re.Lgamma(&x.Re, prec)
		z.Im.Zero()
		return z
	}

	wp := prec + 16

	var w Ball
	r := shift(&w, x, wp)

	wlo := w.Re.Lower()
	wlof, _ := wlo.Float64()
	m := ball.StirlingTerms(wlof, wp+1, false)
	bs := bernoulli.Numbers(2*m + 1)

	// sum_{k=1}^{m-1} B_2k / (2k (2k-1) w^(2k-1))
	var wi, wi2, h, c Ball
	wi.Inv(&w, wp)
	wi2.Mul(&wi, &wi, wp)
	h.Zero()
	for k := m - 1; k >= 1; k-- {
		c.Re.SetRat(new(big.Rat).Quo(bs[2*k], big.NewRat(int64(2*k*(2*k-1)), 1)), wp)
		c.Im.Zero()
		h.Add(&h, &c, wp)
		if k > 1 {
			h.Mul(&h, &wi2, wp)
		}
	}
	h.Mul(&h, &wi, wp)

	e := remainderBound(new(big.Rat).Quo(bs[2*m], big.NewRat(int64(2*m*(2*m-1)), 1)), wlo, 2*m-1)
	h.Re.AddError(e)
	h.Im.AddError(e)

	// (w - 1/2) log w - w + log(2 pi)/2 + h
	var l, t Ball
	var half, lp ball.Ball
	l.Log(&w, wp)
	half.SetFrac(1, 2, wp)
	t.Re.Sub(&w.Re, &half, wp)
	t.Im.Set(&w.Im)
	l.Mul(&l, &t, wp)
	l.Sub(&l, &w, wp)
	lp.Pi(wp)
	lp.Mul2Exp(&lp, 1)
	lp.Log(&lp, wp)
	lp.Mul2Exp(&lp, -1)
	l.AddReal(&l, &lp, wp)
	l.Add(&l, &h, wp)

	// - sum_{j<r} log(x + j)
	for j := 0; j < r; j++ {
		t.AddInt64(x, int64(j), wp)
		t.Log(&t, wp)
		l.Sub(&l, &t, wp)
	}

	z.Re.SetRound(&l.Re, prec)
	z.Im.SetRound(&l.Im, prec)
	return z
}

// Digamma sets z to digamma(x) = Gamma'(x)/Gamma(x). If Re(x) is not positive,
// z is indeterminate.
func (z *Ball) Digamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() || !x.Re.IsPositive() {
		return z.Indeterminate()
	}

	if x.IsReal() {
		z.Re.Digamma(&x.Re, prec)
		z.Im.Zero()
		return z
	}

	wp := prec + 16

	var w Ball
	r := shift(&w, x, wp)

	wlo := w.Re.Lower()
	wlof, _ := wlo.Float64()
	m := ball.StirlingTerms(wlof, wp+1, true)
	bs := bernoulli.Numbers(2*m + 1)

	// sum_{k=1}^{m-1} B_2k / (2k w^2k)
	var wi2, h, c Ball
	wi2.Mul(&w, &w, wp)
	wi2.Inv(&wi2, wp)
	h.Zero()
	for k := m - 1; k >= 1; k-- {
		c.Re.SetRat(new(big.Rat).Quo(bs[2*k], big.NewRat(int64(2*k), 1)), wp)
		c.Im.Zero()
		h.Add(&h, &c, wp)
		h.Mul(&h, &wi2, wp)
	}

	e := remainderBound(new(big.Rat).Quo(bs[2*m], big.NewRat(int64(2*m), 1)), wlo, 2*m)
	h.Re.AddError(e)
	h.Im.AddError(e)

	// log(w) - 1/(2w) - h - sum_{j<r} 1/(x+j)
	var l, t Ball
	l.Log(&w, wp)
	t.Inv(&w, wp)
	t.Mul2Exp(&t, -1)
	l.Sub(&l, &t, wp)
	l.Sub(&l, &h, wp)

	for j := 0; j < r; j++ {
		t.AddInt64(x, int64(j), wp)
		t.Inv(&t, wp)
		l.Sub(&l, &t, wp)
	}

	z.Re.SetRound(&l.Re, prec)
	z.Im.SetRound(&l.Im, prec)
	return z
}
