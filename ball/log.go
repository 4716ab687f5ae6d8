package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/utils/bignum"
)

// Log sets z to ln(x) rounded to prec bits.
// If x contains non-positive numbers, z is indeterminate.
func (z *Ball) Log(x *Ball, prec uint) *Ball {

	if !x.IsFinite() || !x.IsPositive() {
		return z.Indeterminate()
	}

	if x.IsOne() {
		return z.Zero()
	}

	var t Ball
	logPoint(&t, &x.mid, prec+4)

	if !x.rad.IsZero() {
		// |log(m + e) - log(m)| <= r / (m - r)
		var e Mag
		e.QuoLower(&x.rad, x.lower())
		t.AddError(&e)
	}

	return z.SetRound(&t, prec)
}

// logPoint sets z to ln(m) for an exact m > 0.
func logPoint(z *Ball, m *big.Float, prec uint) {

	one := new(big.Float).SetInt64(1)

	d := new(big.Float).SetPrec(m.Prec() + 64)
	d.Sub(m, one)

	if d.Sign() == 0 {
		z.Zero()
		return
	}

	if d.MantExp(nil) < -3 && d.Acc() == big.Exact {
		// |m - 1| < 1/16
		var t Ball
		t.SetFloat(d)
		log1pSeries(z, &t, prec)
		return
	}

	wp := prec + 16

	mb := new(Ball).SetFloat(m)

	// y0 ~ log(m) from a 64-bit evaluation
	y0 := bignum.Log(new(big.Float).SetPrec(64).Set(m))

	var u, e, y Ball
	for i := 0; ; i++ {

		// u = m exp(-y0) - 1
		y.SetFloat(y0)
		e.Neg(&y)
		e.Exp(&e, wp)
		u.Mul(mb, &e, wp)
		u.SubInt64(&u, 1, wp)

		var mu Mag
		u.AbsUpper(&mu)
		if mu.CmpPow2(-8) < 0 || i == 4 {
			break
		}

		// Newton step on the midpoint
		y0 = new(big.Float).SetPrec(wp).Add(y0, &u.mid)
	}

	log1pSeries(&u, &u, wp)
	u.Add(&u, &y, wp)
	z.SetRound(&u, prec)
}

// log1pSeries sets z to log(1 + u) for |u| <= 1/2 using the Mercator series.
func log1pSeries(z *Ball, u *Ball, prec uint) {

	var mu Mag
	u.AbsUpper(&mu)

	if mu.CmpPow2(-1) > 0 {
		z.Indeterminate()
		return
	}

	if u.IsZero() {
		z.Zero()
		return
	}

	wp := prec + 16

	n := 1
	if lu := mu.Log2(); lu < 0 {
		n = int(math.Ceil(float64(wp)/-lu)) + 1
	}

	// sum_{j=1}^{n} (-1)^(j+1) u^j / j
	var h, t Ball
	h.SetFrac(1, int64(n), wp)
	for j := n - 1; j >= 1; j-- {
		h.Mul(&h, u, wp)
		t.SetFrac(1, int64(j), wp)
		h.Sub(&t, &h, wp)
	}
	h.Mul(&h, u, wp)

	// tail <= |u|^(n+1) / (1 - |u|)
	var e Mag
	e.Pow(&mu, uint(n+1))
	den := newLowerFloat().SetInt64(1)
	den.Sub(den, mu.Float())
	e.QuoLower(&e, den)
	h.AddError(&e)

	z.SetRound(&h, prec)
}

// Log1p sets z to ln(1 + x) rounded to prec bits.
func (z *Ball) Log1p(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if x.IsZero() {
		return z.Zero()
	}

	var mu Mag
	x.AbsUpper(&mu)

	if mu.CmpPow2(-4) < 0 {
		log1pSeries(z, x, prec)
		return z
	}

	var t Ball
	t.AddInt64(x, 1, prec+16)
	return z.Log(&t, prec)
}

// Pow sets z to x^y rounded to prec bits.
// Integer exponents are handled by binary powering; otherwise x^y = exp(y log(x))
// and x must be positive (or exactly zero with y positive).
func (z *Ball) Pow(x, y *Ball, prec uint) *Ball {

	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}

	if y.IsInt() {
		if n, acc := y.mid.Int64(); acc == big.Exact && n > -(1<<40) && n < 1<<40 {
			return z.PowInt(x, n, prec)
		}
	}

	if x.IsZero() {
		if y.IsPositive() {
			return z.Zero()
		}
		return z.Indeterminate()
	}

	if !x.IsPositive() {
		return z.Indeterminate()
	}

	wp := prec + 16

	var t Ball
	t.Log(x, wp)
	t.Mul(&t, y, wp)

	if e := t.mid.MantExp(nil); e > 0 && t.mid.Sign() != 0 {
		// the absolute error of the argument becomes the relative error of the result
		wp += uint(e)
		t.Log(x, wp)
		t.Mul(&t, y, wp)
	}

	return z.Exp(&t, prec)
}
