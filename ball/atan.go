package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/utils"
)

// Atan sets z to atan(x) rounded to prec bits.
func (z *Ball) Atan(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		// |atan| < pi/2 < 2
		return z.Zero().AddErrorPow2(1)
	}

	if x.IsZero() {
		return z.Zero()
	}

	var r Mag
	r.Set(&x.rad)

	atanPoint(z, &x.mid, prec)

	// atan is 1-Lipschitz
	return z.AddError(&r)
}

// atanPoint sets z to atan(x) for an exact x.
func atanPoint(z *Ball, x *big.Float, prec uint) {

	if x.Sign() == 0 {
		z.Zero()
		return
	}

	wp := prec + 16

	neg := x.Sign() < 0

	var t Ball
	t.SetFloat(x)
	t.mid.Abs(&t.mid)

	e := t.mid.MantExp(nil)

	one := new(big.Float).SetInt64(1)

	switch c := t.mid.Cmp(one); {
	case c == 0:
		// atan(1) = pi/4
		z.Pi(prec + 2)
		z.Mul2Exp(z, -2)
	case c > 0:
		// atan(t) = pi/2 - atan(1/t)
		var u, hp Ball
		u.Inv(&t, wp+uint(utils.Max(e, 0)))
		atanSeries(&u, &u, wp)
		hp.Pi(wp)
		hp.Mul2Exp(&hp, -1)
		z.Sub(&hp, &u, wp)
	default:
		atanSeries(z, &t, wp+uint(utils.Max(-e, 0)))
	}

	if neg {
		z.Neg(z)
	}

	z.SetRound(z, prec)
}

// atanSeries sets z to atan(t) for a ball 0 < t <= 1, using argument halving
// t -> t / (1 + sqrt(1 + t^2)) followed by the Taylor series.
func atanSeries(z *Ball, t *Ball, prec uint) {

	sq := isqrt(prec) / 2
	wp := prec + uint(sq) + 24

	var u, v Ball
	u.Set(t)

	var mu Mag
	u.AbsUpper(&mu)

	halvings := 0
	for mu.CmpPow2(-sq) > 0 && halvings < sq+8 {
		v.Sqr(&u, wp)
		v.AddInt64(&v, 1, wp)
		v.Sqrt(&v, wp)
		v.AddInt64(&v, 1, wp)
		u.Div(&u, &v, wp)
		u.AbsUpper(&mu)
		halvings++
	}

	if mu.CmpPow2(0) >= 0 || !u.IsFinite() {
		z.Zero().AddErrorPow2(1)
		return
	}

	// sum_{j<n} (-1)^j u^(2j+1) / (2j+1)
	n := 1
	if lu := mu.Log2(); lu < 0 {
		n = int(math.Ceil(float64(wp)/(-2*lu))) + 1
	}

	var h, w Ball
	v.Sqr(&u, wp)
	h.SetFrac(1, int64(2*n-1), wp)
	for j := n - 2; j >= 0; j-- {
		h.Mul(&h, &v, wp)
		w.SetFrac(1, int64(2*j+1), wp)
		h.Sub(&w, &h, wp)
	}
	h.Mul(&h, &u, wp)

	// tail <= |u|^(2n+1) / ((2n+1)(1 - u^2))
	var e, m2 Mag
	e.Pow(&mu, uint(2*n+1))
	e.QuoUint64(&e, uint64(2*n+1))
	m2.Mul(&mu, &mu)
	den := newLowerFloat().SetInt64(1)
	den.Sub(den, m2.Float())
	e.QuoLower(&e, den)
	h.AddError(&e)

	h.Mul2Exp(&h, halvings)
	z.SetRound(&h, prec)
}

// Atan2 sets z to the argument of the point (x, y), in (-pi, pi], rounded to prec bits.
func (z *Ball) Atan2(y, x *Ball, prec uint) *Ball {

	if !x.IsFinite() || !y.IsFinite() {
		return z.Zero().AddErrorPow2(2)
	}

	wp := prec + 16

	var t, p Ball

	switch {
	case x.IsPositive():
		t.Div(y, x, wp)
		return z.Atan(&t, prec)
	case y.IsPositive():
		// pi/2 - atan(x/y)
		t.Div(x, y, wp)
		t.Atan(&t, wp)
		p.Pi(wp)
		p.Mul2Exp(&p, -1)
		return z.Sub(&p, &t, prec)
	case y.IsNegative():
		// -pi/2 - atan(x/y)
		t.Div(x, y, wp)
		t.Atan(&t, wp)
		p.Pi(wp)
		p.Mul2Exp(&p, -1)
		p.Neg(&p)
		return z.Sub(&p, &t, prec)
	case x.IsNegative() && y.IsZero():
		return z.Pi(prec)
	}

	// the branch cut or the origin is in the input: [-pi, pi]
	p.Pi(wp)
	var r Mag
	p.AbsUpper(&r)
	z.Zero()
	return z.AddError(&r)
}

// Asin sets z to asin(x) rounded to prec bits.
// If x is not contained in [-1, 1], z is indeterminate.
func (z *Ball) Asin(x *Ball, prec uint) *Ball {
	return z.asinAcos(x, prec, false)
}

// Acos sets z to acos(x) rounded to prec bits.
// If x is not contained in [-1, 1], z is indeterminate.
func (z *Ball) Acos(x *Ball, prec uint) *Ball {
	return z.asinAcos(x, prec, true)
}

func (z *Ball) asinAcos(x *Ball, prec uint, acos bool) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	one := new(big.Float).SetInt64(1)
	mone := new(big.Float).SetInt64(-1)

	lo, hi := x.lower(), x.upper()
	if lo.Cmp(mone) < 0 || hi.Cmp(one) > 0 {
		return z.Indeterminate()
	}

	eval := func(z *Ball, v *big.Float, prec uint) {
		asinPoint(z, v, prec)
		if acos {
			var hp Ball
			hp.Pi(prec + 4)
			hp.Mul2Exp(&hp, -1)
			z.Sub(&hp, z, prec)
		}
	}

	if x.IsExact() {
		eval(z, &x.mid, prec)
		return z
	}

	// asin and acos are monotone: enclose the image of the endpoints
	var a, b Ball
	eval(&a, lo, prec+8)
	eval(&b, hi, prec+8)
	return z.Union(&a, &b, prec)
}

// asinPoint sets z to asin(v) for an exact v in [-1, 1].
func asinPoint(z *Ball, v *big.Float, prec uint) {

	if v.Sign() == 0 {
		z.Zero()
		return
	}

	neg := v.Sign() < 0
	a := new(big.Float).Abs(v)

	if a.Cmp(new(big.Float).SetInt64(1)) == 0 {
		z.Pi(prec + 2)
		z.Mul2Exp(z, -1)
		if neg {
			z.Neg(z)
		}
		return
	}

	// 1 - a is computed exactly to measure the cancellation in 1 - a^2
	d := new(big.Float).SetPrec(a.Prec() + 64)
	d.Sub(new(big.Float).SetInt64(1), a)

	wp := prec + 16 + uint(utils.Max(0, -d.MantExp(nil)))

	// asin(a) = atan(a / sqrt((1 - a)(1 + a)))
	var t, u, w Ball
	t.SetFloat(a)
	u.SetFloat(d)
	w.AddInt64(&t, 1, wp)
	u.Mul(&u, &w, wp)
	u.Sqrt(&u, wp)
	t.Div(&t, &u, wp)
	t.Atan(&t, wp)

	if neg {
		t.Neg(&t)
	}

	z.SetRound(&t, prec)
}
