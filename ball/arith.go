package ball

import (
	"math"
	"math/big"
	"math/bits"
)

// Neg sets z to -x.
func (z *Ball) Neg(x *Ball) *Ball {
	z.Set(x)
	z.mid.Neg(&z.mid)
	return z
}

// Abs sets z to a ball containing |t| for every t in x.
func (z *Ball) Abs(x *Ball) *Ball {
	if x.ContainsZero() && !x.IsZero() && x.IsFinite() {
		// [0, |mid| + rad]
		var u Mag
		x.AbsUpper(&u)
		h := new(big.Float).SetPrec(MagPrec).SetMode(big.AwayFromZero).Set(&u.f)
		h.SetMantExp(h, -1)
		var r Mag
		r.SetFloat(h)
		return z.setMid(h, &r)
	}
	z.Set(x)
	z.mid.Abs(&z.mid)
	return z
}

// Add sets z to x + y rounded to prec bits.
func (z *Ball) Add(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	var r Mag
	r.Add(&x.rad, &y.rad)
	m := newFloat(prec)
	m.Add(&x.mid, &y.mid)
	addRoundingError(&r, m, prec)
	return z.setMid(m, &r)
}

// Sub sets z to x - y rounded to prec bits.
func (z *Ball) Sub(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	var r Mag
	r.Add(&x.rad, &y.rad)
	m := newFloat(prec)
	m.Sub(&x.mid, &y.mid)
	addRoundingError(&r, m, prec)
	return z.setMid(m, &r)
}

// AddInt64 sets z to x + v rounded to prec bits.
func (z *Ball) AddInt64(x *Ball, v int64, prec uint) *Ball {
	var t Ball
	return z.Add(x, t.SetInt64(v), prec)
}

// SubInt64 sets z to x - v rounded to prec bits.
func (z *Ball) SubInt64(x *Ball, v int64, prec uint) *Ball {
	var t Ball
	return z.Sub(x, t.SetInt64(v), prec)
}

// Mul sets z to x * y rounded to prec bits.
func (z *Ball) Mul(x, y *Ball, prec uint) *Ball {
	if x.IsZero() || y.IsZero() {
		return z.Zero()
	}
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	var r, t, xa, ya Mag
	xa.SetFloat(&x.mid)
	ya.SetFloat(&y.mid)
	r.Mul(&xa, &y.rad)
	t.Mul(&ya, &x.rad)
	r.Add(&r, &t)
	t.Mul(&x.rad, &y.rad)
	r.Add(&r, &t)
	m := newFloat(prec)
	m.Mul(&x.mid, &y.mid)
	addRoundingError(&r, m, prec)
	return z.setMid(m, &r)
}

// Sqr sets z to x^2 rounded to prec bits.
func (z *Ball) Sqr(x *Ball, prec uint) *Ball {
	return z.Mul(x, x, prec)
}

// MulInt64 sets z to x * v rounded to prec bits.
func (z *Ball) MulInt64(x *Ball, v int64, prec uint) *Ball {
	var t Ball
	return z.Mul(x, t.SetInt64(v), prec)
}

// MulFloat sets z to x * v rounded to prec bits, for an exact v.
func (z *Ball) MulFloat(x *Ball, v *big.Float, prec uint) *Ball {
	var t Ball
	return z.Mul(x, t.SetFloat(v), prec)
}

// Mul2Exp sets z to x * 2^e (exact).
func (z *Ball) Mul2Exp(x *Ball, e int) *Ball {
	z.Set(x)
	if !z.IsFinite() {
		return z
	}
	z.mid.SetMantExp(&z.mid, e)
	z.rad.Mul2Exp(&z.rad, e)
	return z
}

// AddMul sets z to z + x * y rounded to prec bits.
func (z *Ball) AddMul(x, y *Ball, prec uint) *Ball {
	var t Ball
	t.Mul(x, y, prec+16)
	return z.Add(z, &t, prec)
}

// SubMul sets z to z - x * y rounded to prec bits.
func (z *Ball) SubMul(x, y *Ball, prec uint) *Ball {
	var t Ball
	t.Mul(x, y, prec+16)
	return z.Sub(z, &t, prec)
}

// Div sets z to x / y rounded to prec bits.
// If y contains zero, z is indeterminate.
func (z *Ball) Div(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() || y.ContainsZero() {
		return z.Indeterminate()
	}

	var r Mag

	if !x.rad.IsZero() || !y.rad.IsZero() {
		// |x/y - xm/ym| <= (|xm| yr + |ym| xr) / (|ym| (|ym| - yr))
		var xa, ya, t Mag
		xa.SetFloat(&x.mid)
		ya.SetFloat(&y.mid)
		r.Mul(&xa, &y.rad)
		t.Mul(&ya, &x.rad)
		r.Add(&r, &t)

		ylo := newLowerFloat().SetMode(big.ToZero)
		ylo.Abs(&y.mid)
		den := newLowerFloat()
		den.Mul(ylo, y.absLower())
		r.QuoLower(&r, den)
	}

	m := newFloat(prec)
	m.Quo(&x.mid, &y.mid)
	addRoundingError(&r, m, prec)
	return z.setMid(m, &r)
}

// DivInt64 sets z to x / v rounded to prec bits.
func (z *Ball) DivInt64(x *Ball, v int64, prec uint) *Ball {
	var t Ball
	return z.Div(x, t.SetInt64(v), prec)
}

// Inv sets z to 1 / x rounded to prec bits.
func (z *Ball) Inv(x *Ball, prec uint) *Ball {
	var one Ball
	return z.Div(one.One(), x, prec)
}

// Sqrt sets z to sqrt(x) rounded to prec bits.
// If x contains negative numbers, z is indeterminate.
func (z *Ball) Sqrt(x *Ball, prec uint) *Ball {

	if !x.IsFinite() || x.lower().Sign() < 0 {
		return z.Indeterminate()
	}

	if x.IsZero() {
		return z.Zero()
	}

	var r Mag

	m := newFloat(prec)
	m.Sqrt(&x.mid)

	// big.Float.Sqrt does not report its accuracy
	sq := new(big.Float).SetPrec(2 * prec)
	sq.Mul(m, m)
	if sq.Cmp(&x.mid) != 0 {
		r.SetPow2(m.MantExp(nil) - int(prec) + 1)
	}

	if !x.rad.IsZero() {
		// |sqrt(t) - sqrt(xm)| <= |t - xm| / sqrt(xm)
		lo := newLowerFloat().SetMode(big.ToZero)
		lo.Sqrt(&x.mid)
		lo.Mul(lo, new(big.Float).SetFloat64(1-1.0/(1<<(MagPrec-4))))
		var t Mag
		t.QuoLower(&x.rad, lo)
		r.Add(&r, &t)
	}

	return z.setMid(m, &r)
}

// Rsqrt sets z to 1/sqrt(x) rounded to prec bits.
func (z *Ball) Rsqrt(x *Ball, prec uint) *Ball {
	var t Ball
	t.Sqrt(x, prec+16)
	return z.Inv(&t, prec)
}

// PowInt sets z to x^n rounded to prec bits.
func (z *Ball) PowInt(x *Ball, n int64, prec uint) *Ball {

	if n == math.MinInt64 {
		// -n overflows
		var t Ball
		t.PowInt(x, n/2, prec+16)
		return z.Mul(&t, &t, prec)
	}

	if n < 0 {
		var t Ball
		t.PowInt(x, -n, prec+16)
		return z.Inv(&t, prec)
	}

	if n == 0 {
		return z.One()
	}

	wp := prec + uint(bits.Len64(uint64(n))) + 8

	var r, b Ball
	r.One()
	b.Set(x)
	for k := uint64(n); k > 0; k >>= 1 {
		if k&1 == 1 {
			r.Mul(&r, &b, wp)
		}
		if k > 1 {
			b.Mul(&b, &b, wp)
		}
	}

	return z.SetRound(&r, prec)
}

// Dot sets z to init + sum_{i<n} x[xi + i*xs] * y[yi + i*ys] (the products are subtracted if sub is true),
// rounded once to prec bits. init may be nil.
func (z *Ball) Dot(init *Ball, sub bool, x []Ball, xi, xs int, y []Ball, yi, ys int, n int, prec uint) *Ball {

	wp := prec + 64 + uint(bits.Len(uint(n)))

	s := newFloat(wp)
	var rad, t, aa, ba Mag

	if init != nil {
		if !init.IsFinite() {
			return z.Indeterminate()
		}
		s.Set(&init.mid)
		addRoundingError(&rad, s, wp)
		rad.Add(&rad, &init.rad)
	}

	p := new(big.Float)

	for i := 0; i < n; i++ {

		a := &x[xi+i*xs]
		b := &y[yi+i*ys]

		if a.IsZero() || b.IsZero() {
			continue
		}

		if !a.IsFinite() || !b.IsFinite() {
			return z.Indeterminate()
		}

		aa.SetFloat(&a.mid)
		ba.SetFloat(&b.mid)
		t.Mul(&aa, &b.rad)
		rad.Add(&rad, &t)
		t.Mul(&ba, &a.rad)
		rad.Add(&rad, &t)
		t.Mul(&a.rad, &b.rad)
		rad.Add(&rad, &t)

		if a.mid.Sign() == 0 || b.mid.Sign() == 0 {
			continue
		}

		p.SetPrec(a.mid.Prec() + b.mid.Prec())
		p.Mul(&a.mid, &b.mid)
		if sub {
			s.Sub(s, p)
		} else {
			s.Add(s, p)
		}
		addRoundingError(&rad, s, wp)
	}

	m := newFloat(prec)
	m.Set(s)
	addRoundingError(&rad, m, prec)
	return z.setMid(m, &rad)
}

// Min sets z to a ball containing min(a, b) for a in x, b in y.
func (z *Ball) Min(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	lo := x.lower()
	if l := y.lower(); l.Cmp(lo) < 0 {
		lo = l
	}
	hi := x.upper()
	if h := y.upper(); h.Cmp(hi) < 0 {
		hi = h
	}
	return z.SetInterval(lo, hi, prec)
}

// Max sets z to a ball containing max(a, b) for a in x, b in y.
func (z *Ball) Max(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	lo := x.lower()
	if l := y.lower(); l.Cmp(lo) > 0 {
		lo = l
	}
	hi := x.upper()
	if h := y.upper(); h.Cmp(hi) > 0 {
		hi = h
	}
	return z.SetInterval(lo, hi, prec)
}
