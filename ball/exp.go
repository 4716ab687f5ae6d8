package ball

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/ballseries/utils"
	"github.com/tuneinsight/ballseries/utils/bignum"
)

// expMaxExp is the exponent above which exp(x) is not computed: for x >= 2^expMaxExp
// the result is indeterminate and for x <= -2^expMaxExp it is enclosed by [0 +/- 2^-2^expMaxExp].
const expMaxExp = 30

// taylorTerms returns the smallest n >= 1 such that 2^(n lu) / n! <= 2^-wp.
func taylorTerms(lu float64, wp uint) int {
	if math.IsInf(lu, -1) {
		return 1
	}
	for n := 1; ; n++ {
		lg, _ := math.Lgamma(float64(n + 1))
		if float64(n)*lu-lg/math.Ln2 <= -float64(wp) || n > 1<<24 {
			return n
		}
	}
}

// factorialLower returns a lower bound of n!.
func factorialLower(n int) *big.Float {
	f := newLowerFloat().SetInt64(1)
	for i := 2; i <= n; i++ {
		f.Mul(f, new(big.Float).SetInt64(int64(i)))
	}
	return f
}

// isqrt returns floor(sqrt(n)).
func isqrt(n uint) int {
	return int(math.Sqrt(float64(n)))
}

// Exp sets z to exp(x) rounded to prec bits.
func (z *Ball) Exp(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if x.IsZero() {
		return z.One()
	}

	var lim Mag
	lim.SetPow2(expMaxExp)

	if x.mid.MantExp(nil) > expMaxExp {
		if x.mid.Sign() < 0 && x.upper().Cmp(new(big.Float).Neg(lim.Float())) <= 0 {
			// 0 < exp(x) <= 2^-2^expMaxExp
			var r Mag
			r.SetPow2(-(1 << expMaxExp))
			z.Zero()
			return z.AddError(&r)
		}
		return z.Indeterminate()
	}

	if x.rad.Cmp(&lim) >= 0 {
		return z.Indeterminate()
	}

	var t Ball
	expPoint(&t, &x.mid, prec+4)

	if !x.rad.IsZero() {
		// |exp(m + e) - exp(m)| <= exp(m) (exp(|e|) - 1)
		var e, f Mag
		t.AbsUpper(&e)
		f.Expm1(&x.rad)
		e.Mul(&e, &f)
		t.AddError(&e)
	}

	return z.SetRound(&t, prec)
}

// expPoint sets z to exp(x) for an exact x with |x| < 2^expMaxExp.
func expPoint(z *Ball, x *big.Float, prec uint) {

	if x.Sign() == 0 {
		z.One()
		return
	}

	// x = k ln(2) + r with |r| <= ln(2)/2
	q := new(big.Float).SetPrec(64)
	q.Quo(x, bignum.Log2(64))
	k, _ := bignum.Round(q).Int64()

	er := -1
	if k == 0 {
		er = utils.Min(x.MantExp(nil), -1)
	}

	// u = r / 2^s with |u| <~ 2^-sqrt(prec)
	s := utils.Max(0, isqrt(prec)/2+er)

	wp := prec + uint(s) + 2*uint(bits.Len(prec)) + 16

	var r, l Ball
	r.SetFloat(x)
	if k != 0 {
		l.Log2(wp + uint(bits.Len64(uint64(utils.Abs(k)))) + 8)
		l.MulInt64(&l, k, wp+uint(bits.Len64(uint64(utils.Abs(k))))+8)
		r.Sub(&r, &l, wp)
	}
	r.Mul2Exp(&r, -s)

	var mu Mag
	r.AbsUpper(&mu)
	n := taylorTerms(mu.Log2(), wp+1)

	// sum_{j<n} r^j/j!
	var h Ball
	h.One()
	for j := n - 1; j >= 1; j-- {
		h.Mul(&h, &r, wp)
		h.DivInt64(&h, int64(j), wp)
		h.AddInt64(&h, 1, wp)
	}

	// tail <= 2 |r|^n / n!
	var e Mag
	e.Pow(&mu, uint(n))
	e.QuoLower(&e, factorialLower(n))
	e.Mul2Exp(&e, 1)
	h.AddError(&e)

	for i := 0; i < s; i++ {
		h.Sqr(&h, wp)
	}

	h.Mul2Exp(&h, int(k))

	z.SetRound(&h, prec)
}

// Expm1 sets z to exp(x) - 1 rounded to prec bits.
func (z *Ball) Expm1(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if x.IsZero() {
		return z.Zero()
	}

	var mu Mag
	x.AbsUpper(&mu)

	if mu.CmpPow2(-8) < 0 {
		// |x| < 2^-8: direct series sum_{j>=1} x^j/j!
		wp := prec + 16
		// the sum is about x: the truncation bound is relative to |x|
		rel := wp
		if lu := mu.Log2(); lu < 0 {
			rel += uint(-lu)
		}
		n := taylorTerms(mu.Log2(), rel)
		if n < 2 {
			n = 2
		}
		var h Ball
		h.One()
		for j := n - 1; j >= 2; j-- {
			h.Mul(&h, x, wp)
			h.DivInt64(&h, int64(j), wp)
			h.AddInt64(&h, 1, wp)
		}
		h.Mul(&h, x, wp)

		var e Mag
		e.Pow(&mu, uint(n))
		e.QuoLower(&e, factorialLower(n))
		e.Mul2Exp(&e, 1)
		h.AddError(&e)
		return z.SetRound(&h, prec)
	}

	wp := prec + 16
	if e := x.mid.MantExp(nil); e < 0 {
		wp += uint(-e)
	}

	var t Ball
	t.Exp(x, wp)
	t.SubInt64(&t, 1, wp)
	return z.SetRound(&t, prec)
}

// Sinh sets z to sinh(x) rounded to prec bits.
func (z *Ball) Sinh(x *Ball, prec uint) *Ball {
	var s, c Ball
	sinhCosh(&s, &c, x, prec, true, false)
	return z.Set(&s)
}

// Cosh sets z to cosh(x) rounded to prec bits.
func (z *Ball) Cosh(x *Ball, prec uint) *Ball {
	var s, c Ball
	sinhCosh(&s, &c, x, prec, false, true)
	return z.Set(&c)
}

// SinhCosh sets s to sinh(x) and c to cosh(x), rounded to prec bits.
func SinhCosh(s, c *Ball, x *Ball, prec uint) {
	sinhCosh(s, c, x, prec, true, true)
}

func sinhCosh(s, c, x *Ball, prec uint, wantSinh, wantCosh bool) {

	if !x.IsFinite() {
		s.Indeterminate()
		c.Indeterminate()
		return
	}

	wp := prec + 16

	if x.mid.Sign() != 0 && x.mid.MantExp(nil) < 0 {
		// t = expm1(x): sinh = (t + t/(t+1))/2, cosh = 1 + t^2/(2(t+1))
		var t, u, d Ball
		t.Expm1(x, wp)
		d.AddInt64(&t, 1, wp)
		if wantSinh {
			u.Div(&t, &d, wp)
			u.Add(&u, &t, wp)
			u.Mul2Exp(&u, -1)
			s.SetRound(&u, prec)
		}
		if wantCosh {
			u.Sqr(&t, wp)
			u.Div(&u, &d, wp)
			u.Mul2Exp(&u, -1)
			u.AddInt64(&u, 1, wp)
			c.SetRound(&u, prec)
		}
		return
	}

	var e, ei, u Ball
	e.Exp(x, wp)
	ei.Inv(&e, wp)
	if wantSinh {
		u.Sub(&e, &ei, wp)
		u.Mul2Exp(&u, -1)
		s.SetRound(&u, prec)
	}
	if wantCosh {
		u.Add(&e, &ei, wp)
		u.Mul2Exp(&u, -1)
		c.SetRound(&u, prec)
	}
}
