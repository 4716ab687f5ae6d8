package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/utils/bernoulli"
)

// factorialMaxArg is the largest integer argument for which Gamma and Rgamma use an exact factorial.
const factorialMaxArg = 1024

// harmonicMaxArg is the largest integer argument for which Digamma uses an exact harmonic number.
const harmonicMaxArg = 4096

// StirlingShift returns the number r of recurrence steps needed so that
// x + r is large enough for the asymptotic expansions at precision wp.
func StirlingShift(x *Ball, wp uint) int {
	w := 0.15*float64(wp) + 10
	lo, _ := x.lower().Float64()
	if lo >= w {
		return 0
	}
	return int(math.Ceil(w - lo))
}

// StirlingTerms returns the number of terms M of the Stirling series (lgamma) or of the
// asymptotic digamma series such that the remainder bound at w >= wlo is below 2^-wp.
func StirlingTerms(wlo float64, wp uint, digamma bool) int {
	lw := math.Log2(wlo)
	for m := 1; m < 1<<16; m++ {
		// |B_2m| <= 4 (2m)! / (2 pi)^(2m)
		lg, _ := math.Lgamma(float64(2*m + 1))
		b := 2 + lg/math.Ln2 - float64(2*m)*math.Log2(2*math.Pi)
		var t float64
		if digamma {
			t = b - math.Log2(float64(2*m)) - float64(2*m)*lw
		} else {
			t = b - math.Log2(float64(2*m*(2*m-1))) - float64(2*m-1)*lw
		}
		if t < -float64(wp) {
			return m
		}
	}
	return 1 << 16
}

// ratUpper returns an upper bound of |q| as a Mag.
func ratUpper(q *big.Rat) *Mag {
	f := newMagFloat().SetRat(new(big.Rat).Abs(q))
	return new(Mag).store(f)
}

// powLower returns a lower bound of lo^n for lo >= 0.
func powLower(lo *big.Float, n int) *big.Float {
	b := newLowerFloat().Set(lo)
	r := newLowerFloat().SetInt64(1)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r.Mul(r, b)
		}
		b.Mul(b, b)
	}
	return r
}

// lgammaStirling sets z to lgamma(w) by the Stirling series, for w >= 0.15 wp + 10.
func lgammaStirling(z, w *Ball, wp uint) {

	wlo := w.lower()
	wlof, _ := wlo.Float64()
	m := StirlingTerms(wlof, wp, false)
	bs := bernoulli.Numbers(2*m + 1)

	// sum_{k=1}^{m-1} B_2k / (2k(2k-1) w^(2k-1))
	var t, t2, h, c Ball
	t.Inv(w, wp)
	t2.Sqr(&t, wp)
	h.Zero()
	for k := m - 1; k >= 1; k-- {
		q := new(big.Rat).Quo(bs[2*k], big.NewRat(int64(2*k*(2*k-1)), 1))
		c.SetRat(q, wp)
		h.Mul(&h, &t2, wp)
		h.Add(&h, &c, wp)
	}
	h.Mul(&h, &t, wp)

	e := ratUpper(new(big.Rat).Quo(bs[2*m], big.NewRat(int64(2*m*(2*m-1)), 1)))
	e.QuoLower(e, powLower(wlo, 2*m-1))
	h.AddError(e)

	// (w - 1/2) log(w) - w + log(2 pi)/2
	var l, a, p Ball
	l.Log(w, wp)
	a.Sub(w, c.SetFrac(1, 2, wp), wp)
	a.Mul(&a, &l, wp)
	a.Sub(&a, w, wp)
	p.Pi(wp)
	p.Mul2Exp(&p, 1)
	p.Log(&p, wp)
	p.Mul2Exp(&p, -1)
	a.Add(&a, &p, wp)
	z.Add(&a, &h, wp)
}

// lgammaPositive sets z to lgamma(x) for a ball x > 0.
func lgammaPositive(z, x *Ball, wp uint) {

	r := StirlingShift(x, wp)

	var w Ball
	w.AddInt64(x, int64(r), wp)
	lgammaStirling(&w, &w, wp)

	if r > 0 {
		// lgamma(x) = lgamma(x + r) - log(x (x+1) ... (x+r-1))
		var p, u Ball
		p.Set(x)
		for j := 1; j < r; j++ {
			u.AddInt64(x, int64(j), wp)
			p.Mul(&p, &u, wp)
		}
		p.Log(&p, wp)
		w.Sub(&w, &p, wp)
	}

	z.Set(&w)
}

// Lgamma sets z to log(Gamma(x)) rounded to prec bits.
// x must be positive, otherwise z is indeterminate.
func (z *Ball) Lgamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() || !x.IsPositive() {
		return z.Indeterminate()
	}

	if x.IsOne() || (x.IsInt() && x.mid.Cmp(big.NewFloat(2)) == 0) {
		return z.Zero()
	}

	wp := prec + 16

	var t Ball
	lgammaPositive(&t, x, wp)

	// lgamma vanishes at 1 and 2: compensate the cancellation
	if e := t.mid.MantExp(nil); t.mid.Sign() != 0 && e < 0 && t.IsFinite() {
		lgammaPositive(&t, x, wp+uint(-e))
	}

	return z.SetRound(&t, prec)
}

// gammaPositive sets z to Gamma(x) for x > 0.
func gammaPositive(z, x *Ball, prec uint) {

	if !x.IsPositive() {
		z.Indeterminate()
		return
	}

	wp := prec + 16

	var t Ball
	lgammaPositive(&t, x, wp)
	if e := t.mid.MantExp(nil); t.mid.Sign() != 0 && e > 0 {
		lgammaPositive(&t, x, wp+uint(e))
	}

	z.Exp(&t, prec)
}

// smallInt returns the value of x if x is an exact integer with |x| <= max.
func smallInt(x *Ball, max int64) (n int64, ok bool) {
	if !x.IsInt() {
		return 0, false
	}
	n, acc := x.mid.Int64()
	if acc != big.Exact || n > max || n < -max {
		return 0, false
	}
	return n, true
}

func (x *Ball) midLessThanHalf() bool {
	return x.mid.Cmp(big.NewFloat(0.5)) < 0
}

// Gamma sets z to Gamma(x) rounded to prec bits.
// If x contains a non-positive integer, z is indeterminate.
func (z *Ball) Gamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if n, ok := smallInt(x, factorialMaxArg); ok {
		if n <= 0 {
			return z.Indeterminate()
		}
		var t Ball
		t.SetInt(new(big.Int).MulRange(1, n-1))
		return z.SetRound(&t, prec)
	}

	wp := prec + 16

	if x.midLessThanHalf() {
		// Gamma(x) = pi / (sin(pi x) Gamma(1 - x))
		var t, s, p Ball
		t.Neg(x)
		t.AddInt64(&t, 1, wp)
		gammaPositive(&t, &t, wp)
		s.SinPi(x, wp)
		t.Mul(&t, &s, wp)
		p.Pi(wp)
		return z.Div(&p, &t, prec)
	}

	if !x.IsPositive() {
		return z.Indeterminate()
	}

	gammaPositive(z, x, prec)
	return z
}

// Rgamma sets z to 1/Gamma(x) rounded to prec bits. Rgamma is entire: it vanishes
// exactly at the non-positive integers.
func (z *Ball) Rgamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if n, ok := smallInt(x, factorialMaxArg); ok {
		if n <= 0 {
			return z.Zero()
		}
		var t, f Ball
		f.SetInt(new(big.Int).MulRange(1, n-1))
		return z.Div(t.One(), &f, prec)
	}

	wp := prec + 16

	if x.midLessThanHalf() {
		// 1/Gamma(x) = sin(pi x) Gamma(1 - x) / pi
		var t, s, p Ball
		t.Neg(x)
		t.AddInt64(&t, 1, wp)
		gammaPositive(&t, &t, wp)
		s.SinPi(x, wp)
		t.Mul(&t, &s, wp)
		p.Pi(wp)
		return z.Div(&t, &p, prec)
	}

	if !x.IsPositive() {
		return z.Indeterminate()
	}

	var t Ball
	lgammaPositive(&t, x, wp)
	if e := t.mid.MantExp(nil); t.mid.Sign() != 0 && e > 0 {
		lgammaPositive(&t, x, wp+uint(e))
	}
	t.Neg(&t)
	return z.Exp(&t, prec)
}

// digammaAsymptotic sets z to digamma(w) by the asymptotic series, for w >= 0.15 wp + 10.
func digammaAsymptotic(z, w *Ball, wp uint) {

	wlo := w.lower()
	wlof, _ := wlo.Float64()
	m := StirlingTerms(wlof, wp, true)
	bs := bernoulli.Numbers(2*m + 1)

	// sum_{k=1}^{m-1} B_2k / (2k w^2k)
	var t2, h, c Ball
	t2.Sqr(w, wp)
	t2.Inv(&t2, wp)
	h.Zero()
	for k := m - 1; k >= 1; k-- {
		c.SetRat(new(big.Rat).Quo(bs[2*k], big.NewRat(int64(2*k), 1)), wp)
		h.Add(&h, &c, wp)
		h.Mul(&h, &t2, wp)
	}

	e := ratUpper(new(big.Rat).Quo(bs[2*m], big.NewRat(int64(2*m), 1)))
	e.QuoLower(e, powLower(wlo, 2*m))
	h.AddError(e)

	// log(w) - 1/(2w) - h
	var l, u Ball
	l.Log(w, wp)
	u.Inv(w, wp)
	u.Mul2Exp(&u, -1)
	l.Sub(&l, &u, wp)
	z.Sub(&l, &h, wp)
}

// digammaShifted sets z to digamma(x) for a ball x > 0 using the recurrence
// digamma(x) = digamma(x + r) - sum_{j<r} 1/(x + j).
func digammaShifted(z, x *Ball, wp uint) {

	if !x.IsPositive() {
		z.Indeterminate()
		return
	}

	r := StirlingShift(x, wp)

	var w, s, u Ball
	w.AddInt64(x, int64(r), wp)
	s.Zero()
	for j := 0; j < r; j++ {
		u.AddInt64(x, int64(j), wp)
		u.Inv(&u, wp)
		s.Add(&s, &u, wp)
	}
	digammaAsymptotic(&w, &w, wp)
	z.Sub(&w, &s, wp)
}

// digammaPositive evaluates digamma(x) for x > 0, compensating the cancellation
// near its positive root.
func digammaPositive(z, x *Ball, prec uint) {
	wp := prec + 16
	var t Ball
	digammaShifted(&t, x, wp)
	if e := t.mid.MantExp(nil); t.mid.Sign() != 0 && e < 0 && t.IsFinite() {
		digammaShifted(&t, x, wp+uint(-e))
	}
	z.SetRound(&t, prec)
}

// Harmonic returns the exact harmonic number H_n = 1 + 1/2 + ... + 1/n.
func Harmonic(n int64) *big.Rat {
	h := new(big.Rat)
	for j := int64(1); j <= n; j++ {
		h.Add(h, big.NewRat(1, j))
	}
	return h
}

// Digamma sets z to digamma(x) = Gamma'(x)/Gamma(x) rounded to prec bits.
// If x contains a non-positive integer, z is indeterminate.
func (z *Ball) Digamma(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	wp := prec + 16

	if n, ok := smallInt(x, harmonicMaxArg); ok {
		if n <= 0 {
			return z.Indeterminate()
		}
		// digamma(n) = H_{n-1} - gamma
		var t, g Ball
		t.SetRat(Harmonic(n-1), wp)
		g.Euler(wp)
		return z.Sub(&t, &g, prec)
	}

	if x.midLessThanHalf() {
		// digamma(x) = digamma(1 - x) - pi cot(pi x)
		var t, c, p Ball
		t.Neg(x)
		t.AddInt64(&t, 1, wp)
		digammaPositive(&t, &t, wp)
		c.CotPi(x, wp)
		p.Pi(wp)
		c.Mul(&c, &p, wp)
		return z.Sub(&t, &c, prec)
	}

	if !x.IsPositive() {
		return z.Indeterminate()
	}

	digammaPositive(z, x, prec)
	return z
}
