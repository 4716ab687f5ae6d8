package ball

import (
	"math/big"

	"github.com/tuneinsight/ballseries/utils"
	"github.com/tuneinsight/ballseries/utils/bignum"
)

// trigMaxExp bounds the exponent of arguments for which the reduction modulo pi/2
// is carried out; larger arguments give [0 +/- 1].
const trigMaxExp = 1 << 20

// sinCosReduced sets s and c to sin(r) and cos(r) for a ball r with |r| <~ 1.
func sinCosReduced(s, c *Ball, r *Ball, prec uint) {

	if r.IsZero() {
		s.Zero()
		c.One()
		return
	}

	var mu Mag
	r.AbsUpper(&mu)

	er := utils.Min(int(mu.Log2()+1), 0)
	k := utils.Max(0, isqrt(prec)/2+er)

	wp := prec + 2*uint(k) + 24

	var u, v Ball
	u.Mul2Exp(r, -k)
	u.AbsUpper(&mu)
	v.Sqr(&u, wp)

	// sum over exponents < 2n of both series
	n := utils.Max(2, (taylorTerms(mu.Log2(), wp+1)+2)/2)

	var hs, hc Ball
	hs.One()
	hc.One()
	for j := n - 1; j >= 1; j-- {
		hs.Mul(&hs, &v, wp)
		hs.DivInt64(&hs, int64((2*j)*(2*j+1)), wp)
		hs.Neg(&hs)
		hs.AddInt64(&hs, 1, wp)

		hc.Mul(&hc, &v, wp)
		hc.DivInt64(&hc, int64((2*j-1)*(2*j)), wp)
		hc.Neg(&hc)
		hc.AddInt64(&hc, 1, wp)
	}
	hs.Mul(&hs, &u, wp)

	// tail <= 2 |u|^(2n) / (2n)!
	var e Mag
	e.Pow(&mu, uint(2*n))
	e.QuoLower(&e, factorialLower(2*n))
	e.Mul2Exp(&e, 1)
	hs.AddError(&e)
	hc.AddError(&e)

	// sin(2t) = 2 sin(t) cos(t), cos(2t) = 1 - 2 sin(t)^2
	var t Ball
	for i := 0; i < k; i++ {
		t.Mul(&hs, &hc, wp)
		hc.Sqr(&hs, wp)
		hc.Mul2Exp(&hc, 1)
		hc.Neg(&hc)
		hc.AddInt64(&hc, 1, wp)
		hs.Mul2Exp(&t, 1)
	}

	s.SetRound(&hs, prec)
	c.SetRound(&hc, prec)
}

// applyQuadrant sets (s, c) to (sin(r + q pi/2), cos(r + q pi/2)) given s = sin(r) and c = cos(r).
func applyQuadrant(s, c *Ball, q int) {
	switch q & 3 {
	case 1:
		s.Swap(c)
		c.Neg(c)
	case 2:
		s.Neg(s)
		c.Neg(c)
	case 3:
		s.Swap(c)
		s.Neg(s)
	}
}

// sinCosPoint sets s and c to sin(x) and cos(x) for an exact x.
func sinCosPoint(s, c *Ball, x *big.Float, prec uint) {

	if x.Sign() == 0 {
		s.Zero()
		c.One()
		return
	}

	e := x.MantExp(nil)

	if e > trigMaxExp {
		s.Zero()
		s.AddErrorPow2(0)
		c.Set(s)
		return
	}

	wp := prec + 16

	var r Ball
	r.SetFloat(x)

	q := 0
	if e >= 0 {
		// x = k pi/2 + r
		wpr := wp + uint(e) + 16

		var hp Ball
		hp.Pi(wpr)
		hp.Mul2Exp(&hp, -1)

		g := new(big.Float).SetPrec(uint(e) + 64)
		g.Quo(x, &hp.mid)
		k := new(big.Int)
		bignum.Round(g).Int(k)

		q = int(new(big.Int).And(k, big.NewInt(3)).Int64())

		var kb Ball
		kb.SetInt(k)
		hp.Mul(&hp, &kb, wpr)
		r.Sub(&r, &hp, wp)
	}

	sinCosReduced(s, c, &r, wp)
	applyQuadrant(s, c, q)
	s.SetRound(s, prec)
	c.SetRound(c, prec)
}

// clampUnit replaces z by [0 +/- 1] if that is a better enclosure of a value in [-1, 1].
func clampUnit(z *Ball) {
	if z.rad.CmpPow2(1) >= 0 || !z.IsFinite() {
		z.Zero()
		z.AddErrorPow2(0)
	}
}

// SinCos sets s to sin(x) and c to cos(x), rounded to prec bits.
func SinCos(s, c *Ball, x *Ball, prec uint) {

	if !x.IsFinite() {
		s.Zero().AddErrorPow2(0)
		c.Set(s)
		return
	}

	var r Mag
	r.Set(&x.rad)

	sinCosPoint(s, c, &x.mid, prec)

	// sin and cos are 1-Lipschitz
	s.AddError(&r)
	c.AddError(&r)
	clampUnit(s)
	clampUnit(c)
}

// Sin sets z to sin(x) rounded to prec bits.
func (z *Ball) Sin(x *Ball, prec uint) *Ball {
	var c Ball
	SinCos(z, &c, x, prec)
	return z
}

// Cos sets z to cos(x) rounded to prec bits.
func (z *Ball) Cos(x *Ball, prec uint) *Ball {
	var s Ball
	SinCos(&s, z, x, prec)
	return z
}

// Tan sets z to tan(x) rounded to prec bits.
func (z *Ball) Tan(x *Ball, prec uint) *Ball {
	var s, c Ball
	SinCos(&s, &c, x, prec+16)
	return z.Div(&s, &c, prec)
}

// Cot sets z to cot(x) rounded to prec bits.
func (z *Ball) Cot(x *Ball, prec uint) *Ball {
	var s, c Ball
	SinCos(&s, &c, x, prec+16)
	return z.Div(&c, &s, prec)
}

// SinCosPi sets s to sin(pi x) and c to cos(pi x), rounded to prec bits.
// The results are exact when x is an exact multiple of 1/2.
func SinCosPi(s, c *Ball, x *Ball, prec uint) {

	if !x.IsFinite() {
		s.Zero().AddErrorPow2(0)
		c.Set(s)
		return
	}

	var rad Mag
	rad.Set(&x.rad)

	sinCosPiPoint(s, c, &x.mid, prec)

	if !rad.IsZero() {
		// sin(pi x) and cos(pi x) are pi-Lipschitz
		var pu Mag
		pu.SetFloat64(3.1415926535897936)
		rad.Mul(&rad, &pu)
		s.AddError(&rad)
		c.AddError(&rad)
		clampUnit(s)
		clampUnit(c)
	}
}

func sinCosPiPoint(s, c *Ball, x *big.Float, prec uint) {

	if x.Sign() == 0 {
		s.Zero()
		c.One()
		return
	}

	if x.IsInt() {
		// sin(pi n) = 0, cos(pi n) = (-1)^n
		n := new(big.Int)
		x.Int(n)
		s.Zero()
		if n.Bit(0) == 0 {
			c.One()
		} else {
			c.SetInt64(-1)
		}
		return
	}

	// x = k/2 + r with |r| <= 1/4, computed exactly
	e := utils.Max(0, x.MantExp(nil))
	rp := x.MinPrec() + uint(e) + 8

	t := new(big.Float).SetPrec(rp)
	t.SetMantExp(x, 1)
	k := new(big.Int)
	bignum.Round(t).Int(k)
	q := int(new(big.Int).And(k, big.NewInt(3)).Int64())

	r := new(big.Float).SetPrec(rp)
	r.SetInt(k)
	r.SetMantExp(r, -1)
	r.Sub(x, r)

	if r.Sign() == 0 {
		s.Zero()
		c.One()
		applyQuadrant(s, c, q)
		return
	}

	wp := prec + 16

	var pr Ball
	pr.Pi(wp)
	pr.MulFloat(&pr, r, wp)

	sinCosReduced(s, c, &pr, wp)
	applyQuadrant(s, c, q)
	s.SetRound(s, prec)
	c.SetRound(c, prec)
}

// SinPi sets z to sin(pi x) rounded to prec bits.
func (z *Ball) SinPi(x *Ball, prec uint) *Ball {
	var c Ball
	SinCosPi(z, &c, x, prec)
	return z
}

// CosPi sets z to cos(pi x) rounded to prec bits.
func (z *Ball) CosPi(x *Ball, prec uint) *Ball {
	var s Ball
	SinCosPi(&s, z, x, prec)
	return z
}

// TanPi sets z to tan(pi x) rounded to prec bits.
func (z *Ball) TanPi(x *Ball, prec uint) *Ball {
	var s, c Ball
	SinCosPi(&s, &c, x, prec+16)
	return z.Div(&s, &c, prec)
}

// CotPi sets z to cot(pi x) rounded to prec bits.
func (z *Ball) CotPi(x *Ball, prec uint) *Ball {
	var s, c Ball
	SinCosPi(&s, &c, x, prec+16)
	return z.Div(&c, &s, prec)
}

// Sinc sets z to sin(x)/x (1 at x = 0) rounded to prec bits.
func (z *Ball) Sinc(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Zero().AddErrorPow2(0)
	}

	if x.IsZero() {
		return z.One()
	}

	var mu Mag
	x.AbsUpper(&mu)

	if !x.ContainsZero() && mu.CmpPow2(-1) >= 0 {
		var s Ball
		s.Sin(x, prec+16)
		return z.Div(&s, x, prec)
	}

	if mu.CmpPow2(0) >= 0 {
		// |sinc| <= 1
		return z.Zero().AddErrorPow2(0)
	}

	return z.sincSeries(x, &mu, prec)
}

// sincSeries evaluates sum_j (-1)^j x^(2j)/(2j+1)! for |x| <= mu < 1.
func (z *Ball) sincSeries(x *Ball, mu *Mag, prec uint) *Ball {

	wp := prec + 16
	n := utils.Max(2, (taylorTerms(mu.Log2(), wp+1)+2)/2)

	var v, h Ball
	v.Sqr(x, wp)
	h.One()
	for j := n - 1; j >= 1; j-- {
		h.Mul(&h, &v, wp)
		h.DivInt64(&h, int64((2*j)*(2*j+1)), wp)
		h.Neg(&h)
		h.AddInt64(&h, 1, wp)
	}

	// tail <= 2 |x|^(2n) / (2n+1)!
	var e Mag
	e.Pow(mu, uint(2*n))
	e.QuoLower(&e, factorialLower(2*n+1))
	e.Mul2Exp(&e, 1)
	h.AddError(&e)

	return z.SetRound(&h, prec)
}

// SincPi sets z to sin(pi x)/(pi x) (1 at x = 0) rounded to prec bits.
func (z *Ball) SincPi(x *Ball, prec uint) *Ball {

	if !x.IsFinite() {
		return z.Zero().AddErrorPow2(0)
	}

	if x.IsZero() {
		return z.One()
	}

	wp := prec + 16

	var mu Mag
	x.AbsUpper(&mu)

	if !x.ContainsZero() && mu.CmpPow2(-3) >= 0 {
		var s, p Ball
		s.SinPi(x, wp)
		p.Pi(wp)
		p.Mul(&p, x, wp)
		return z.Div(&s, &p, prec)
	}

	var p Ball
	p.Pi(wp)
	p.Mul(&p, x, wp)
	p.AbsUpper(&mu)

	if mu.CmpPow2(0) >= 0 {
		return z.Zero().AddErrorPow2(0)
	}

	return z.sincSeries(&p, &mu, prec)
}
