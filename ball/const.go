package ball

import (
	"math/big"
	"sync"

	"github.com/tuneinsight/ballseries/utils/bignum"
)

// constant is a process-wide cache holding a constant at the highest precision
// requested so far. It only ever grows.
type constant struct {
	sync.Mutex
	prec uint
	val  Ball
	eval func(z *Ball, prec uint)
}

func (c *constant) get(z *Ball, prec uint) *Ball {
	c.Lock()
	if c.prec < prec {
		wp := prec + prec/8 + 32
		var t Ball
		c.eval(&t, wp)
		c.val.Set(&t)
		c.prec = wp
	}
	var v Ball
	v.Set(&c.val)
	c.Unlock()
	return z.SetRound(&v, prec)
}

var (
	piCache    = &constant{eval: evalPi}
	log2Cache  = &constant{eval: evalLog2}
	eulerCache = &constant{eval: evalEuler}
)

// Pi sets z to an enclosure of pi with prec bits.
func (z *Ball) Pi(prec uint) *Ball {
	return piCache.get(z, prec)
}

// Log2 sets z to an enclosure of ln(2) with prec bits.
func (z *Ball) Log2(prec uint) *Ball {
	return log2Cache.get(z, prec)
}

// Euler sets z to an enclosure of the Euler-Mascheroni constant with prec bits.
func (z *Ball) Euler(prec uint) *Ball {
	return eulerCache.get(z, prec)
}

func evalPi(z *Ball, prec uint) {

	if prec+64 <= bignum.PiDigitsBits {
		var r, e Mag
		r.SetPow2(-bignum.PiDigitsBits)
		e.SetPow2(4 - int(prec))
		r.Add(&r, &e)
		z.SetMidRad(bignum.Pi(prec), &r)
		return
	}

	// Machin: pi = 16 atan(1/5) - 4 atan(1/239)
	wp := prec + 16
	var a, b Ball
	atanInvInt(&a, 5, wp)
	atanInvInt(&b, 239, wp)
	a.Mul2Exp(&a, 4)
	b.Mul2Exp(&b, 2)
	z.Sub(&a, &b, prec)
}

func evalLog2(z *Ball, prec uint) {

	if prec+64 <= bignum.Log2DigitsBits {
		var r, e Mag
		r.SetPow2(-bignum.Log2DigitsBits)
		e.SetPow2(2 - int(prec))
		r.Add(&r, &e)
		z.SetMidRad(bignum.Log2(prec), &r)
		return
	}

	// ln(2) = 2 atanh(1/3)
	atanhInvInt(z, 3, prec+16)
	z.Mul2Exp(z, 1)
	z.SetRound(z, prec)
}

func evalEuler(z *Ball, prec uint) {
	// gamma = -digamma(1)
	var one Ball
	one.One()
	digammaShifted(z, &one, prec+16)
	z.Neg(z)
	z.SetRound(z, prec)
}

// atanInvInt sets z to atan(1/k) for an integer k >= 2.
func atanInvInt(z *Ball, k int64, prec uint) {

	wp := prec + 16

	// terms decay as k^-(2j+1)
	lk := big.NewInt(k).BitLen() - 1
	n := int(prec)/(2*lk) + 2

	var p, k2, s, t Ball
	p.SetInt64(k)
	p.Inv(&p, wp)
	k2.SetInt64(k * k)
	s.Zero()

	for j := 0; j < n; j++ {
		t.DivInt64(&p, int64(2*j+1), wp)
		if j&1 == 0 {
			s.Add(&s, &t, wp)
		} else {
			s.Sub(&s, &t, wp)
		}
		p.Div(&p, &k2, wp)
	}

	// alternating decreasing tail, bounded by |p| <= k^-(2n+1)
	var e Mag
	p.AbsUpper(&e)
	s.AddError(&e)
	z.SetRound(&s, prec)
}

// atanhInvInt sets z to atanh(1/k) for an integer k >= 2.
func atanhInvInt(z *Ball, k int64, prec uint) {

	wp := prec + 16

	lk := big.NewInt(k).BitLen() - 1
	n := int(prec)/(2*lk) + 2

	var p, k2, s, t Ball
	p.SetInt64(k)
	p.Inv(&p, wp)
	k2.SetInt64(k * k)
	s.Zero()

	for j := 0; j < n; j++ {
		t.DivInt64(&p, int64(2*j+1), wp)
		s.Add(&s, &t, wp)
		p.Div(&p, &k2, wp)
	}

	// tail <= |p| / (1 - 1/k^2) <= 2|p|
	var e Mag
	p.AbsUpper(&e)
	e.Mul2Exp(&e, 1)
	s.AddError(&e)
	z.SetRound(&s, prec)
}
