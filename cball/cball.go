// Package cball implements complex ball arithmetic on top of the ball package.
// A complex ball is a pair of real balls (rectangular enclosure). It provides the
// complex special functions needed by the Riemann-Siegel series: log-gamma, digamma,
// the Hurwitz zeta function with a complex shift and the Taylor series of the Hurwitz
// zeta function at a complex point.
package cball

import (
	"fmt"

	"github.com/tuneinsight/ballseries/ball"
)

// Ball is the complex rectangle Re + i Im.
// As for ball.Ball, the receiver of an operation is its result and may alias the operands.
type Ball struct {
	Re, Im ball.Ball
}

// New returns a new complex ball re + i im.
func New(re, im *ball.Ball) *Ball {
	z := new(Ball)
	z.Re.Set(re)
	z.Im.Set(im)
	return z
}

// NewFloat64 returns a new exact complex ball re + i im.
func NewFloat64(re, im float64) *Ball {
	z := new(Ball)
	z.Re.SetFloat64(re)
	z.Im.SetFloat64(im)
	return z
}

// Set sets z to x.
func (z *Ball) Set(x *Ball) *Ball {
	z.Re.Set(&x.Re)
	z.Im.Set(&x.Im)
	return z
}

// SetReal sets z to the real ball x.
func (z *Ball) SetReal(x *ball.Ball) *Ball {
	z.Re.Set(x)
	z.Im.Zero()
	return z
}

// Zero sets z to 0.
func (z *Ball) Zero() *Ball {
	z.Re.Zero()
	z.Im.Zero()
	return z
}

// One sets z to 1.
func (z *Ball) One() *Ball {
	z.Re.One()
	z.Im.Zero()
	return z
}

// Indeterminate sets z to the complex ball containing everything.
func (z *Ball) Indeterminate() *Ball {
	z.Re.Indeterminate()
	z.Im.Indeterminate()
	return z
}

// IsFinite returns true if both parts of x are finite.
func (x *Ball) IsFinite() bool {
	return x.Re.IsFinite() && x.Im.IsFinite()
}

// IsReal returns true if the imaginary part of x is exactly zero.
func (x *Ball) IsReal() bool {
	return x.Im.IsZero()
}

// IsZero returns true if x is exactly zero.
func (x *Ball) IsZero() bool {
	return x.Re.IsZero() && x.Im.IsZero()
}

// ContainsZero returns true if x contains 0.
func (x *Ball) ContainsZero() bool {
	return x.Re.ContainsZero() && x.Im.ContainsZero()
}

// Overlaps returns true if x and y have a common point.
func (x *Ball) Overlaps(y *Ball) bool {
	return x.Re.Overlaps(&y.Re) && x.Im.Overlaps(&y.Im)
}

// Contains returns true if y is contained in x.
func (x *Ball) Contains(y *Ball) bool {
	return x.Re.Contains(&y.Re) && x.Im.Contains(&y.Im)
}

// Swap exchanges the values of z and x.
func (z *Ball) Swap(x *Ball) {
	z.Re.Swap(&x.Re)
	z.Im.Swap(&x.Im)
}

// Text returns a decimal representation of x.
func (x *Ball) Text(digits int) string {
	return fmt.Sprintf("%s + %si", x.Re.Text(digits), x.Im.Text(digits))
}

func (x *Ball) String() string {
	return x.Text(20)
}

// Neg sets z to -x.
func (z *Ball) Neg(x *Ball) *Ball {
	z.Re.Neg(&x.Re)
	z.Im.Neg(&x.Im)
	return z
}

// Conj sets z to the complex conjugate of x.
func (z *Ball) Conj(x *Ball) *Ball {
	z.Re.Set(&x.Re)
	z.Im.Neg(&x.Im)
	return z
}

// Add sets z to x + y.
func (z *Ball) Add(x, y *Ball, prec uint) *Ball {
	z.Re.Add(&x.Re, &y.Re, prec)
	z.Im.Add(&x.Im, &y.Im, prec)
	return z
}

// Sub sets z to x - y.
func (z *Ball) Sub(x, y *Ball, prec uint) *Ball {
	z.Re.Sub(&x.Re, &y.Re, prec)
	z.Im.Sub(&x.Im, &y.Im, prec)
	return z
}

// AddReal sets z to x + y for a real y.
func (z *Ball) AddReal(x *Ball, y *ball.Ball, prec uint) *Ball {
	z.Re.Add(&x.Re, y, prec)
	z.Im.Set(&x.Im)
	return z
}

// AddInt64 sets z to x + v.
func (z *Ball) AddInt64(x *Ball, v int64, prec uint) *Ball {
	z.Re.AddInt64(&x.Re, v, prec)
	z.Im.Set(&x.Im)
	return z
}

// Mul sets z to x * y.
func (z *Ball) Mul(x, y *Ball, prec uint) *Ball {

	if x.IsReal() {
		var re, im ball.Ball
		re.Mul(&x.Re, &y.Re, prec)
		im.Mul(&x.Re, &y.Im, prec)
		z.Re.Swap(&re)
		z.Im.Swap(&im)
		return z
	}

	if y.IsReal() {
		return z.MulReal(x, &y.Re, prec)
	}

	var t, re, im ball.Ball
	re.Mul(&x.Re, &y.Re, prec+8)
	t.Mul(&x.Im, &y.Im, prec+8)
	re.Sub(&re, &t, prec)
	im.Mul(&x.Re, &y.Im, prec+8)
	t.Mul(&x.Im, &y.Re, prec+8)
	im.Add(&im, &t, prec)
	z.Re.Swap(&re)
	z.Im.Swap(&im)
	return z
}

// MulReal sets z to x * y for a real y.
func (z *Ball) MulReal(x *Ball, y *ball.Ball, prec uint) *Ball {
	var re, im ball.Ball
	re.Mul(&x.Re, y, prec)
	im.Mul(&x.Im, y, prec)
	z.Re.Swap(&re)
	z.Im.Swap(&im)
	return z
}

// MulI sets z to i * x.
func (z *Ball) MulI(x *Ball) *Ball {
	var re ball.Ball
	re.Neg(&x.Im)
	z.Im.Set(&x.Re)
	z.Re.Swap(&re)
	return z
}

// Mul2Exp sets z to x * 2^e.
func (z *Ball) Mul2Exp(x *Ball, e int) *Ball {
	z.Re.Mul2Exp(&x.Re, e)
	z.Im.Mul2Exp(&x.Im, e)
	return z
}

// AbsSqr sets r to |x|^2.
func (x *Ball) AbsSqr(r *ball.Ball, prec uint) *ball.Ball {
	var a, b ball.Ball
	a.Sqr(&x.Re, prec+8)
	b.Sqr(&x.Im, prec+8)
	return r.Add(&a, &b, prec)
}

// Abs returns |x| rounded to prec bits.
func (x *Ball) Abs(prec uint) *ball.Ball {
	r := new(ball.Ball)
	if x.IsReal() {
		return r.Abs(&x.Re)
	}
	x.AbsSqr(r, prec+8)
	return r.Sqrt(r, prec)
}

// Arg returns the argument of x in (-pi, pi] rounded to prec bits.
func (x *Ball) Arg(prec uint) *ball.Ball {
	return new(ball.Ball).Atan2(&x.Im, &x.Re, prec)
}

// Inv sets z to 1/x. If x contains zero, z is indeterminate.
func (z *Ball) Inv(x *Ball, prec uint) *Ball {

	if x.IsReal() {
		z.Re.Inv(&x.Re, prec)
		z.Im.Zero()
		return z
	}

	var d ball.Ball
	x.AbsSqr(&d, prec+8)
	if d.ContainsZero() {
		return z.Indeterminate()
	}
	d.Inv(&d, prec+8)

	var re, im ball.Ball
	re.Mul(&x.Re, &d, prec)
	im.Mul(&x.Im, &d, prec)
	im.Neg(&im)
	z.Re.Swap(&re)
	z.Im.Swap(&im)
	return z
}

// Div sets z to x / y. If y contains zero, z is indeterminate.
func (z *Ball) Div(x, y *Ball, prec uint) *Ball {

	if y.IsReal() {
		var re, im ball.Ball
		re.Div(&x.Re, &y.Re, prec)
		im.Div(&x.Im, &y.Re, prec)
		z.Re.Swap(&re)
		z.Im.Swap(&im)
		return z
	}

	var t Ball
	t.Inv(y, prec+8)
	return z.Mul(x, &t, prec)
}

// DivReal sets z to x / y for a real y.
func (z *Ball) DivReal(x *Ball, y *ball.Ball, prec uint) *Ball {
	var re, im ball.Ball
	re.Div(&x.Re, y, prec)
	im.Div(&x.Im, y, prec)
	z.Re.Swap(&re)
	z.Im.Swap(&im)
	return z
}

// Exp sets z to exp(x).
func (z *Ball) Exp(x *Ball, prec uint) *Ball {

	if x.IsReal() {
		z.Re.Exp(&x.Re, prec)
		z.Im.Zero()
		return z
	}

	var e, s, c ball.Ball
	e.Exp(&x.Re, prec+8)
	ball.SinCos(&s, &c, &x.Im, prec+8)
	z.Re.Mul(&e, &c, prec)
	z.Im.Mul(&e, &s, prec)
	return z
}

// Log sets z to the principal branch of log(x). The imaginary part is the argument
// of x, with the branch cut on the negative real axis.
// If x contains zero, z is indeterminate.
func (z *Ball) Log(x *Ball, prec uint) *Ball {

	if x.IsReal() && x.Re.IsPositive() {
		z.Re.Log(&x.Re, prec)
		z.Im.Zero()
		return z
	}

	if x.ContainsZero() {
		return z.Indeterminate()
	}

	var re, im ball.Ball
	x.AbsSqr(&re, prec+8)
	re.Log(&re, prec+8)
	re.Mul2Exp(&re, -1)
	im.Atan2(&x.Im, &x.Re, prec)
	z.Re.SetRound(&re, prec)
	z.Im.Swap(&im)
	return z
}

// PowReal sets z to x^s = exp(s log x) for a real s.
func (z *Ball) PowReal(x *Ball, s *ball.Ball, prec uint) *Ball {
	var l Ball
	l.Log(x, prec+16)
	l.MulReal(&l, s, prec+16)
	return z.Exp(&l, prec)
}
