package series

import (
	"github.com/tuneinsight/ballseries/ball"
)

// Function evaluates the first n Taylor coefficients of a real analytic function at x
// and stores them in res.
type Function func(res *Poly, x *ball.Ball, n int, prec uint)

// NewtonConvergenceFactor returns an upper bound of C = sup |f''| / (2 inf |f'|) on the
// interval region. Newton's method started at a point of region at distance r from a
// simple root in region returns a point at distance at most C r^2 from that root.
// The bound is +Inf if f' may vanish on region.
func (eval *Evaluator) NewtonConvergenceFactor(f Function, region *ball.Ball, prec uint) *ball.Mag {

	t := NewPoly(3)
	f(t, region, 3, prec)

	c := new(ball.Mag)

	d := t.Coeff(1)
	if !d.IsFinite() || d.ContainsZero() || !t.Coeff(2).IsFinite() {
		return c.SetInf()
	}

	var s ball.Mag
	t.Coeff(2).AbsUpper(&s)
	return c.QuoLower(&s, d.AbsLower())
}

// NewtonStep performs one step of Newton's method x' = m - f(m) / f'(m) at the midpoint
// m of x, with conv a convergence factor of f on region (see NewtonConvergenceFactor).
// If x contains a root of f, the returned ball of radius C rad(x)^2 (plus rounding)
// contains it. The step fails, and ok is false, if f'(m) contains zero or if the
// new ball is not contained in region.
func (eval *Evaluator) NewtonStep(f Function, x, region *ball.Ball, conv *ball.Mag, prec uint) (res *ball.Ball, ok bool) {

	var m ball.Ball
	m.GetMid(x)

	t := NewPoly(2)
	f(t, &m, 2, prec)

	v, d := t.Coeff(0), t.Coeff(1)
	if !v.IsFinite() || !d.IsFinite() || d.ContainsZero() {
		return nil, false
	}

	res = new(ball.Ball)
	res.Div(v, d, prec)
	res.Sub(&m, res, prec)

	var e ball.Mag
	e.Mul(x.Rad(), x.Rad())
	e.Mul(&e, conv)
	res.AddError(&e)

	if !region.Contains(res) {
		return nil, false
	}

	return res, true
}

// NewtonRefineRoot refines the enclosure start of a simple root of f, contained in
// region, to a relative accuracy of about prec bits. The working precision doubles
// at every step; evalExtraPrec bits are added to every evaluation of f.
// It returns ok = false, together with the last valid enclosure, if a step fails.
func (eval *Evaluator) NewtonRefineRoot(f Function, start, region *ball.Ball, conv *ball.Mag, evalExtraPrec, prec uint) (res *ball.Ball, ok bool) {

	// precisions prec, prec/2, ... down to the accuracy of start, used in reverse
	var precs []uint
	acc := start.RelAccuracyBits()
	if acc < 16 {
		acc = 16
	}
	for p := prec; ; p = p/2 + 1 {
		precs = append(precs, p)
		if int(p) <= 2*acc || p <= 32 {
			break
		}
	}

	res = new(ball.Ball).Set(start)

	for i := len(precs) - 1; i >= 0; i-- {

		x, ok := eval.NewtonStep(f, res, region, conv, precs[i]+evalExtraPrec)
		if !ok {
			eval.debug("op", "NewtonRefineRoot", "msg", "newton step failed", "prec", precs[i])
			return res, false
		}

		res.Set(x)
	}

	res.SetRound(res, prec)
	return res, true
}
