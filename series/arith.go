package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// Add sets res to a + b.
func (eval *Evaluator) Add(a, b *Poly, prec uint, res *Poly) {
	eval.addSub(a, b, utils.Max(a.Length(), b.Length()), prec, res, false)
}

// AddSeries sets res to a + b truncated to length n.
func (eval *Evaluator) AddSeries(a, b *Poly, n int, prec uint, res *Poly) {
	checkLength("AddSeries", n)
	eval.addSub(a, b, n, prec, res, false)
}

// Sub sets res to a - b.
func (eval *Evaluator) Sub(a, b *Poly, prec uint, res *Poly) {
	eval.addSub(a, b, utils.Max(a.Length(), b.Length()), prec, res, true)
}

// SubSeries sets res to a - b truncated to length n.
func (eval *Evaluator) SubSeries(a, b *Poly, n int, prec uint, res *Poly) {
	checkLength("SubSeries", n)
	eval.addSub(a, b, n, prec, res, true)
}

func (eval *Evaluator) addSub(a, b *Poly, n int, prec uint, res *Poly, sub bool) {

	la, lb := utils.Min(a.Length(), n), utils.Min(b.Length(), n)
	l := utils.Max(la, lb)

	// res is resized first: when it aliases a or b, only coefficients past l are dropped.
	res.SetLength(l)

	for i := 0; i < l; i++ {
		switch {
		case i < la && i < lb:
			if sub {
				res.Coeffs[i].Sub(&a.Coeffs[i], &b.Coeffs[i], prec)
			} else {
				res.Coeffs[i].Add(&a.Coeffs[i], &b.Coeffs[i], prec)
			}
		case i < la:
			res.Coeffs[i].SetRound(&a.Coeffs[i], prec)
		default:
			if sub {
				res.Coeffs[i].Neg(&b.Coeffs[i])
				res.Coeffs[i].SetRound(&res.Coeffs[i], prec)
			} else {
				res.Coeffs[i].SetRound(&b.Coeffs[i], prec)
			}
		}
	}
}

// Neg sets res to -a.
func (eval *Evaluator) Neg(a, res *Poly) {
	res.SetLength(a.Length())
	for i := range res.Coeffs {
		res.Coeffs[i].Neg(&a.Coeffs[i])
	}
}

// ScalarMul sets res to c * a.
func (eval *Evaluator) ScalarMul(a *Poly, c *ball.Ball, prec uint, res *Poly) {
	var t ball.Ball
	t.Set(c)
	res.SetLength(a.Length())
	for i := range res.Coeffs {
		res.Coeffs[i].Mul(&a.Coeffs[i], &t, prec)
	}
}

// ScalarDiv sets res to a / c.
func (eval *Evaluator) ScalarDiv(a *Poly, c *ball.Ball, prec uint, res *Poly) {
	var t ball.Ball
	t.Set(c)
	res.SetLength(a.Length())
	for i := range res.Coeffs {
		res.Coeffs[i].Div(&a.Coeffs[i], &t, prec)
	}
}

// ScalarMul2Exp sets res to a * 2^e.
func (eval *Evaluator) ScalarMul2Exp(a *Poly, e int, res *Poly) {
	res.SetLength(a.Length())
	for i := range res.Coeffs {
		res.Coeffs[i].Mul2Exp(&a.Coeffs[i], e)
	}
}

// ShiftLeft sets res to a * x^n.
func (eval *Evaluator) ShiftLeft(a *Poly, n int, res *Poly) {
	checkLength("ShiftLeft", n)
	la := a.Length()
	if la == 0 {
		res.Zero()
		return
	}
	res.SetLength(la + n)
	for i := la - 1; i >= 0; i-- {
		res.Coeffs[i+n].Set(&a.Coeffs[i])
	}
	for i := 0; i < n; i++ {
		res.Coeffs[i].Zero()
	}
}

// ShiftRight sets res to a / x^n, discarding the n low-order coefficients of a.
func (eval *Evaluator) ShiftRight(a *Poly, n int, res *Poly) {
	checkLength("ShiftRight", n)
	la := a.Length()
	if n >= la {
		res.Zero()
		return
	}
	inPlace := res.aliases(a)
	if !inPlace {
		res.SetLength(la - n)
	}
	for i := 0; i < la-n; i++ {
		res.Coeffs[i].Set(&a.Coeffs[i+n])
	}
	if inPlace {
		res.SetLength(la - n)
	}
}

// Reverse sets res to the length-n polynomial x^(n-1) a(1/x), where a is read as
// its first length coefficients: res[n-1-i] = a[i] for i < length, and the other
// coefficients of res are zero. It panics if length > n.
func (eval *Evaluator) Reverse(a *Poly, length, n int, res *Poly) {

	checkLength("Reverse", n)
	if length > n || length < 0 {
		ball.Precondition("Reverse", "length %d is not in [0, %d]", length, n)
	}

	if res.aliases(a) {
		res.SetLength(n)
		for i := length; i < n; i++ {
			res.Coeffs[i].Zero()
		}
		for i := 0; i < n/2; i++ {
			res.Coeffs[i].Swap(&res.Coeffs[n-1-i])
		}
		return
	}

	res.SetLength(n)
	for i := 0; i < n-length; i++ {
		res.Coeffs[i].Zero()
	}
	for i := 0; i < length; i++ {
		res.Coeffs[n-1-i].Set(a.Coeff(i))
	}
}

// Derivative sets res to the derivative of a.
func (eval *Evaluator) Derivative(a *Poly, prec uint, res *Poly) {
	la := a.Length()
	if la <= 1 {
		res.Zero()
		return
	}
	inPlace := res.aliases(a)
	if !inPlace {
		res.SetLength(la - 1)
	}
	for i := 0; i < la-1; i++ {
		res.Coeffs[i].MulInt64(&a.Coeffs[i+1], int64(i+1), prec)
	}
	if inPlace {
		res.SetLength(la - 1)
	}
}

// Integral sets res to the antiderivative of a vanishing at zero.
func (eval *Evaluator) Integral(a *Poly, prec uint, res *Poly) {
	la := a.Length()
	if !res.aliases(a) {
		res.Set(a)
	}
	res.SetLength(la + 1)
	for i := la; i >= 1; i-- {
		res.Coeffs[i].DivInt64(&res.Coeffs[i-1], int64(i), prec)
	}
	res.Coeffs[0].Zero()
}

// integralSeries sets res to the antiderivative of a truncated to length n.
func (eval *Evaluator) integralSeries(a *Poly, n int, prec uint, res *Poly) {
	eval.Integral(a, prec, res)
	if res.Length() > n {
		res.SetLength(n)
	}
}

// Evaluate sets res to a(x), by Horner's rule for short polynomials and by
// rectangular splitting otherwise.
func (eval *Evaluator) Evaluate(a *Poly, x *ball.Ball, prec uint, res *ball.Ball) {
	if a.Length() >= eval.EvaluateRectangularCutoff {
		eval.EvaluateRectangular(a, x, prec, res)
		return
	}
	eval.EvaluateHorner(a, x, prec, res)
}

// EvaluateHorner sets res to a(x) by Horner's rule.
func (eval *Evaluator) EvaluateHorner(a *Poly, x *ball.Ball, prec uint, res *ball.Ball) {

	la := a.Length()
	if la == 0 {
		res.Zero()
		return
	}

	var t, u ball.Ball
	u.Set(x)
	t.Set(&a.Coeffs[la-1])
	for i := la - 2; i >= 0; i-- {
		t.Mul(&t, &u, prec)
		t.Add(&t, &a.Coeffs[i], prec)
	}
	res.SetRound(&t, prec)
}

// EvaluateRectangular sets res to a(x) by rectangular splitting: the polynomial is cut
// into blocks of m ~ sqrt(len) coefficients, each evaluated as a dot product against
// the powers x^0, ..., x^(m-1), and the blocks are combined by Horner's rule in x^m.
func (eval *Evaluator) EvaluateRectangular(a *Poly, x *ball.Ball, prec uint, res *ball.Ball) {

	la := a.Length()
	if la <= 2 {
		eval.EvaluateHorner(a, x, prec, res)
		return
	}

	m := 1
	for m*m < la {
		m++
	}

	wp := prec + 4

	pw := make([]ball.Ball, m+1)
	pw[0].One()
	pw[1].Set(x)
	for i := 2; i <= m; i++ {
		pw[i].Mul(&pw[i-1], x, wp)
	}

	var t, b ball.Ball
	t.Zero()
	for j := (la - 1) / m; j >= 0; j-- {
		lo := j * m
		cnt := utils.Min(m, la-lo)
		b.Dot(&a.Coeffs[lo], false, a.Coeffs, lo+1, 1, pw, 1, 1, cnt-1, wp)
		t.Mul(&t, &pw[m], wp)
		t.Add(&t, &b, wp)
	}

	res.SetRound(&t, prec)
}

// Evaluate2 sets y to a(x) and dy to a'(x).
func (eval *Evaluator) Evaluate2(a *Poly, x *ball.Ball, prec uint, y, dy *ball.Ball) {

	la := a.Length()
	if la == 0 {
		y.Zero()
		dy.Zero()
		return
	}

	var u, v, w ball.Ball
	w.Set(x)
	u.Set(&a.Coeffs[la-1])
	v.Zero()
	for i := la - 2; i >= 0; i-- {
		v.Mul(&v, &w, prec)
		v.Add(&v, &u, prec)
		u.Mul(&u, &w, prec)
		u.Add(&u, &a.Coeffs[i], prec)
	}
	y.Swap(&u)
	dy.Swap(&v)
}
