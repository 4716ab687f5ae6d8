package series

import (
	"math/big"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// TaylorShift sets res to a(x + c). Horner's scheme is used for short polynomials,
// divide and conquer for medium lengths and a single convolution for long ones.
func (eval *Evaluator) TaylorShift(a *Poly, c *ball.Ball, prec uint, res *Poly) {
	switch la := a.Length(); {
	case la < eval.TaylorShiftDivConquerCutoff:
		eval.TaylorShiftHorner(a, c, prec, res)
	case la < eval.TaylorShiftConvolutionCutoff:
		eval.TaylorShiftDivConquer(a, c, prec, res)
	default:
		eval.TaylorShiftConvolution(a, c, prec, res)
	}
}

// TaylorShiftHorner sets res to a(x + c) with the quadratic Horner scheme.
func (eval *Evaluator) TaylorShiftHorner(a *Poly, c *ball.Ball, prec uint, res *Poly) {

	var t ball.Ball
	t.Set(c)

	res.Set(a)
	n := res.Length()

	if t.IsZero() {
		return
	}

	var u ball.Ball
	for i := n - 2; i >= 0; i-- {
		for j := i; j < n-1; j++ {
			u.Mul(&res.Coeffs[j+1], &t, prec)
			res.Coeffs[j].Add(&res.Coeffs[j], &u, prec)
		}
	}
}

// TaylorShiftDivConquer sets res to a(x + c) by splitting a = lo + x^m hi, so that
// a(x + c) = lo(x + c) + (x + c)^m hi(x + c), with m a power of two.
func (eval *Evaluator) TaylorShiftDivConquer(a *Poly, c *ball.Ball, prec uint, res *Poly) {

	la := a.Length()
	if la <= 1 {
		res.SetRound(a, prec)
		return
	}

	// pows[k] = (x + c)^(2^k)
	pows := []*Poly{new(Poly).SetFloat64s([]float64{0, 1})}
	pows[0].Coeffs[0].Set(c)
	for 1<<len(pows) < la {
		p := NewPoly(0)
		eval.Sqr(pows[len(pows)-1], prec, p)
		pows = append(pows, p)
	}

	t := NewPoly(la)
	eval.taylorShiftDivConquer(a.Coeffs, pows, c, prec, t)
	res.Swap(t)
}

func (eval *Evaluator) taylorShiftDivConquer(a []ball.Ball, pows []*Poly, c *ball.Ball, prec uint, res *Poly) {

	la := len(a)

	if la <= 8 {
		res.SetLength(la)
		for i := range a {
			res.Coeffs[i].Set(&a[i])
		}
		eval.TaylorShiftHorner(res, c, prec, res)
		return
	}

	k := 0
	for 1<<(k+1) < la {
		k++
	}
	m := 1 << k

	hi := NewPoly(la - m)
	eval.taylorShiftDivConquer(a[m:], pows, c, prec, hi)
	eval.Mul(hi, pows[k], prec, hi)

	eval.taylorShiftDivConquer(a[:m], pows, c, prec, res)
	eval.Add(res, hi, prec, res)
}

// TaylorShiftConvolution sets res to a(x + c) using
// k! res_k = sum_{j >= k} (j! a_j) c^(j-k) / (j-k)!,
// a single product of the reversed series (j! a_j) by the series c^i / i!.
func (eval *Evaluator) TaylorShiftConvolution(a *Poly, c *ball.Ball, prec uint, res *Poly) {

	la := a.Length()
	if la <= 1 {
		res.SetRound(a, prec)
		return
	}

	wp := prec + uint(2*utils.BitLen(uint64(la))) + 10

	var t ball.Ball
	t.Set(c)

	// b_j = j! a_j, reversed
	b := NewPoly(la)
	eval.InvBorelTransform(a, wp, b)
	eval.Reverse(b, la, la, b)

	// d_i = c^i / i!
	d := NewPoly(la)
	d.SetLength(la)
	d.Coeffs[0].One()
	for i := 1; i < la; i++ {
		d.Coeffs[i].Mul(&d.Coeffs[i-1], &t, wp)
		d.Coeffs[i].DivInt64(&d.Coeffs[i], int64(i), wp)
	}

	eval.Mullow(b, d, la, wp, b)
	b.SetLength(la)
	eval.Reverse(b, la, la, b)
	eval.BorelTransform(b, prec, b)

	res.Swap(b)
}

// BorelTransform sets res_k = a_k / k!.
func (eval *Evaluator) BorelTransform(a *Poly, prec uint, res *Poly) {
	res.SetLength(a.Length())
	f := new(big.Int).SetInt64(1)
	var t ball.Ball
	for k := range res.Coeffs {
		if k > 1 {
			f.Mul(f, big.NewInt(int64(k)))
		}
		t.SetInt(f)
		res.Coeffs[k].Div(&a.Coeffs[k], &t, prec)
	}
}

// InvBorelTransform sets res_k = a_k k!.
func (eval *Evaluator) InvBorelTransform(a *Poly, prec uint, res *Poly) {
	res.SetLength(a.Length())
	f := new(big.Int).SetInt64(1)
	var t ball.Ball
	for k := range res.Coeffs {
		if k > 1 {
			f.Mul(f, big.NewInt(int64(k)))
		}
		t.SetInt(f)
		res.Coeffs[k].Mul(&a.Coeffs[k], &t, prec)
	}
}

// BinomialTransform sets res to the first n terms of the binomial transform
// b_k = sum_{j <= k} (-1)^j C(k, j) a_j. The transform is an involution.
// For long series, b is computed through exponential generating functions:
// the EGF of b is e^x times the EGF of a evaluated at -x.
func (eval *Evaluator) BinomialTransform(a *Poly, n int, prec uint, res *Poly) {
	if n < eval.BinomialTransformBorelCutoff {
		eval.BinomialTransformBasecase(a, n, prec, res)
	} else {
		eval.BinomialTransformBorel(a, n, prec, res)
	}
}

// BinomialTransformBasecase computes the binomial transform term by term.
func (eval *Evaluator) BinomialTransformBasecase(a *Poly, n int, prec uint, res *Poly) {

	checkLength("BinomialTransformBasecase", n)

	la := utils.Min(a.Length(), n)
	if la == 0 {
		res.Zero()
		return
	}

	t := NewPoly(n)
	t.SetLength(n)

	var c, u ball.Ball
	binom := new(big.Int)

	for k := 0; k < n; k++ {
		var s ball.Ball
		for j := 0; j <= k && j < la; j++ {
			binom.Binomial(int64(k), int64(j))
			c.SetInt(binom)
			u.Mul(&a.Coeffs[j], &c, prec)
			if j&1 == 1 {
				s.Sub(&s, &u, prec)
			} else {
				s.Add(&s, &u, prec)
			}
		}
		t.Coeffs[k].Swap(&s)
	}

	res.Swap(t)
}

// BinomialTransformBorel computes the binomial transform with one multiplication.
func (eval *Evaluator) BinomialTransformBorel(a *Poly, n int, prec uint, res *Poly) {

	checkLength("BinomialTransformBorel", n)

	la := utils.Min(a.Length(), n)
	if la == 0 {
		res.Zero()
		return
	}

	wp := prec + uint(2*utils.BitLen(uint64(n))) + 10

	// EGF of a at -x
	t := NewPoly(n)
	t.SetLength(la)
	for j := 0; j < la; j++ {
		if j&1 == 1 {
			t.Coeffs[j].Neg(&a.Coeffs[j])
		} else {
			t.Coeffs[j].Set(&a.Coeffs[j])
		}
	}
	eval.BorelTransform(t, wp, t)

	e := NewPoly(n)
	e.SetLength(n)
	for i := range e.Coeffs {
		e.Coeffs[i].One()
	}
	eval.BorelTransform(e, wp, e)

	eval.Mullow(t, e, n, wp, t)
	eval.InvBorelTransform(t, prec, t)

	res.Swap(t)
}
