package series

import (
	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// Compose sets res to the polynomial a(b(x)), without truncation.
// Short outer polynomials are evaluated by Horner's rule, longer ones by
// divide and conquer over the powers b^(2^k).
func (eval *Evaluator) Compose(a, b *Poly, prec uint, res *Poly) {

	la, lb := a.Length(), b.Length()

	switch {
	case la == 0:
		res.Zero()
		return
	case la == 1 || lb == 0:
		c := new(ball.Ball).SetRound(&a.Coeffs[0], prec)
		res.SetLength(1)
		res.Coeffs[0].Swap(c)
		return
	case lb == 1:
		c := new(ball.Ball)
		eval.Evaluate(a, &b.Coeffs[0], prec, c)
		res.SetLength(1)
		res.Coeffs[0].Swap(c)
		return
	}

	t := NewPoly((la-1)*(lb-1) + 1)

	if la <= eval.ComposeHornerCutoff {
		eval.composeHorner(a.Coeffs, b, prec, t)
	} else {
		pows := []*Poly{b.CopyNew()}
		for 1<<len(pows) < la {
			p := NewPoly(0)
			eval.Sqr(pows[len(pows)-1], prec, p)
			pows = append(pows, p)
		}
		eval.composeDivConquer(a.Coeffs, pows, prec, t)
	}

	res.Swap(t)
}

// composeHorner writes a(b) into res, which must not alias b.
func (eval *Evaluator) composeHorner(a []ball.Ball, b *Poly, prec uint, res *Poly) {

	la := len(a)

	res.SetLength(1)
	res.Coeffs[0].Set(&a[la-1])

	for i := la - 2; i >= 0; i-- {
		eval.Mul(res, b, prec, res)
		if res.Length() == 0 {
			res.SetLength(1)
		}
		res.Coeffs[0].Add(&res.Coeffs[0], &a[i], prec)
	}
}

// composeDivConquer writes a(b) into res, where pows[k] = b^(2^k) for every 2^k < len(a).
func (eval *Evaluator) composeDivConquer(a []ball.Ball, pows []*Poly, prec uint, res *Poly) {

	la := len(a)

	if la <= eval.ComposeHornerCutoff {
		eval.composeHorner(a, pows[0], prec, res)
		return
	}

	// largest power of two strictly below la
	k := 0
	for 1<<(k+1) < la {
		k++
	}
	m := 1 << k

	hi := NewPoly(0)
	eval.composeDivConquer(a[m:], pows, prec, hi)
	eval.Mul(hi, pows[k], prec, hi)

	eval.composeDivConquer(a[:m], pows, prec, res)
	eval.Add(res, hi, prec, res)
}

// ComposeSeries sets res to a(b(x)) truncated to length n. The constant term of b
// must be exactly zero. An inner series c x^k is handled by scaling; otherwise the
// composition uses Horner's rule below ComposeBrentKungCutoff and the Brent-Kung
// algorithm above it.
func (eval *Evaluator) ComposeSeries(a, b *Poly, n int, prec uint, res *Poly) {
	eval.composeSeries("ComposeSeries", a, b, n, prec, res, func(a, b *Poly, n int, res *Poly) {
		if n < eval.ComposeBrentKungCutoff {
			eval.composeSeriesHorner(a, b, n, prec, res)
		} else {
			eval.composeSeriesBrentKung(a, b, n, prec, res)
		}
	})
}

// ComposeSeriesHorner sets res to a(b(x)) truncated to length n using Horner's rule.
func (eval *Evaluator) ComposeSeriesHorner(a, b *Poly, n int, prec uint, res *Poly) {
	eval.composeSeries("ComposeSeriesHorner", a, b, n, prec, res, func(a, b *Poly, n int, res *Poly) {
		eval.composeSeriesHorner(a, b, n, prec, res)
	})
}

// ComposeSeriesBrentKung sets res to a(b(x)) truncated to length n using the
// Brent-Kung baby-step giant-step algorithm.
func (eval *Evaluator) ComposeSeriesBrentKung(a, b *Poly, n int, prec uint, res *Poly) {
	eval.composeSeries("ComposeSeriesBrentKung", a, b, n, prec, res, func(a, b *Poly, n int, res *Poly) {
		eval.composeSeriesBrentKung(a, b, n, prec, res)
	})
}

// composeSeries checks the inner constant term, handles the trivial and monomial
// cases, and calls f with truncated operands of length at least two and a result
// that does not alias them.
func (eval *Evaluator) composeSeries(op string, a, b *Poly, n int, prec uint, res *Poly, f func(a, b *Poly, n int, res *Poly)) {

	checkLength(op, n)

	if b.Length() > 0 && !b.Coeffs[0].IsZero() {
		ball.Precondition(op, "inner series must have an exactly zero constant term")
	}

	la, lb := utils.Min(a.Length(), n), utils.Min(b.Length(), n)

	if la == 0 {
		res.Zero()
		return
	}

	if la == 1 || lb <= 1 {
		c := new(ball.Ball).SetRound(&a.Coeffs[0], prec)
		res.SetLength(1)
		res.Coeffs[0].Swap(c)
		return
	}

	t := NewPoly(n)

	if k, ok := monomial(b.Coeffs[:lb]); ok {
		// a(c x^k) = sum_i a_i c^i x^(ik)
		c := &b.Coeffs[k]
		t.SetLength(n)
		var p ball.Ball
		p.One()
		for i := 0; i < la && i*k < n; i++ {
			t.Coeffs[i*k].Mul(&a.Coeffs[i], &p, prec)
			p.Mul(&p, c, prec)
		}
	} else {
		at := &Poly{Coeffs: a.Coeffs[:la]}
		bt := &Poly{Coeffs: b.Coeffs[:lb]}
		f(at, bt, n, t)
	}

	res.Swap(t)
}

// monomial returns k if b = c x^k with k >= 1.
func monomial(b []ball.Ball) (k int, ok bool) {
	k = len(b) - 1
	if b[k].IsZero() {
		return 0, false
	}
	for i := 0; i < k; i++ {
		if !b[i].IsZero() {
			return 0, false
		}
	}
	return k, true
}

func (eval *Evaluator) composeSeriesHorner(a, b *Poly, n int, prec uint, res *Poly) {

	la := a.Length()

	res.SetLength(1)
	res.Coeffs[0].Set(&a.Coeffs[la-1])

	for i := la - 2; i >= 0; i-- {
		eval.Mullow(res, b, n, prec, res)
		if res.Length() == 0 {
			res.SetLength(1)
		}
		res.Coeffs[0].Add(&res.Coeffs[0], &a.Coeffs[i], prec)
	}
}

// composeSeriesBrentKung splits a into blocks of m ~ sqrt(len(a)) coefficients.
// Every block is combined with the precomputed powers b^0, ..., b^(m-1), and the
// blocks are assembled by Horner's rule in b^m.
func (eval *Evaluator) composeSeriesBrentKung(a, b *Poly, n int, prec uint, res *Poly) {

	la := a.Length()

	m := 1
	for m*m < la {
		m++
	}

	pows := make([]*Poly, m+1)
	pows[0] = NewPoly(1).One()
	pows[1] = b.CopyNew()
	for j := 2; j <= m; j++ {
		pows[j] = NewPoly(n)
		eval.Mullow(pows[j-1], b, n, prec, pows[j])
	}

	blk := NewPoly(n)

	block := func(i int) {
		blk.SetLength(n)
		for k := range blk.Coeffs {
			blk.Coeffs[k].Zero()
		}
		for j := 0; j < m && i*m+j < la; j++ {
			c := &a.Coeffs[i*m+j]
			if c.IsZero() {
				continue
			}
			for k := range pows[j].Coeffs {
				blk.Coeffs[k].AddMul(c, &pows[j].Coeffs[k], prec)
			}
		}
	}

	nb := (la + m - 1) / m

	block(nb - 1)
	res.Set(blk)

	for i := nb - 2; i >= 0; i-- {
		eval.Mullow(res, pows[m], n, prec, res)
		block(i)
		eval.AddSeries(res, blk, n, prec, res)
	}
}
