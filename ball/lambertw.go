package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/utils"
	"github.com/tuneinsight/ballseries/utils/bignum"
)

// LambertW sets z to W_k(x), the branch k (0 or -1) of the Lambert W function,
// rounded to prec bits. W_0 is defined on [-1/e, +Inf) and W_-1 on [-1/e, 0).
// Outside the domain of the branch, z is indeterminate.
func (z *Ball) LambertW(x *Ball, branch int, prec uint) *Ball {

	if branch != 0 && branch != -1 {
		Precondition("LambertW", "branch %d is not 0 or -1", branch)
	}

	if !x.IsFinite() {
		return z.Indeterminate()
	}

	if x.IsZero() {
		if branch == 0 {
			return z.Zero()
		}
		return z.Indeterminate()
	}

	if branch == -1 && !x.IsNegative() {
		return z.Indeterminate()
	}

	// 1 + e x >= 0
	var t, e Ball
	e.Exp(e.One(), prec+64)
	t.Mul(&e, x, prec+64)
	t.AddInt64(&t, 1, prec+64)
	if t.IsNegative() || (!x.IsExact() && !t.IsNonNegative()) {
		return z.Indeterminate()
	}

	if x.IsExact() {
		lambertwPoint(z, &x.mid, branch, prec)
		return z
	}

	// W_0 is increasing and W_-1 decreasing: enclose the image of the endpoints,
	// using W >= -1 (resp. W <= -1) if an endpoint falls too close to the branch point
	var a, b Ball
	lambertwPoint(&a, x.lower(), branch, prec+8)
	lambertwPoint(&b, x.upper(), branch, prec+8)
	if !a.IsFinite() {
		a.SetInt64(-1)
	}
	if !b.IsFinite() {
		return z.Indeterminate()
	}
	return z.Union(&a, &b, prec)
}

// lambertwPoint sets z to W_k(x) for an exact x in the domain of the branch.
// The value is certified with an interval Newton step; if the certification fails
// (near the branch point), z is set to [-1, 0] for the principal branch and is
// indeterminate otherwise.
func lambertwPoint(z *Ball, x *big.Float, branch int, prec uint) {

	fallback := func() {
		if branch == 0 && x.Sign() < 0 {
			z.SetFrac(-1, 2, 2)
			z.AddErrorPow2(-1)
			return
		}
		z.Indeterminate()
	}

	g := lambertwGuess(x, branch)
	if g == nil {
		fallback()
		return
	}

	wp := prec + 16

	var w, xb Ball
	w.SetFloat(g)
	xb.SetFloat(x)

	// Newton iteration w <- w - (w e^w - x) / (e^w (1 + w)) with doubling precision
	for p := uint(48); ; p = utils.Min(2*p, wp) {

		var e, f, d Ball
		e.Exp(&w, p+16)
		f.Mul(&w, &e, p+16)
		f.Sub(&f, &xb, p+16)
		d.AddInt64(&w, 1, p+16)
		d.Mul(&d, &e, p+16)
		f.Div(&f, &d, p+16)

		if !f.IsFinite() {
			break
		}

		w.Sub(&w, &f, p+16)
		w.GetMid(&w)

		if p == wp {
			break
		}
	}

	if w.mid.Sign() == 0 {
		fallback()
		return
	}

	// interval Newton: if N(B) = w - f(w) / f'(B) is contained in B, then W(x) is in N(B)
	for try := 0; try < 4; try++ {

		var rho Mag
		rho.SetFloat(&w.mid)
		rho.Mul2Exp(&rho, -int(wp)+8+16*try)

		var bb, e, f, d, n Ball
		bb.GetMid(&w)
		bb.AddError(&rho)

		e.Exp(&w, wp+16)
		f.Mul(&w, &e, wp+16)
		f.Sub(&f, &xb, wp+16)

		e.Exp(&bb, wp+16)
		d.AddInt64(&bb, 1, wp+16)
		d.Mul(&d, &e, wp+16)

		f.Div(&f, &d, wp+16)
		n.Sub(&w, &f, wp+16)

		if n.IsFinite() && bb.Contains(&n) {
			z.SetRound(&n, prec)
			return
		}
	}

	fallback()
}

// lambertwGuess returns a float64-accurate approximation of W_k(x), or nil on failure.
func lambertwGuess(x *big.Float, branch int) *big.Float {

	if xf, _ := x.Float64(); xf != 0 && !math.IsInf(xf, 0) && math.Abs(xf) > 1e-300 {
		w := lambertwFloat64(xf, branch)
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil
		}
		return new(big.Float).SetFloat64(w)
	}

	logAbs := func() float64 {
		a := new(big.Float).SetPrec(64).Abs(x)
		l, _ := bignum.Log(a).Float64()
		return l
	}

	switch {
	case branch == 0 && x.Sign() > 0 && x.MantExp(nil) > 0:
		// W(x) ~ L1 - L2 + L2/L1
		l1 := logAbs()
		l2 := math.Log(l1)
		return new(big.Float).SetFloat64(l1 - l2 + l2/l1)
	case branch == -1:
		l1 := logAbs()
		l2 := math.Log(-l1)
		return new(big.Float).SetFloat64(l1 - l2 + l2/l1)
	}

	// |x| tiny: W_0(x) ~ x
	return new(big.Float).SetPrec(64).Set(x)
}

// lambertwFloat64 approximates W_k(x) in double precision by Halley's iteration.
func lambertwFloat64(x float64, branch int) (w float64) {

	branchPoint := func(sign float64) float64 {
		p := sign * math.Sqrt(math.Max(0, 2*(math.E*x+1)))
		return -1 + p - p*p/3 + 11.0/72*p*p*p
	}

	if branch == 0 {
		switch {
		case x < -0.32:
			w = branchPoint(1)
		case x < 3:
			w = math.Log1p(x)
		default:
			l1 := math.Log(x)
			l2 := math.Log(l1)
			w = l1 - l2 + l2/l1
		}
	} else {
		if x < -0.25 {
			w = branchPoint(-1)
		} else {
			l1 := math.Log(-x)
			l2 := math.Log(-l1)
			w = l1 - l2 + l2/l1
		}
	}

	for i := 0; i < 64; i++ {
		ew := math.Exp(w)
		f := w*ew - x
		w1 := w + 1
		if w1 == 0 {
			break
		}
		d := ew*w1 - (w+2)*f/(2*w1)
		if d == 0 {
			break
		}
		dw := f / d
		w -= dw
		if math.Abs(dw) <= 1e-16*math.Abs(w) {
			break
		}
	}

	return w
}
