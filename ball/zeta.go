package ball

import (
	"math"
	"math/big"

	"github.com/tuneinsight/ballseries/utils/bernoulli"
)

// EulerMaclaurinParams selects the parameters of the Euler-Maclaurin evaluation of the
// Hurwitz zeta function zeta(s, a) = sum_{k>=0} (a+k)^-s: the number n of explicitly summed
// terms and the number m of Bernoulli corrections, such that the remainder
//
//	|B_2m|/(2m)! |(s)_2m| (a+n)^(1-sigma-2m) / (sigma+2m-1)
//
// is below 2^-wp. The inputs are |s| <= sabs, Re(s) >= sigma and Re(a) >= alo.
// extra is added to the log2 of the bound. The returned bound is log2 of the remainder bound.
func EulerMaclaurinParams(sabs, sigma, alo float64, wp uint, extra float64) (n, m int, bound float64) {

	u0 := math.Max(float64(wp)/8+5, sabs/4+5)
	n = int(math.Max(0, math.Ceil(u0-alo)))

	for iter := 0; iter < 64; iter++ {

		lu := math.Log2(alo + float64(n))

		maxM := int(2*math.Pi*(alo+float64(n))+sabs) + 8
		for mm := 1; mm <= maxM; mm++ {

			if sigma+float64(2*mm)-1 <= 0 {
				continue
			}

			if b := EulerMaclaurinRemainderLog2(sabs, sigma, lu, mm) + extra; b < -float64(wp) {
				return n, mm, b
			}
		}

		n = 2*n + 16
	}

	return n, 1, math.Inf(1)
}

// EulerMaclaurinRemainderLog2 returns log2 of an upper bound of
// |B_2m|/(2m)! |(s)_2m| u^(1-sigma-2m) / (sigma+2m-1) for |s| <= sabs, Re(s) >= sigma
// and log2(u) >= lu. It requires sigma + 2m - 1 > 0.
func EulerMaclaurinRemainderLog2(sabs, sigma, lu float64, m int) float64 {

	// |B_2m| / (2m)! <= 4 / (2 pi)^2m
	b := 2 - float64(2*m)*math.Log2(2*math.Pi)

	// |(s)_2m| <= |s| (|s|+1) ... (|s|+2m-1)
	if sabs == 0 {
		return math.Inf(-1)
	}
	g1, _ := math.Lgamma(sabs + float64(2*m))
	g0, _ := math.Lgamma(sabs + 1)
	b += math.Log2(sabs) + (g1-g0)/math.Ln2

	b += (1 - sigma - float64(2*m)) * lu
	b -= math.Log2(sigma + float64(2*m) - 1)

	// float64 rounding slack
	return b + 1e-9*math.Abs(b) + 1
}

// HurwitzZeta sets z to zeta(s, a) = sum_{k>=0} (a+k)^-s rounded to prec bits, for a > 0.
// If s contains 1, or a is not positive, z is indeterminate.
func (z *Ball) HurwitzZeta(s, a *Ball, prec uint) *Ball {

	if !s.IsFinite() || !a.IsFinite() || s.ContainsInt64(1) || !a.IsPositive() {
		return z.Indeterminate()
	}

	wp := prec + 24

	var sa Mag
	s.AbsUpper(&sa)
	sabs := sa.Float64()
	sigma, _ := s.lower().Float64()
	alo, _ := a.lower().Float64()

	if math.IsInf(sabs, 0) || math.IsInf(sigma, 0) {
		return z.Indeterminate()
	}

	n, m, bound := EulerMaclaurinParams(sabs, sigma, alo, wp, 0)

	if math.IsInf(bound, 1) {
		return z.Indeterminate()
	}

	var t Ball
	hurwitzEM(&t, s, a, n, m, wp)

	var e Mag
	if !math.IsInf(bound, -1) {
		e.SetPow2(int(math.Ceil(bound)))
	}
	t.AddError(&e)

	return z.SetRound(&t, prec)
}

// hurwitzEM sets z to the Euler-Maclaurin approximation of zeta(s, a) with n summed
// terms and m Bernoulli corrections (the remainder bound is not included).
func hurwitzEM(z, s, a *Ball, n, m int, wp uint) {

	var ns, sum, u, t Ball
	ns.Neg(s)

	// sum_{k<n} (a+k)^-s
	sum.Zero()
	for k := 0; k < n; k++ {
		u.AddInt64(a, int64(k), wp)
		t.Pow(&u, &ns, wp)
		sum.Add(&sum, &t, wp)
	}

	// u = a + n, p = u^-s
	var p, ui, ui2, q Ball
	u.AddInt64(a, int64(n), wp)
	p.Pow(&u, &ns, wp)
	ui.Inv(&u, wp)
	ui2.Sqr(&ui, wp)

	// u^(1-s) / (s - 1)
	t.Mul(&u, &p, wp)
	q.SubInt64(s, 1, wp)
	t.Div(&t, &q, wp)
	sum.Add(&sum, &t, wp)

	// u^-s / 2
	t.Mul2Exp(&p, -1)
	sum.Add(&sum, &t, wp)

	if m > 0 {

		bs := bernoulli.Numbers(2*m + 1)

		// r = (s)_{2j-1} u^(-s-2j+1), starting at j = 1
		var r, c, f Ball
		r.Mul(s, &p, wp)
		r.Mul(&r, &ui, wp)

		fact := big.NewInt(2)
		for j := 1; j <= m; j++ {

			if j > 1 {
				// (s)_{2j-1} = (s)_{2j-3} (s+2j-3) (s+2j-2)
				f.AddInt64(s, int64(2*j-3), wp)
				r.Mul(&r, &f, wp)
				f.AddInt64(s, int64(2*j-2), wp)
				r.Mul(&r, &f, wp)
				r.Mul(&r, &ui2, wp)
				fact.Mul(fact, big.NewInt(int64((2*j-1)*(2*j))))
			}

			c.SetRat(new(big.Rat).SetFrac(bs[2*j].Num(), new(big.Int).Mul(bs[2*j].Denom(), fact)), wp)
			c.Mul(&c, &r, wp)
			sum.Add(&sum, &c, wp)
		}
	}

	z.Set(&sum)
}

// Zeta sets z to the Riemann zeta function zeta(s) rounded to prec bits.
// Exact values are returned at the non-positive integers.
func (z *Ball) Zeta(s *Ball, prec uint) *Ball {

	if !s.IsFinite() || s.ContainsInt64(1) {
		return z.Indeterminate()
	}

	if n, ok := smallInt(s, 1<<12); ok {

		if n <= 0 {
			// zeta(-k) = (-1)^k B_{k+1} / (k+1)
			k := -n
			q := new(big.Rat).Quo(bernoulli.Get(int(k+1)), big.NewRat(k+1, 1))
			if k&1 == 1 {
				q.Neg(q)
			}
			return z.SetRat(q, prec)
		}

		if n&1 == 0 {
			// zeta(2k) = (-1)^(k+1) B_2k (2 pi)^2k / (2 (2k)!)
			wp := prec + 16
			q := new(big.Rat).Quo(bernoulli.Get(int(n)), new(big.Rat).SetInt(new(big.Int).MulRange(1, n)))
			q.Abs(q)
			q.Quo(q, big.NewRat(2, 1))
			var t, p Ball
			t.SetRat(q, wp)
			p.Pi(wp)
			p.Mul2Exp(&p, 1)
			p.PowInt(&p, n, wp)
			return z.Mul(&t, &p, prec)
		}
	}

	var one Ball
	one.One()
	return z.HurwitzZeta(s, &one, prec)
}
