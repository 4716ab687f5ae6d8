package series

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/cball"
)

// randSeries returns a random inexact series of length n with constant term c0.
func randSeries(t *testing.T, n int, prec uint, c0 float64) *Poly {
	h := randPoly(newTestPRNG(t), n, prec, false)
	h.Coeffs[0].SetFloat64(c0)
	return h
}

func TestExpLog(t *testing.T) {

	eval := newTestEvaluator()

	t.Run("ExpSeries/Factorials", func(t *testing.T) {
		n := 40
		res := NewPoly(0)
		eval.ExpSeries(NewPolyFromFloat64(0, 1), n, 128, res)

		want := make([]*big.Rat, n)
		f := big.NewInt(1)
		for k := range want {
			if k > 1 {
				f.Mul(f, big.NewInt(int64(k)))
			}
			want[k] = new(big.Rat).SetFrac(big.NewInt(1), f)
		}
		requireContainsRats(t, res, want)
		requireAccurate(t, res, 100)
	})

	for _, prec := range testPrecs {
		for _, n := range []int{1, 10, 30, 80} {

			t.Run(testString("ExpSeries/LogSeries", n, prec), func(t *testing.T) {
				h := randSeries(t, n, prec, 0.25)

				e := NewPoly(0)
				eval.ExpSeries(h, n, prec, e)
				require.Equal(t, n, e.Length())

				l := NewPoly(0)
				eval.LogSeries(e, n, prec, l)
				requireOverlaps(t, l, h)

				// the Newton iteration and the recurrence agree
				var c ball.Ball
				c.Exp(&h.Coeffs[0], prec)
				ref := NewPoly(0)
				expSeriesBasecase(nonConstant(h), n, prec, ref)
				eval.ScalarMul(ref, &c, prec, ref)
				requireOverlaps(t, e, ref)
			})

			t.Run(testString("Log1pSeries", n, prec), func(t *testing.T) {
				h := randSeries(t, n, prec, 0.5)

				l0, l1 := NewPoly(0), NewPoly(0)
				eval.Log1pSeries(h, n, prec, l0)

				g := h.CopyNew()
				g.Coeffs[0].AddInt64(&g.Coeffs[0], 1, prec)
				eval.LogSeries(g, n, prec, l1)
				requireOverlaps(t, l0, l1)
			})
		}
	}

	t.Run("LogSeries/Indeterminate", func(t *testing.T) {
		res := NewPoly(0)
		eval.LogSeries(NewPolyFromFloat64(-1, 1), 5, 64, res)
		requireIndeterminate(t, res, 5)
		eval.Log1pSeries(NewPolyFromFloat64(-1, 1), 5, 64, res)
		requireIndeterminate(t, res, 5)
	})

	t.Run("ExpSeries/Empty", func(t *testing.T) {
		res := NewPoly(0)
		eval.ExpSeries(NewPoly(0), 3, 64, res)
		require.Equal(t, 3, res.Length())
		requireContainsRats(t, res, rats(t, "1", "0", "0"))
	})
}

func TestPowers(t *testing.T) {

	eval := newTestEvaluator()

	for _, prec := range testPrecs {
		for _, n := range []int{1, 12, 40} {

			f := randSeries(t, n, prec, 2)

			t.Run(testString("SqrtSeries", n, prec), func(t *testing.T) {
				s := NewPoly(0)
				eval.SqrtSeries(f, n, prec, s)
				eval.Sqrlow(s, n, prec, s)
				requireOverlaps(t, s, f)
			})

			t.Run(testString("RsqrtSeries", n, prec), func(t *testing.T) {
				r := NewPoly(0)
				eval.RsqrtSeries(f, n, prec, r)
				eval.Sqrlow(r, n, prec, r)
				eval.Mullow(r, f, n, prec, r)
				requireContainsRats(t, r, rats(t, "1"))
			})

			t.Run(testString("PowBallSeries", n, prec), func(t *testing.T) {
				var third ball.Ball
				third.SetFrac(1, 3, prec)

				r := NewPoly(0)
				eval.PowBallSeries(f, &third, n, prec, r)
				eval.PowUintSeries(r, 3, n, prec, r)
				requireOverlaps(t, r, f)
			})

			t.Run(testString("PowUintSeries", n, prec), func(t *testing.T) {
				p, ref := NewPoly(0), NewPoly(0)
				eval.PowUintSeries(f, 5, n, prec, p)

				ref.One()
				for i := 0; i < 5; i++ {
					eval.Mullow(ref, f, n, prec, ref)
				}
				requireOverlaps(t, p, ref)
			})

			t.Run(testString("PowSeries", n, prec), func(t *testing.T) {
				// f^(1 + x) = f exp(x log f)
				p := NewPoly(0)
				eval.PowSeries(f, NewPolyFromFloat64(1, 1), n, prec, p)

				l, ref := NewPoly(0), NewPoly(0)
				eval.LogSeries(f, n, prec, l)
				eval.ShiftLeft(l, 1, l)
				eval.ExpSeries(l, n, prec, ref)
				eval.Mullow(ref, f, n, prec, ref)
				requireOverlaps(t, p, ref)
			})
		}
	}

	t.Run("PowBallSeries/Special", func(t *testing.T) {
		f := NewPolyFromFloat64(4, 1)
		res := NewPoly(0)

		eval.PowBallSeries(f, ball.NewInt64(0), 3, 64, res)
		require.True(t, res.Equal(NewPolyFromFloat64(1, 0, 0)))

		eval.PowBallSeries(f, ball.NewFloat64(0.5), 3, 64, res)
		requireContainsRats(t, res, rats(t, "2", "1/4", "-1/64"))

		eval.PowBallSeries(f, ball.NewInt64(-1), 3, 64, res)
		requireContainsRats(t, res, rats(t, "1/4", "-1/16", "1/64"))

		eval.PowBallSeries(NewPolyFromFloat64(-1, 1), ball.NewFloat64(0.3), 3, 64, res)
		requireIndeterminate(t, res, 3)
	})
}

func TestTrigSeries(t *testing.T) {

	eval := newTestEvaluator()

	for _, prec := range testPrecs {
		for _, n := range []int{1, 10, 40} {

			h := randSeries(t, n, prec, 0.625)

			t.Run(testString("SinCosSeries", n, prec), func(t *testing.T) {
				s, c := NewPoly(0), NewPoly(0)
				eval.SinCosSeries(h, n, prec, s, c)

				s2, c2 := NewPoly(0), NewPoly(0)
				eval.Sqrlow(s, n, prec, s2)
				eval.Sqrlow(c, n, prec, c2)
				eval.Add(s2, c2, prec, s2)
				requireContainsRats(t, s2, rats(t, "1"))

				s1, c1 := NewPoly(0), NewPoly(0)
				eval.SinSeries(h, n, prec, s1)
				eval.CosSeries(h, n, prec, c1)
				require.True(t, s1.Equal(s))
				require.True(t, c1.Equal(c))
			})

			t.Run(testString("SinhCoshSeries", n, prec), func(t *testing.T) {
				s, c := NewPoly(0), NewPoly(0)
				eval.SinhCoshSeries(h, n, prec, s, c)

				eval.Sqrlow(s, n, prec, s)
				eval.Sqrlow(c, n, prec, c)
				eval.Sub(c, s, prec, c)
				requireContainsRats(t, c, rats(t, "1"))
			})

			t.Run(testString("SinCosPiSeries", n, prec), func(t *testing.T) {
				var pi ball.Ball
				pi.Pi(prec)

				ph := NewPoly(0)
				eval.ScalarMul(h, &pi, prec, ph)

				s0, c0, s1, c1 := NewPoly(0), NewPoly(0), NewPoly(0), NewPoly(0)
				eval.SinCosPiSeries(h, n, prec, s0, c0)
				eval.SinCosSeries(ph, n, prec, s1, c1)
				requireOverlaps(t, s0, s1)
				requireOverlaps(t, c0, c1)
			})

			t.Run(testString("TanSeries", n, prec), func(t *testing.T) {
				tn := NewPoly(0)
				eval.TanSeries(h, n, prec, tn)
				require.Equal(t, n, tn.Length())

				s, c := NewPoly(0), NewPoly(0)
				eval.SinCosSeries(h, n, prec, s, c)
				eval.DivSeries(s, c, n, prec, s)
				requireOverlaps(t, tn, s)

				// atan(tan(h)) = h for |h_0| < pi/2
				eval.AtanSeries(tn, n, prec, tn)
				requireOverlaps(t, tn, h)
			})

			t.Run(testString("AsinAcosSeries", n, prec), func(t *testing.T) {
				s := NewPoly(0)
				eval.SinSeries(h, n, prec, s)

				a := NewPoly(0)
				eval.AsinSeries(s, n, prec, a)
				requireOverlaps(t, a, h)

				// asin + acos = pi/2
				b := NewPoly(0)
				eval.AcosSeries(s, n, prec, b)
				eval.Add(a, b, prec, a)

				var pi2 ball.Ball
				pi2.Pi(prec)
				pi2.Mul2Exp(&pi2, -1)
				ref := NewPoly(n)
				setConstant(&pi2, n, ref)
				requireOverlaps(t, a, ref)
			})

			t.Run(testString("CotPiSeries", n, prec), func(t *testing.T) {
				ct, s, c := NewPoly(0), NewPoly(0), NewPoly(0)
				eval.CotPiSeries(h, n, prec, ct)
				eval.SinCosPiSeries(h, n, prec, s, c)
				eval.Mullow(ct, s, n, prec, ct)
				requireOverlaps(t, ct, c)
			})
		}
	}

	t.Run("SincSeries", func(t *testing.T) {
		res := NewPoly(0)
		eval.SincSeries(NewPolyFromFloat64(0, 1), 6, 128, res)
		requireContainsRats(t, res, rats(t, "1", "0", "-1/6", "0", "1/120", "0"))

		// sinc(h) h = sin(h)
		h := randSeries(t, 15, 128, 0.75)
		s := NewPoly(0)
		eval.SincSeries(h, 15, 128, res)
		eval.Mullow(res, h, 15, 128, res)
		eval.SinSeries(h, 15, 128, s)
		requireOverlaps(t, res, s)

		// sinc(pi h) = sincpi(h)
		var pi ball.Ball
		pi.Pi(128)
		eval.SincPiSeries(h, 15, 128, res)
		eval.ScalarMul(h, &pi, 128, h)
		eval.SincSeries(h, 15, 128, s)
		requireOverlaps(t, res, s)
	})

	t.Run("TanSeries/Pole", func(t *testing.T) {
		var pi2 ball.Ball
		pi2.Pi(64)
		pi2.Mul2Exp(&pi2, -1)
		h := NewPolyFromFloat64(0, 1)
		h.Coeffs[0].Set(&pi2)

		res := NewPoly(0)
		eval.TanSeries(h, 4, 64, res)
		requireIndeterminate(t, res, 4)

		eval.CotPiSeries(NewPolyFromFloat64(1, 1), 4, 64, res)
		requireIndeterminate(t, res, 4)

		eval.AsinSeries(NewPolyFromFloat64(1, 1), 4, 64, res)
		requireIndeterminate(t, res, 4)
	})
}

func TestGammaSeries(t *testing.T) {

	eval := newTestEvaluator()

	t.Run("GammaSeries/Euler", func(t *testing.T) {
		// Gamma(1 + x) = 1 - gamma x + ...
		res := NewPoly(0)
		eval.GammaSeries(NewPolyFromFloat64(1, 1), 3, 128, res)

		var g ball.Ball
		g.Euler(128)
		g.Neg(&g)
		require.True(t, res.Coeffs[0].ContainsInt64(1))
		require.True(t, res.Coeffs[1].Overlaps(&g), res.Coeffs[1].Text(20))
	})

	for _, prec := range testPrecs {
		for _, n := range []int{1, 8, 25} {
			for _, c0 := range []float64{0.3, 2.5, -1.25} {

				h := randSeries(t, n, prec, c0)

				t.Run(testString("GammaSeries/Rgamma", n, prec), func(t *testing.T) {
					g, r := NewPoly(0), NewPoly(0)
					eval.GammaSeries(h, n, prec, g)
					eval.RgammaSeries(h, n, prec, r)
					require.True(t, g.IsFinite())
					eval.Mullow(g, r, n, prec, g)
					requireContainsRats(t, g, rats(t, "1"))
				})

				t.Run(testString("DigammaSeries/Recurrence", n, prec), func(t *testing.T) {
					// psi(h + 1) = psi(h) + 1/h
					h1 := h.CopyNew()
					h1.Coeffs[0].AddInt64(&h1.Coeffs[0], 1, prec)

					p0, p1, inv := NewPoly(0), NewPoly(0), NewPoly(0)
					eval.DigammaSeries(h, n, prec, p0)
					eval.DigammaSeries(h1, n, prec, p1)
					eval.InvSeries(h, n, prec, inv)
					eval.Add(p0, inv, prec, p0)
					requireOverlaps(t, p0, p1)
				})
			}

			t.Run(testString("LgammaSeries", n, prec), func(t *testing.T) {
				// exp(lgamma(h)) = gamma(h), the latter through the reflection formula
				h := randSeries(t, n, prec, 0.3)
				l, g := NewPoly(0), NewPoly(0)
				eval.LgammaSeries(h, n, prec, l)
				eval.ExpSeries(l, n, prec, l)
				eval.GammaSeries(h, n, prec, g)
				requireOverlaps(t, l, g)

				// lgamma' = digamma
				d := NewPoly(0)
				eval.DigammaSeries(h, n, prec, d)
				eval.LgammaSeries(h, n+1, prec, l)
				eval.Derivative(l, prec, l)
				eval.Derivative(h, prec, g)
				eval.Mullow(d, g, n, prec, d)
				requireOverlaps(t, l, d)
			})
		}
	}

	t.Run("Indeterminate", func(t *testing.T) {
		res := NewPoly(0)
		eval.LgammaSeries(NewPolyFromFloat64(-0.5, 1), 3, 64, res)
		requireIndeterminate(t, res, 3)

		eval.GammaSeries(NewPolyFromFloat64(-2, 1), 3, 64, res)
		requireIndeterminate(t, res, 3)

		// 1/Gamma vanishes at the poles of Gamma
		eval.RgammaSeries(NewPolyFromFloat64(-2, 1), 3, 64, res)
		require.True(t, res.Coeffs[0].ContainsZero())
	})
}

func TestZetaSeries(t *testing.T) {

	eval := newTestEvaluator()

	t.Run("ZetaSeries/Deflated", func(t *testing.T) {
		// zeta(s) - 1/(s - 1) tends to the Euler constant at s = 1
		res := NewPoly(0)
		eval.ZetaSeries(NewPolyFromFloat64(1, 1), ball.NewInt64(1), true, 3, 128, res)

		var g ball.Ball
		g.Euler(128)
		require.True(t, res.Coeffs[0].Overlaps(&g), res.Coeffs[0].Text(20))
		requireAccurate(t, res, 64)
	})

	t.Run("ZetaSeries/Two", func(t *testing.T) {
		var z ball.Ball
		z.Pi(128)
		z.Sqr(&z, 128)
		z.DivInt64(&z, 6, 128)

		res := NewPoly(0)
		eval.ZetaSeries(NewPolyFromFloat64(2), ball.NewInt64(1), false, 1, 128, res)
		require.True(t, res.Coeffs[0].Overlaps(&z))
	})

	for _, prec := range testPrecs {
		for _, n := range []int{1, 6, 20} {
			for _, deflate := range []bool{false, true} {

				t.Run(testString("ZetaSeries/Shift", n, prec), func(t *testing.T) {
					// zeta(h, a) - zeta(h, a + 1) = a^-h
					h := randSeries(t, n, prec, 2.5)
					if deflate {
						h.Coeffs[0].One()
					}

					a := ball.NewFloat64(0.5)
					a1 := ball.NewFloat64(1.5)

					z0, z1 := NewPoly(0), NewPoly(0)
					eval.ZetaSeries(h, a, deflate, n, prec, z0)
					eval.ZetaSeries(h, a1, deflate, n, prec, z1)
					require.True(t, z0.IsFinite())
					eval.Sub(z0, z1, prec, z0)

					var l ball.Ball
					l.Log(a, prec)
					l.Neg(&l)
					ref := NewPoly(0)
					eval.ScalarMul(h, &l, prec, ref)
					eval.ExpSeries(ref, n, prec, ref)
					requireOverlaps(t, z0, ref)
				})
			}
		}
	}

	t.Run("ZetaSeries/Indeterminate", func(t *testing.T) {
		res := NewPoly(0)

		eval.ZetaSeries(NewPolyFromFloat64(1, 1), ball.NewInt64(1), false, 3, 64, res)
		requireIndeterminate(t, res, 3)

		h := NewPolyFromFloat64(1, 1)
		h.Coeffs[0].AddErrorPow2(-30)
		eval.ZetaSeries(h, ball.NewInt64(1), true, 3, 64, res)
		requireIndeterminate(t, res, 3)

		eval.ZetaSeries(NewPolyFromFloat64(2, 1), ball.NewInt64(0), false, 3, 64, res)
		requireIndeterminate(t, res, 3)
	})
}

func TestLambertWSeries(t *testing.T) {

	eval := newTestEvaluator()

	for _, prec := range testPrecs {
		for _, n := range []int{1, 5, 30} {
			for _, branch := range []int{0, -1} {

				t.Run(testString("LambertWSeries", n, prec), func(t *testing.T) {
					c0 := 0.5
					if branch == -1 {
						c0 = -0.2
					}
					h := randSeries(t, n, prec, c0)

					w := NewPoly(0)
					eval.LambertWSeries(h, branch, n, prec, w)
					require.True(t, w.IsFinite())
					if branch == -1 {
						require.True(t, w.Coeffs[0].Upper().Cmp(big.NewFloat(-1)) < 0)
					}

					// w e^w = h
					e := NewPoly(0)
					eval.ExpSeries(w, n, prec, e)
					eval.Mullow(e, w, n, prec, e)
					requireOverlaps(t, e, h)
				})
			}
		}
	}

	t.Run("LambertWSeries/BranchPoint", func(t *testing.T) {
		h := NewPolyFromFloat64(-0.36787944117144233, 1)
		h.Coeffs[0].AddErrorPow2(-20)
		res := NewPoly(0)
		eval.LambertWSeries(h, 0, 4, 64, res)
		requireIndeterminate(t, res, 4)

		requirePrecondition(t, func() { eval.LambertWSeries(h, 1, 4, 64, res) })
	})
}

func TestRiemannSiegel(t *testing.T) {

	eval := newTestEvaluator()

	t.Run("RiemannSiegelThetaSeries/Origin", func(t *testing.T) {
		// theta(0) = 0 and theta'(0) = (psi(1/4) - log(pi)) / 2 with
		// psi(1/4) = -gamma - pi/2 - 3 log(2)
		prec := uint(128)
		res := NewPoly(0)
		eval.RiemannSiegelThetaSeries(NewPolyFromFloat64(0, 1), 3, prec, res)

		var d, u ball.Ball
		d.Euler(prec)
		u.Pi(prec)
		u.Mul2Exp(&u, -1)
		d.Add(&d, &u, prec)
		u.Log2(prec)
		u.MulInt64(&u, 3, prec)
		d.Add(&d, &u, prec)
		u.Pi(prec)
		u.Log(&u, prec)
		d.Add(&d, &u, prec)
		d.Neg(&d)
		d.Mul2Exp(&d, -1)

		require.True(t, res.Coeffs[0].ContainsInt64(0), res.Coeffs[0].Text(20))
		require.True(t, res.Coeffs[1].Overlaps(&d), res.Coeffs[1].Text(20))
		require.True(t, res.Coeffs[2].ContainsInt64(0), res.Coeffs[2].Text(20))
	})

	for _, prec := range testPrecs {
		for _, n := range []int{1, 4, 10} {
			t.Run(testString("RiemannSiegelZSeries", n, prec), func(t *testing.T) {
				h := randSeries(t, n, prec, 10)

				z := NewPoly(0)
				require.NotPanics(t, func() { eval.RiemannSiegelZSeries(h, n, prec, z) })
				require.Equal(t, n, z.Length())

				// |Z(t)| = |zeta(1/2 + i t)|
				var half, z2, ref ball.Ball
				half.SetFrac(1, 2, prec)
				zeta := cball.ZetaSeries(cball.New(&half, ball.NewInt64(10)), ball.NewInt64(1), 1, prec)
				zeta[0].AbsSqr(&ref, prec)
				z2.Sqr(&z.Coeffs[0], prec)
				require.True(t, z2.Overlaps(&ref), "%s %s", z2.Text(20), ref.Text(20))
			})
		}
	}
}
