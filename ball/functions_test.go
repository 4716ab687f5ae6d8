package ball

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballseries/utils/bignum"
)

const (
	euler50   = "0.57721566490153286060651209008240243104215933593992"
	apery50   = "1.2020569031595942853997381615114499907649862923405"
	omega50   = "0.56714329040978387299996866221035554975381578718651"
	sqrtPi50  = "1.7724538509055160272981674833411451827975494561224"
	catalan50 = "0.91596559417721901505460351493238411077414937428167"
	e50       = "2.7182818284590452353602874713526624977572470936999"
)

// refContains checks x against a bigfloat reference evaluated with prec+64 bits,
// allowing the reference error to be 2^-(prec+32) relative.
func refContains(t *testing.T, x *Ball, ref *big.Float, prec uint) {
	var r Ball
	r.SetFloat(ref)
	var e Mag
	e.SetFloat(ref)
	e.Mul2Exp(&e, -int(prec)-32)
	r.AddError(&e)
	require.True(t, x.Overlaps(&r), "%s vs %s", x.Text(40), ref.Text('g', 40))
}

func TestConstants(t *testing.T) {
	for _, prec := range []uint{64, 128, 160} {
		t.Run(testString("Pi", prec), func(t *testing.T) {
			var x Ball
			x.Pi(prec)
			requireContainsString(t, &x, bignum.Pi(prec+64).Text('g', 60))
			requireAccurate(t, &x, int(prec)-4)
		})
		t.Run(testString("Log2", prec), func(t *testing.T) {
			var x Ball
			x.Log2(prec)
			requireContainsString(t, &x, bignum.Log2(prec+64).Text('g', 60))
			requireAccurate(t, &x, int(prec)-4)
		})
		t.Run(testString("Euler", prec), func(t *testing.T) {
			var x Ball
			x.Euler(prec)
			requireContainsString(t, &x, euler50)
			requireAccurate(t, &x, int(prec)-16)
		})
	}

	t.Run("Machin", func(t *testing.T) {
		var a, b Ball
		evalPi(&a, 128)
		a.SetRound(&a, 128)
		b.Pi(128)
		require.True(t, a.Overlaps(&b))

		// Machin's formula, independently of the decimal expansion
		atanInvInt(&a, 5, 200)
		atanInvInt(&b, 239, 200)
		a.Mul2Exp(&a, 4)
		b.Mul2Exp(&b, 2)
		a.Sub(&a, &b, 200)
		requireContainsString(t, &a, bignum.Pi(300).Text('g', 80))
	})

	t.Run("Atanh", func(t *testing.T) {
		var a Ball
		atanhInvInt(&a, 3, 200)
		a.Mul2Exp(&a, 1)
		requireContainsString(t, &a, bignum.Log2(300).Text('g', 80))
	})
}

func TestExpLog(t *testing.T) {

	for _, prec := range testPrecs {

		for _, v := range []float64{0.001, 0.5, 1.4142135623730951, -3.75, 50.125, -700.5} {

			x := new(Ball).SetFloat64(v)

			t.Run(testString("Exp", prec), func(t *testing.T) {
				var z Ball
				z.Exp(x, prec)
				refContains(t, &z, bignum.Exp(bignum.NewFloat(v, prec+64)), prec)
				requireAccurate(t, &z, int(prec)-4)
			})

			t.Run(testString("Expm1", prec), func(t *testing.T) {
				var z, w Ball
				z.Expm1(x, prec)
				w.Exp(x, prec+32)
				w.SubInt64(&w, 1, prec+32)
				require.True(t, z.Overlaps(&w))
			})

			if v > 0 {
				t.Run(testString("Log", prec), func(t *testing.T) {
					var z Ball
					z.Log(x, prec)
					refContains(t, &z, bignum.Log(bignum.NewFloat(v, prec+64)), prec)
					requireAccurate(t, &z, int(prec)-8)
				})
			}
		}

		t.Run(testString("Exp/One", prec), func(t *testing.T) {
			var z Ball
			z.Exp(NewInt64(1), prec)
			refContains(t, &z, bignum.Exp(bignum.NewFloat(1, prec+64)), prec)
			if prec <= 160 {
				requireContainsString(t, &z, e50)
			}
		})

		t.Run(testString("Expm1/Tiny", prec), func(t *testing.T) {
			var z, w Ball
			x := new(Ball).SetFloat64(1e-30)
			z.Expm1(x, prec)
			requireAccurate(t, &z, int(prec)-4)
			w.Exp(x, prec+256)
			w.SubInt64(&w, 1, prec+256)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Log/NearOne", prec), func(t *testing.T) {
			var z Ball
			x := new(Ball).SetFloat(bignum.NewFloat("1.0000000001", prec))
			z.Log(x, prec)
			requireAccurate(t, &z, int(prec)-8)
			require.True(t, z.IsPositive())
		})

		t.Run(testString("Log/Huge", prec), func(t *testing.T) {
			var z Ball
			x := new(Ball).SetFloat(new(big.Float).SetMantExp(big.NewFloat(1), 100000))
			z.Log(x, prec)
			var w Ball
			w.Log2(prec + 32)
			w.MulInt64(&w, 100000, prec+32)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("ExpLog/RoundTrip", prec), func(t *testing.T) {
			x := NewBall(bignum.NewFloat(3.25, prec), 1e-30)
			var z Ball
			z.Log(x, prec)
			z.Exp(&z, prec)
			require.True(t, z.Overlaps(x))
		})

		t.Run(testString("Log1p", prec), func(t *testing.T) {
			var z, w Ball
			x := new(Ball).SetFloat64(0.01)
			z.Log1p(x, prec)
			w.AddInt64(x, 1, prec+32)
			w.Log(&w, prec)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Pow", prec), func(t *testing.T) {
			var z Ball
			z.Pow(NewFloat64(2), NewFloat64(1.4142135623730951), prec)
			refContains(t, &z, bignum.Pow(bignum.NewFloat(2, prec+64), bignum.NewFloat(1.4142135623730951, prec+64)), prec)

			z.Pow(NewInt64(-2), NewInt64(3), prec)
			require.True(t, z.ContainsInt64(-8))

			z.Pow(NewInt64(-2), NewFloat64(0.5), prec)
			require.False(t, z.IsFinite())
		})

		t.Run(testString("SinhCosh", prec), func(t *testing.T) {
			var s, c, u Ball
			x := NewFloat64(0.125)
			SinhCosh(&s, &c, x, prec)
			// cosh^2 - sinh^2 = 1
			c.Sqr(&c, prec)
			s.Sqr(&s, prec)
			u.Sub(&c, &s, prec)
			require.True(t, u.ContainsInt64(1))
			requireAccurate(t, &u, int(prec)-8)
		})
	}

	t.Run("Exp/Overflow", func(t *testing.T) {
		var z Ball
		x := new(Ball).SetFloat(new(big.Float).SetMantExp(big.NewFloat(1), 40))
		require.False(t, z.Exp(x, 64).IsFinite())
		x.Neg(x)
		z.Exp(x, 64)
		require.True(t, z.IsFinite())
		require.True(t, z.ContainsZero())
	})

	t.Run("Log/NonPositive", func(t *testing.T) {
		var z Ball
		require.False(t, z.Log(NewBall(big.NewFloat(0.5), 1), 64).IsFinite())
		require.False(t, z.Log(NewInt64(0), 64).IsFinite())
	})
}

func TestTrig(t *testing.T) {

	for _, prec := range testPrecs {

		for _, v := range []float64{0.25, 1, 3.140625, -10.5, 1e6} {

			x := NewFloat64(v)

			t.Run(testString("SinCos/Pythagoras", prec), func(t *testing.T) {
				var s, c, u Ball
				SinCos(&s, &c, x, prec)
				requireAccurate(t, &s, int(prec)-24)
				s.Sqr(&s, prec)
				c.Sqr(&c, prec)
				u.Add(&s, &c, prec)
				require.True(t, u.ContainsInt64(1))
			})

			t.Run(testString("Tan", prec), func(t *testing.T) {
				var s, c, z, w Ball
				SinCos(&s, &c, x, prec+32)
				w.Div(&s, &c, prec)
				z.Tan(x, prec)
				require.True(t, z.Overlaps(&w))
			})
		}

		t.Run(testString("Sin/Pi", prec), func(t *testing.T) {
			var p, s Ball
			p.Pi(prec)
			s.Sin(&p, prec)
			require.True(t, s.ContainsZero())
			require.True(t, s.Rad().CmpPow2(-int(prec)+4) < 0)
		})

		t.Run(testString("SinPi/Exact", prec), func(t *testing.T) {
			var s, c Ball
			SinCosPi(&s, &c, NewInt64(7), prec)
			require.True(t, s.IsZero())
			require.True(t, c.ContainsInt64(-1) && c.IsExact())

			SinCosPi(&s, &c, NewFloat64(2.5), prec)
			require.True(t, s.IsOne())
			require.True(t, c.IsZero())
		})

		t.Run(testString("SinPi/Sixth", prec), func(t *testing.T) {
			var s Ball
			x := new(Ball).SetFrac(1, 6, prec+64)
			s.SinPi(x, prec)
			require.True(t, s.ContainsRat(big.NewRat(1, 2)))
			requireAccurate(t, &s, int(prec)-8)
		})

		t.Run(testString("CotPi", prec), func(t *testing.T) {
			var z Ball
			z.CotPi(NewFloat64(0.25), prec)
			require.True(t, z.ContainsInt64(1))
			z.CotPi(NewInt64(3), prec)
			require.False(t, z.IsFinite())
		})

		t.Run(testString("Sinc", prec), func(t *testing.T) {
			var z, w, s Ball
			x := NewFloat64(0.75)
			z.Sinc(x, prec)
			s.Sin(x, prec+32)
			w.Div(&s, x, prec)
			require.True(t, z.Overlaps(&w))

			z.Sinc(NewBall(big.NewFloat(0), 1e-10), prec)
			require.True(t, z.ContainsInt64(1))

			z.SincPi(NewInt64(0), prec)
			require.True(t, z.IsOne())
			z.SincPi(NewFloat64(0.5), prec)
			var p Ball
			p.Pi(prec + 32)
			w.DivInt64(p.Inv(&p, prec+32), 1, prec)
			w.Mul2Exp(&w, 1)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Atan", prec), func(t *testing.T) {
			var z, p Ball
			z.Atan(NewInt64(1), prec)
			p.Pi(prec)
			p.Mul2Exp(&p, -2)
			require.True(t, z.Overlaps(&p))

			// atan(x) + atan(1/x) = pi/2
			var a, b Ball
			x := NewFloat64(3.5)
			a.Atan(x, prec)
			b.Inv(x, prec+32)
			b.Atan(&b, prec)
			a.Add(&a, &b, prec)
			p.Mul2Exp(&p, 1)
			require.True(t, a.Overlaps(&p))
			requireAccurate(t, &a, int(prec)-8)

			// 4 atan(1/5) - atan(1/239) = pi/4
			a.Atan(new(Ball).SetFrac(1, 5, prec+32), prec+16)
			a.Mul2Exp(&a, 2)
			b.Atan(new(Ball).SetFrac(1, 239, prec+32), prec+16)
			a.Sub(&a, &b, prec)
			p.Mul2Exp(&p, -1)
			require.True(t, a.Overlaps(&p))
		})

		t.Run(testString("Atan2", prec), func(t *testing.T) {
			var z, p Ball
			p.Pi(prec)
			z.Atan2(NewInt64(0), NewInt64(-1), prec)
			require.True(t, z.Overlaps(&p))

			z.Atan2(NewInt64(-1), NewInt64(-1), prec)
			p.MulInt64(&p, -3, prec)
			p.Mul2Exp(&p, -2)
			require.True(t, z.Overlaps(&p))
		})

		t.Run(testString("AsinAcos", prec), func(t *testing.T) {
			var a, b, p Ball
			x := NewFloat64(0.5)
			a.Asin(x, prec)
			p.Pi(prec)
			p.DivInt64(&p, 6, prec)
			require.True(t, a.Overlaps(&p))

			// asin + acos = pi/2
			b.Acos(x, prec)
			a.Add(&a, &b, prec)
			p.MulInt64(&p, 3, prec)
			require.True(t, a.Overlaps(&p))

			a.Asin(NewInt64(1), prec)
			p.Pi(prec)
			p.Mul2Exp(&p, -1)
			require.True(t, a.Overlaps(&p))

			a.Asin(NewBall(big.NewFloat(0.99), 0.1), prec)
			require.False(t, a.IsFinite())

			a.Asin(NewBall(big.NewFloat(0.5), 1e-10), prec)
			require.True(t, a.IsFinite())
			require.True(t, a.Rad().CmpPow2(-30) < 0)
		})
	}
}

func TestGamma(t *testing.T) {

	for _, prec := range testPrecs {

		t.Run(testString("Gamma/Integer", prec), func(t *testing.T) {
			var z Ball
			z.Gamma(NewInt64(6), prec)
			require.True(t, z.IsExact())
			require.True(t, z.ContainsInt64(120))
			require.False(t, z.Gamma(NewInt64(-3), prec).IsFinite())
		})

		t.Run(testString("Gamma/Half", prec), func(t *testing.T) {
			var z Ball
			z.Gamma(NewFloat64(0.5), prec)
			refContains(t, &z, new(big.Float).SetPrec(prec+64).Sqrt(bignum.Pi(prec+64)), prec)
			requireAccurate(t, &z, int(prec)-16)
		})

		t.Run(testString("Gamma/Reflection", prec), func(t *testing.T) {
			// Gamma(-1/2) = -2 sqrt(pi)
			var z, w Ball
			z.Gamma(NewFloat64(-0.5), prec)
			w.SetString(sqrtPi50, prec)
			w.MulInt64(&w, -2, prec)
			w.AddErrorPow2(-160)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Gamma/NonInteger", prec), func(t *testing.T) {
			// Gamma(x + 1) = x Gamma(x)
			x := NewFloat64(7.375)
			var a, b, x1 Ball
			a.Gamma(x, prec)
			a.Mul(&a, x, prec)
			x1.AddInt64(x, 1, prec)
			b.Gamma(&x1, prec)
			require.True(t, a.Overlaps(&b))
			requireAccurate(t, &b, int(prec)-16)
		})

		t.Run(testString("Lgamma", prec), func(t *testing.T) {
			var z, w Ball
			z.Lgamma(NewFloat64(10.5), prec)
			w.Gamma(NewFloat64(10.5), prec+32)
			w.Log(&w, prec)
			require.True(t, z.Overlaps(&w))

			require.True(t, z.Lgamma(NewInt64(2), prec).IsZero())
			require.False(t, z.Lgamma(NewFloat64(-2.5), prec).IsFinite())

			// near the root at 1 the result keeps its relative accuracy
			z.Lgamma(new(Ball).SetFloat(bignum.NewFloat("1.0000000001", prec)), prec)
			requireAccurate(t, &z, int(prec)-16)
		})

		t.Run(testString("Rgamma", prec), func(t *testing.T) {
			var z Ball
			require.True(t, z.Rgamma(NewInt64(-4), prec).IsZero())

			z.Rgamma(NewBall(big.NewFloat(-2), 1e-10), prec)
			require.True(t, z.IsFinite())
			require.True(t, z.ContainsZero())

			z.Rgamma(NewInt64(5), prec)
			require.True(t, z.ContainsRat(big.NewRat(1, 24)))

			var w Ball
			z.Rgamma(NewFloat64(3.3), prec)
			w.Gamma(NewFloat64(3.3), prec+32)
			w.Inv(&w, prec)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Digamma", prec), func(t *testing.T) {
			var z, g Ball
			z.Digamma(NewInt64(1), prec)
			g.Euler(prec)
			g.Neg(&g)
			require.True(t, z.Overlaps(&g))

			// digamma(x + 1) = digamma(x) + 1/x
			x := NewFloat64(2.75)
			var a, b, x1 Ball
			a.Digamma(x, prec)
			b.Inv(x, prec)
			a.Add(&a, &b, prec)
			x1.AddInt64(x, 1, prec)
			b.Digamma(&x1, prec)
			require.True(t, a.Overlaps(&b))
			requireAccurate(t, &b, int(prec)-16)

			// reflection: digamma(1 - x) - digamma(x) = pi cot(pi x)
			x = NewFloat64(-0.3)
			a.Digamma(x, prec)
			x1.Neg(x)
			x1.AddInt64(&x1, 1, prec)
			b.Digamma(&x1, prec)
			b.Sub(&b, &a, prec)
			var c, p Ball
			c.CotPi(x, prec)
			p.Pi(prec)
			c.Mul(&c, &p, prec)
			require.True(t, b.Overlaps(&c))

			require.False(t, z.Digamma(NewInt64(0), prec).IsFinite())
		})
	}
}

func TestZeta(t *testing.T) {

	for _, prec := range []uint{64, 128, 160} {

		t.Run(testString("Zeta/Three", prec), func(t *testing.T) {
			var z Ball
			z.Zeta(NewInt64(3), prec)
			requireContainsString(t, &z, apery50)
			requireAccurate(t, &z, int(prec)-16)
		})

		t.Run(testString("Zeta/Even", prec), func(t *testing.T) {
			// zeta(2) = pi^2 / 6, and the closed form agrees with Euler-Maclaurin
			var z, w, one Ball
			z.Zeta(NewInt64(2), prec)
			w.Pi(prec)
			w.Sqr(&w, prec)
			w.DivInt64(&w, 6, prec)
			require.True(t, z.Overlaps(&w))
			one.One()
			w.HurwitzZeta(NewInt64(2), &one, prec)
			require.True(t, z.Overlaps(&w))
		})

		t.Run(testString("Zeta/NonPositive", prec), func(t *testing.T) {
			var z Ball
			z.Zeta(NewInt64(-1), prec)
			require.True(t, z.ContainsRat(big.NewRat(-1, 12)))
			require.True(t, z.Zeta(NewInt64(-4), prec).IsZero())
			z.Zeta(NewInt64(0), prec)
			require.True(t, z.ContainsRat(big.NewRat(-1, 2)))
		})

		t.Run(testString("Zeta/Pole", prec), func(t *testing.T) {
			var z Ball
			require.False(t, z.Zeta(NewBall(big.NewFloat(1), 1e-5), prec).IsFinite())
		})

		t.Run(testString("HurwitzZeta/Half", prec), func(t *testing.T) {
			// zeta(s, 1/2) = (2^s - 1) zeta(s)
			s := NewFloat64(2.5)
			var a, b, c Ball
			a.HurwitzZeta(s, NewFloat64(0.5), prec)
			b.Zeta(s, prec)
			c.Pow(NewInt64(2), s, prec)
			c.SubInt64(&c, 1, prec)
			b.Mul(&b, &c, prec)
			require.True(t, a.Overlaps(&b))
			requireAccurate(t, &a, int(prec)-24)
		})

		t.Run(testString("HurwitzZeta/Catalan", prec), func(t *testing.T) {
			// G = (zeta(2, 1/4) - zeta(2, 3/4)) / 16
			var a, b Ball
			a.HurwitzZeta(NewInt64(2), NewFloat64(0.25), prec)
			b.HurwitzZeta(NewInt64(2), NewFloat64(0.75), prec)
			a.Sub(&a, &b, prec)
			a.Mul2Exp(&a, -4)
			requireContainsString(t, &a, catalan50)
		})

		t.Run(testString("HurwitzZeta/Negative", prec), func(t *testing.T) {
			// zeta(s, 1) = zeta(s, 2) + 1
			s := NewFloat64(-1.5)
			var a, b Ball
			a.HurwitzZeta(s, NewInt64(1), prec)
			b.HurwitzZeta(s, NewInt64(2), prec)
			b.AddInt64(&b, 1, prec)
			require.True(t, a.Overlaps(&b))
			require.True(t, a.IsNegative())
		})
	}
}

func TestLambertW(t *testing.T) {

	for _, prec := range testPrecs {

		t.Run(testString("LambertW/Omega", prec), func(t *testing.T) {
			var z Ball
			z.LambertW(NewInt64(1), 0, prec)
			if prec <= 160 {
				requireContainsString(t, &z, omega50)
			}
			requireAccurate(t, &z, int(prec)-8)
		})

		for _, tc := range []struct {
			x      float64
			branch int
		}{{1e-40, 0}, {-0.25, 0}, {10, 0}, {1e100, 0}, {-0.25, -1}, {-1e-10, -1}, {-0.3678, 0}} {

			t.Run(testString("LambertW/Inverse", prec), func(t *testing.T) {
				// W e^W = x
				var w, e Ball
				x := NewFloat64(tc.x)
				w.LambertW(x, tc.branch, prec)
				require.True(t, w.IsFinite())
				e.Exp(&w, prec+32)
				e.Mul(&e, &w, prec+32)
				require.True(t, e.Overlaps(x))
				if tc.branch == -1 {
					require.True(t, w.upper().Cmp(big.NewFloat(-1)) <= 0)
				} else {
					require.True(t, w.lower().Cmp(big.NewFloat(-1)) >= 0)
				}
			})
		}

		t.Run(testString("LambertW/Ball", prec), func(t *testing.T) {
			var z, a, b Ball
			x := NewBall(big.NewFloat(2), 1e-6)
			z.LambertW(x, 0, prec)
			a.LambertW(NewFloat64(2-5e-7), 0, prec)
			b.LambertW(NewFloat64(2+5e-7), 0, prec)
			require.True(t, z.Overlaps(&a))
			require.True(t, z.Overlaps(&b))
		})

		t.Run(testString("LambertW/Domain", prec), func(t *testing.T) {
			var z Ball
			require.False(t, z.LambertW(NewFloat64(-0.5), 0, prec).IsFinite())
			require.False(t, z.LambertW(NewFloat64(0.5), -1, prec).IsFinite())
			require.False(t, z.LambertW(NewInt64(0), -1, prec).IsFinite())
			require.True(t, z.LambertW(NewInt64(0), 0, prec).IsZero())
		})
	}

	t.Run("LambertW/Branch", func(t *testing.T) {
		require.Panics(t, func() {
			new(Ball).LambertW(NewInt64(1), 2, 64)
		})
	})
}
