package cball

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballseries/ball"
)

func testString(opname string, prec uint) string {
	return fmt.Sprintf("%s/prec=%d", opname, prec)
}

func requireOverlaps(t *testing.T, x, y *Ball) {
	require.True(t, x.Overlaps(y), "%s does not overlap %s", x.Text(30), y.Text(30))
}

func TestComplexBall(t *testing.T) {

	for _, prec := range []uint{64, 128, 256} {

		x := NewFloat64(1.25, -0.75)
		y := NewFloat64(-2.5, 3.125)

		t.Run(testString("MulDiv", prec), func(t *testing.T) {
			var z Ball
			z.Mul(x, y, prec)
			z.Div(&z, y, prec)
			requireOverlaps(t, &z, x)
		})

		t.Run(testString("Inv", prec), func(t *testing.T) {
			var z, w Ball
			z.Inv(y, prec)
			w.Mul(&z, y, prec)
			require.True(t, w.Re.ContainsInt64(1))
			require.True(t, w.Im.ContainsZero())
		})

		t.Run(testString("ExpLog", prec), func(t *testing.T) {
			var z Ball
			z.Log(y, prec)
			z.Exp(&z, prec)
			requireOverlaps(t, &z, y)
		})

		t.Run(testString("AbsArg", prec), func(t *testing.T) {
			z := NewFloat64(3, 4)
			require.True(t, z.Abs(prec).ContainsInt64(5))

			var p ball.Ball
			p.Pi(prec)
			p.Mul2Exp(&p, -1)
			require.True(t, NewFloat64(0, 2).Arg(prec).Overlaps(&p))
		})

		t.Run(testString("Aliasing", prec), func(t *testing.T) {
			var want, got Ball
			want.Mul(x, y, prec)
			got.Set(x)
			got.Mul(&got, y, prec)
			require.True(t, want.Re.Equal(&got.Re) && want.Im.Equal(&got.Im))
		})

		t.Run(testString("Log/ContainsZero", prec), func(t *testing.T) {
			var z Ball
			require.False(t, z.Log(new(Ball), prec).IsFinite())
		})
	}
}

func TestLgammaDigamma(t *testing.T) {

	for _, prec := range []uint{64, 128, 256} {

		x := NewFloat64(2, 3)

		t.Run(testString("Lgamma/Recurrence", prec), func(t *testing.T) {
			var a, b, l Ball
			a.Lgamma(x, prec)
			b.AddInt64(x, 1, prec)
			b.Lgamma(&b, prec)
			l.Log(x, prec)
			a.Add(&a, &l, prec)
			requireOverlaps(t, &a, &b)
			require.GreaterOrEqual(t, a.Re.RelAccuracyBits(), int(prec)-16)
		})

		t.Run(testString("Lgamma/CriticalLine", prec), func(t *testing.T) {
			// |Gamma(1/2 + it)|^2 = pi / cosh(pi t)
			var z Ball
			z.Re.SetFrac(1, 2, prec)
			z.Im.SetFloat64(5.5)
			z.Lgamma(&z, prec)

			var w, c ball.Ball
			w.Pi(prec + 16)
			c.MulFloat(&w, big.NewFloat(5.5), prec+16)
			c.Cosh(&c, prec+16)
			w.Div(&w, &c, prec+16)
			w.Log(&w, prec+16)
			w.Mul2Exp(&w, -1)
			require.True(t, z.Re.Overlaps(&w))
		})

		t.Run(testString("Lgamma/LeftHalfPlane", prec), func(t *testing.T) {
			var z Ball
			require.False(t, z.Lgamma(NewFloat64(-1, 3), prec).IsFinite())
		})

		t.Run(testString("Digamma/Recurrence", prec), func(t *testing.T) {
			var a, b, u Ball
			a.Digamma(x, prec)
			b.AddInt64(x, 1, prec)
			b.Digamma(&b, prec)
			u.Inv(x, prec)
			a.Add(&a, &u, prec)
			requireOverlaps(t, &a, &b)
		})

		t.Run(testString("Digamma/CriticalLine", prec), func(t *testing.T) {
			// Im digamma(1/2 + it) = pi/2 tanh(pi t)
			var z Ball
			z.Re.SetFrac(1, 2, prec)
			z.Im.SetFloat64(0.75)
			z.Digamma(&z, prec)

			var p, s, c ball.Ball
			p.Pi(prec + 16)
			s.MulFloat(&p, big.NewFloat(0.75), prec+16)
			ball.SinhCosh(&s, &c, &s, prec+16)
			s.Div(&s, &c, prec+16)
			s.Mul(&s, &p, prec+16)
			s.Mul2Exp(&s, -1)
			require.True(t, z.Im.Overlaps(&s))
		})
	}
}

func TestZeta(t *testing.T) {

	for _, prec := range []uint{64, 128} {

		t.Run(testString("HurwitzZeta/Recurrence", prec), func(t *testing.T) {
			// zeta(s, a) = a^-s + zeta(s, a+1)
			s := ball.NewInt64(3)
			a := NewFloat64(1, 2)

			var z0, z1, p Ball
			var ns ball.Ball
			z0.HurwitzZeta(s, a, prec)
			z1.AddInt64(a, 1, prec)
			z1.HurwitzZeta(s, &z1, prec)
			ns.Neg(s)
			p.PowReal(a, &ns, prec)
			z1.Add(&z1, &p, prec)
			requireOverlaps(t, &z0, &z1)
			require.GreaterOrEqual(t, z0.Re.RelAccuracyBits(), int(prec)-16)
		})

		t.Run(testString("ZetaSeries/Real", prec), func(t *testing.T) {
			s := NewFloat64(2, 0)
			c := ZetaSeries(s, ball.NewInt64(1), 3, prec)
			require.Len(t, c, 3)

			var z ball.Ball
			z.Zeta(ball.NewInt64(2), prec)
			require.True(t, c[0].Re.Overlaps(&z))
			require.True(t, c[0].Im.ContainsZero())

			// zeta'(2)
			r, _ := new(big.Rat).SetString("-0.93754825431584375370257409456786497789786028861483")
			require.True(t, c[1].Re.ContainsRat(r), c[1].Text(30))
		})

		t.Run(testString("ZetaSeries/FirstZero", prec), func(t *testing.T) {
			s := new(Ball)
			s.Re.SetFrac(1, 2, prec)
			t0, ok := new(big.Rat).SetString("14.134725141734693790")
			require.True(t, ok)
			s.Im.SetFloat(new(big.Float).SetPrec(prec).SetRat(t0))
			c := ZetaSeries(s, ball.NewInt64(1), 2, prec)

			var m ball.Mag
			m.SetFloat64(1e-12)
			require.True(t, c[0].Re.AbsUpper(new(ball.Mag)).Cmp(&m) < 0, c[0].Text(20))
			require.True(t, c[0].Im.AbsUpper(new(ball.Mag)).Cmp(&m) < 0, c[0].Text(20))
			require.True(t, c[1].IsFinite())
			require.False(t, c[1].ContainsZero())
		})

		t.Run(testString("ZetaSeries/Pole", prec), func(t *testing.T) {
			c := ZetaSeries(NewFloat64(1, 0), ball.NewInt64(1), 2, prec)
			require.False(t, c[0].IsFinite())
		})
	}
}
