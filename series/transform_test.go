package series

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballseries/ball"
)

func TestTaylorShift(t *testing.T) {

	eval := newTestEvaluator()
	prng := newTestPRNG(t)

	shifts := map[string]func(a *Poly, c *ball.Ball, prec uint, res *Poly){
		"TaylorShift":            eval.TaylorShift,
		"TaylorShiftHorner":      eval.TaylorShiftHorner,
		"TaylorShiftDivConquer":  eval.TaylorShiftDivConquer,
		"TaylorShiftConvolution": eval.TaylorShiftConvolution,
	}

	t.Run("TaylorShift/Exact", func(t *testing.T) {
		// (x + 1)^3
		for name, shift := range shifts {
			res := NewPoly(0)
			shift(NewPolyFromFloat64(0, 0, 0, 1), ball.NewInt64(1), 64, res)
			requireContainsRats(t, res, rats(t, "1", "3", "3", "1"))
			require.Equal(t, 4, res.Length(), name)
		}
	})

	for _, prec := range testPrecs {
		for _, n := range []int{5, 20, 64} {
			t.Run(testString("TaylorShift/Consistency", n, prec), func(t *testing.T) {

				a := randPoly(prng, n, prec, false)
				c := ball.NewFloat64(-0.75)

				ref := NewPoly(0)
				eval.TaylorShiftHorner(a, c, prec, ref)

				for name, shift := range shifts {
					res := NewPoly(0)
					shift(a, c, prec, res)
					require.Equal(t, n, res.Length(), name)
					requireOverlaps(t, ref, res)
				}

				// shifting back by -c recovers a
				back := NewPoly(0)
				var nc ball.Ball
				nc.Neg(c)
				eval.TaylorShift(ref, &nc, prec, back)
				requireOverlaps(t, back, a)

				// the value at zero is a(c)
				var y ball.Ball
				eval.Evaluate(a, c, prec, &y)
				require.True(t, y.Overlaps(&ref.Coeffs[0]))
			})
		}
	}
}

func TestTransforms(t *testing.T) {

	eval := newTestEvaluator()
	prng := newTestPRNG(t)

	t.Run("Borel", func(t *testing.T) {
		a := NewPolyFromFloat64(1, 1, 1, 1, 1)
		res := NewPoly(0)
		eval.BorelTransform(a, 64, res)
		requireContainsRats(t, res, rats(t, "1", "1", "1/2", "1/6", "1/24"))

		eval.InvBorelTransform(res, 64, res)
		requireContainsRats(t, res, rats(t, "1", "1", "1", "1", "1"))
	})

	t.Run("BinomialTransform/Exact", func(t *testing.T) {
		// a_j = 2^j gives b_k = (1 - 2)^k
		a := NewPolyFromFloat64(1, 2, 4, 8, 16, 32)
		want := rats(t, "1", "-1", "1", "-1", "1", "-1")

		for name, f := range map[string]func(a *Poly, n int, prec uint, res *Poly){
			"BinomialTransform":          eval.BinomialTransform,
			"BinomialTransformBasecase": eval.BinomialTransformBasecase,
			"BinomialTransformBorel":    eval.BinomialTransformBorel,
		} {
			res := NewPoly(0)
			f(a, 6, 64, res)
			require.Equal(t, 6, res.Length(), name)
			requireContainsRats(t, res, want)
		}
	})

	for _, prec := range testPrecs {
		for _, n := range []int{8, 30} {
			t.Run(testString("BinomialTransform/Involution", n, prec), func(t *testing.T) {
				a := randPoly(prng, n, prec, false)

				b0, b1 := NewPoly(0), NewPoly(0)
				eval.BinomialTransformBasecase(a, n, prec, b0)
				eval.BinomialTransformBorel(a, n, prec, b1)
				requireOverlaps(t, b0, b1)

				eval.BinomialTransform(b0, n, prec, b0)
				requireOverlaps(t, b0, a)
			})
		}
	}

	t.Run("BorelRoundTrip", func(t *testing.T) {
		prec := uint(128)
		a := randPoly(prng, 25, prec, true)
		res := NewPoly(0)
		eval.BorelTransform(a, prec, res)
		eval.InvBorelTransform(res, prec, res)

		want := make([]*big.Rat, a.Length())
		for i := range want {
			want[i], _ = a.Coeffs[i].Mid().Rat(nil)
		}
		requireContainsRats(t, res, want)
	})
}
