package bignum

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testFunc1("Log", 1.4142135623730951, math.Log, Log, 1e-15, t)
	testFunc1("Exp", 1.4142135623730951, math.Exp, Exp, 1e-15, t)
	testFunc2("Pow", 2, 1.4142135623730951, math.Pow, Pow, 1e-15, t)

	t.Run("Constants", func(t *testing.T) {
		pi, _ := Pi(53).Float64()
		require.Equal(t, math.Pi, pi)
		ln2, _ := Log2(53).Float64()
		require.Equal(t, math.Ln2, ln2)
	})

	t.Run("Round", func(t *testing.T) {
		for x, want := range map[float64]int64{2.5: 3, -2.5: -3, 2.49: 2, -0.4: 0, 7: 7, 1e15: 1e15} {
			r := Round(NewFloat(x, 128))
			v, _ := r.Int64()
			require.Equal(t, want, v, fmt.Sprintf("round(%v)", x))
		}
	})

	t.Run("Exponent/LowBit", func(t *testing.T) {
		x := NewFloat(12, 64) // 1100b
		require.Equal(t, 4, Exponent(x))
		require.Equal(t, 2, LowBit(x))
		y := NewFloat(0.375, 64) // 0.011b
		require.Equal(t, -1, Exponent(y))
		require.Equal(t, -3, LowBit(y))
	})
}

func testFunc1(name string, x float64, f func(x float64) (y float64), g func(x *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53)).Float64()
		require.InDelta(t, f(x), y, delta)
	})
}

func testFunc2(name string, x, e float64, f func(x, e float64) (y float64), g func(x, e *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53), NewFloat(e, 53)).Float64()
		require.InDelta(t, f(x, e), y, delta)
	})
}

func TestMulPolyLow(t *testing.T) {

	naive := func(a, b []int64, n int) []int64 {
		c := make([]int64, n)
		for i := range a {
			for j := range b {
				if i+j < n {
					c[i+j] += a[i] * b[j]
				}
			}
		}
		return c
	}

	toBig := func(v []int64) []big.Int {
		r := make([]big.Int, len(v))
		for i := range v {
			r[i].SetInt64(v[i])
		}
		return r
	}

	for _, tc := range []struct {
		a, b []int64
		n    int
	}{
		{[]int64{1, 1}, []int64{1, -1}, 2},
		{[]int64{3, -7, 0, 5}, []int64{-2, 4, 9}, 6},
		{[]int64{-1, -1, -1}, []int64{-1, -1, -1}, 5},
		{[]int64{1 << 20, -(1 << 21), 3}, []int64{-(1 << 19), 1, 1 << 15, -5}, 4},
		{[]int64{0, 0, 2}, []int64{5}, 3},
	} {
		t.Run(fmt.Sprintf("%v*%v", tc.a, tc.b), func(t *testing.T) {
			a, b := toBig(tc.a), toBig(tc.b)
			res := make([]big.Int, tc.n)
			MulPolyLow(a, b, tc.n, res)
			want := naive(tc.a, tc.b, tc.n)
			for i := range want {
				require.Equal(t, want[i], res[i].Int64(), "coefficient %d", i)
			}
		})
	}

	t.Run("Square", func(t *testing.T) {
		a := toBig([]int64{5, -3, 2, -1})
		res := make([]big.Int, 7)
		MulPolyLow(a, a, 7, res)
		want := naive([]int64{5, -3, 2, -1}, []int64{5, -3, 2, -1}, 7)
		for i := range want {
			require.Equal(t, want[i], res[i].Int64())
		}
	})
}
