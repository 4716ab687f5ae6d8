package series

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
	"github.com/tuneinsight/ballseries/utils/bignum"
)

// scaledVec is a run of consecutive coefficients sharing one exponent:
// coefficient offset+i is mant[i] * 2^exp, up to an absolute error err[i].
type scaledVec struct {
	offset int
	exp    int
	mant   []big.Int
	err    []ball.Mag
}

// slope returns the integer s such that the coefficients c_k 2^(s k) of a and b
// have roughly constant magnitude.
func slope(a, b []ball.Ball) int {

	var sum float64
	var cnt int

	for _, v := range [][]ball.Ball{a, b} {

		first, last := -1, -1
		for i := range v {
			if v[i].Mid().Sign() != 0 {
				if first < 0 {
					first = i
				}
				last = i
			}
		}

		if first >= 0 && last > first {
			e0 := v[first].Mid().MantExp(nil)
			e1 := v[last].Mid().MantExp(nil)
			sum += float64(e1-e0) / float64(last-first)
			cnt++
		}
	}

	if cnt == 0 {
		return 0
	}

	return -int(math.Round(sum / float64(cnt)))
}

// splitBlocks cuts a into runs whose nonzero scaled midpoints have exponents
// within spread bits of each other, and converts each run to a scaledVec with
// mantissas of wp bits below the largest exponent of the run.
func splitBlocks(a []ball.Ball, s, spread int, wp uint) (blocks []scaledVec) {

	start := 0
	for start < len(a) {

		emin, emax := math.MaxInt, math.MinInt
		end := start
		for ; end < len(a); end++ {
			if a[end].Mid().Sign() == 0 {
				continue
			}
			e := a[end].Mid().MantExp(nil) + s*end
			lo, hi := utils.Min(emin, e), utils.Max(emax, e)
			if hi-lo > spread {
				break
			}
			emin, emax = lo, hi
		}

		blocks = append(blocks, newScaledVec(a[start:end], start, s, emax, wp))
		start = end
	}

	return
}

// newScaledVec converts the coefficients v (starting at index offset of the operand)
// scaled by 2^(s k) into integer mantissas with unit 2^(top - wp).
func newScaledVec(v []ball.Ball, offset, s, top int, wp uint) (sv scaledVec) {

	sv.offset = offset
	sv.mant = make([]big.Int, len(v))
	sv.err = make([]ball.Mag, len(v))

	if top == math.MinInt {
		// no nonzero midpoint
		top = 0
	}
	sv.exp = top - int(wp)

	f := new(big.Float)
	var e ball.Mag
	e.SetPow2(sv.exp)

	for i := range v {

		k := offset + i
		sv.err[i].Mul2Exp(v[i].Rad(), s*k)

		if v[i].Mid().Sign() == 0 {
			continue
		}

		f.SetPrec(0)
		f.SetMantExp(v[i].Mid(), s*k-sv.exp)
		if _, acc := f.Int(&sv.mant[i]); acc != big.Exact {
			sv.err[i].Add(&sv.err[i], &e)
		}
	}

	return
}

// magnitudes returns upper bounds of |c_k| and of the errors of the coefficients held
// by the blocks, as float64 values relative to 2^scale, together with scale.
func magnitudes(blocks []scaledVec, n int) (abs, err []float64, scale int) {

	absM := make([]ball.Mag, n)
	errM := make([]ball.Mag, n)

	f := new(big.Float)
	scale = math.MinInt

	var t ball.Mag
	for _, b := range blocks {
		for i := range b.mant {
			k := b.offset + i
			if b.mant[i].Sign() != 0 {
				f.SetPrec(0)
				f.SetInt(&b.mant[i])
				f.SetMantExp(f, b.exp)
				absM[k].SetFloat(f)
			}
			errM[k].Set(&b.err[i])
			t.Add(&absM[k], &errM[k])
			if !t.IsZero() {
				scale = utils.Max(scale, t.Float().MantExp(nil))
			}
		}
	}

	if scale == math.MinInt {
		scale = 0
	}

	abs = make([]float64, n)
	err = make([]float64, n)
	for k := 0; k < n; k++ {
		abs[k] = t.Mul2Exp(&absM[k], -scale).Float64()
		err[k] = t.Mul2Exp(&errM[k], -scale).Float64()
	}

	return
}

// mulMagnitudes returns upper bounds for the n first coefficients of
// |a| eb + ea |b| + ea eb, where every operand is non-negative.
func mulMagnitudes(absA, errA, absB, errB []float64, n int) []float64 {

	r := make([]float64, n)
	for k := 0; k < n; k++ {
		var s float64
		lo := utils.Max(0, k-len(absB)+1)
		hi := utils.Min(k, len(absA)-1)
		for j := lo; j <= hi; j++ {
			s += absA[j]*errB[k-j] + errA[j]*(absB[k-j]+errB[k-j])
		}
		r[k] = s
	}

	// rounding errors of the float64 products and sums
	safety := 1 + float64(len(absA)+len(absB)+4)*0x1p-50
	for k := range r {
		r[k] *= safety
	}

	return r
}

// minPositive returns the smallest positive entry of the slices, or +Inf.
func minPositive(v ...[]float64) float64 {
	m := math.Inf(1)
	for _, s := range v {
		for _, x := range s {
			if x > 0 && x < m {
				m = x
			}
		}
	}
	return m
}

// mulMagnitudesExact is mulMagnitudes computed with Mag arithmetic, used when the
// float64 products could underflow.
func mulMagnitudesExact(absA, errA, absB, errB []float64, n int) []ball.Mag {

	toMag := func(v []float64) []ball.Mag {
		m := make([]ball.Mag, len(v))
		for i := range v {
			m[i].SetFloat64(v[i])
		}
		return m
	}

	aa, ea, ab, eb := toMag(absA), toMag(errA), toMag(absB), toMag(errB)

	r := make([]ball.Mag, n)
	var t, u ball.Mag
	for k := 0; k < n; k++ {
		lo := utils.Max(0, k-len(absB)+1)
		hi := utils.Min(k, len(absA)-1)
		for j := lo; j <= hi; j++ {
			r[k].AddMul(&aa[j], &eb[k-j])
			u.Add(&ab[k-j], &eb[k-j])
			t.Mul(&ea[j], &u)
			r[k].Add(&r[k], &t)
		}
	}
	return r
}

// mullowBlock writes a * b truncated to n into res, which must not alias a or b.
// Every coefficient of a and b is finite.
//
// Both operands are rescaled by 2^(s k) to flatten their exponent profile and cut
// into blocks of bounded exponent spread. Every block is turned into an exact integer
// polynomial and every pair of blocks is multiplied exactly with one big.Int
// multiplication by Kronecker substitution. The radius is bounded by an independent
// float64 convolution of the magnitudes.
func (eval *Evaluator) mullowBlock(a, b []ball.Ball, n int, prec uint, res *Poly) {

	la, lb := len(a), len(b)
	square := la == lb && &a[0] == &b[0]

	wp := prec + uint(2*bits.Len(uint(n))) + 10
	s := slope(a, b)

	blocksA := splitBlocks(a, s, eval.BlockExponentSpread, wp)
	blocksB := blocksA
	if !square {
		blocksB = splitBlocks(b, s, eval.BlockExponentSpread, wp)
	}

	acc := make([]ball.Ball, n)

	var t ball.Ball
	prod := make([]big.Int, n)

	for i := range blocksA {
		for j := range blocksB {

			x, y := &blocksA[i], &blocksB[j]

			off := x.offset + y.offset
			if off >= n {
				continue
			}

			m := utils.Min(n-off, len(x.mant)+len(y.mant)-1)
			bignum.MulPolyLow(x.mant, y.mant, m, prod)

			for k := 0; k < m; k++ {
				if prod[k].Sign() == 0 {
					continue
				}
				t.SetInt(&prod[k])
				t.Mul2Exp(&t, x.exp+y.exp)
				acc[off+k].Add(&acc[off+k], &t, wp)
			}
		}
	}

	absA, errA, scaleA := magnitudes(blocksA, la)
	absB, errB, scaleB := absA, errA, scaleA
	if !square {
		absB, errB, scaleB = magnitudes(blocksB, lb)
	}

	var rad ball.Mag

	if minPositive(absA, errA)*minPositive(absB, errB) > 0x1p-1000 {
		r := mulMagnitudes(absA, errA, absB, errB, n)
		for k := 0; k < n; k++ {
			if r[k] != 0 {
				rad.SetFloat64(r[k])
				rad.Mul2Exp(&rad, scaleA+scaleB)
				acc[k].AddError(&rad)
			}
		}
	} else {
		r := mulMagnitudesExact(absA, errA, absB, errB, n)
		for k := 0; k < n; k++ {
			if !r[k].IsZero() {
				rad.Mul2Exp(&r[k], scaleA+scaleB)
				acc[k].AddError(&rad)
			}
		}
	}

	res.SetLength(n)
	for k := 0; k < n; k++ {
		acc[k].Mul2Exp(&acc[k], -s*k)
		res.Coeffs[k].SetRound(&acc[k], prec)
	}
}
