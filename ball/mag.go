package ball

import (
	"math"
	"math/big"
)

// MagPrec is the number of mantissa bits of a Mag.
const MagPrec = 30

// Mag is an upper bound for a non-negative real number, stored with MagPrec bits
// and rounded away from zero by every operation. A Mag may be +Inf.
// The zero value is 0.
type Mag struct {
	f big.Float
}

func newMagFloat() *big.Float {
	return new(big.Float).SetPrec(MagPrec).SetMode(big.AwayFromZero)
}

// newLowerFloat returns a scratch float rounding toward -Inf, used for lower bounds.
func newLowerFloat() *big.Float {
	return new(big.Float).SetPrec(MagPrec).SetMode(big.ToNegativeInf)
}

func (m *Mag) store(t *big.Float) *Mag {
	m.f.SetMode(big.AwayFromZero)
	m.f.SetPrec(MagPrec)
	m.f.Set(t)
	return m
}

// Float returns the value of m as a *big.Float. The result must not be modified.
func (m *Mag) Float() *big.Float {
	return &m.f
}

// Zero sets m to 0.
func (m *Mag) Zero() *Mag {
	return m.store(newMagFloat())
}

// SetInf sets m to +Inf.
func (m *Mag) SetInf() *Mag {
	return m.store(newMagFloat().SetInf(false))
}

// IsZero returns true if m is 0.
func (m *Mag) IsZero() bool {
	return m.f.Sign() == 0
}

// IsInf returns true if m is +Inf.
func (m *Mag) IsInf() bool {
	return m.f.IsInf()
}

// Set sets m to x.
func (m *Mag) Set(x *Mag) *Mag {
	if m != x {
		m.store(&x.f)
	}
	return m
}

// SetFloat sets m to an upper bound of |x|.
func (m *Mag) SetFloat(x *big.Float) *Mag {
	t := newMagFloat()
	t.Set(x)
	t.Abs(t)
	return m.store(t)
}

// SetFloat64 sets m to an upper bound of |x|. NaN is mapped to +Inf.
func (m *Mag) SetFloat64(x float64) *Mag {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return m.SetInf()
	}
	return m.store(newMagFloat().SetFloat64(math.Abs(x)))
}

// SetUint64 sets m to an upper bound of x.
func (m *Mag) SetUint64(x uint64) *Mag {
	return m.store(newMagFloat().SetUint64(x))
}

// SetPow2 sets m to 2^e.
func (m *Mag) SetPow2(e int) *Mag {
	t := newMagFloat().SetInt64(1)
	return m.store(t.SetMantExp(t, e))
}

// Add sets m to an upper bound of x + y.
func (m *Mag) Add(x, y *Mag) *Mag {
	if x.IsInf() || y.IsInf() {
		return m.SetInf()
	}
	t := newMagFloat()
	t.Add(&x.f, &y.f)
	return m.store(t)
}

// Mul sets m to an upper bound of x * y. 0 * Inf is 0.
func (m *Mag) Mul(x, y *Mag) *Mag {
	if x.IsZero() || y.IsZero() {
		return m.Zero()
	}
	if x.IsInf() || y.IsInf() {
		return m.SetInf()
	}
	t := newMagFloat()
	t.Mul(&x.f, &y.f)
	return m.store(t)
}

// AddMul sets m to an upper bound of m + x * y.
func (m *Mag) AddMul(x, y *Mag) *Mag {
	var t Mag
	t.Mul(x, y)
	return m.Add(m, &t)
}

// MulFloat sets m to an upper bound of x * |y|.
func (m *Mag) MulFloat(x *Mag, y *big.Float) *Mag {
	var t Mag
	t.SetFloat(y)
	return m.Mul(x, &t)
}

// MulUint64 sets m to an upper bound of x * y.
func (m *Mag) MulUint64(x *Mag, y uint64) *Mag {
	var t Mag
	t.SetUint64(y)
	return m.Mul(x, &t)
}

// Mul2Exp sets m to x * 2^e.
func (m *Mag) Mul2Exp(x *Mag, e int) *Mag {
	if x.IsZero() || x.IsInf() {
		return m.Set(x)
	}
	t := newMagFloat()
	t.SetMantExp(&x.f, e)
	return m.store(t)
}

// QuoLower sets m to an upper bound of x / lo, where lo is a lower bound of a positive
// quantity. If lo <= 0, m is set to +Inf.
func (m *Mag) QuoLower(x *Mag, lo *big.Float) *Mag {
	if x.IsZero() {
		return m.Zero()
	}
	if lo.Sign() <= 0 || x.IsInf() {
		return m.SetInf()
	}
	if lo.IsInf() {
		return m.Zero()
	}
	t := newMagFloat()
	t.Quo(&x.f, lo)
	return m.store(t)
}

// QuoUint64 sets m to an upper bound of x / y. y must be nonzero.
func (m *Mag) QuoUint64(x *Mag, y uint64) *Mag {
	return m.QuoLower(x, new(big.Float).SetUint64(y))
}

// Sqrt sets m to an upper bound of sqrt(x).
func (m *Mag) Sqrt(x *Mag) *Mag {
	if x.IsZero() || x.IsInf() {
		return m.Set(x)
	}
	t := newMagFloat()
	t.Sqrt(&x.f)
	// Sqrt is not guaranteed to honor the rounding mode, add 4 ulps.
	t.Mul(t, newMagFloat().SetFloat64(1+1.0/(1<<(MagPrec-2))))
	return m.store(t)
}

// Pow sets m to an upper bound of x^n.
func (m *Mag) Pow(x *Mag, n uint) *Mag {
	var r, b Mag
	r.SetUint64(1)
	b.Set(x)
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			r.Mul(&r, &b)
		}
		b.Mul(&b, &b)
	}
	return m.Set(&r)
}

// Max sets m to max(x, y).
func (m *Mag) Max(x, y *Mag) *Mag {
	if x.Cmp(y) >= 0 {
		return m.Set(x)
	}
	return m.Set(y)
}

// Min sets m to min(x, y).
func (m *Mag) Min(x, y *Mag) *Mag {
	if x.Cmp(y) <= 0 {
		return m.Set(x)
	}
	return m.Set(y)
}

// Cmp compares m and y.
func (m *Mag) Cmp(y *Mag) int {
	return m.f.Cmp(&y.f)
}

// CmpPow2 compares m and 2^e.
func (m *Mag) CmpPow2(e int) int {
	var t Mag
	return m.Cmp(t.SetPow2(e))
}

// Float64 returns an upper bound of m as a float64 (possibly +Inf).
func (m *Mag) Float64() float64 {
	v, acc := m.f.Float64()
	if acc == big.Below {
		v = math.Nextafter(v, math.Inf(1))
	}
	return v
}

// Log2 returns an upper bound of log2(m) as a float64; -Inf for 0 and +Inf for +Inf.
func (m *Mag) Log2() float64 {
	if m.IsZero() {
		return math.Inf(-1)
	}
	if m.IsInf() {
		return math.Inf(1)
	}
	mant := new(big.Float)
	e := m.f.MantExp(mant)
	fm, _ := mant.Float64()
	return float64(e) + math.Log2(fm) + 1e-9
}

// Exp sets m to an upper bound of exp(x).
func (m *Mag) Exp(x *Mag) *Mag {
	v := x.Float64()
	if v < 700 {
		return m.SetFloat64(math.Exp(v) * (1 + 1e-12))
	}
	// exp(v) = 2^(v log2(e))
	l := v * math.Log2E * (1 + 1e-12)
	if l > 1<<40 {
		return m.SetInf()
	}
	k := math.Floor(l)
	m.SetFloat64(math.Exp2(l-k) * (1 + 1e-12))
	return m.Mul2Exp(m, int(k))
}

// Expm1 sets m to an upper bound of exp(x) - 1.
func (m *Mag) Expm1(x *Mag) *Mag {
	v := x.Float64()
	if v < 1e-3 {
		// e^v - 1 <= v + v^2 for v <= 1
		var t Mag
		t.Mul(x, x)
		return m.Add(x, &t)
	}
	if v < 700 {
		return m.SetFloat64(math.Expm1(v) * (1 + 1e-12))
	}
	return m.Exp(x)
}

// Text returns a decimal representation of m.
func (m *Mag) Text(digits int) string {
	return m.f.Text('g', digits)
}

// String implements fmt.Stringer.
func (m *Mag) String() string {
	return m.Text(6)
}
