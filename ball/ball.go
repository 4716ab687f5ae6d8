// Package ball implements arbitrary-precision real ball arithmetic: a real number is
// represented by a midpoint and a radius, and every operation returns a ball that is
// guaranteed to contain the exact result of the operation applied to any point of the
// input balls.
package ball

import (
	"fmt"
	"math"
	"math/big"

	"github.com/zeebo/blake3"
)

// Ball is the set [mid - rad, mid + rad].
// The midpoint is always finite; a ball whose radius is +Inf is indeterminate
// and stands for "any real number". The zero value is the exact number 0.
//
// Operations follow the math/big convention: the receiver is the result, which may
// alias any of the operands.
type Ball struct {
	mid big.Float
	rad Mag
}

// NewInt64 returns a new exact ball equal to v.
func NewInt64(v int64) *Ball {
	return new(Ball).SetInt64(v)
}

// NewFloat64 returns a new exact ball equal to v.
func NewFloat64(v float64) *Ball {
	return new(Ball).SetFloat64(v)
}

// NewBall returns a new ball with the given midpoint and radius.
func NewBall(mid *big.Float, rad float64) *Ball {
	z := new(Ball).SetFloat(mid)
	z.rad.SetFloat64(rad)
	return z
}

// Mid returns the midpoint of x. The result must not be modified.
func (x *Ball) Mid() *big.Float {
	return &x.mid
}

// Rad returns the radius of x. The result must not be modified.
func (x *Ball) Rad() *Mag {
	return &x.rad
}

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
}

// setExactMid resets the midpoint so that the next integer/float setter stores the value exactly.
func (z *Ball) setExactMid() *big.Float {
	z.mid.SetPrec(0)
	z.mid.SetMode(big.ToNearestEven)
	if z.mid.Signbit() {
		z.mid.Neg(&z.mid)
	}
	return &z.mid
}

// Zero sets z to the exact value 0.
func (z *Ball) Zero() *Ball {
	z.setExactMid()
	z.rad.Zero()
	return z
}

// One sets z to the exact value 1.
func (z *Ball) One() *Ball {
	return z.SetInt64(1)
}

// Indeterminate sets z to the ball containing every real number.
func (z *Ball) Indeterminate() *Ball {
	z.setExactMid()
	z.rad.SetInf()
	return z
}

// SetInt64 sets z to the exact value v.
func (z *Ball) SetInt64(v int64) *Ball {
	z.setExactMid().SetInt64(v)
	z.rad.Zero()
	return z
}

// SetUint64 sets z to the exact value v.
func (z *Ball) SetUint64(v uint64) *Ball {
	z.setExactMid().SetUint64(v)
	z.rad.Zero()
	return z
}

// SetFloat64 sets z to the exact value v. Non-finite values give an indeterminate ball.
func (z *Ball) SetFloat64(v float64) *Ball {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return z.Indeterminate()
	}
	z.setExactMid().SetFloat64(v)
	z.rad.Zero()
	return z
}

// SetInt sets z to the exact value x.
func (z *Ball) SetInt(x *big.Int) *Ball {
	z.setExactMid().SetInt(x)
	z.rad.Zero()
	return z
}

// SetFloat sets z to the exact value x. An infinite x gives an indeterminate ball.
func (z *Ball) SetFloat(x *big.Float) *Ball {
	if x.IsInf() {
		return z.Indeterminate()
	}
	if &z.mid != x {
		z.mid.Copy(x)
	}
	z.mid.SetMode(big.ToNearestEven)
	z.rad.Zero()
	return z
}

// SetRat sets z to x rounded to prec bits.
func (z *Ball) SetRat(x *big.Rat, prec uint) *Ball {
	if x.IsInt() {
		return z.SetInt(x.Num())
	}
	t := newFloat(prec)
	t.SetRat(x)
	var r Mag
	addRoundingError(&r, t, prec)
	return z.setMid(t, &r)
}

// SetFrac sets z to p/q rounded to prec bits. q must be nonzero.
func (z *Ball) SetFrac(p, q int64, prec uint) *Ball {
	return z.SetRat(big.NewRat(p, q), prec)
}

// SetString sets z to the decimal number s rounded to prec bits.
// s is parsed exactly as a rational number before rounding.
func (z *Ball) SetString(s string, prec uint) (*Ball, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return z.SetRat(r, prec), true
}

// Set sets z to x.
func (z *Ball) Set(x *Ball) *Ball {
	if z != x {
		z.mid.Copy(&x.mid)
		z.rad.Set(&x.rad)
	}
	return z
}

// SetMidRad sets z to [mid +/- rad].
func (z *Ball) SetMidRad(mid *big.Float, rad *Mag) *Ball {
	if mid.IsInf() || rad.IsInf() {
		return z.Indeterminate()
	}
	var r Mag
	r.Set(rad)
	if &z.mid != mid {
		z.mid.Copy(mid)
	}
	z.rad.Set(&r)
	return z
}

// SetRound sets z to x with its midpoint rounded to prec bits.
func (z *Ball) SetRound(x *Ball, prec uint) *Ball {
	if !x.IsFinite() {
		return z.Indeterminate()
	}
	t := newFloat(prec)
	t.Set(&x.mid)
	var r Mag
	r.Set(&x.rad)
	addRoundingError(&r, t, prec)
	return z.setMid(t, &r)
}

// Swap exchanges the values of z and x.
func (z *Ball) Swap(x *Ball) {
	*z, *x = *x, *z
}

// setMid sets the midpoint of z to t (which is not retained) and its radius to r.
func (z *Ball) setMid(t *big.Float, r *Mag) *Ball {
	if r.IsInf() {
		return z.Indeterminate()
	}
	z.mid.Copy(t)
	z.mid.SetMode(big.ToNearestEven)
	z.rad.Set(r)
	return z
}

// addRoundingError adds to r a bound for the rounding error committed on t, if any.
func addRoundingError(r *Mag, t *big.Float, prec uint) {
	if t.Acc() != big.Exact && t.Sign() != 0 {
		var e Mag
		e.SetPow2(t.MantExp(nil) - int(prec))
		r.Add(r, &e)
	}
}

// AddError adds e to the radius of z.
func (z *Ball) AddError(e *Mag) *Ball {
	z.rad.Add(&z.rad, e)
	if z.rad.IsInf() {
		return z.Indeterminate()
	}
	return z
}

// AddErrorPow2 adds 2^e to the radius of z.
func (z *Ball) AddErrorPow2(e int) *Ball {
	var m Mag
	return z.AddError(m.SetPow2(e))
}

// GetMid sets z to the exact midpoint of x.
func (z *Ball) GetMid(x *Ball) *Ball {
	if z != x {
		z.mid.Copy(&x.mid)
	}
	z.rad.Zero()
	return z
}

// IsExact returns true if the radius of x is zero.
func (x *Ball) IsExact() bool {
	return x.rad.IsZero()
}

// IsFinite returns true if the radius of x is finite.
func (x *Ball) IsFinite() bool {
	return !x.rad.IsInf()
}

// IsZero returns true if x is exactly zero.
func (x *Ball) IsZero() bool {
	return x.rad.IsZero() && x.mid.Sign() == 0
}

// IsOne returns true if x is exactly one.
func (x *Ball) IsOne() bool {
	return x.rad.IsZero() && x.mid.Cmp(big.NewFloat(1)) == 0
}

// IsInt returns true if x is an exact integer.
func (x *Ball) IsInt() bool {
	return x.rad.IsZero() && x.mid.IsInt()
}

func (x *Ball) boundPrec() uint {
	p := x.mid.Prec()
	if p < MagPrec {
		p = MagPrec
	}
	return p + 64
}

// lower returns a lower bound of mid - rad.
func (x *Ball) lower() *big.Float {
	t := new(big.Float).SetPrec(x.boundPrec()).SetMode(big.ToNegativeInf)
	return t.Sub(&x.mid, &x.rad.f)
}

// upper returns an upper bound of mid + rad.
func (x *Ball) upper() *big.Float {
	t := new(big.Float).SetPrec(x.boundPrec()).SetMode(big.ToPositiveInf)
	return t.Add(&x.mid, &x.rad.f)
}

// Lower returns a lower bound of the left endpoint of x.
func (x *Ball) Lower() *big.Float {
	return x.lower()
}

// Upper returns an upper bound of the right endpoint of x.
func (x *Ball) Upper() *big.Float {
	return x.upper()
}

// absLower returns a lower bound of min |t| over t in x; the result is <= 0 when x contains zero.
func (x *Ball) absLower() *big.Float {
	t := newLowerFloat().SetMode(big.ToZero)
	t.Abs(&x.mid)
	t.SetMode(big.ToNegativeInf)
	return t.Sub(t, &x.rad.f)
}

// AbsUpper sets m to an upper bound of max |t| over t in x.
func (x *Ball) AbsUpper(m *Mag) *Mag {
	var t Mag
	t.SetFloat(&x.mid)
	return m.Add(&t, &x.rad)
}

// AbsLower returns a lower bound of min |t| over t in x as a Mag-precision float (0 if x contains zero).
func (x *Ball) AbsLower() *big.Float {
	t := x.absLower()
	if t.Sign() < 0 {
		t.SetInt64(0)
	}
	return t
}

// ContainsZero returns true if 0 is in x.
func (x *Ball) ContainsZero() bool {
	return x.absLower().Sign() <= 0
}

// IsPositive returns true if every point of x is > 0.
func (x *Ball) IsPositive() bool {
	return x.mid.Sign() > 0 && x.lower().Sign() > 0
}

// IsNonNegative returns true if every point of x is >= 0.
func (x *Ball) IsNonNegative() bool {
	return x.mid.Sign() >= 0 && x.lower().Sign() >= 0
}

// IsNegative returns true if every point of x is < 0.
func (x *Ball) IsNegative() bool {
	return x.mid.Sign() < 0 && x.upper().Sign() < 0
}

// Sign returns 1 (resp. -1) if every point of x is positive (resp. negative) and 0 otherwise.
func (x *Ball) Sign() int {
	switch {
	case x.IsPositive():
		return 1
	case x.IsNegative():
		return -1
	}
	return 0
}

// ContainsFloat returns true if the exact value v is in x.
func (x *Ball) ContainsFloat(v *big.Float) bool {
	if !x.IsFinite() {
		return true
	}
	if v.IsInf() {
		return false
	}
	r, _ := v.Rat(nil)
	return x.ContainsRat(r)
}

// ContainsRat returns true if the exact rational v is in x.
func (x *Ball) ContainsRat(v *big.Rat) bool {
	if !x.IsFinite() {
		return true
	}
	m, _ := x.mid.Rat(nil)
	r, _ := x.rad.f.Rat(nil)
	d := new(big.Rat).Sub(m, v)
	d.Abs(d)
	return d.Cmp(r) <= 0
}

// ContainsInt64 returns true if v is in x.
func (x *Ball) ContainsInt64(v int64) bool {
	return x.ContainsRat(new(big.Rat).SetInt64(v))
}

// Contains returns true if the ball y is a subset of x.
func (x *Ball) Contains(y *Ball) bool {
	if !x.IsFinite() {
		return true
	}
	if !y.IsFinite() {
		return false
	}
	xm, _ := x.mid.Rat(nil)
	xr, _ := x.rad.f.Rat(nil)
	ym, _ := y.mid.Rat(nil)
	yr, _ := y.rad.f.Rat(nil)
	d := new(big.Rat).Sub(xm, ym)
	d.Abs(d)
	d.Add(d, yr)
	return d.Cmp(xr) <= 0
}

// Overlaps returns true if x and y have a point in common.
func (x *Ball) Overlaps(y *Ball) bool {
	if !x.IsFinite() || !y.IsFinite() {
		return true
	}
	xm, _ := x.mid.Rat(nil)
	xr, _ := x.rad.f.Rat(nil)
	ym, _ := y.mid.Rat(nil)
	yr, _ := y.rad.f.Rat(nil)
	d := new(big.Rat).Sub(xm, ym)
	d.Abs(d)
	s := new(big.Rat).Add(xr, yr)
	return d.Cmp(s) <= 0
}

// Equal returns true if x and y have the same midpoint and radius.
func (x *Ball) Equal(y *Ball) bool {
	return x.mid.Cmp(&y.mid) == 0 && x.rad.Cmp(&y.rad) == 0
}

// RelAccuracyBits returns an estimate of the relative accuracy of x in bits,
// i.e. -log2(rad/|mid|). Exact balls return math.MaxInt32 and balls containing zero
// return a value <= 0.
func (x *Ball) RelAccuracyBits() int {
	if x.rad.IsZero() {
		return math.MaxInt32
	}
	if !x.IsFinite() || x.mid.Sign() == 0 {
		return -math.MaxInt32
	}
	return x.mid.MantExp(nil) - 1 - int(math.Ceil(x.rad.Log2()))
}

// Union sets z to a ball containing both x and y.
func (z *Ball) Union(x, y *Ball, prec uint) *Ball {
	if !x.IsFinite() || !y.IsFinite() {
		return z.Indeterminate()
	}
	lo := x.lower()
	if l := y.lower(); l.Cmp(lo) < 0 {
		lo = l
	}
	hi := x.upper()
	if h := y.upper(); h.Cmp(hi) > 0 {
		hi = h
	}
	return z.SetInterval(lo, hi, prec)
}

// SetInterval sets z to a ball containing [lo, hi].
func (z *Ball) SetInterval(lo, hi *big.Float, prec uint) *Ball {
	if lo.IsInf() || hi.IsInf() {
		return z.Indeterminate()
	}
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	m := newFloat(prec)
	m.Add(lo, hi)
	m.SetMantExp(m, -1)
	var r Mag
	d := newMagFloat()
	d.Sub(hi, m)
	r.SetFloat(d)
	var s Mag
	d.Sub(m, lo)
	s.SetFloat(d)
	r.Max(&r, &s)
	return z.setMid(m, &r)
}

// Text returns a decimal representation "[mid +/- rad]" of x with the given number of digits.
func (x *Ball) Text(digits int) string {
	if !x.IsFinite() {
		return "[+/- inf]"
	}
	if x.rad.IsZero() {
		return x.mid.Text('g', digits)
	}
	return fmt.Sprintf("[%s +/- %s]", x.mid.Text('g', digits), x.rad.Text(3))
}

// String implements fmt.Stringer.
func (x *Ball) String() string {
	return x.Text(20)
}

// AppendBinary appends an exact, precision-independent encoding of x to b.
func (x *Ball) AppendBinary(b []byte) []byte {
	b = append(b, x.mid.Text('p', 0)...)
	b = append(b, '|')
	b = append(b, x.rad.f.Text('p', 0)...)
	return append(b, ';')
}

// Digest returns a blake3 hash of the exact midpoint and radius of x.
func (x *Ball) Digest() [32]byte {
	h := blake3.New()
	h.Write(x.AppendBinary(nil))
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
