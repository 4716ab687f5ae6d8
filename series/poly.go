package series

import (
	"math/big"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/utils"
)

// Poly is a polynomial (or truncated power series) with ball coefficients.
// Coeffs[i] is the coefficient of x^i. The logical length is len(Coeffs);
// the slots between the length and the capacity are kept at zero.
type Poly struct {
	Coeffs []ball.Ball
}

// NewPoly creates a new zero-length polynomial with capacity n.
func NewPoly(n int) *Poly {
	checkLength("NewPoly", n)
	return &Poly{Coeffs: make([]ball.Ball, 0, n)}
}

// NewPolyFromFloat64 creates a new polynomial with the given exact coefficients.
func NewPolyFromFloat64(v ...float64) *Poly {
	return new(Poly).SetFloat64s(v)
}

// FitLength ensures that p can hold n coefficients without reallocating.
// The capacity grows at least geometrically.
func (p *Poly) FitLength(n int) {
	checkLength("FitLength", n)
	if n <= cap(p.Coeffs) {
		return
	}
	c := utils.Max(n, 2*cap(p.Coeffs))
	coeffs := make([]ball.Ball, len(p.Coeffs), c)
	for i := range p.Coeffs {
		coeffs[i].Swap(&p.Coeffs[i])
	}
	p.Coeffs = coeffs
}

// SetLength sets the logical length of p to n. New coefficients are zero;
// dropped coefficients are cleared.
func (p *Poly) SetLength(n int) {
	checkLength("SetLength", n)
	if n < len(p.Coeffs) {
		for i := n; i < len(p.Coeffs); i++ {
			p.Coeffs[i].Zero()
		}
		p.Coeffs = p.Coeffs[:n]
		return
	}
	p.FitLength(n)
	l := len(p.Coeffs)
	p.Coeffs = p.Coeffs[:n]
	for i := l; i < n; i++ {
		p.Coeffs[i].Zero()
	}
}

// Normalise removes the trailing coefficients that are exactly zero.
func (p *Poly) Normalise() {
	n := len(p.Coeffs)
	for n > 0 && p.Coeffs[n-1].IsZero() {
		n--
	}
	p.SetLength(n)
}

// Length returns the logical length of p.
func (p *Poly) Length() int {
	return len(p.Coeffs)
}

// Degree returns Length()-1.
func (p *Poly) Degree() int {
	return len(p.Coeffs) - 1
}

// Coeff returns the coefficient of x^i. Indexes past the length return a shared
// zero ball which must not be modified.
func (p *Poly) Coeff(i int) *ball.Ball {
	if i < len(p.Coeffs) {
		return &p.Coeffs[i]
	}
	return &zero
}

var zero ball.Ball

// SetCoeff sets the coefficient of x^i to b, extending p if needed.
func (p *Poly) SetCoeff(i int, b *ball.Ball) {
	if i >= len(p.Coeffs) {
		p.SetLength(i + 1)
	}
	p.Coeffs[i].Set(b)
}

// Set sets p to q.
func (p *Poly) Set(q *Poly) *Poly {
	if p != q {
		p.SetLength(len(q.Coeffs))
		for i := range q.Coeffs {
			p.Coeffs[i].Set(&q.Coeffs[i])
		}
	}
	return p
}

// SetRound sets p to q with every midpoint rounded to prec bits.
func (p *Poly) SetRound(q *Poly, prec uint) *Poly {
	p.SetLength(len(q.Coeffs))
	for i := range q.Coeffs {
		p.Coeffs[i].SetRound(&q.Coeffs[i], prec)
	}
	return p
}

// Swap exchanges p and q.
func (p *Poly) Swap(q *Poly) {
	p.Coeffs, q.Coeffs = q.Coeffs, p.Coeffs
}

// Truncate reduces p modulo x^n.
func (p *Poly) Truncate(n int) {
	if n < len(p.Coeffs) {
		p.SetLength(n)
		p.Normalise()
	}
}

// Zero sets p to the zero polynomial.
func (p *Poly) Zero() *Poly {
	p.SetLength(0)
	return p
}

// One sets p to the constant 1.
func (p *Poly) One() *Poly {
	p.SetLength(1)
	p.Coeffs[0].One()
	return p
}

// CopyNew returns a deep copy of p.
func (p *Poly) CopyNew() *Poly {
	return NewPoly(len(p.Coeffs)).Set(p)
}

// SetFloat64s sets p to the exact coefficients v.
func (p *Poly) SetFloat64s(v []float64) *Poly {
	p.SetLength(len(v))
	for i := range v {
		p.Coeffs[i].SetFloat64(v[i])
	}
	return p
}

// SetInt64s sets p to the exact coefficients v.
func (p *Poly) SetInt64s(v []int64) *Poly {
	p.SetLength(len(v))
	for i := range v {
		p.Coeffs[i].SetInt64(v[i])
	}
	return p
}

// SetRats sets p to the coefficients v rounded to prec bits.
func (p *Poly) SetRats(v []*big.Rat, prec uint) *Poly {
	p.SetLength(len(v))
	for i := range v {
		p.Coeffs[i].SetRat(v[i], prec)
	}
	return p
}

// IsZero returns true if every coefficient of p is exactly zero.
func (p *Poly) IsZero() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// IsOne returns true if p is exactly the constant 1.
func (p *Poly) IsOne() bool {
	if len(p.Coeffs) == 0 || !p.Coeffs[0].IsOne() {
		return false
	}
	for i := 1; i < len(p.Coeffs); i++ {
		if !p.Coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// IsExact returns true if every coefficient of p has radius zero.
func (p *Poly) IsExact() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsExact() {
			return false
		}
	}
	return true
}

// IsFinite returns true if every coefficient of p has a finite radius.
func (p *Poly) IsFinite() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsFinite() {
			return false
		}
	}
	return true
}

// Contains returns true if every coefficient of q is contained in the
// corresponding coefficient of p, both being zero-padded.
func (p *Poly) Contains(q *Poly) bool {
	n := utils.Max(len(p.Coeffs), len(q.Coeffs))
	for i := 0; i < n; i++ {
		if !p.Coeff(i).Contains(q.Coeff(i)) {
			return false
		}
	}
	return true
}

// ContainsRats returns true if p contains the polynomial with the exact coefficients v.
func (p *Poly) ContainsRats(v []*big.Rat) bool {
	n := utils.Max(len(p.Coeffs), len(v))
	for i := 0; i < n; i++ {
		r := new(big.Rat)
		if i < len(v) {
			r = v[i]
		}
		if !p.Coeff(i).ContainsRat(r) {
			return false
		}
	}
	return true
}

// Overlaps returns true if every coefficient of p overlaps the corresponding
// coefficient of q, both being zero-padded.
func (p *Poly) Overlaps(q *Poly) bool {
	n := utils.Max(len(p.Coeffs), len(q.Coeffs))
	for i := 0; i < n; i++ {
		if !p.Coeff(i).Overlaps(q.Coeff(i)) {
			return false
		}
	}
	return true
}

// Equal returns true if p and q have the same length and bit-identical coefficients.
func (p *Poly) Equal(q *Poly) bool {
	if len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	for i := range p.Coeffs {
		if !p.Coeffs[i].Equal(&q.Coeffs[i]) {
			return false
		}
	}
	return true
}

// Text returns a decimal representation of p with the given number of digits per coefficient.
func (p *Poly) Text(digits int) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := range p.Coeffs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Coeffs[i].Text(digits))
	}
	sb.WriteByte('}')
	return sb.String()
}

func (p *Poly) String() string {
	return p.Text(20)
}

// Digest returns a blake3 hash of the exact coefficients of p.
func (p *Poly) Digest() [32]byte {
	h := blake3.New()
	var buf []byte
	for i := range p.Coeffs {
		buf = p.Coeffs[i].AppendBinary(buf[:0])
		h.Write(buf)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// getMid sets p to the exact midpoints of q.
func (p *Poly) getMid(q *Poly) {
	p.SetLength(len(q.Coeffs))
	for i := range q.Coeffs {
		p.Coeffs[i].GetMid(&q.Coeffs[i])
	}
}

// setIndeterminate sets p to n indeterminate coefficients.
func (p *Poly) setIndeterminate(n int) {
	p.SetLength(n)
	for i := range p.Coeffs {
		p.Coeffs[i].Indeterminate()
	}
}

// aliases returns true if p and q share their coefficient storage.
func (p *Poly) aliases(q *Poly) bool {
	return p == q || utils.Alias1D(p.Coeffs, q.Coeffs)
}
