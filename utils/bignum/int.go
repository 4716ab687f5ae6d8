package bignum

import (
	"math/big"
	"math/bits"
)

// MaxBitLen returns the largest bit length among the entries of v.
func MaxBitLen(v []big.Int) (max int) {
	for i := range v {
		if b := v[i].BitLen(); b > max {
			max = b
		}
	}
	return
}

// MulPolyLow sets res to the product of the integer polynomials a and b truncated to length n,
// using Kronecker substitution: both operands are packed into a single integer, multiplied
// once, and the signed coefficients are read back from the balanced base-2^k expansion.
// res must have length at least n; entries past the product length are set to zero.
func MulPolyLow(a, b []big.Int, n int, res []big.Int) {

	for i := 0; i < n; i++ {
		res[i].SetInt64(0)
	}

	if len(a) == 0 || len(b) == 0 || n == 0 {
		return
	}

	la, lb := len(a), len(b)
	if la > n {
		la = n
	}
	if lb > n {
		lb = n
	}

	ba, bb := MaxBitLen(a[:la]), MaxBitLen(b[:lb])
	if ba == 0 || bb == 0 {
		return
	}

	minLen := la
	if lb < minLen {
		minLen = lb
	}

	// |c_k| < 2^(ba+bb+log2(minLen)), one extra bit for the balanced sign.
	k := uint(ba + bb + bits.Len(uint(minLen)) + 1)

	va := kroneckerPack(a[:la], k)

	var v *big.Int
	if &a[0] == &b[0] && la == lb {
		v = new(big.Int).Mul(va, va)
	} else {
		vb := kroneckerPack(b[:lb], k)
		v = new(big.Int).Mul(va, vb)
	}

	m := la + lb - 1
	if m > n {
		m = n
	}

	kroneckerUnpack(v, k, res[:m])
}

// kroneckerPack returns sum_i c_i 2^(k i).
func kroneckerPack(c []big.Int, k uint) *big.Int {
	v := new(big.Int)
	for i := len(c) - 1; i >= 0; i-- {
		v.Lsh(v, k)
		v.Add(v, &c[i])
	}
	return v
}

// kroneckerUnpack reads the first len(res) balanced digits of v in base 2^k.
func kroneckerUnpack(v *big.Int, k uint, res []big.Int) {

	neg := v.Sign() < 0

	words := new(big.Int).Abs(v).Bits()

	const W = bits.UintSize

	half := new(big.Int).Lsh(big.NewInt(1), k-1)
	full := new(big.Int).Lsh(big.NewInt(1), k)
	mask := new(big.Int).Sub(full, big.NewInt(1))

	carry := false

	for i := range res {

		lo := uint(i) * k
		start := int(lo / W)

		d := new(big.Int)

		if start < len(words) {
			end := int((lo+k)/W) + 1
			if end > len(words) {
				end = len(words)
			}
			buf := make([]big.Word, end-start)
			copy(buf, words[start:end])
			d.SetBits(buf)
			d.Rsh(d, lo%W)
			d.And(d, mask)
		}

		if carry {
			d.Add(d, big.NewInt(1))
		}

		if d.Cmp(half) >= 0 {
			d.Sub(d, full)
			carry = true
		} else {
			carry = false
		}

		if neg {
			d.Neg(d)
		}

		res[i].Set(d)
	}
}
