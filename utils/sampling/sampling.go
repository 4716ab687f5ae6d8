// Package sampling implements deterministic sampling of bytes, integers and floats
// used to generate reproducible test inputs.
package sampling

import (
	"encoding/binary"
	"io"
	"math/big"
)

// RandUint64 returns a uniform value in [0, 2^64) read from r.
func RandUint64(r io.Reader) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := io.ReadFull(r, b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// RandFloat64 returns a random float between min and max read from r.
func RandFloat64(r io.Reader, min, max float64) float64 {
	f := float64(RandUint64(r)>>11) / (1 << 53)
	return min + f*(max-min)
}

// RandInt64 returns a random integer in [-bound, bound] read from r.
func RandInt64(r io.Reader, bound int64) int64 {
	if bound <= 0 {
		return 0
	}
	return int64(RandUint64(r)%uint64(2*bound+1)) - bound
}

// RandBigFloat returns a random float with prec bits of mantissa in [-2^exp, 2^exp].
func RandBigFloat(r io.Reader, prec uint, exp int) *big.Float {

	nbytes := (prec + 7) / 8
	b := make([]byte, nbytes)
	if _, err := io.ReadFull(r, b); err != nil {
		panic(err)
	}

	m := new(big.Int).SetBytes(b)
	m.Rsh(m, uint(nbytes*8-prec))

	f := new(big.Float).SetPrec(prec).SetInt(m)
	f.SetMantExp(f, exp-int(prec))

	if RandUint64(r)&1 == 1 {
		f.Neg(f)
	}

	return f
}
