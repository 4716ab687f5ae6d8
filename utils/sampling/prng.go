package sampling

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// KeyedPRNG is a reproducible byte stream read from the blake2b XOF keyed with a seed.
// Two instances with the same seed produce the same stream, which is how the tests
// regenerate identical random series across runs and packages.
// Reads are serialized, but the stream is only reproducible if a single goroutine consumes it.
type KeyedPRNG struct {
	sync.Mutex
	seed []byte
	xof  blake2b.XOF
	read uint64
}

// NewKeyedPRNG returns a KeyedPRNG seeded with a copy of seed.
// The seed may be nil. It must not exceed 64 bytes.
func NewKeyedPRNG(seed []byte) (prng *KeyedPRNG, err error) {
	prng = &KeyedPRNG{seed: append([]byte{}, seed...)}
	if prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, prng.seed); err != nil {
		return nil, err
	}
	return
}

// Derive returns an independent KeyedPRNG whose seed is the blake2b digest of the
// parent seed and label. It does not consume bytes from prng.
func (prng *KeyedPRNG) Derive(label string) (*KeyedPRNG, error) {
	h, err := blake2b.New256(prng.seed)
	if err != nil {
		return nil, err
	}
	h.Write([]byte(label))
	return NewKeyedPRNG(h.Sum(nil))
}

// Key returns a copy of the seed.
func (prng *KeyedPRNG) Key() []byte {
	return append([]byte{}, prng.seed...)
}

// Read fills p with the next bytes of the stream.
func (prng *KeyedPRNG) Read(p []byte) (n int, err error) {
	prng.Lock()
	defer prng.Unlock()
	n, err = prng.xof.Read(p)
	prng.read += uint64(n)
	return
}

// Uint64 returns the next 8 bytes of the stream as a little-endian integer.
func (prng *KeyedPRNG) Uint64() uint64 {
	var b [8]byte
	if _, err := prng.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Offset returns the number of bytes read since the last reset.
func (prng *KeyedPRNG) Offset() uint64 {
	prng.Lock()
	defer prng.Unlock()
	return prng.read
}

// Reset rewinds the stream to its first byte.
func (prng *KeyedPRNG) Reset() {
	prng.Lock()
	defer prng.Unlock()
	prng.xof.Reset()
	prng.read = 0
}
