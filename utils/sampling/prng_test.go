package sampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
		0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

	t.Run("Reset", func(t *testing.T) {

		Ha, err := NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		for i := 0; i < 128; i++ {
			_, err = Hb.Read(sum1)
			require.NoError(t, err)
		}

		Hb.Reset()

		_, err = Ha.Read(sum0)
		require.NoError(t, err)
		_, err = Hb.Read(sum1)
		require.NoError(t, err)

		require.Equal(t, sum0, sum1)
		require.Equal(t, key, Ha.Key())
	})

	t.Run("Derive", func(t *testing.T) {

		prng, err := NewKeyedPRNG(key)
		require.NoError(t, err)

		a, err := prng.Derive("series")
		require.NoError(t, err)
		b, err := prng.Derive("series")
		require.NoError(t, err)
		c, err := prng.Derive("ball")
		require.NoError(t, err)

		require.Equal(t, uint64(0), prng.Offset())
		require.Equal(t, a.Key(), b.Key())
		require.NotEqual(t, a.Key(), c.Key())

		x := a.Uint64()
		require.Equal(t, x, b.Uint64())
		require.NotEqual(t, x, c.Uint64())
		require.Equal(t, uint64(8), a.Offset())

		a.Reset()
		require.Equal(t, uint64(0), a.Offset())
		require.Equal(t, x, a.Uint64())
	})

	t.Run("Sampling", func(t *testing.T) {

		prng, err := NewKeyedPRNG(key)
		require.NoError(t, err)

		for i := 0; i < 64; i++ {
			f := RandFloat64(prng, -2, 3)
			require.GreaterOrEqual(t, f, -2.0)
			require.LessOrEqual(t, f, 3.0)

			v := RandInt64(prng, 5)
			require.GreaterOrEqual(t, v, int64(-5))
			require.LessOrEqual(t, v, int64(5))

			x := RandBigFloat(prng, 100, 3)
			require.LessOrEqual(t, x.MantExp(nil), 3)
			require.LessOrEqual(t, x.MinPrec(), uint(100))
		}
	})
}
