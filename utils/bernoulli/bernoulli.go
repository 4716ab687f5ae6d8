// Package bernoulli implements a process-wide, append-only cache of the Bernoulli numbers.
package bernoulli

import (
	"math/big"
	"sync"
)

var cache = struct {
	sync.Mutex
	values []*big.Rat
	binom  []*big.Int
}{}

// Numbers returns the exact Bernoulli numbers B_0, ..., B_{n-1} (with B_1 = -1/2).
// Missing values are computed and appended to the cache. The returned values are
// shared with the cache and must not be modified.
func Numbers(n int) []*big.Rat {

	if n <= 0 {
		return nil
	}

	cache.Lock()
	defer cache.Unlock()

	for m := len(cache.values); m < n; m++ {
		cache.values = append(cache.values, next(m))
	}

	out := make([]*big.Rat, n)
	copy(out, cache.values[:n])
	return out
}

// Get returns the exact Bernoulli number B_k.
func Get(k int) *big.Rat {
	return Numbers(k + 1)[k]
}

// Cached returns the number of Bernoulli numbers currently held by the cache.
func Cached() int {
	cache.Lock()
	defer cache.Unlock()
	return len(cache.values)
}

// next computes B_m from B_0, ..., B_{m-1} with sum_{j<=m} C(m+1, j) B_j = 0.
// cache.binom holds the row C(m, .) on entry and C(m+1, .) on exit.
func next(m int) *big.Rat {

	// advance the binomial row from C(m, .) to C(m+1, .)
	row := make([]*big.Int, m+2)
	row[0] = big.NewInt(1)
	row[m+1] = big.NewInt(1)
	for j := 1; j <= m; j++ {
		row[j] = new(big.Int).Add(cache.binom[j-1], cache.binom[j])
	}
	cache.binom = row

	switch {
	case m == 0:
		return big.NewRat(1, 1)
	case m == 1:
		return big.NewRat(-1, 2)
	case m&1 == 1:
		return new(big.Rat)
	}

	sum := new(big.Rat)
	tmp := new(big.Rat)
	for j := 0; j < m; j++ {
		if j > 1 && j&1 == 1 {
			continue
		}
		tmp.SetInt(row[j])
		tmp.Mul(tmp, cache.values[j])
		sum.Add(sum, tmp)
	}

	sum.Neg(sum)
	return sum.Quo(sum, new(big.Rat).SetInt64(int64(m+1)))
}
