// Package rand provides the seeded Mersenne Twister (MT19937) used to draw
// reproducible row permutations. The stream for a given seed matches
// numpy.random.RandomState(seed).
package rand

import (
	"math"
)

const (
	mtN        = 624
	mtM        = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// MT19937 is a Mersenne Twister generator. It is not safe for concurrent use.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 returns a generator seeded with seed.
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// Seed resets the generator state.
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
}

// Uint32 generates a random uint32.
func (mt *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	if mt.mti >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
		mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		mt.mti = 0
	}

	y = mt.mt[mt.mti]
	mt.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18

	return y
}

// Float64 generates a random float64 in [0, 1) with 53-bit precision,
// matching numpy's random_sample().
func (mt *MT19937) Float64() float64 {
	a := mt.Uint32() >> 5
	b := mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform generates a random float64 in [low, high).
func (mt *MT19937) Uniform(low, high float64) float64 {
	return low + (high-low)*mt.Float64()
}

// NormFloat64 returns a standard normal deviate (Box-Muller).
func (mt *MT19937) NormFloat64() float64 {
	u := 1 - mt.Float64()
	v := mt.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// Intn returns a uniform int in [0, n). It panics if n <= 0 or n does
// not fit in 32 bits.
func (mt *MT19937) Intn(n int) int {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		panic("rand: invalid argument to Intn")
	}
	bound := uint32(n)
	limit := -bound % bound
	for {
		if v := mt.Uint32(); v >= limit {
			return int(v % bound)
		}
	}
}

// Shuffle permutes p in place (Fisher-Yates).
func (mt *MT19937) Shuffle(p []int) {
	for i := len(p) - 1; i > 0; i-- {
		j := mt.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// Perm returns a random permutation of 0..n-1.
func (mt *MT19937) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	mt.Shuffle(p)
	return p
}

// Perms draws b permutations of 0..n-1 in order from a generator seeded
// with seed.
func Perms(seed uint32, b, n int) [][]int {
	mt := NewMT19937(seed)
	out := make([][]int, b)
	for i := range out {
		out[i] = mt.Perm(n)
	}
	return out
}
