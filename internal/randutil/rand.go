package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	return NewUint64(uint64(seed))
}

// NewUint64 is New for unsigned seeds.
func NewUint64(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed), mix(seed+goldenRatio64)))
}

// Stream returns the index-th independent stream derived from seed.
// Parallel workers use one stream per unit of work so results do not depend
// on scheduling or worker count.
func Stream(seed, index uint64) *rand.Rand {
	base := mix(seed ^ mix(index+1)*goldenRatio64)
	return rand.New(rand.NewPCG(mix(base), mix(base+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
