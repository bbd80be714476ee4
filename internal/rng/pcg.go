// Package rng implements the deterministic, reproducible random number
// pipeline the simulation engine draws on (spec §4.2, C2).
//
// Why a hand-rolled PCG32 instead of math/rand?
//   - math/rand's algorithm is deterministic within a Go release but is not
//     guaranteed stable across upgrades.
//   - PCG32 is small, fast, statistically solid, and its algorithm is fixed
//     forever because we own it.
//
// Same seed + same iteration/batch layout => bit-identical results, forever.
package rng

import "math"

// PCG32 implements the PCG-XSH-RR generator. See https://www.pcg-random.org/.
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 creates a PCG32 seeded deterministically from seed.
func NewPCG32(seed int64) *PCG32 {
	p := &PCG32{}
	p.Seed(seed)
	return p
}

// Seed re-initializes the generator from seed.
func (p *PCG32) Seed(seed int64) {
	p.state = 0
	p.inc = (uint64(seed) << 1) | 1 // inc must be odd
	p.Uint32()
	p.state += uint64(seed)
	p.Uint32()
}

// Uint32 returns a uniformly distributed uint32.
func (p *PCG32) Uint32() uint32 {
	oldstate := p.state
	p.state = oldstate*6364136223846793005 + p.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint64 returns a uniformly distributed uint64.
func (p *PCG32) Uint64() uint64 {
	return (uint64(p.Uint32()) << 32) | uint64(p.Uint32())
}

// Float64 returns a uniformly distributed float64 in [0, 1).
func (p *PCG32) Float64() float64 {
	return float64(p.Uint64()>>11) / (1 << 53)
}

// NormFloat64 returns a standard-normal float64 via Box-Muller.
func (p *PCG32) NormFloat64() float64 {
	for {
		u1 := p.Float64()
		u2 := p.Float64()
		if u1 > 0 {
			return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		}
	}
}

// Int63 implements math/rand.Source, so a Stream can seed math/rand-based
// callers that only know about that interface.
func (p *PCG32) Int63() int64 {
	return int64(p.Uint64() >> 1)
}

// Uint64Source64 support: implements math/rand.Source64, letting gonum's
// stat/distuv distributions draw directly from this generator instead of
// from math/rand's own algorithm.
var _ interface {
	Int63() int64
	Seed(int64)
	Uint64() uint64
} = (*PCG32)(nil)
