package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// Stream wraps a PCG32 with call accounting and a reset-to-seed capability.
// PERF: no internal mutex — a Stream is owned by exactly one worker/batch
// for the duration of its draws; never shared across goroutines.
type Stream struct {
	pcg       *PCG32
	seed      int64
	callCount uint64
}

// NewStream creates a stream seeded deterministically from seed.
func NewStream(seed int64) *Stream {
	return &Stream{pcg: NewPCG32(seed), seed: seed}
}

// Seed returns the seed this stream was created from.
func (s *Stream) Seed() int64 { return s.seed }

// CallCount returns the number of random draws made so far.
func (s *Stream) CallCount() uint64 { return s.callCount }

// Reset rewinds the stream back to its initial seed, discarding all state.
func (s *Stream) Reset() {
	s.pcg.Seed(s.seed)
	s.callCount = 0
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Stream) Float64() float64 {
	s.callCount++
	return s.pcg.Float64()
}

// NormFloat64 returns a standard-normal float64.
func (s *Stream) NormFloat64() float64 {
	s.callCount++
	return s.pcg.NormFloat64()
}

// Int63 and Uint64 supply the draws behind Source, the math/rand.Source64
// adapter that gonum/stat/distuv distributions take as their Src. Stream
// itself is not a Source64: its Seed method is a getter.
func (s *Stream) Int63() int64 {
	s.callCount++
	return s.pcg.Int63()
}

func (s *Stream) Uint64() uint64 {
	s.callCount++
	return s.pcg.Uint64()
}

// Seed64 re-seeds the stream from seed and resets its call count. It is
// named Seed64 because Seed is the getter, so it does not satisfy a
// Seed(int64) type assertion; Source.Seed does.
func (s *Stream) Seed64(seed int64) {
	s.seed = seed
	s.pcg.Seed(seed)
	s.callCount = 0
}

// mixOnce runs one SplitMix64-style avalanche step. Used to derive batch
// seeds from the root seed; same mixing idea PCG32.Seed uses to avalanche a
// raw seed into usable generator state.
func mixOnce(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// DeriveBatchSeed computes the seed for the batch starting at
// iteration batchStart, given the job's root seed. Splitting by batch start
// index (not worker id) makes reproducibility independent of scheduling
// order — the same job run sequentially or in parallel, with any worker
// count, visits the same seed per batch.
func DeriveBatchSeed(root int64, batchStart int) int64 {
	mixed := mixOnce(uint64(root) ^ uint64(int64(batchStart)))
	return int64(mixed)
}

// NewBatchStream builds the deterministic stream for the batch starting at
// iteration batchStart.
func NewBatchStream(root int64, batchStart int) *Stream {
	return NewStream(DeriveBatchSeed(root, batchStart))
}

// RootSeedFromEntropy draws a root seed from the OS when the caller did not
// supply one explicitly. Kept as the sole non-deterministic entry point —
// once a root seed exists, everything downstream is pure.
func RootSeedFromEntropy() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to a fixed-but-documented seed rather than
		// panicking a job submission.
		return 0x5EED
	}
	return int64(binary.BigEndian.Uint64(buf[:]))
}
