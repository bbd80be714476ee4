package rng

// Source adapts a Stream to math/rand.Source64, so gonum's stat/distuv
// distributions can draw directly from our own deterministic generator
// instead of math/rand's. Kept as a thin wrapper (rather than implementing
// Source64 on Stream itself) to avoid a name clash with Stream.Seed, which
// is already a no-argument getter for the stream's original seed.
type Source struct {
	stream *Stream
}

// NewSource wraps a Stream as a math/rand.Source64.
func NewSource(s *Stream) *Source {
	return &Source{stream: s}
}

func (a *Source) Int63() int64 {
	return a.stream.Int63()
}

func (a *Source) Uint64() uint64 {
	return a.stream.Uint64()
}

// Seed re-seeds the underlying stream. Present only to satisfy
// math/rand.Source's interface; the simulation engine never calls it
// directly — streams are reseeded via Stream.Reset/NewBatchStream instead.
func (a *Source) Seed(seed int64) {
	a.stream.seed = seed
	a.stream.pcg.Seed(seed)
	a.stream.callCount = 0
}
