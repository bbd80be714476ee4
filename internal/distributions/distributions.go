// Package distributions implements the frequency and severity distributions
// the simulation engine draws event counts and loss amounts from (C1).
//
// Sampling is delegated to gonum.org/v1/gonum/stat/distuv wherever a type
// exists there; each call wraps the caller's *rng.Stream as the draw's Src so
// every distribution pulls from the same deterministic generator instead of
// distuv's default global source. Negative binomial has no distuv type and is
// sampled as a Gamma-Poisson mixture, in the hand-rolled style the teacher
// uses for distributions gonum doesn't cover.
package distributions

import "github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"

// Frequency samples the number of loss events in one simulated period.
type Frequency interface {
	Name() string
	Sample(s *rng.Stream) int
	Mean() float64
	Variance() float64
}

// Severity samples the dollar size of a single loss event.
type Severity interface {
	Name() string
	Sample(s *rng.Stream) float64
	Mean() float64
	Variance() float64
}
