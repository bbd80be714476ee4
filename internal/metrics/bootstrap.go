package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"
)

// BootstrapMeanCI estimates a confidence interval for the mean of losses by
// resampling with replacement numResamples times and taking the empirical
// quantiles of the resulting distribution of resampled means. Uses s for
// its resampling draws, so the interval is reproducible given the same
// stream state.
func BootstrapMeanCI(losses []float64, s *rng.Stream, numResamples int, confidenceLevel float64) (lower, upper float64) {
	n := len(losses)
	if n == 0 || numResamples <= 0 {
		return 0, 0
	}
	means := make([]float64, numResamples)
	sample := make([]float64, n)
	for i := 0; i < numResamples; i++ {
		for j := 0; j < n; j++ {
			idx := int(s.Float64() * float64(n))
			if idx >= n {
				idx = n - 1
			}
			sample[j] = losses[idx]
		}
		means[i] = stat.Mean(sample, nil)
	}
	sort.Float64s(means)
	alpha := 1 - confidenceLevel
	lower = quantile(means, alpha/2)
	upper = quantile(means, 1-alpha/2)
	return lower, upper
}

// NormalApproxMeanCI estimates a confidence interval for the mean using the
// analytical normal approximation (mean +/- z * stddev/sqrt(n)), the
// textbook fallback when a full bootstrap resample would be too slow —
// e.g. very large iteration counts where an analytical bound suffices.
func NormalApproxMeanCI(mean, stddev float64, n int, confidenceLevel float64) (lower, upper float64) {
	if n == 0 {
		return mean, mean
	}
	z := math.Sqrt2 * math.Erfinv(confidenceLevel)
	margin := z * stddev / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}
