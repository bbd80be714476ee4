package metrics

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// levelKey formats a confidence/percentile level (e.g. 0.99) as a stable
// map key. encoding/json can only marshal string or integer map keys, so
// VaR/TVaR/Percentiles are keyed by this rather than the raw float64 level.
func levelKey(level float64) string {
	return strconv.FormatFloat(level, 'g', -1, 64)
}

// DefaultConfidenceLevels are the VaR/TVaR confidence levels reported when
// a caller doesn't specify its own.
var DefaultConfidenceLevels = []float64{0.95, 0.99, 0.999}

// DefaultPercentileLevels are the percentile points reported when a caller
// doesn't specify its own.
var DefaultPercentileLevels = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99, 0.999}

// RiskMetrics summarizes a completed simulation's loss distribution.
type RiskMetrics struct {
	Iterations             int                `json:"iterations"`
	ExpectedLoss           float64             `json:"expected_loss"`
	StandardDeviation      float64             `json:"standard_deviation"`
	Variance               float64             `json:"variance"`
	MinimumLoss            float64             `json:"minimum_loss"`
	MaximumLoss            float64             `json:"maximum_loss"`
	VaR                    map[string]float64  `json:"var"`
	TVaR                   map[string]float64  `json:"tvar"`
	Skewness               float64             `json:"skewness"`
	ExcessKurtosis         float64             `json:"excess_kurtosis"`
	CoefficientOfVariation float64             `json:"coefficient_of_variation"`
	ProbabilityOfLoss      float64             `json:"probability_of_loss"`
	MedianLoss             float64             `json:"median_loss"`
	ModeLoss               float64             `json:"mode_loss"`
	Percentiles            map[string]float64  `json:"percentiles"`
	Histogram              HistogramData       `json:"histogram"`
	ExceedanceCurve        []ExceedancePoint   `json:"exceedance_curve"`
}

// VaRAt returns the VaR computed at confidence level, or (0, false) if
// that level wasn't requested.
func (m *RiskMetrics) VaRAt(level float64) (float64, bool) {
	v, ok := m.VaR[levelKey(level)]
	return v, ok
}

// TVaRAt returns the TVaR computed at confidence level, or (0, false) if
// that level wasn't requested.
func (m *RiskMetrics) TVaRAt(level float64) (float64, bool) {
	v, ok := m.TVaR[levelKey(level)]
	return v, ok
}

// PercentileAt returns the value at percentile p, or (0, false) if that
// percentile wasn't requested.
func (m *RiskMetrics) PercentileAt(p float64) (float64, bool) {
	v, ok := m.Percentiles[levelKey(p)]
	return v, ok
}

// Calculator computes RiskMetrics at a configured set of confidence and
// percentile levels.
type Calculator struct {
	ConfidenceLevels []float64
	PercentileLevels []float64
}

// NewCalculator returns a Calculator using the pinned defaults.
func NewCalculator() *Calculator {
	return &Calculator{
		ConfidenceLevels: append([]float64(nil), DefaultConfidenceLevels...),
		PercentileLevels: append([]float64(nil), DefaultPercentileLevels...),
	}
}

// cleanLosses drops NaN, Inf, and negative values — a negative net loss
// can only come from a misconfigured cascade (e.g. reinsurance recovery
// exceeding ceded loss), and NaN/Inf only from a distribution parameter
// edge case; neither belongs in a risk summary.
func cleanLosses(losses []float64) []float64 {
	cleaned := make([]float64, 0, len(losses))
	for _, v := range losses {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			continue
		}
		cleaned = append(cleaned, v)
	}
	return cleaned
}

// Calculate computes risk metrics over losses, one aggregate loss value per
// simulated iteration.
func (c *Calculator) Calculate(losses []float64) (*RiskMetrics, error) {
	cleaned := cleanLosses(losses)
	if len(cleaned) == 0 {
		return nil, simerr.Simulationf("no valid loss values to compute metrics from")
	}

	sortedAsc := append([]float64(nil), cleaned...)
	sort.Float64s(sortedAsc)

	n := len(sortedAsc)
	mean := stat.Mean(sortedAsc, nil)
	variance := stat.Variance(sortedAsc, nil)
	stddev := stat.StdDev(sortedAsc, nil)

	m := &RiskMetrics{
		Iterations:        n,
		ExpectedLoss:      mean,
		StandardDeviation: stddev,
		Variance:          variance,
		MinimumLoss:       sortedAsc[0],
		MaximumLoss:       sortedAsc[n-1],
		Skewness:          stat.Skew(sortedAsc, nil),
		ExcessKurtosis:    stat.ExKurtosis(sortedAsc, nil),
		MedianLoss:        quantile(sortedAsc, 0.5),
		VaR:               make(map[string]float64, len(c.ConfidenceLevels)),
		TVaR:              make(map[string]float64, len(c.ConfidenceLevels)),
		Percentiles:       make(map[string]float64, len(c.PercentileLevels)),
	}
	if mean != 0 {
		m.CoefficientOfVariation = stddev / mean
	}

	lossCount := 0
	for _, v := range sortedAsc {
		if v > 0 {
			lossCount++
		}
	}
	m.ProbabilityOfLoss = float64(lossCount) / float64(n)

	for _, level := range c.ConfidenceLevels {
		varValue := quantile(sortedAsc, level)
		m.VaR[levelKey(level)] = varValue
		m.TVaR[levelKey(level)] = tailAverageAtOrAbove(sortedAsc, varValue)
	}

	for _, p := range c.PercentileLevels {
		m.Percentiles[levelKey(p)] = quantile(sortedAsc, p)
	}

	m.Histogram = BuildHistogram(sortedAsc)
	m.ModeLoss = modeFromHistogram(m.Histogram)

	sortedDesc := append([]float64(nil), sortedAsc...)
	reverse(sortedDesc)
	m.ExceedanceCurve = BuildExceedanceCurve(sortedDesc, 100)

	return m, nil
}

// tailAverageAtOrAbove computes TVaR at a given VaR threshold: the mean of
// all losses at or above the threshold. Falls back to the threshold itself
// if no losses reach it (can happen for a near-unity confidence level with
// too few iterations).
func tailAverageAtOrAbove(sortedAsc []float64, threshold float64) float64 {
	var sum float64
	var count int
	for _, v := range sortedAsc {
		if v >= threshold {
			sum += v
			count++
		}
	}
	if count == 0 {
		return threshold
	}
	return sum / float64(count)
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
