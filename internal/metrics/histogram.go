package metrics

import "math"

// HistogramData is a fixed-width binning of the loss distribution.
type HistogramData struct {
	BinEdges []float64 `json:"bin_edges"` // len(Counts)+1
	Counts   []int     `json:"counts"`
}

// freedmanDiaconisBinCount picks a bin count from the Freedman-Diaconis
// rule (bin width = 2*IQR*n^(-1/3)), falling back to a fixed 50 bins when
// the interquartile range collapses to zero (e.g. a near-constant loss
// distribution). No library in the corpus offers automatic histogram
// binning; this is a well-known closed-form rule, not a statistic worth
// pulling in gonum for.
func freedmanDiaconisBinCount(sortedAsc []float64) int {
	n := len(sortedAsc)
	if n < 2 {
		return 1
	}
	q1 := quantile(sortedAsc, 0.25)
	q3 := quantile(sortedAsc, 0.75)
	iqr := q3 - q1
	if iqr <= 0 {
		return 50
	}
	binWidth := 2 * iqr / math.Cbrt(float64(n))
	if binWidth <= 0 {
		return 50
	}
	dataRange := sortedAsc[n-1] - sortedAsc[0]
	if dataRange <= 0 {
		return 1
	}
	bins := int(math.Ceil(dataRange / binWidth))
	if bins < 1 {
		bins = 1
	}
	if bins > 500 {
		bins = 500
	}
	return bins
}

// BuildHistogram bins sortedAsc (ascending) losses into evenly-spaced bins
// chosen via the Freedman-Diaconis rule.
func BuildHistogram(sortedAsc []float64) HistogramData {
	if len(sortedAsc) == 0 {
		return HistogramData{}
	}
	bins := freedmanDiaconisBinCount(sortedAsc)
	minV, maxV := sortedAsc[0], sortedAsc[len(sortedAsc)-1]
	if minV == maxV {
		return HistogramData{BinEdges: []float64{minV, maxV}, Counts: []int{len(sortedAsc)}}
	}

	edges := make([]float64, bins+1)
	width := (maxV - minV) / float64(bins)
	for i := range edges {
		edges[i] = minV + float64(i)*width
	}
	edges[bins] = maxV

	counts := make([]int, bins)
	for _, v := range sortedAsc {
		idx := int((v - minV) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return HistogramData{BinEdges: edges, Counts: counts}
}

// modeFromHistogram estimates the distribution's mode as the midpoint of
// the histogram's most populated bin.
func modeFromHistogram(h HistogramData) float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	best := 0
	for i, c := range h.Counts {
		if c > h.Counts[best] {
			best = i
		}
	}
	return (h.BinEdges[best] + h.BinEdges[best+1]) / 2
}
