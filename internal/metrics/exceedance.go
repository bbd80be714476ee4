package metrics

// ExceedancePoint is one point on the exceedance (loss-exceedance /
// "EP curve") curve: the probability that a loss at least this large
// occurs, and the corresponding return period in simulated periods.
type ExceedancePoint struct {
	Loss                  float64 `json:"loss"`
	ExceedanceProbability float64 `json:"exceedance_probability"`
	ReturnPeriod          float64 `json:"return_period"`
}

// BuildExceedanceCurve returns up to maxPoints evenly-spaced points along
// the exceedance curve of sortedDesc (losses sorted descending). Point i's
// exceedance probability is (i+1)/n — the fraction of simulated periods
// with a loss at least as large as sortedDesc[i] — and its return period is
// the reciprocal.
func BuildExceedanceCurve(sortedDesc []float64, maxPoints int) []ExceedancePoint {
	n := len(sortedDesc)
	if n == 0 {
		return nil
	}
	if maxPoints <= 0 || maxPoints > n {
		maxPoints = n
	}
	if maxPoints > 100 {
		maxPoints = 100
	}

	indices := make([]int, 0, maxPoints)
	if maxPoints == 1 {
		indices = append(indices, 0)
	} else {
		step := float64(n-1) / float64(maxPoints-1)
		for i := 0; i < maxPoints; i++ {
			indices = append(indices, int(float64(i)*step))
		}
	}

	points := make([]ExceedancePoint, 0, len(indices))
	for _, idx := range indices {
		prob := float64(idx+1) / float64(n)
		points = append(points, ExceedancePoint{
			Loss:              sortedDesc[idx],
			ExceedanceProbability: prob,
			ReturnPeriod:      1 / prob,
		})
	}
	return points
}
