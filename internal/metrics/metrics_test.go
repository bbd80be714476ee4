package metrics

import (
	"math"
	"testing"
)

func linspaceLosses(n int) []float64 {
	losses := make([]float64, n)
	for i := 0; i < n; i++ {
		losses[i] = float64(i) * 100
	}
	return losses
}

func TestCalculateBasicStats(t *testing.T) {
	c := NewCalculator()
	losses := linspaceLosses(1001) // 0, 100, ..., 100000
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.MinimumLoss != 0 {
		t.Fatalf("expected min 0, got %v", m.MinimumLoss)
	}
	if m.MaximumLoss != 100000 {
		t.Fatalf("expected max 100000, got %v", m.MaximumLoss)
	}
	if math.Abs(m.ExpectedLoss-50000) > 1e-9 {
		t.Fatalf("expected mean 50000, got %v", m.ExpectedLoss)
	}
}

func TestCalculateEmptyAfterCleaning(t *testing.T) {
	c := NewCalculator()
	_, err := c.Calculate([]float64{math.NaN(), math.Inf(1), -5})
	if err == nil {
		t.Fatalf("expected error for all-invalid input")
	}
}

func TestCalculateDropsInvalidValues(t *testing.T) {
	c := NewCalculator()
	losses := append(linspaceLosses(100), math.NaN(), math.Inf(1), -10)
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Iterations != 100 {
		t.Fatalf("expected 100 valid iterations after cleaning, got %d", m.Iterations)
	}
}

func TestVaRMonotonicAcrossConfidenceLevels(t *testing.T) {
	c := NewCalculator()
	losses := linspaceLosses(10001)
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v95, _ := m.VaRAt(0.95)
	v99, _ := m.VaRAt(0.99)
	v999, _ := m.VaRAt(0.999)
	if v95 > v99 || v99 > v999 {
		t.Fatalf("expected VaR to increase with confidence level: %v", m.VaR)
	}
}

func TestTVaRAtLeastVaR(t *testing.T) {
	c := NewCalculator()
	losses := linspaceLosses(10001)
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, level := range c.ConfidenceLevels {
		v, _ := m.VaRAt(level)
		tv, _ := m.TVaRAt(level)
		if tv < v {
			t.Fatalf("expected TVaR >= VaR at level %v: TVaR=%v VaR=%v", level, tv, v)
		}
	}
}

func TestHistogramCountsSumToIterations(t *testing.T) {
	c := NewCalculator()
	losses := linspaceLosses(5000)
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var total int
	for _, cnt := range m.Histogram.Counts {
		total += cnt
	}
	if total != m.Iterations {
		t.Fatalf("expected histogram counts to sum to %d, got %d", m.Iterations, total)
	}
}

func TestExceedanceCurveDescending(t *testing.T) {
	c := NewCalculator()
	losses := linspaceLosses(1000)
	m, err := c.Calculate(losses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(m.ExceedanceCurve); i++ {
		if m.ExceedanceCurve[i].Loss > m.ExceedanceCurve[i-1].Loss {
			t.Fatalf("expected exceedance curve losses to be non-increasing")
		}
		if m.ExceedanceCurve[i].ExceedanceProbability <= m.ExceedanceCurve[i-1].ExceedanceProbability {
			t.Fatalf("expected exceedance probability to increase along the curve")
		}
	}
}

func TestQuantileBounds(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if quantile(sorted, 0) != 1 {
		t.Fatalf("expected quantile(0)=1, got %v", quantile(sorted, 0))
	}
	if quantile(sorted, 1) != 5 {
		t.Fatalf("expected quantile(1)=5, got %v", quantile(sorted, 1))
	}
	if quantile(sorted, 0.5) != 3 {
		t.Fatalf("expected quantile(0.5)=3, got %v", quantile(sorted, 0.5))
	}
}
