package financial

import "testing"

func TestNewPolicyTermsValidation(t *testing.T) {
	if _, err := NewPolicyTerms("p1", 0, 0, nil, 0, 0, nil); err == nil {
		t.Fatalf("expected error for zero coverage limit")
	}
	if _, err := NewPolicyTerms("p1", 1000, -1, nil, 0, 0, nil); err == nil {
		t.Fatalf("expected error for negative deductible")
	}
	if _, err := NewPolicyTerms("p1", 1000, 0, nil, 1.5, 0, nil); err == nil {
		t.Fatalf("expected error for coinsurance > 1")
	}
	if _, err := NewPolicyTerms("p1", 1000, 0, nil, 0, -1, nil); err == nil {
		t.Fatalf("expected error for negative waiting period")
	}
}

func TestNewPolicyTermsValid(t *testing.T) {
	agg := 1_000_000.0
	p, err := NewPolicyTerms("p1", 500000, 10000, map[string]float64{"cyber": 250000}, 0.1, 30, &agg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CoverageLimit != 500000 {
		t.Fatalf("unexpected coverage limit: %v", p.CoverageLimit)
	}
}
