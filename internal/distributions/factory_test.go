package distributions

import "testing"

func TestNewFrequencyUnknownName(t *testing.T) {
	if _, err := NewFrequency("bogus", nil); err == nil {
		t.Fatalf("expected error for unknown frequency distribution")
	}
}

func TestNewFrequencyMissingParam(t *testing.T) {
	if _, err := NewFrequency("poisson", map[string]float64{}); err == nil {
		t.Fatalf("expected error for missing lambda")
	}
}

func TestNewFrequencyPoisson(t *testing.T) {
	f, err := NewFrequency("poisson", map[string]float64{"lambda": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Name() != "poisson" {
		t.Fatalf("expected name poisson, got %s", f.Name())
	}
}

func TestNewSeverityUnknownName(t *testing.T) {
	if _, err := NewSeverity("bogus", nil); err == nil {
		t.Fatalf("expected error for unknown severity distribution")
	}
}

func TestNewSeverityLognormal(t *testing.T) {
	sv, err := NewSeverity("lognormal", map[string]float64{"mu": 10, "sigma": 1.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sv.Name() != "lognormal" {
		t.Fatalf("expected name lognormal, got %s", sv.Name())
	}
}
