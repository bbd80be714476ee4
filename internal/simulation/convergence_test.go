package simulation

import "testing"

func TestCheckConvergenceDetectsStableSeries(t *testing.T) {
	losses := make([]float64, 2000)
	for i := range losses {
		losses[i] = 1000 // perfectly constant series converges immediately
	}
	info := checkConvergence(losses, 100, 0.01)
	if !info.Converged {
		t.Fatalf("expected a constant series to converge")
	}
}

func TestCheckConvergenceDetectsDivergentSeries(t *testing.T) {
	losses := make([]float64, 2000)
	for i := range losses {
		// Ramps up continuously; rolling-window means never stabilize
		// relative to a tight threshold.
		losses[i] = float64(i) * 1000
	}
	info := checkConvergence(losses, 100, 1e-6)
	if info.Converged {
		t.Fatalf("expected a steadily increasing series not to converge at a tight threshold")
	}
}

func TestCheckConvergenceTooFewIterations(t *testing.T) {
	info := checkConvergence([]float64{1, 2, 3}, 100, 0.01)
	if info.Converged {
		t.Fatalf("expected no convergence verdict when there aren't enough iterations for the window")
	}
}
