package simulation

import (
	"testing"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/metrics"
)

func TestCompareScenariosMoreSevere(t *testing.T) {
	baseline := &Result{JobID: "baseline", Metrics: &metrics.RiskMetrics{ExpectedLoss: 100000, VaR: map[string]float64{"0.99": 500000}}}
	comparison := &Result{JobID: "with-reinsurance-gap", Metrics: &metrics.RiskMetrics{ExpectedLoss: 150000, VaR: map[string]float64{"0.99": 600000}}}

	cmp := CompareScenarios(baseline, comparison)
	if !cmp.MoreSevere {
		t.Fatalf("expected comparison scenario to be flagged more severe")
	}
	if cmp.ExpectedLossChangePct != 50 {
		t.Fatalf("expected 50%% expected loss increase, got %v", cmp.ExpectedLossChangePct)
	}
	if cmp.VaR99ChangePct != 20 {
		t.Fatalf("expected 20%% VaR99 increase, got %v", cmp.VaR99ChangePct)
	}
}

func TestCompareScenariosLessSevere(t *testing.T) {
	baseline := &Result{JobID: "baseline", Metrics: &metrics.RiskMetrics{ExpectedLoss: 200000, VaR: map[string]float64{"0.99": 800000}}}
	comparison := &Result{JobID: "with-reinsurance", Metrics: &metrics.RiskMetrics{ExpectedLoss: 100000, VaR: map[string]float64{"0.99": 400000}}}

	cmp := CompareScenarios(baseline, comparison)
	if cmp.MoreSevere {
		t.Fatalf("expected comparison scenario to be flagged less severe")
	}
	if cmp.ExpectedLossChangePct != -50 {
		t.Fatalf("expected -50%% expected loss change, got %v", cmp.ExpectedLossChangePct)
	}
}
