package simulation

// ScenarioComparison compares two completed runs of the same job under
// different assumptions (e.g. with vs without a reinsurance program).
type ScenarioComparison struct {
	BaselineJobID          string
	ComparisonJobID        string
	ExpectedLossChangePct  float64
	VaR99ChangePct         float64
	MoreSevere             bool // comparison scenario has a higher expected loss than baseline
}

// CompareScenarios reports how comparison's risk profile differs from
// baseline's, as percentage changes in expected loss and 99% VaR. It
// compares two already-completed runs and reports only those two figures;
// VaR95, TVaR, standard deviation and maximum loss are not compared.
func CompareScenarios(baseline, comparison *Result) ScenarioComparison {
	c := ScenarioComparison{
		BaselineJobID:   baseline.JobID,
		ComparisonJobID: comparison.JobID,
	}
	baselineVaR99, _ := baseline.Metrics.VaRAt(0.99)
	comparisonVaR99, _ := comparison.Metrics.VaRAt(0.99)
	c.ExpectedLossChangePct = percentChange(baseline.Metrics.ExpectedLoss, comparison.Metrics.ExpectedLoss)
	c.VaR99ChangePct = percentChange(baselineVaR99, comparisonVaR99)
	c.MoreSevere = comparison.Metrics.ExpectedLoss > baseline.Metrics.ExpectedLoss
	return c
}

func percentChange(from, to float64) float64 {
	if from == 0 {
		if to == 0 {
			return 0
		}
		return 100
	}
	return (to - from) / from * 100
}
