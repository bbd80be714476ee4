// Package financial implements the per-event financial cascade applied to
// raw loss draws: waiting period, deductible, coinsurance, policy limit,
// sub-limits, and reinsurance recovery (C3).
package financial

import "github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"

// PolicyTerms describes one insurance policy's retention and limit
// structure. SubLimits is keyed by peril category, but the cascade applies
// the smallest declared sub-limit to every event regardless of peril;
// PolicyAggregate, when set, caps total recovery across an entire simulated
// period.
type PolicyTerms struct {
	PolicyID          string             `json:"policy_id"`
	CoverageLimit     float64            `json:"coverage_limit"`
	Deductible        float64            `json:"deductible"`
	SubLimits         map[string]float64 `json:"sub_limits,omitempty"`
	Coinsurance       float64            `json:"coinsurance"`
	WaitingPeriodDays int                `json:"waiting_period_days"`
	PolicyAggregate   *float64           `json:"policy_aggregate,omitempty"`
}

// NewPolicyTerms validates terms and returns a ready-to-use PolicyTerms.
func NewPolicyTerms(policyID string, coverageLimit, deductible float64, subLimits map[string]float64, coinsurance float64, waitingPeriodDays int, policyAggregate *float64) (*PolicyTerms, error) {
	if coverageLimit <= 0 {
		return nil, simerr.Financialf("coverage_limit", "must be positive, got %g", coverageLimit)
	}
	if deductible < 0 {
		return nil, simerr.Financialf("deductible", "must be non-negative, got %g", deductible)
	}
	if coinsurance < 0 || coinsurance > 1 {
		return nil, simerr.Financialf("coinsurance", "must be in [0, 1], got %g", coinsurance)
	}
	if waitingPeriodDays < 0 {
		return nil, simerr.Financialf("waiting_period_days", "must be non-negative, got %d", waitingPeriodDays)
	}
	for peril, limit := range subLimits {
		if limit < 0 {
			return nil, simerr.Financialf("sub_limits", "sub-limit for %q must be non-negative, got %g", peril, limit)
		}
	}
	if policyAggregate != nil && *policyAggregate <= 0 {
		return nil, simerr.Financialf("policy_aggregate", "must be positive when set, got %g", *policyAggregate)
	}
	return &PolicyTerms{
		PolicyID:          policyID,
		CoverageLimit:     coverageLimit,
		Deductible:        deductible,
		SubLimits:         subLimits,
		Coinsurance:       coinsurance,
		WaitingPeriodDays: waitingPeriodDays,
		PolicyAggregate:   policyAggregate,
	}, nil
}
