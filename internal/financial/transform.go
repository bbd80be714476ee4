package financial

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NetLossResult is the outcome of running a policy-year's events through a
// policy (or a portfolio of policies) and then reinsurance.
type NetLossResult struct {
	GrossLoss           float64 // ground-up loss before any policy terms
	RetainedLoss        float64 // borne by the insured, outside the policy entirely
	CededLoss           float64 // insurer's gross loss before reinsurance
	ReinsuranceRecovery float64
	NetLoss             float64 // final loss borne by the carrier after reinsurance
	RetentionRatio      float64
	CoverageRatio       float64
}

// isWithinWaitingPeriod reports whether eventIndex falls before policy
// coverage has started, mirroring the original's `_is_within_waiting_period`
// (`event_date < waiting_period`, treating 0 as "no waiting period").
func isWithinWaitingPeriod(eventIndex, waitingPeriodDays int) bool {
	if waitingPeriodDays <= 0 {
		return false
	}
	return eventIndex < waitingPeriodDays
}

// applySubLimits applies the blanket minimum-sub-limit cap: when sub-limits
// are set, the tightest one caps covered loss regardless of which peril it
// was declared under. Matches the original's `_apply_sub_limits`, which
// doesn't key off peril at all — "for simplicity, apply the most
// restrictive sub-limit."
func applySubLimits(covered float64, subLimits map[string]float64) float64 {
	if len(subLimits) == 0 {
		return covered
	}
	minSubLimit := math.Inf(1)
	for _, limit := range subLimits {
		if limit < minSubLimit {
			minSubLimit = limit
		}
	}
	if minSubLimit < covered {
		return minSubLimit
	}
	return covered
}

// PerEventCoveredLoss runs one event's ground-up loss through a policy's
// waiting period, deductible, coinsurance, policy limit, and sub-limits
// (§4.3 steps 1-5), returning what the policy covers before the policy-year
// aggregate cap and before reinsurance.
func PerEventCoveredLoss(policy PolicyTerms, grossLoss float64, eventIndex int) float64 {
	if grossLoss <= 0 {
		return 0
	}
	if isWithinWaitingPeriod(eventIndex, policy.WaitingPeriodDays) {
		return 0
	}

	afterDeductible := grossLoss - policy.Deductible
	if afterDeductible < 0 {
		afterDeductible = 0
	}
	afterCoinsurance := afterDeductible * (1 - policy.Coinsurance)

	covered := afterCoinsurance
	if covered > policy.CoverageLimit {
		covered = policy.CoverageLimit
	}
	return applySubLimits(covered, policy.SubLimits)
}

// PolicyAccumulator tracks one policy's cumulative covered loss across a
// single simulated iteration (policy year), enforcing PolicyAggregate as a
// running cap (§4.3 step 6). A fresh accumulator must be used per iteration.
type PolicyAccumulator struct {
	policy *PolicyTerms
	total  float64
}

// NewPolicyAccumulator starts a zeroed accumulator for policy.
func NewPolicyAccumulator(policy *PolicyTerms) *PolicyAccumulator {
	return &PolicyAccumulator{policy: policy}
}

// Add runs one event through the policy's per-event cascade and folds it
// into the running policy-year total, capping at PolicyAggregate when set.
// Returns the marginal amount this event actually contributed to the
// insurer's gross loss — zero once the aggregate has been exhausted.
func (a *PolicyAccumulator) Add(grossLoss float64, eventIndex int) float64 {
	covered := PerEventCoveredLoss(*a.policy, grossLoss, eventIndex)
	if covered <= 0 {
		return 0
	}
	newTotal := a.total + covered
	if a.policy.PolicyAggregate != nil && newTotal > *a.policy.PolicyAggregate {
		newTotal = *a.policy.PolicyAggregate
	}
	contribution := newTotal - a.total
	a.total = newTotal
	return contribution
}

// Total returns the accumulator's running insurer gross loss so far.
func (a *PolicyAccumulator) Total() float64 {
	return a.total
}

// ApplyReinsurance applies layers once to an iteration's total insurer
// gross loss — the sum, across every policy in the portfolio, of each
// policy's aggregate-capped covered loss (§4.3 steps 6-7) — returning the
// full gross/ceded/recovery/net breakdown for that iteration.
func ApplyReinsurance(groundUpLoss, insurerGrossLoss float64, layers []ReinsuranceLayer) NetLossResult {
	result := NetLossResult{GrossLoss: groundUpLoss, CededLoss: insurerGrossLoss}
	if insurerGrossLoss <= 0 {
		result.RetainedLoss = groundUpLoss
		return result
	}

	recovery := CalculateRecovery(insurerGrossLoss, layers)
	netLoss := clampNonNegativeScalar(insurerGrossLoss - recovery)
	if netLoss > insurerGrossLoss {
		netLoss = insurerGrossLoss
	}

	result.ReinsuranceRecovery = recovery
	result.NetLoss = netLoss
	result.RetainedLoss = groundUpLoss - insurerGrossLoss
	if groundUpLoss > 0 {
		result.RetentionRatio = result.RetainedLoss / groundUpLoss
		result.CoverageRatio = insurerGrossLoss / groundUpLoss
	}
	return result
}

// ApplyPolicy is the single-event, single-policy convenience path: it runs
// one event through the cascade and applies reinsurance to that event's
// covered loss alone. It has no policy-year aggregate to cap against (there
// is only one event), so PolicyAggregate is not enforced here — a caller
// simulating more than one event per iteration must use PolicyAccumulator
// plus ApplyReinsurance instead, so reinsurance attaches to the iteration's
// full aggregate rather than to each event individually and the aggregate
// cap is tracked correctly across events.
func ApplyPolicy(policy PolicyTerms, grossLoss float64, eventIndex int, layers []ReinsuranceLayer) NetLossResult {
	covered := PerEventCoveredLoss(policy, grossLoss, eventIndex)
	return ApplyReinsurance(grossLoss, covered, layers)
}

// ApplyPolicyBatchCeded is the vectorized fast path used when a batch of
// many independent per-iteration aggregate severities must be run through
// the same policy with no waiting period, no sub-limits, no policy
// aggregate, and no non-proportional reinsurance — only the aggregate ceded
// amount and a flat quota-share cession are needed. Any other policy
// feature requires the per-event PerEventCoveredLoss/PolicyAccumulator path
// instead.
func ApplyPolicyBatchCeded(policy PolicyTerms, grossLosses []float64, quotaShareCessionRate float64) (ceded, cession []float64) {
	afterDeductible := make([]float64, len(grossLosses))
	copy(afterDeductible, grossLosses)
	floats.AddConst(-policy.Deductible, afterDeductible)
	clampNonNegative(afterDeductible)

	ceded = make([]float64, len(afterDeductible))
	copy(ceded, afterDeductible)
	floats.Scale(1-policy.Coinsurance, ceded)
	clampMax(ceded, policy.CoverageLimit)

	cession = make([]float64, len(ceded))
	copy(cession, ceded)
	floats.Scale(quotaShareCessionRate, cession)

	return ceded, cession
}

func clampNonNegativeScalar(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampNonNegative(xs []float64) {
	for i, v := range xs {
		if v < 0 {
			xs[i] = 0
		}
	}
}

func clampMax(xs []float64, max float64) {
	for i, v := range xs {
		if v > max {
			xs[i] = max
		}
	}
}
