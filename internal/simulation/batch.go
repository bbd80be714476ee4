package simulation

import (
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/distributions"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/financial"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"
)

// runBatch draws count independent iterations from stream and returns one
// aggregate loss per iteration. Each iteration draws an event count from
// freq (clipped to maxEventsPerIteration), then one severity per event. With
// no portfolio, the iteration's aggregate is the raw sum of event
// severities. With a portfolio, every event applies to every policy: each
// policy accumulates its own waiting-period/deductible/coinsurance/limit/
// sub-limit-capped, aggregate-capped covered loss across the iteration
// (financial.PolicyAccumulator), those per-policy totals are summed into the
// iteration's insurer gross loss, and reinsurance is applied once to that
// sum (financial.ApplyReinsurance) rather than per-event or per-policy.
func runBatch(stream *rng.Stream, freq distributions.Frequency, sev distributions.Severity, portfolio []financial.PolicyTerms, layers []financial.ReinsuranceLayer, applyReinsurance bool, maxEventsPerIteration int, count int) []float64 {
	losses := make([]float64, count)
	accumulators := make([]*financial.PolicyAccumulator, len(portfolio))

	for i := 0; i < count; i++ {
		numEvents := freq.Sample(stream)
		if numEvents < 0 {
			numEvents = 0
		}
		if numEvents > maxEventsPerIteration {
			numEvents = maxEventsPerIteration
		}

		if len(portfolio) == 0 {
			var aggregate float64
			for e := 0; e < numEvents; e++ {
				aggregate += sev.Sample(stream)
			}
			losses[i] = aggregate
			continue
		}

		for p := range portfolio {
			accumulators[p] = financial.NewPolicyAccumulator(&portfolio[p])
		}

		var groundUpLoss, insurerGrossLoss float64
		for e := 0; e < numEvents; e++ {
			eventLoss := sev.Sample(stream)
			groundUpLoss += eventLoss
			for _, acc := range accumulators {
				insurerGrossLoss += acc.Add(eventLoss, e)
			}
		}

		var effectiveLayers []financial.ReinsuranceLayer
		if applyReinsurance {
			effectiveLayers = layers
		}
		result := financial.ApplyReinsurance(groundUpLoss, insurerGrossLoss, effectiveLayers)
		losses[i] = result.NetLoss
	}
	return losses
}
