package distributions

import (
	"fmt"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// AvailableFrequencies lists the frequency distribution names the factory
// recognizes, in a fixed display order.
var AvailableFrequencies = []string{"poisson", "negative_binomial", "binomial"}

// AvailableSeverities lists the severity distribution names the factory
// recognizes, in a fixed display order.
var AvailableSeverities = []string{"lognormal", "pareto", "gamma", "exponential", "weibull"}

// NewFrequency builds a Frequency by name from a loosely-typed parameter map,
// the shape a job spec's JSON deserializes into.
func NewFrequency(name string, params map[string]float64) (Frequency, error) {
	switch name {
	case "poisson":
		lambda, err := requireParam(params, "lambda")
		if err != nil {
			return nil, err
		}
		return NewPoisson(lambda)
	case "negative_binomial":
		n, err := requireParam(params, "n")
		if err != nil {
			return nil, err
		}
		p, err := requireParam(params, "p")
		if err != nil {
			return nil, err
		}
		return NewNegativeBinomial(int(n), p)
	case "binomial":
		n, err := requireParam(params, "n")
		if err != nil {
			return nil, err
		}
		p, err := requireParam(params, "p")
		if err != nil {
			return nil, err
		}
		return NewBinomial(int(n), p)
	default:
		return nil, simerr.WithDetails(simerr.KindParameter, "frequency_distribution",
			fmt.Sprintf("unknown frequency distribution %q", name),
			map[string]any{"valid_distributions": AvailableFrequencies})
	}
}

// NewSeverity builds a Severity by name from a loosely-typed parameter map.
func NewSeverity(name string, params map[string]float64) (Severity, error) {
	switch name {
	case "lognormal":
		mu, err := requireParam(params, "mu")
		if err != nil {
			return nil, err
		}
		sigma, err := requireParam(params, "sigma")
		if err != nil {
			return nil, err
		}
		return NewLognormal(mu, sigma)
	case "pareto":
		shape, err := requireParam(params, "shape")
		if err != nil {
			return nil, err
		}
		scale, err := requireParam(params, "scale")
		if err != nil {
			return nil, err
		}
		return NewPareto(shape, scale)
	case "gamma":
		shape, err := requireParam(params, "shape")
		if err != nil {
			return nil, err
		}
		scale, err := requireParam(params, "scale")
		if err != nil {
			return nil, err
		}
		return NewGamma(shape, scale)
	case "exponential":
		scale, err := requireParam(params, "scale")
		if err != nil {
			return nil, err
		}
		return NewExponential(scale)
	case "weibull":
		shape, err := requireParam(params, "shape")
		if err != nil {
			return nil, err
		}
		scale, err := requireParam(params, "scale")
		if err != nil {
			return nil, err
		}
		return NewWeibull(shape, scale)
	default:
		return nil, simerr.WithDetails(simerr.KindParameter, "severity_distribution",
			fmt.Sprintf("unknown severity distribution %q", name),
			map[string]any{"valid_distributions": AvailableSeverities})
	}
}

func requireParam(params map[string]float64, key string) (float64, error) {
	v, ok := params[key]
	if !ok {
		return 0, simerr.Parameterf(key, "missing required parameter %q", key)
	}
	return v, nil
}
