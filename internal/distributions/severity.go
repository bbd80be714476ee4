package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// Lognormal draws loss amounts whose log follows Normal(mu, sigma).
type Lognormal struct {
	mu, sigma float64
}

// NewLognormal validates sigma and returns a ready-to-sample Lognormal. mu
// is unconstrained.
func NewLognormal(mu, sigma float64) (*Lognormal, error) {
	if sigma <= 0 {
		return nil, simerr.Distributionf("sigma", "must be positive, got %g", sigma)
	}
	return &Lognormal{mu: mu, sigma: sigma}, nil
}

func (l *Lognormal) Name() string { return "lognormal" }

func (l *Lognormal) Sample(s *rng.Stream) float64 {
	d := distuv.LogNormal{Mu: l.mu, Sigma: l.sigma, Src: rng.NewSource(s)}
	return d.Rand()
}

func (l *Lognormal) Mean() float64 {
	return math.Exp(l.mu + l.sigma*l.sigma/2)
}

func (l *Lognormal) Variance() float64 {
	return (math.Exp(l.sigma*l.sigma) - 1) * math.Exp(2*l.mu+l.sigma*l.sigma)
}

// Pareto draws loss amounts above a minimum scale with tail heaviness shape.
// Larger shape means a thinner tail.
type Pareto struct {
	shape, scale float64
}

// NewPareto validates shape and scale and returns a ready-to-sample Pareto.
func NewPareto(shape, scale float64) (*Pareto, error) {
	if shape <= 0 {
		return nil, simerr.Distributionf("shape", "must be positive, got %g", shape)
	}
	if scale <= 0 {
		return nil, simerr.Distributionf("scale", "must be positive, got %g", scale)
	}
	return &Pareto{shape: shape, scale: scale}, nil
}

func (p *Pareto) Name() string { return "pareto" }

func (p *Pareto) Sample(s *rng.Stream) float64 {
	d := distuv.Pareto{Xm: p.scale, Alpha: p.shape, Src: rng.NewSource(s)}
	return d.Rand()
}

// Mean is infinite for shape <= 1, matching classical Pareto Type I.
func (p *Pareto) Mean() float64 {
	if p.shape <= 1 {
		return math.Inf(1)
	}
	return p.shape * p.scale / (p.shape - 1)
}

func (p *Pareto) Variance() float64 {
	if p.shape <= 2 {
		return math.Inf(1)
	}
	return (p.scale * p.scale * p.shape) / ((p.shape - 1) * (p.shape - 1) * (p.shape - 2))
}

// Gamma draws loss amounts with shape and scale parameters.
type Gamma struct {
	shape, scale float64
}

// NewGamma validates shape and scale and returns a ready-to-sample Gamma.
func NewGamma(shape, scale float64) (*Gamma, error) {
	if shape <= 0 {
		return nil, simerr.Distributionf("shape", "must be positive, got %g", shape)
	}
	if scale <= 0 {
		return nil, simerr.Distributionf("scale", "must be positive, got %g", scale)
	}
	return &Gamma{shape: shape, scale: scale}, nil
}

func (g *Gamma) Name() string { return "gamma" }

func (g *Gamma) Sample(s *rng.Stream) float64 {
	d := distuv.Gamma{Alpha: g.shape, Beta: 1 / g.scale, Src: rng.NewSource(s)}
	return d.Rand()
}

func (g *Gamma) Mean() float64     { return g.shape * g.scale }
func (g *Gamma) Variance() float64 { return g.shape * g.scale * g.scale }

// Exponential draws loss amounts with mean scale.
type Exponential struct {
	scale float64
}

// NewExponential validates scale and returns a ready-to-sample Exponential.
func NewExponential(scale float64) (*Exponential, error) {
	if scale <= 0 {
		return nil, simerr.Distributionf("scale", "must be positive, got %g", scale)
	}
	return &Exponential{scale: scale}, nil
}

func (e *Exponential) Name() string { return "exponential" }

func (e *Exponential) Sample(s *rng.Stream) float64 {
	d := distuv.Exponential{Rate: 1 / e.scale, Src: rng.NewSource(s)}
	return d.Rand()
}

func (e *Exponential) Mean() float64     { return e.scale }
func (e *Exponential) Variance() float64 { return e.scale * e.scale }

// Weibull draws loss amounts with shape and scale parameters.
type Weibull struct {
	shape, scale float64
}

// NewWeibull validates shape and scale and returns a ready-to-sample Weibull.
func NewWeibull(shape, scale float64) (*Weibull, error) {
	if shape <= 0 {
		return nil, simerr.Distributionf("shape", "must be positive, got %g", shape)
	}
	if scale <= 0 {
		return nil, simerr.Distributionf("scale", "must be positive, got %g", scale)
	}
	return &Weibull{shape: shape, scale: scale}, nil
}

func (w *Weibull) Name() string { return "weibull" }

func (w *Weibull) Sample(s *rng.Stream) float64 {
	d := distuv.Weibull{K: w.shape, Lambda: w.scale, Src: rng.NewSource(s)}
	return d.Rand()
}

func (w *Weibull) Mean() float64 {
	return w.scale * math.Gamma(1+1/w.shape)
}

func (w *Weibull) Variance() float64 {
	g1 := math.Gamma(1 + 1/w.shape)
	g2 := math.Gamma(1 + 2/w.shape)
	return w.scale * w.scale * (g2 - g1*g1)
}
