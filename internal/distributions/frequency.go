package distributions

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/rng"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// Poisson draws event counts with mean rate Lambda.
type Poisson struct {
	lambda float64
}

// NewPoisson validates lambda and returns a ready-to-sample Poisson.
func NewPoisson(lambda float64) (*Poisson, error) {
	if lambda <= 0 {
		return nil, simerr.Distributionf("lambda", "must be positive, got %g", lambda)
	}
	return &Poisson{lambda: lambda}, nil
}

func (p *Poisson) Name() string { return "poisson" }

func (p *Poisson) Sample(s *rng.Stream) int {
	d := distuv.Poisson{Lambda: p.lambda, Src: rng.NewSource(s)}
	return int(d.Rand())
}

func (p *Poisson) Mean() float64     { return p.lambda }
func (p *Poisson) Variance() float64 { return p.lambda }

// Binomial draws event counts out of n independent trials with per-trial
// success probability p.
type Binomial struct {
	n int
	p float64
}

// NewBinomial validates n and p and returns a ready-to-sample Binomial.
func NewBinomial(n int, p float64) (*Binomial, error) {
	if n <= 0 {
		return nil, simerr.Distributionf("n", "must be a positive integer, got %d", n)
	}
	if p < 0 || p > 1 {
		return nil, simerr.Distributionf("p", "must be in [0, 1], got %g", p)
	}
	return &Binomial{n: n, p: p}, nil
}

func (b *Binomial) Name() string { return "binomial" }

func (b *Binomial) Sample(s *rng.Stream) int {
	d := distuv.Binomial{N: float64(b.n), P: b.p, Src: rng.NewSource(s)}
	return int(d.Rand())
}

func (b *Binomial) Mean() float64     { return float64(b.n) * b.p }
func (b *Binomial) Variance() float64 { return float64(b.n) * b.p * (1 - b.p) }

// NegativeBinomial draws the number of failures before the n-th success,
// with per-trial success probability p. gonum/stat/distuv has no negative
// binomial type, so it is sampled as a Gamma(n, (1-p)/p)-Poisson mixture:
// draw a rate from the Gamma, then a count from Poisson(rate). This is the
// standard construction and matches the moments of the direct NB(n, p).
type NegativeBinomial struct {
	n int
	p float64
}

// NewNegativeBinomial validates n and p and returns a ready-to-sample
// NegativeBinomial.
func NewNegativeBinomial(n int, p float64) (*NegativeBinomial, error) {
	if n <= 0 {
		return nil, simerr.Distributionf("n", "must be a positive integer, got %d", n)
	}
	if p <= 0 || p > 1 {
		return nil, simerr.Distributionf("p", "must be in (0, 1], got %g", p)
	}
	return &NegativeBinomial{n: n, p: p}, nil
}

func (nb *NegativeBinomial) Name() string { return "negative_binomial" }

func (nb *NegativeBinomial) Sample(s *rng.Stream) int {
	gammaScale := (1 - nb.p) / nb.p
	gamma := distuv.Gamma{Alpha: float64(nb.n), Beta: 1 / gammaScale, Src: rng.NewSource(s)}
	rate := gamma.Rand()
	poisson := distuv.Poisson{Lambda: rate, Src: rng.NewSource(s)}
	return int(poisson.Rand())
}

func (nb *NegativeBinomial) Mean() float64 {
	return float64(nb.n) * (1 - nb.p) / nb.p
}

func (nb *NegativeBinomial) Variance() float64 {
	return float64(nb.n) * (1 - nb.p) / (nb.p * nb.p)
}
