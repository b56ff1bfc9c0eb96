package positions

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/takeprofit/models"
	"gonum.org/v1/gonum/optimize"
)

const (
	initialVolGuess = 0.3
	ivPriceTol      = 1e-6
)

// BlackScholesCall prices a European call with a continuous dividend yield.
func BlackScholesCall(p models.ContractParameters) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return callPrice(p), nil
}

func callPrice(p models.ContractParameters) float64 {
	sqrtT := math.Sqrt(p.T)
	d1 := (math.Log(p.S0/p.K) + (p.R-p.Q+0.5*p.Sigma*p.Sigma)*p.T) / (p.Sigma * sqrtT)
	d2 := d1 - p.Sigma*sqrtT

	return p.S0*math.Exp(-p.Q*p.T)*NormCDF(d1) - p.K*math.Exp(-p.R*p.T)*NormCDF(d2)
}

// NormCDF is the standard normal CDF via the error function. Output lies in [0, 1].
func NormCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// CallPriceBounds returns the open no-arbitrage interval for a European call price.
func CallPriceBounds(p models.ContractParameters) (float64, float64) {
	upper := p.S0 * math.Exp(-p.Q*p.T)
	lower := math.Max(upper-p.K*math.Exp(-p.R*p.T), 0)
	return lower, upper
}

// ImpliedVolatility finds the sigma at which the Black-Scholes call price matches marketPrice.
// p.Sigma is only used as the starting guess when it is positive.
func ImpliedVolatility(p models.ContractParameters, marketPrice float64) (float64, error) {
	guess := p.Sigma
	if guess <= 0 || math.IsNaN(guess) || math.IsInf(guess, 0) {
		guess = initialVolGuess
	}
	p.Sigma = guess
	if err := p.Validate(); err != nil {
		return 0, err
	}

	lower, upper := CallPriceBounds(p)
	if !(marketPrice > lower && marketPrice < upper) {
		return 0, &models.InvalidParameterError{
			Param:      "market_price",
			Value:      marketPrice,
			Constraint: fmt.Sprintf("must lie strictly between %.6f and %.6f", lower, upper),
		}
	}

	// Search in log-sigma so every candidate stays positive.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			trial := p
			trial.Sigma = math.Exp(x[0])
			diff := callPrice(trial) - marketPrice
			return diff * diff
		},
	}

	result, err := optimize.Minimize(problem, []float64{math.Log(guess)}, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, fmt.Errorf("implied volatility search failed: %w", err)
	}

	sigma := math.Exp(result.X[0])
	p.Sigma = sigma
	if diff := math.Abs(callPrice(p) - marketPrice); diff > ivPriceTol*math.Max(1, marketPrice) {
		return 0, fmt.Errorf("implied volatility did not converge: residual %.3g at sigma %.6f", diff, sigma)
	}
	return sigma, nil
}
