package models

import (
	"math"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

const (
	DefaultPaths = 20000
	DefaultSteps = 126 // half a year of trading days
	DefaultSeed  = 42
)

// ContractParameters is the market and contract state shared by the pricer and the simulator.
type ContractParameters struct {
	S0    float64 `json:"s0"`    // Spot price
	K     float64 `json:"k"`     // Strike
	T     float64 `json:"t"`     // Time to expiry in years
	R     float64 `json:"r"`     // Risk-free rate
	Q     float64 `json:"q"`     // Dividend yield
	Sigma float64 `json:"sigma"` // Volatility
}

func (p ContractParameters) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"S0", p.S0},
		{"K", p.K},
		{"T", p.T},
		{"sigma", p.Sigma},
	}
	for _, c := range checks {
		if err := positive(c.name, c.value); err != nil {
			return err
		}
	}
	if err := finite("r", p.R); err != nil {
		return err
	}
	return finite("q", p.Q)
}

// Drift is the risk-neutral log drift per year, net of dividends and the Ito correction.
func (p ContractParameters) Drift() float64 {
	return p.R - p.Q - 0.5*p.Sigma*p.Sigma
}

func (p ContractParameters) Discount() float64 {
	return math.Exp(-p.R * p.T)
}

type SimulationConfig struct {
	Paths   int
	Steps   int
	Seed    uint64
	Workers int // <= 0 runs a single worker
}

func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Paths:   DefaultPaths,
		Steps:   DefaultSteps,
		Seed:    DefaultSeed,
		Workers: DefaultWorkers(),
	}
}

// DefaultWorkers is the logical CPU count, capped at GOMAXPROCS.
func DefaultWorkers() int {
	limit := runtime.GOMAXPROCS(0)
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 || n > limit {
		return limit
	}
	return n
}

func (c SimulationConfig) Validate() error {
	if c.Paths <= 0 {
		return &InvalidParameterError{Param: "n_paths", Value: float64(c.Paths), Constraint: "must be a positive integer"}
	}
	if c.Steps <= 0 {
		return &InvalidParameterError{Param: "n_steps", Value: float64(c.Steps), Constraint: "must be a positive integer"}
	}
	return nil
}

// Threshold is the take-profit barrier: the bid/ask midpoint scaled by the take-profit multiple.
func Threshold(bid, ask, multiple float64) (float64, error) {
	if err := finite("bid", bid); err != nil {
		return 0, err
	}
	if bid < 0 {
		return 0, &InvalidParameterError{Param: "bid", Value: bid, Constraint: "must not be negative"}
	}
	if err := finite("ask", ask); err != nil {
		return 0, err
	}
	if ask < bid {
		return 0, &InvalidParameterError{Param: "ask", Value: ask, Constraint: "must not be below bid"}
	}
	if err := positive("multiple", multiple); err != nil {
		return 0, err
	}
	return Midpoint(bid, ask) * multiple, nil
}

func Midpoint(bid, ask float64) float64 {
	return (bid + ask) / 2
}
