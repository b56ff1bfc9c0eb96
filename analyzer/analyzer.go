// Package analyzer turns a take-profit request into a priced, simulated verdict.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/bcdannyboy/takeprofit/models"
	"github.com/bcdannyboy/takeprofit/positions"
	"github.com/bcdannyboy/takeprofit/probability"
	"github.com/rs/zerolog"
)

const DefaultTolerance = 0.01

var ErrNoMarketData = errors.New("no market data source configured")

type MarketData interface {
	Snapshot(ctx context.Context, ticker string, strike float64, expiration time.Time) (models.MarketSnapshot, error)
}

// Field marks a market input the caller supplied explicitly.
type Field uint8

const (
	FieldSpot Field = 1 << iota
	FieldRiskFree
	FieldDividend
	FieldVolatility
)

// Request mirrors the analysis form. Rates and volatility are percentages.
type Request struct {
	Ticker        string
	S0            float64
	K             float64
	RiskFreePct   float64
	DividendPct   float64
	VolatilityPct float64
	Expiration    string
	Multiple      float64
	Bid           float64
	Ask           float64

	// Given keeps explicit zeros from being treated as missing.
	Given Field
}

// Supplied reports whether f was marked as given or holds a non-zero value.
func (r Request) Supplied(f Field) bool {
	if r.Given&f != 0 {
		return true
	}
	switch f {
	case FieldSpot:
		return r.S0 != 0
	case FieldRiskFree:
		return r.RiskFreePct != 0
	case FieldDividend:
		return r.DividendPct != 0
	case FieldVolatility:
		return r.VolatilityPct != 0
	}
	return false
}

type Analyzer struct {
	md        MarketData
	sim       models.SimulationConfig
	tolerance float64
	now       func() time.Time
	log       zerolog.Logger
	progress  probability.ProgressFunc
}

type Option func(*Analyzer)

// WithTolerance sets the absolute band around fair value that counts as fairly priced.
func WithTolerance(tol float64) Option {
	return func(a *Analyzer) { a.tolerance = tol }
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// WithProgress reports finished simulation paths to fn during Run.
func WithProgress(fn probability.ProgressFunc) Option {
	return func(a *Analyzer) { a.progress = fn }
}

// New builds an Analyzer. md may be nil when every request carries its own market inputs.
func New(md MarketData, sim models.SimulationConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		md:        md,
		sim:       sim,
		tolerance: DefaultTolerance,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Autofill fetches spot, rates and volatility for ticker. strike and expiration are optional
// hints for which option's implied volatility to use.
func (a *Analyzer) Autofill(ctx context.Context, ticker string, strike float64, expiration string) (models.MarketSnapshot, error) {
	if a.md == nil {
		return models.MarketSnapshot{}, ErrNoMarketData
	}
	var exp time.Time
	if expiration != "" {
		var err error
		if exp, err = positions.ParseExpiration(expiration); err != nil {
			return models.MarketSnapshot{}, err
		}
	}

	snap, err := a.md.Snapshot(ctx, ticker, strike, exp)
	if err != nil {
		a.log.Warn().Err(err).Str("ticker", ticker).Msg("autofill failed")
		return snap, fmt.Errorf("error fetching data for %s: %w", ticker, err)
	}
	a.log.Info().
		Str("ticker", snap.Ticker).
		Float64("spot", snap.Spot).
		Float64("vol_pct", snap.VolatilityPct).
		Str("vol_source", snap.VolSource).
		Msg("autofilled")
	return snap, nil
}

// Fill copies snapshot values into the market fields of req that were not supplied.
func Fill(req Request, snap models.MarketSnapshot) Request {
	if !req.Supplied(FieldSpot) {
		req.S0 = round2(snap.Spot)
	}
	if !req.Supplied(FieldRiskFree) {
		req.RiskFreePct = round2(snap.RiskFreePct)
	}
	if !req.Supplied(FieldDividend) {
		req.DividendPct = round2(snap.DividendPct)
	}
	if !req.Supplied(FieldVolatility) {
		req.VolatilityPct = round2(snap.VolatilityPct)
	}
	return req
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Contract converts the form values into model parameters as of today.
func (r Request) Contract(today time.Time) (models.ContractParameters, error) {
	expiry, err := positions.ParseExpiration(r.Expiration)
	if err != nil {
		return models.ContractParameters{}, err
	}
	t, err := positions.TimeToExpiry(expiry, today)
	if err != nil {
		return models.ContractParameters{}, err
	}

	p := models.ContractParameters{
		S0:    r.S0,
		K:     r.K,
		T:     t,
		R:     r.RiskFreePct / 100,
		Q:     r.DividendPct / 100,
		Sigma: r.VolatilityPct / 100,
	}
	return p, p.Validate()
}

// Run prices the call, simulates the take-profit barrier and classifies the market price.
func (a *Analyzer) Run(ctx context.Context, req Request) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	params, err := req.Contract(a.now())
	if err != nil {
		return Report{}, err
	}
	threshold, err := models.Threshold(req.Bid, req.Ask, req.Multiple)
	if err != nil {
		return Report{}, err
	}
	midpoint := models.Midpoint(req.Bid, req.Ask)

	log := a.log.With().Str("ticker", req.Ticker).Float64("strike", req.K).Logger()
	log.Debug().
		Float64("T", params.T).
		Float64("threshold", threshold).
		Int("paths", a.sim.Paths).
		Int("steps", a.sim.Steps).
		Msg("running analysis")

	start := time.Now()
	valuation, err := positions.Value(params, midpoint)
	if err != nil {
		return Report{}, err
	}
	sim, err := probability.SimulateBarrierWithProgress(params, threshold, a.sim, a.progress)
	if err != nil {
		return Report{}, err
	}
	elapsed := time.Since(start)

	diff := midpoint - valuation.FairValue
	report := Report{
		Ticker:       req.Ticker,
		Params:       params,
		Bid:          req.Bid,
		Ask:          req.Ask,
		Midpoint:     midpoint,
		Threshold:    threshold,
		Valuation:    valuation,
		Simulation:   sim,
		Verdict:      Classify(diff, a.tolerance),
		Diff:         diff,
		Seed:         a.sim.Seed,
		Runtime:      elapsed,
		TimeToExpiry: params.T,
	}

	if valuation.FairValue > 0 {
		pct := 100 * diff / valuation.FairValue
		report.DiffPercent = &pct
	}

	log.Info().
		Str("verdict", string(report.Verdict)).
		Float64("fair_value", valuation.FairValue).
		Float64("hit_probability", sim.HitProbability).
		Dur("runtime", elapsed).
		Msg("analysis complete")
	return report, nil
}
