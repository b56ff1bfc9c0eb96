package models

import "time"

// MarketSnapshot carries prefill values for an analysis. Rates are in percent, as typed
// into the analysis form.
type MarketSnapshot struct {
	Ticker        string
	Spot          float64
	RiskFreePct   float64
	DividendPct   float64
	VolatilityPct float64
	VolSource     string
	// RealizedVolPct holds the realized-volatility estimates by estimator name.
	RealizedVolPct map[string]float64
	AsOf           time.Time
}
