package positions

// Valuation is the analytic view of a single call against its market quote.
type Valuation struct {
	FairValue      float64 `json:"fair_value"`
	IntrinsicValue float64 `json:"intrinsic_value"`
	ExtrinsicValue float64 `json:"extrinsic_value"`
	MarketPrice    float64 `json:"market_price"`
	// ImpliedVolatility is 0 when the market price admits no Black-Scholes solution.
	ImpliedVolatility float64 `json:"implied_volatility"`
}
