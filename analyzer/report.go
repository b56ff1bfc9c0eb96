package analyzer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bcdannyboy/takeprofit/models"
	"github.com/bcdannyboy/takeprofit/positions"
	"github.com/xhhuango/json"
)

type Verdict string

const (
	FairlyPriced Verdict = "FAIRLY PRICED"
	Undervalued  Verdict = "UNDERVALUED"
	Overvalued   Verdict = "OVERVALUED"
)

// Classify labels diff = midpoint - fair value: positive is UNDERVALUED, negative is
// OVERVALUED.
func Classify(diff, tolerance float64) Verdict {
	switch {
	case math.Abs(diff) < tolerance:
		return FairlyPriced
	case diff > 0:
		return Undervalued
	default:
		return Overvalued
	}
}

type Report struct {
	Ticker    string                    `json:"ticker,omitempty"`
	Params    models.ContractParameters `json:"params"`
	Bid       float64                   `json:"bid"`
	Ask       float64                   `json:"ask"`
	Midpoint  float64                   `json:"midpoint"`
	Threshold float64                   `json:"threshold"`

	Valuation  positions.Valuation     `json:"valuation"`
	Simulation models.SimulationResult `json:"simulation"`

	Verdict     Verdict  `json:"verdict"`
	Diff        float64  `json:"diff"`
	DiffPercent *float64 `json:"diff_percent"`

	Seed         uint64        `json:"seed"`
	Runtime      time.Duration `json:"runtime_ns"`
	TimeToExpiry float64       `json:"time_to_expiry"`
}

// Text renders the report the way the analysis screen shows it.
func (r Report) Text() string {
	var b strings.Builder

	pct := "n/a"
	if r.DiffPercent != nil {
		pct = fmt.Sprintf("%+.2f%%", *r.DiffPercent)
	}
	fmt.Fprintf(&b, "Verdict:         %s (%+.2f, %s)\n", r.Verdict, r.Diff, pct)
	fmt.Fprintf(&b, "Midpoint Price:  %.2f (Bid: %g, Ask: %g)\n", r.Midpoint, r.Bid, r.Ask)
	fmt.Fprintf(&b, "BS Fair Value:   %.2f\n", r.Valuation.FairValue)
	if r.Valuation.ImpliedVolatility > 0 {
		fmt.Fprintf(&b, "Implied Vol:     %.2f%%\n", r.Valuation.ImpliedVolatility*100)
	}
	fmt.Fprintf(&b, "Threshold:       %.2f\n", r.Threshold)
	fmt.Fprintf(&b, "PV (sell@thr):   %.2f\n", r.Simulation.ExpectedPV)

	lo, hi := r.Simulation.ConfidenceInterval(0.95)
	fmt.Fprintf(&b, "Hit Probability: %.2f%% (95%% CI %.2f%%-%.2f%%)\n", r.Simulation.HitProbability*100, lo*100, hi*100)
	if r.Simulation.AvgHitTime != nil {
		fmt.Fprintf(&b, "Avg Hit Time:    %.2f yrs\n", *r.Simulation.AvgHitTime)
	} else {
		b.WriteString("Avg Hit Time:    N/A\n")
	}
	fmt.Fprintf(&b, "Time to Expiry:  %.2f yrs\n", r.TimeToExpiry)
	fmt.Fprintf(&b, "Runtime:         %.2f s\n", r.Runtime.Seconds())

	return b.String()
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
