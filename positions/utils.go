package positions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bcdannyboy/takeprofit/models"
)

const daysPerYear = 365.0

var expirationLayouts = []string{"01022006", "2006-01-02"}

// ParseExpiration accepts MMDDYYYY or YYYY-MM-DD.
func ParseExpiration(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range expirationLayouts {
		if len(raw) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expiration %q must be MMDDYYYY (e.g. 12202025) or YYYY-MM-DD", raw)
}

// TimeToExpiry counts whole calendar days between the two dates, in years of 365 days.
func TimeToExpiry(expiry, today time.Time) (float64, error) {
	days := calendarDays(today, expiry)
	if days <= 0 {
		return 0, &models.InvalidParameterError{Param: "T", Value: float64(days) / daysPerYear, Constraint: "expiration must be in the future"}
	}
	return float64(days) / daysPerYear, nil
}

func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(t.Sub(f).Hours() / 24))
}

func IntrinsicValue(s0, k float64) float64 {
	return math.Max(0, s0-k)
}

// Value prices the call and sets it against the market price.
func Value(p models.ContractParameters, marketPrice float64) (Valuation, error) {
	fair, err := BlackScholesCall(p)
	if err != nil {
		return Valuation{}, err
	}

	intrinsic := IntrinsicValue(p.S0, p.K)
	v := Valuation{
		FairValue:      fair,
		IntrinsicValue: intrinsic,
		ExtrinsicValue: fair - intrinsic,
		MarketPrice:    marketPrice,
	}
	if iv, err := ImpliedVolatility(p, marketPrice); err == nil {
		v.ImpliedVolatility = iv
	}
	return v, nil
}
