package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const TradingDaysPerYear = 252

// Bar is one daily OHLC observation of the underlying.
type Bar struct {
	Date   string
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int
}

// LastBars returns the trailing window of bars, or all of them when window <= 0.
func LastBars(bars []Bar, window int) []Bar {
	if window <= 0 || window >= len(bars) {
		return bars
	}
	return bars[len(bars)-window:]
}

func checkBars(bars []Bar) error {
	if len(bars) < 2 {
		return fmt.Errorf("need at least 2 bars, got %d", len(bars))
	}
	for i, b := range bars {
		if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
			return fmt.Errorf("bar %d (%s) has non-positive prices", i, b.Date)
		}
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s) has high below low", i, b.Date)
		}
	}
	return nil
}

// CloseToCloseVolatility is the annualized sample standard deviation of daily log returns.
func CloseToCloseVolatility(bars []Bar) (float64, error) {
	if err := checkBars(bars); err != nil {
		return 0, err
	}
	returns := make([]float64, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		returns[i-1] = math.Log(bars[i].Close / bars[i-1].Close)
	}
	if len(returns) < 2 {
		return 0, fmt.Errorf("need at least 3 bars for a return deviation, got %d", len(bars))
	}
	return stat.StdDev(returns, nil) * math.Sqrt(TradingDaysPerYear), nil
}

var volatilityEstimators = []struct {
	name string
	fn   func([]Bar) (float64, error)
}{
	{"close_to_close", CloseToCloseVolatility},
	{"parkinson", ParkinsonVolatility},
	{"garman_klass", GarmanKlassVolatility},
	{"rogers_satchell", RogersSatchellVolatility},
	{"yang_zhang", YangZhangVolatility},
}

// RealizedVolatilities runs every estimator over bars and keeps the ones that succeed.
func RealizedVolatilities(bars []Bar) map[string]float64 {
	results := make(map[string]float64, len(volatilityEstimators))
	for _, est := range volatilityEstimators {
		if vol, err := est.fn(bars); err == nil {
			results[est.name] = vol
		}
	}
	return results
}
