package models

import "math"

// ParkinsonVolatility uses the daily high/low range only.
func ParkinsonVolatility(bars []Bar) (float64, error) {
	if err := checkBars(bars); err != nil {
		return 0, err
	}

	sum := 0.0
	for _, b := range bars {
		logRatio := math.Log(b.High / b.Low)
		sum += logRatio * logRatio
	}

	daily := math.Sqrt(sum / (4 * float64(len(bars)) * math.Ln2))
	return daily * math.Sqrt(TradingDaysPerYear), nil
}
