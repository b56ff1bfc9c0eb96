package models

import "math"

func GarmanKlassVolatility(bars []Bar) (float64, error) {
	if err := checkBars(bars); err != nil {
		return 0, err
	}

	sum := 0.0
	for _, b := range bars {
		hl := math.Log(b.High / b.Low)
		co := math.Log(b.Close / b.Open)
		sum += 0.5*hl*hl - (2*math.Ln2-1)*co*co
	}
	if sum < 0 {
		sum = 0
	}

	// Annualize the volatility
	return math.Sqrt(sum / float64(len(bars)) * TradingDaysPerYear), nil
}
