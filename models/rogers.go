package models

import "math"

// RogersSatchellVolatility is drift-independent and uses all four prices of each bar.
func RogersSatchellVolatility(bars []Bar) (float64, error) {
	if err := checkBars(bars); err != nil {
		return 0, err
	}
	return math.Sqrt(rogersSatchellVariance(bars) * TradingDaysPerYear), nil
}

// rogersSatchellVariance is the mean daily Rogers-Satchell variance.
func rogersSatchellVariance(bars []Bar) float64 {
	sum := 0.0
	for _, b := range bars {
		sum += math.Log(b.High/b.Close)*math.Log(b.High/b.Open) +
			math.Log(b.Low/b.Close)*math.Log(b.Low/b.Open)
	}
	return sum / float64(len(bars))
}
