package models

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// YangZhangVolatility combines overnight, open-to-close and Rogers-Satchell variances.
func YangZhangVolatility(bars []Bar) (float64, error) {
	if err := checkBars(bars); err != nil {
		return 0, err
	}

	n := float64(len(bars))
	k := 0.34 / (1.34 + (n+1)/(n-1))

	overnight := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		overnight = append(overnight, math.Log(bars[i].Open/bars[i-1].Close))
	}
	openClose := make([]float64, len(bars))
	for i, b := range bars {
		openClose[i] = math.Log(b.Close / b.Open)
	}

	overnightVar := sampleVariance(overnight)
	openCloseVar := sampleVariance(openClose)
	rsVar := rogersSatchellVariance(bars)

	yz := overnightVar + k*openCloseVar + (1-k)*rsVar
	if yz < 0 {
		yz = 0
	}
	return math.Sqrt(yz * TradingDaysPerYear), nil
}

func sampleVariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}
