package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

type SimulationResult struct {
	HitProbability float64 `json:"hit_probability"`
	// AvgHitTime is the mean first-passage time in years over hitting paths; nil when no path hits.
	AvgHitTime *float64 `json:"avg_hit_time"`
	ExpectedPV float64  `json:"expected_pv"`

	Hits                 int     `json:"hits"`
	Paths                int     `json:"paths"`
	HitProbabilityStdErr float64 `json:"hit_probability_stderr"`
}

// ConfidenceInterval is the normal-approximation interval for the hit probability at the
// given two-sided level, clipped to [0, 1].
func (r SimulationResult) ConfidenceInterval(level float64) (float64, float64) {
	if level <= 0 || level >= 1 {
		return r.HitProbability, r.HitProbability
	}
	z := distuv.UnitNormal.Quantile(0.5 + level/2)
	half := z * r.HitProbabilityStdErr
	return math.Max(0, r.HitProbability-half), math.Min(1, r.HitProbability+half)
}
