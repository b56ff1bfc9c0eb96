package probability

import (
	"math"

	"github.com/bcdannyboy/takeprofit/models"
	"gonum.org/v1/gonum/stat"
)

// SimulateBarrier estimates how often, how soon, and for what discounted payoff the
// underlying touches threshold before expiry. Results depend only on the inputs and
// cfg.Seed; the worker count never changes them.
func SimulateBarrier(p models.ContractParameters, threshold float64, cfg models.SimulationConfig) (models.SimulationResult, error) {
	return SimulateBarrierWithProgress(p, threshold, cfg, nil)
}

// SimulateBarrierWithProgress is SimulateBarrier reporting finished paths to progress.
// A nil progress is allowed.
func SimulateBarrierWithProgress(p models.ContractParameters, threshold float64, cfg models.SimulationConfig, progress ProgressFunc) (models.SimulationResult, error) {
	if err := p.Validate(); err != nil {
		return models.SimulationResult{}, err
	}
	if err := cfg.Validate(); err != nil {
		return models.SimulationResult{}, err
	}
	if err := models.RequirePositive("threshold", threshold); err != nil {
		return models.SimulationResult{}, err
	}

	dt := p.T / float64(cfg.Steps)
	stepper := newGBMStepper(p, threshold, dt)
	firstHits := scanFirstHits(stepper, drawShocks(cfg), cfg.Workers, progress)

	return summarize(firstHits, dt, threshold-p.K, p.Discount()), nil
}

// summarize reduces first-hit indices in path order. Every hitting path is closed at the
// threshold, so it pays hitPayoff regardless of the actual crossing price.
func summarize(firstHits []int, dt, hitPayoff, discount float64) models.SimulationResult {
	n := len(firstHits)
	payoffs := make([]float64, n)
	var hitTimes []float64

	for i, idx := range firstHits {
		if idx == noHit {
			continue
		}
		hitTimes = append(hitTimes, float64(idx)*dt)
		payoffs[i] = hitPayoff
	}

	hits := len(hitTimes)
	prob := float64(hits) / float64(n)
	result := models.SimulationResult{
		HitProbability:       prob,
		ExpectedPV:           stat.Mean(payoffs, nil) * discount,
		Hits:                 hits,
		Paths:                n,
		HitProbabilityStdErr: math.Sqrt(prob * (1 - prob) / float64(n)),
	}
	if hits > 0 {
		avg := stat.Mean(hitTimes, nil)
		result.AvgHitTime = &avg
	}
	return result
}
