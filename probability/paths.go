package probability

import (
	"math"
	"sync"

	"github.com/bcdannyboy/takeprofit/models"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const (
	noHit = -1

	progressBatch = 1000
)

// ProgressFunc receives the number of paths finished since its last call. It is called
// from the worker goroutines.
type ProgressFunc func(paths int)

// drawShocks fills a paths x steps matrix of standard normals from one seeded source,
// path by path and step by step. The fill order is the reproducibility contract.
func drawShocks(cfg models.SimulationConfig) *mat.Dense {
	rng := rand.New(rand.NewSource(cfg.Seed))

	data := make([]float64, cfg.Paths*cfg.Steps)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(cfg.Paths, cfg.Steps, data)
}

// gbmStepper advances a log-normal path under the risk-neutral drift.
type gbmStepper struct {
	s0        float64
	drift     float64 // (r - q - sigma^2/2) * dt
	diffusion float64 // sigma * sqrt(dt)
	threshold float64
}

func newGBMStepper(p models.ContractParameters, threshold, dt float64) gbmStepper {
	return gbmStepper{
		s0:        p.S0,
		drift:     p.Drift() * dt,
		diffusion: p.Sigma * math.Sqrt(dt),
		threshold: threshold,
	}
}

// firstHit returns the first step index whose price is at or above the threshold, or noHit.
// Step 0 is the spot itself; shocks[0] is never consumed.
func (g gbmStepper) firstHit(shocks []float64) int {
	s := g.s0
	if s >= g.threshold {
		return 0
	}
	for t := 1; t < len(shocks); t++ {
		s *= math.Exp(g.drift + g.diffusion*shocks[t])
		if s >= g.threshold {
			return t
		}
	}
	return noHit
}

// scanFirstHits evaluates every path, splitting contiguous row ranges across workers.
// Each worker writes only its own slots of the returned slice.
func scanFirstHits(g gbmStepper, shocks *mat.Dense, workers int, progress ProgressFunc) []int {
	paths, _ := shocks.Dims()
	hits := make([]int, paths)

	if workers <= 0 {
		workers = 1
	}
	if workers > paths {
		workers = paths
	}
	chunk := (paths + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < paths; start += chunk {
		end := start + chunk
		if end > paths {
			end = paths
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			pending := 0
			for i := start; i < end; i++ {
				hits[i] = g.firstHit(shocks.RawRowView(i))
				pending++
				if progress != nil && pending == progressBatch {
					progress(pending)
					pending = 0
				}
			}
			if progress != nil && pending > 0 {
				progress(pending)
			}
		}(start, end)
	}
	wg.Wait()

	return hits
}
