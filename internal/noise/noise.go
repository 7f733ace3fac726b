// Package noise provides the stochastic forcing term for the integrator.
// Samples follow the reference model: Normal(-1, 1) draws scaled by
// noiseLevel·sqrt(dt). The nonzero location parameter is part of the
// modeled dynamics and is reproduced as-is.
package noise

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution parameters of the reference model.
const (
	mu    = -1
	sigma = 1
)

// Source yields one noise sample per state element.
type Source interface {
	// Sample fills dst with the next len(dst) samples.
	Sample(dst []float64)
}

// Gaussian draws fresh Normal(-1, 1) samples on demand, scaled by
// noiseLevel·sqrt(dt). It is deterministic for a given seed: samples are
// produced in index order, one state vector per call.
type Gaussian struct {
	scale float64
	dist  distuv.Normal
}

// NewGaussian creates a seeded Gaussian source for the given noise level
// and time step.
func NewGaussian(noiseLevel, dt float64, seed uint64) *Gaussian {
	return &Gaussian{
		scale: noiseLevel * math.Sqrt(dt),
		dist: distuv.Normal{
			Mu:    mu,
			Sigma: sigma,
			Src:   rand.NewSource(seed),
		},
	}
}

// Sample fills dst with scaled draws. With noiseLevel 0 every sample is
// exactly 0, but the underlying stream still advances so that seed-matched
// sources stay aligned regardless of level.
func (g *Gaussian) Sample(dst []float64) {
	for i := range dst {
		dst[i] = g.scale * g.dist.Rand()
	}
}

// Batch holds a precomputed (steps × n) noise matrix, one row per
// integration step. It exists so a fused backend can keep random-number
// generation out of the per-step arithmetic; rows are drawn from src in
// step order, which makes a Batch built from a seeded Gaussian produce
// exactly the values a per-step Gaussian with the same seed would.
type Batch struct {
	data []float64
	n    int
}

// NewBatch precomputes steps rows of n samples each from src.
func NewBatch(src Source, steps, n int) *Batch {
	b := &Batch{
		data: make([]float64, steps*n),
		n:    n,
	}
	for s := 0; s < steps; s++ {
		src.Sample(b.data[s*n : (s+1)*n])
	}
	return b
}

// Row returns the noise vector for the given step. The returned slice is
// read-only shared storage.
func (b *Batch) Row(step int) []float64 {
	return b.data[step*b.n : (step+1)*b.n]
}
