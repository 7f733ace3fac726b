// Package integrate implements the Euler–Maruyama integration of the
// annealed CIM network. An N-dimensional amplitude vector evolves under a
// cubic self-nonlinearity, a linear pump/loss term, a coupling-injected
// term from the active coupling matrix, and additive Gaussian noise; the
// active matrix follows the annealing schedule in internal/coupling.
//
// Two backends share the single per-step update rule: Sequential samples
// noise every step and records the full trajectory; Fused precomputes the
// whole noise matrix up front and returns only the terminal state.
package integrate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Params holds the scalar parameters of a run.
type Params struct {
	// Alpha is the cubic nonlinearity coefficient.
	Alpha float64

	// Pump is the pump/loss parameter p; the linear drift term is (p-1)·x.
	Pump float64

	// CouplingCoeff scales the coupling-injected term ξ·(J_t·x).
	CouplingCoeff float64

	// NoiseLevel scales the stochastic forcing. Must be >= 0.
	NoiseLevel float64

	// Dt is the integration time step. Must be > 0.
	Dt float64

	// TotalTime is the simulated horizon T; the run executes
	// floor(T/Dt) steps with no early stopping.
	TotalTime float64

	// Phases is the number of annealing phases M. Must satisfy
	// 0 < M <= floor(T/Dt).
	Phases int

	// Seed seeds the noise stream. Runs with equal seeds and parameters
	// draw identical noise regardless of backend.
	Seed uint64
}

// NumSteps returns floor(TotalTime/Dt).
func (p Params) NumSteps() int {
	return int(p.TotalTime / p.Dt)
}

// Validate rejects configurations that would break the schedule or the
// discretization before any computation starts.
func (p Params) Validate() error {
	if p.Dt <= 0 || math.IsNaN(p.Dt) {
		return fmt.Errorf("integrate: dt must be positive, got %v", p.Dt)
	}
	if p.TotalTime <= 0 || math.IsNaN(p.TotalTime) {
		return fmt.Errorf("integrate: total time must be positive, got %v", p.TotalTime)
	}
	if p.NoiseLevel < 0 || math.IsNaN(p.NoiseLevel) {
		return fmt.Errorf("integrate: noise level must be non-negative, got %v", p.NoiseLevel)
	}
	if p.Phases <= 0 {
		return fmt.Errorf("integrate: phases must be positive, got %d", p.Phases)
	}
	if steps := p.NumSteps(); steps < p.Phases {
		return fmt.Errorf("integrate: phases (%d) exceeds step count floor(T/dt)=%d", p.Phases, steps)
	}
	return nil
}

// checkDims verifies that the initial state and the target matrix agree on
// the dimension N. Returns N.
func checkDims(x0 []float64, target *mat.Dense) (int, error) {
	r, c := target.Dims()
	if r != c {
		return 0, fmt.Errorf("integrate: target matrix must be square, got %dx%d", r, c)
	}
	if len(x0) == 0 {
		return 0, fmt.Errorf("integrate: initial state is empty")
	}
	if len(x0) != r {
		return 0, fmt.Errorf("integrate: initial state length %d does not match %dx%d target matrix", len(x0), r, c)
	}
	return r, nil
}

// step applies one Euler–Maruyama update to x in place. inj must hold
// J_t·x computed from the current x; noise holds the length-N sample for
// this step. Non-finite values are propagated, never clamped.
func step(x, inj, noise []float64, p Params) {
	for i, xi := range x {
		drift := (p.Pump-1)*xi - p.Alpha*xi*xi*xi + p.CouplingCoeff*inj[i]
		x[i] = xi + drift*p.Dt + noise[i]
	}
}
