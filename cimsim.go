// Package cimsim simulates a Coherent Ising Machine whose coupling
// structure anneals from a fully connected blank Hamiltonian to a target
// problem Hamiltonian over M phases, integrating the amplitude dynamics
// with the Euler–Maruyama method.
//
// Two entry points expose the two execution strategies: Run produces only
// the terminal state via the fused backend, RunRecorded produces the full
// trajectory via the sequential backend. Both implement the identical
// update rule and agree on the terminal state for seed-matched runs.
package cimsim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/coherent-lab/cimsim/internal/integrate"
	"github.com/coherent-lab/cimsim/internal/trajectory"
)

// Params holds the scalar parameters of a run. See integrate.Params.
type Params = integrate.Params

// Trajectory is the recorded state sequence of a run.
type Trajectory = trajectory.Trajectory

// Run integrates x0 against the target coupling matrix and returns the
// terminal state. Configuration and dimension errors are rejected before
// any integration; numerical divergence is returned as data, not as an
// error.
func Run(x0 []float64, target *mat.Dense, p Params) ([]float64, error) {
	backend, err := integrate.New("fused", integrate.Options{})
	if err != nil {
		return nil, err
	}
	_, final, err := backend.Run(x0, target, p)
	return final, err
}

// RunRecorded integrates x0 against the target coupling matrix and returns
// the full trajectory alongside the terminal state. The trajectory holds
// floor(T/dt)+1 entries; entry 0 is the initial state.
func RunRecorded(x0 []float64, target *mat.Dense, p Params) (*Trajectory, []float64, error) {
	backend, err := integrate.New("sequential", integrate.Options{})
	if err != nil {
		return nil, nil, err
	}
	return backend.Run(x0, target, p)
}
