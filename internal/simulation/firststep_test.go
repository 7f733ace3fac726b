package simulation

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// Hand-computed first step. At step 0 the schedule is in phase 0 with
// λ=0, so the active matrix is the blank Hamiltonian; with noiseLevel 0
// the update is x0 + ((p-1)·x0 - α·x0³ + ξ·(Jb·x0))·dt.
func TestFirstStepHandComputed(t *testing.T) {
	const (
		alpha = 1.0
		pump  = 2.0
		xi    = 1.0
		dt    = 0.01
	)
	x0 := []float64{0.01, -0.01}
	// For N=2 the blank matrix is [[0,1],[1,0]], which here coincides
	// with the target.
	target := mat.NewDense(2, 2, []float64{0, 1, 1, 0})

	r := NewRunner(t)
	br := r.RunBackend(Scenario{
		Name:          "hand-computed",
		N:             2,
		Target:        target,
		Initial:       x0,
		Alpha:         alpha,
		Pump:          pump,
		CouplingCoeff: xi,
		NoiseLevel:    0,
		Dt:            dt,
		TotalTime:     1,
		Phases:        10,
	}, "sequential")

	// Jb·x0 swaps the two elements.
	inj := []float64{xi * x0[1], xi * x0[0]}
	want := make([]float64, 2)
	for i := range want {
		drift := (pump-1)*x0[i] - alpha*x0[i]*x0[i]*x0[i] + inj[i]
		want[i] = x0[i] + drift*dt
	}

	got := br.Trajectory.At(1)
	AssertStatesEqual(t, got, want, 1e-15)

	// Entry 0 must be the untouched initial state.
	first := br.Trajectory.At(0)
	for i := range x0 {
		if first[i] != x0[i] {
			t.Errorf("entry 0 element %d is %v, want %v", i, first[i], x0[i])
		}
	}
}
