// Package simulation provides a test harness for validating the dynamics
// of the annealed integrator across both execution backends.
//
// Scenarios are Go builders that construct a target Hamiltonian, an
// initial state, and the run parameters; the Runner executes the real
// Sequential and Fused backends — no mocks — and captures trajectories and
// terminal states for property-based assertions: backend parity, trajectory
// shape, schedule behavior, and determinism.
//
// Usage:
//
//	func TestBackendParity(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:   "ring",
//	        N:      8,
//	        Target: ringTarget(8),
//	        ...
//	    })
//	    simulation.AssertBackendsAgree(t, result, 1e-12)
//	}
package simulation
