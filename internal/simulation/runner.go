package simulation

import (
	"testing"

	"github.com/coherent-lab/cimsim/internal/integrate"
)

// Runner executes scenarios against the real backends.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario on both backends and returns the collected
// results. Backend errors fail the test.
func (r *Runner) Run(sc Scenario) Result {
	r.t.Helper()
	return Result{
		Sequential: r.RunBackend(sc, "sequential"),
		Fused:      r.RunBackend(sc, "fused"),
	}
}

// RunBackend executes the scenario on the named backend.
func (r *Runner) RunBackend(sc Scenario, name string) BackendResult {
	r.t.Helper()

	backend, err := integrate.New(name, integrate.Options{})
	if err != nil {
		r.t.Fatalf("RunBackend(%s): %v", name, err)
	}
	tr, final, err := backend.Run(sc.initial(), sc.target(), sc.Params())
	if err != nil {
		r.t.Fatalf("RunBackend(%s): scenario %s: %v", name, sc.Name, err)
	}
	return BackendResult{Backend: name, Trajectory: tr, Final: final}
}
