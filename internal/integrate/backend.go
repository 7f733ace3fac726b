package integrate

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/coherent-lab/cimsim/internal/logging"
	"github.com/coherent-lab/cimsim/internal/trajectory"
)

// Backend is one execution strategy for the shared update rule.
type Backend interface {
	// Name identifies the backend ("sequential" or "fused").
	Name() string

	// Run integrates x0 over floor(T/dt) steps against the target matrix.
	// The trajectory return is nil for backends that only produce the
	// terminal state. x0 is not modified.
	Run(x0 []float64, target *mat.Dense, p Params) (*trajectory.Trajectory, []float64, error)
}

// Options carries the optional observability hooks shared by both backends.
// The zero value disables all of them.
type Options struct {
	// Log receives per-run operational messages. Nil disables logging.
	Log *slog.Logger

	// Trace receives phase-transition events. Nil disables tracing.
	Trace *logging.TraceLogger
}

// New returns the named backend. Valid names: "sequential", "fused".
func New(name string, opts Options) (Backend, error) {
	switch name {
	case "sequential":
		return &Sequential{opts: opts}, nil
	case "fused":
		return &Fused{opts: opts}, nil
	default:
		return nil, fmt.Errorf("integrate: unknown backend %q (valid: sequential, fused)", name)
	}
}

func (o Options) logRunStart(backend string, n int, p Params) {
	if o.Log != nil {
		o.Log.Debug("run start",
			"backend", backend,
			"n", n,
			"steps", p.NumSteps(),
			"phases", p.Phases,
			"seed", p.Seed,
		)
	}
	if o.Trace != nil {
		o.Trace.Event("run_start", map[string]any{
			"backend": backend,
			"n":       n,
			"steps":   p.NumSteps(),
			"phases":  p.Phases,
			"seed":    p.Seed,
		})
	}
}

func (o Options) tracePhase(step, interval, phases int) {
	if o.Trace == nil || step%interval != 0 {
		return
	}
	m := step / interval
	o.Trace.Phase(step, m, float64(m)/float64(phases))
}
