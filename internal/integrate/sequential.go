package integrate

import (
	"gonum.org/v1/gonum/mat"

	"github.com/coherent-lab/cimsim/internal/coupling"
	"github.com/coherent-lab/cimsim/internal/noise"
	"github.com/coherent-lab/cimsim/internal/trajectory"
)

// Sequential integrates one step at a time, sampling noise as it goes and
// recording every intermediate state. It is the observable backend: the
// returned trajectory holds floor(T/dt)+1 entries with the untouched
// initial state at index 0.
type Sequential struct {
	opts Options
}

// Name implements Backend.
func (s *Sequential) Name() string { return "sequential" }

// Run implements Backend.
func (s *Sequential) Run(x0 []float64, target *mat.Dense, p Params) (*trajectory.Trajectory, []float64, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	n, err := checkDims(x0, target)
	if err != nil {
		return nil, nil, err
	}
	numSteps := p.NumSteps()
	sched, err := coupling.NewSchedule(target, numSteps, p.Phases)
	if err != nil {
		return nil, nil, err
	}
	s.opts.logRunStart(s.Name(), n, p)

	src := noise.NewGaussian(p.NoiseLevel, p.Dt, p.Seed)

	x := make([]float64, n)
	copy(x, x0)
	tr := trajectory.New(numSteps, n)
	tr.Record(x)

	inj := make([]float64, n)
	sample := make([]float64, n)
	xv := mat.NewVecDense(n, x)
	injv := mat.NewVecDense(n, inj)

	for st := 0; st < numSteps; st++ {
		s.opts.tracePhase(st, sched.Interval(), p.Phases)
		jt := sched.Active(st)
		injv.MulVec(jt, xv)
		src.Sample(sample)
		step(x, inj, sample, p)
		tr.Record(x)
	}

	final := make([]float64, n)
	copy(final, x)
	return tr, final, nil
}
