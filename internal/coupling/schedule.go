// Package coupling manages the time-varying coupling structure of the
// oscillator network. A run starts from the blank Hamiltonian (all-to-all,
// no self-coupling) and anneals toward the caller's target matrix over a
// fixed number of phases.
package coupling

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Blank returns the n×n blank coupling matrix: every off-diagonal entry 1,
// diagonal 0.
func Blank(n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				b.Set(i, j, 1)
			}
		}
	}
	return b
}

// Schedule selects the coupling matrix active at each integration step.
// The active matrix is a convex combination (1-λ)·blank + λ·target, with
// λ advancing once per phase and the final phase pinned to the target
// matrix itself rather than an interpolation. Between phase boundaries
// the previously selected matrix is reused; rebuilding it is O(N²), so
// it happens at most once per phase, never once per step.
type Schedule struct {
	blank  *mat.Dense
	target *mat.Dense

	active  *mat.Dense
	scratch *mat.Dense

	numSteps int
	phases   int
	interval int
	changes  int
}

// NewSchedule builds a schedule over numSteps integration steps split into
// phases annealing phases. The target matrix must be square. Configurations
// where the phase interval numSteps/phases truncates to zero are rejected
// up front; the boundary check would otherwise divide by zero mid-run.
func NewSchedule(target *mat.Dense, numSteps, phases int) (*Schedule, error) {
	r, c := target.Dims()
	if r != c {
		return nil, fmt.Errorf("coupling: target matrix must be square, got %dx%d", r, c)
	}
	if r == 0 {
		return nil, fmt.Errorf("coupling: target matrix is empty")
	}
	if phases <= 0 {
		return nil, fmt.Errorf("coupling: phases must be positive, got %d", phases)
	}
	if numSteps <= 0 {
		return nil, fmt.Errorf("coupling: numSteps must be positive, got %d", numSteps)
	}
	interval := numSteps / phases
	if interval == 0 {
		return nil, fmt.Errorf("coupling: phases (%d) exceeds numSteps (%d); phase interval truncates to zero", phases, numSteps)
	}
	return &Schedule{
		blank:    Blank(r),
		target:   target,
		scratch:  mat.NewDense(r, r, nil),
		numSteps: numSteps,
		phases:   phases,
		interval: interval,
	}, nil
}

// Dim returns the matrix dimension N.
func (s *Schedule) Dim() int {
	n, _ := s.blank.Dims()
	return n
}

// NumSteps returns the total step count the schedule was built for.
func (s *Schedule) NumSteps() int { return s.numSteps }

// Interval returns the number of steps per annealing phase.
func (s *Schedule) Interval() int { return s.interval }

// Active returns the coupling matrix in effect at the given step. It must
// be consulted for every step in order; skipping steps desynchronizes the
// phase count. The returned matrix is owned by the schedule and must not
// be modified.
func (s *Schedule) Active(step int) *mat.Dense {
	if step%s.interval != 0 {
		return s.active
	}
	m := step / s.interval
	if m == s.phases-1 {
		// Pin the final phase to the target itself so the run ends on the
		// true problem Hamiltonian, not a λ≈1 interpolation.
		s.active = s.target
	} else {
		lam := float64(m) / float64(s.phases)
		s.scratch.Scale(1-lam, s.blank)
		var t mat.Dense
		t.Scale(lam, s.target)
		s.scratch.Add(s.scratch, &t)
		s.active = s.scratch
	}
	s.changes++
	return s.active
}

// Changes reports how many times the active matrix has been recomputed.
// For runs where numSteps is divisible by phases this equals the number
// of phases entered so far.
func (s *Schedule) Changes() int { return s.changes }
