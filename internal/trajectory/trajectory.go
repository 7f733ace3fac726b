// Package trajectory records the full state sequence of a recorded run.
package trajectory

// Trajectory is an ordered store of state vectors. Entry 0 is the initial
// state; entry k is the state after k integration steps. Entries are
// copied on record and never mutated afterwards.
type Trajectory struct {
	n      int
	states []float64
}

// New creates a trajectory for length-n states with capacity for
// steps+1 entries.
func New(steps, n int) *Trajectory {
	return &Trajectory{
		n:      n,
		states: make([]float64, 0, (steps+1)*n),
	}
}

// Record appends a copy of x as the next entry.
func (tr *Trajectory) Record(x []float64) {
	tr.states = append(tr.states, x...)
}

// Len returns the number of recorded entries.
func (tr *Trajectory) Len() int {
	if tr == nil || tr.n == 0 {
		return 0
	}
	return len(tr.states) / tr.n
}

// Dim returns the state dimension N.
func (tr *Trajectory) Dim() int {
	if tr == nil {
		return 0
	}
	return tr.n
}

// At returns the state after k steps. The returned slice aliases the
// trajectory's storage and must not be modified.
func (tr *Trajectory) At(k int) []float64 {
	return tr.states[k*tr.n : (k+1)*tr.n]
}
