package coupling

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBlank(t *testing.T) {
	b := Blank(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 1.0
			if i == j {
				want = 0
			}
			if got := b.At(i, j); got != want {
				t.Errorf("Blank(4)[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestNewScheduleRejectsBadConfig(t *testing.T) {
	target := mat.NewDense(4, 4, nil)

	tests := []struct {
		name     string
		target   *mat.Dense
		numSteps int
		phases   int
	}{
		{"zero phases", target, 100, 0},
		{"negative phases", target, 100, -1},
		{"zero steps", target, 0, 10},
		{"phases exceed steps", target, 5, 10},
		{"non-square target", mat.NewDense(4, 4, nil).Slice(0, 3, 0, 4).(*mat.Dense), 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchedule(tt.target, tt.numSteps, tt.phases); err == nil {
				t.Errorf("NewSchedule(%d steps, %d phases) accepted invalid config", tt.numSteps, tt.phases)
			}
		})
	}
}

func TestActiveInterpolates(t *testing.T) {
	n := 3
	target := mat.NewDense(n, n, []float64{
		0, -1, 2,
		-1, 0, 0.5,
		2, 0.5, 0,
	})
	numSteps, phases := 100, 10
	s, err := NewSchedule(target, numSteps, phases)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	blank := Blank(n)
	for step := 0; step < numSteps; step++ {
		active := s.Active(step)
		m := step / s.Interval()
		if m == phases-1 {
			continue // checked separately
		}
		lam := float64(m) / float64(phases)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := (1-lam)*blank.At(i, j) + lam*target.At(i, j)
				if got := active.At(i, j); got != want {
					t.Fatalf("step %d (phase %d): active[%d][%d] = %v, want %v", step, m, i, j, got, want)
				}
			}
		}
	}
}

func TestFinalPhaseIsExactTarget(t *testing.T) {
	target := mat.NewDense(2, 2, []float64{0, 0.3, 0.3, 0})
	s, err := NewSchedule(target, 100, 10)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	// Drive into the final phase.
	var active *mat.Dense
	for step := 0; step < 100; step++ {
		active = s.Active(step)
	}
	if active != target {
		t.Error("final phase does not alias the target matrix")
	}
	if !mat.Equal(active, target) {
		t.Error("final phase matrix differs from the target")
	}
}

func TestChangesAtMostPhases(t *testing.T) {
	target := mat.NewDense(5, 5, nil)
	numSteps, phases := 1000, 10
	s, err := NewSchedule(target, numSteps, phases)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	for step := 0; step < numSteps; step++ {
		s.Active(step)
	}
	if s.Changes() != phases {
		t.Errorf("active matrix recomputed %d times over %d steps, want %d", s.Changes(), numSteps, phases)
	}
}

func TestReuseBetweenBoundaries(t *testing.T) {
	target := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	s, err := NewSchedule(target, 100, 10)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	first := s.Active(0)
	for step := 1; step < s.Interval(); step++ {
		if got := s.Active(step); got != first {
			t.Fatalf("step %d: active matrix recomputed inside a phase", step)
		}
	}
}

// With one phase per step the final phase must still pin the target.
func TestDegenerateOnePhasePerStep(t *testing.T) {
	target := mat.NewDense(2, 2, []float64{0, -2, -2, 0})
	numSteps := 10
	s, err := NewSchedule(target, numSteps, numSteps)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	var active *mat.Dense
	for step := 0; step < numSteps; step++ {
		active = s.Active(step)
	}
	if active != target {
		t.Error("final step does not alias the target matrix")
	}
	if s.Changes() != numSteps {
		t.Errorf("recomputed %d times, want %d", s.Changes(), numSteps)
	}
}
