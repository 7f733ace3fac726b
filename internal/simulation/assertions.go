package simulation

import (
	"math"
	"testing"
)

// AssertBackendsAgree asserts that the sequential and fused terminal
// states match elementwise within tol.
func AssertBackendsAgree(t *testing.T, result Result, tol float64) {
	t.Helper()
	AssertStatesEqual(t, result.Fused.Final, result.Sequential.Final, tol)
}

// AssertStatesEqual asserts two state vectors match elementwise within tol.
func AssertStatesEqual(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("AssertStatesEqual: length %d != %d", len(got), len(want))
	}
	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > tol || math.IsNaN(diff) {
			t.Errorf("AssertStatesEqual: element %d: got %v, want %v (diff %g > tol %g)", i, got[i], want[i], diff, tol)
		}
	}
}

// AssertTrajectoryShape asserts that the sequential trajectory has exactly
// numSteps+1 entries and that entry 0 equals the scenario's initial state
// bit-for-bit.
func AssertTrajectoryShape(t *testing.T, result Result, sc Scenario) {
	t.Helper()
	tr := result.Sequential.Trajectory
	if tr == nil {
		t.Fatal("AssertTrajectoryShape: sequential backend returned no trajectory")
	}
	wantLen := sc.Params().NumSteps() + 1
	if tr.Len() != wantLen {
		t.Errorf("AssertTrajectoryShape: trajectory has %d entries, want %d", tr.Len(), wantLen)
	}
	x0 := sc.initial()
	first := tr.At(0)
	for i := range x0 {
		if first[i] != x0[i] {
			t.Errorf("AssertTrajectoryShape: entry 0 element %d is %v, want initial %v", i, first[i], x0[i])
		}
	}
}

// AssertFinite asserts that no element of the terminal states is NaN or Inf.
func AssertFinite(t *testing.T, result Result) {
	t.Helper()
	for _, br := range []BackendResult{result.Sequential, result.Fused} {
		for i, v := range br.Final {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("AssertFinite: %s backend: element %d is %v", br.Backend, i, v)
			}
		}
	}
}
