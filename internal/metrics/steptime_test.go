package metrics

import (
	"testing"
	"time"
)

func TestStepTimeWindow(t *testing.T) {
	s := NewStepTime(3)
	for _, d := range []time.Duration{time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond, 4 * time.Millisecond} {
		s.Observe(d)
	}

	if got := s.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	want := []float64{2, 3, 4}
	got := s.Series(10)
	if len(got) != len(want) {
		t.Fatalf("Series(10) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Series(10)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if s.Last() != 4 {
		t.Errorf("Last() = %v, want 4", s.Last())
	}
	if s.Max() != 4 {
		t.Errorf("Max() = %v, want 4", s.Max())
	}
}

func TestStepTimeValue(t *testing.T) {
	s := NewStepTime(8)
	s.Observe(2 * time.Millisecond)
	s.Observe(4 * time.Millisecond)
	if got := s.Value(); got != 3 {
		t.Errorf("Value() = %v, want 3", got)
	}
}

func TestStepTimeMaxSurvivesWindow(t *testing.T) {
	s := NewStepTime(2)
	s.Observe(9 * time.Millisecond)
	s.Observe(time.Millisecond)
	s.Observe(time.Millisecond)
	if s.Max() != 9 {
		t.Errorf("Max() = %v, want 9 even after the sample left the window", s.Max())
	}
}

func TestStepTimeEmpty(t *testing.T) {
	s := NewStepTime(4)
	if s.Last() != 0 || s.Value() != 0 || s.Count() != 0 {
		t.Errorf("empty StepTime: Last=%v Value=%v Count=%d, want zeros", s.Last(), s.Value(), s.Count())
	}
	if s.Series(5) != nil {
		t.Errorf("Series(5) = %v, want nil", s.Series(5))
	}
}

func TestStepTimeSeriesIsACopy(t *testing.T) {
	s := NewStepTime(4)
	s.Observe(time.Millisecond)
	s.Observe(2 * time.Millisecond)

	got := s.Series(2)
	got[0] = 99
	if again := s.Series(2); again[0] != 1 {
		t.Errorf("Series() shares backing storage: got %v", again)
	}
}

func TestStepTimeReset(t *testing.T) {
	s := NewStepTime(4)
	s.Observe(5 * time.Millisecond)
	s.Reset()
	if s.Count() != 0 || s.Max() != 0 || s.Last() != 0 {
		t.Errorf("after Reset: Count=%d Max=%v Last=%v, want zeros", s.Count(), s.Max(), s.Last())
	}
}
