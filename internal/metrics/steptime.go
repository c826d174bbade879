package metrics

import "time"

// StepTime tracks recent engine step durations in milliseconds over a
// bounded window, so hosts can chart solver cost live without unbounded
// growth.
type StepTime struct {
	name    string
	window  int
	samples []float64
	max     float64
}

func NewStepTime(window int) *StepTime {
	if window < 1 {
		window = 1
	}
	return &StepTime{
		name:    "step_time_ms",
		window:  window,
		samples: make([]float64, 0, window),
	}
}

func (s *StepTime) Name() string { return s.name }

func (s *StepTime) Observe(d time.Duration) {
	ms := float64(d) / float64(time.Millisecond)
	if len(s.samples) == s.window {
		copy(s.samples, s.samples[1:])
		s.samples[len(s.samples)-1] = ms
	} else {
		s.samples = append(s.samples, ms)
	}
	if ms > s.max {
		s.max = ms
	}
}

// Last returns the most recent sample, 0 before any step ran.
func (s *StepTime) Last() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.samples[len(s.samples)-1]
}

// Value returns the mean over the retained window.
func (s *StepTime) Value() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.samples {
		sum += v
	}
	return sum / float64(len(s.samples))
}

// Max returns the worst sample seen since the last Reset, including ones
// that have already left the window.
func (s *StepTime) Max() float64 { return s.max }

// Count returns how many samples the window currently holds.
func (s *StepTime) Count() int { return len(s.samples) }

// Series returns a copy of up to n most recent samples, oldest first.
func (s *StepTime) Series(n int) []float64 {
	if n <= 0 || len(s.samples) == 0 {
		return nil
	}
	if n > len(s.samples) {
		n = len(s.samples)
	}
	out := make([]float64, n)
	copy(out, s.samples[len(s.samples)-n:])
	return out
}

func (s *StepTime) Reset() {
	s.samples = s.samples[:0]
	s.max = 0
}
