package rng

// Scripted replays fixed draws so tests can force specific outcomes.
// Once a script is exhausted the corresponding fallback value is returned.
type Scripted struct {
	Floats []float64
	Ints   []int
	Bools  []bool

	// Fallbacks used when the scripts run out.
	FloatDefault float64
	IntDefault   int
	BoolDefault  bool

	floatIdx, intIdx, boolIdx int
}

// NewScripted returns a source that replays floats, then FloatDefault.
func NewScripted(floats ...float64) *Scripted {
	return &Scripted{Floats: floats}
}

func (s *Scripted) Float64() float64 {
	if s.floatIdx < len(s.Floats) {
		v := s.Floats[s.floatIdx]
		s.floatIdx++
		return v
	}
	return s.FloatDefault
}

// IntN returns the next scripted int clamped into [0, n).
func (s *Scripted) IntN(n int) int {
	v := s.IntDefault
	if s.intIdx < len(s.Ints) {
		v = s.Ints[s.intIdx]
		s.intIdx++
	}
	if n <= 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (s *Scripted) Bool() bool {
	if s.boolIdx < len(s.Bools) {
		v := s.Bools[s.boolIdx]
		s.boolIdx++
		return v
	}
	return s.BoolDefault
}

// Consumed reports how many draws of each kind have been served.
func (s *Scripted) Consumed() (floats, ints, bools int) {
	return s.floatIdx, s.intIdx, s.boolIdx
}
