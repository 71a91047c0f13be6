package telemetry

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// runStep records one step with the given phase durations in phase order.
func runStep(pc *PerfCollector, clock *fakeClock, actors int, durations ...time.Duration) {
	pc.StartTick()
	for ph, d := range durations {
		pc.StartPhase(Phase(ph))
		clock.advance(d)
	}
	pc.EndTick(actors)
}

func newTestCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfPhaseBreakdown(t *testing.T) {
	pc, clock := newTestCollector(10)
	for i := 0; i < 3; i++ {
		runStep(pc, clock, 100, time.Millisecond, 6*time.Millisecond, 2*time.Millisecond, time.Millisecond)
	}

	s := pc.Stats()
	if s.Steps != 3 {
		t.Fatalf("Steps = %d, want 3", s.Steps)
	}
	if s.AvgStep != 10*time.Millisecond {
		t.Errorf("AvgStep = %v, want 10ms", s.AvgStep)
	}
	if s.StepsPerSecond != 100 {
		t.Errorf("StepsPerSecond = %v, want 100", s.StepsPerSecond)
	}

	wantPct := map[Phase]float64{PhaseTime: 10, PhaseAct: 60, PhaseReconcile: 20, PhaseTelemetry: 10}
	for ph, want := range wantPct {
		if s.PhasePct[ph] != want {
			t.Errorf("%s pct = %v, want %v", ph, s.PhasePct[ph], want)
		}
	}
	if s.PhaseAvg[PhaseAct] != 6*time.Millisecond {
		t.Errorf("act avg = %v, want 6ms", s.PhaseAvg[PhaseAct])
	}
	if s.AvgActors != 100 || s.ActNsPerOrganism != 60000 {
		t.Errorf("actors = %v, ns/organism = %v, want 100, 60000", s.AvgActors, s.ActNsPerOrganism)
	}

	row := s.ToCSV(50)
	if row.WindowEnd != 50 || row.ActPct != 60 || row.AvgStepUS != 10000 || row.Steps != 3 {
		t.Errorf("ToCSV = %+v", row)
	}
}

func TestPerfRollingWindow(t *testing.T) {
	pc, clock := newTestCollector(2)
	for _, ms := range []time.Duration{10, 20, 30} {
		runStep(pc, clock, 1, 0, ms*time.Millisecond)
	}

	s := pc.Stats()
	if s.Steps != 2 {
		t.Errorf("Steps = %d, want 2", s.Steps)
	}
	if s.MinStep != 20*time.Millisecond || s.MaxStep != 30*time.Millisecond || s.AvgStep != 25*time.Millisecond {
		t.Errorf("min/avg/max = %v/%v/%v, want 20ms/25ms/30ms", s.MinStep, s.AvgStep, s.MaxStep)
	}
}

func TestPerfReset(t *testing.T) {
	pc, clock := newTestCollector(4)
	runStep(pc, clock, 5, time.Millisecond, time.Millisecond)
	pc.Reset()

	if s := pc.Stats(); s.Steps != 0 || s.AvgStep != 0 || s.AvgActors != 0 {
		t.Errorf("after Reset = %+v, want empty", s)
	}

	runStep(pc, clock, 5, 0, 4*time.Millisecond)
	if s := pc.Stats(); s.Steps != 1 || s.AvgStep != 4*time.Millisecond {
		t.Errorf("after Reset and one step = %+v", s)
	}
}

func TestPerfEmptyStats(t *testing.T) {
	s := NewPerfCollector(0).Stats()
	if s.Steps != 0 || s.StepsPerSecond != 0 || s.ActNsPerOrganism != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}
