package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation step.
type Phase uint8

const (
	PhaseTime      Phase = iota // day/night and weather
	PhaseAct                    // every roster organism acts
	PhaseReconcile              // dead dropped, newborns appended
	PhaseTelemetry              // census, windows, output

	numPhases
)

var phaseNames = [numPhases]string{"time", "act", "reconcile", "telemetry"}

func (p Phase) String() string {
	if p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

type stepSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	actors int
}

// PerfCollector times simulation steps over a rolling window of the most
// recent steps.
type PerfCollector struct {
	samples []stepSample
	next    int
	filled  int

	cur        stepSample
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector keeps the last windowSize steps; 60 if not positive.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]stepSample, windowSize),
		now:     time.Now,
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.cur = stepSample{}
	p.inPhase = false
	p.stepStart = p.now()
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick records the step. actors is the roster size during the act phase.
func (p *PerfCollector) EndTick(actors int) {
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.stepStart)
	p.cur.actors = actors

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// Reset drops every recorded step.
func (p *PerfCollector) Reset() {
	clear(p.samples)
	p.next, p.filled = 0, 0
	p.cur = stepSample{}
	p.inPhase = false
}

// PerfStats summarises the steps in the window.
type PerfStats struct {
	Steps int

	AvgStep time.Duration
	MinStep time.Duration
	MaxStep time.Duration

	StepsPerSecond float64

	// Mean duration and share of the step, per phase.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	AvgActors float64
	// ActNsPerOrganism is the mean act phase cost of one organism's turn.
	ActNsPerOrganism float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Steps: p.filled}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	actors := 0
	for i, smp := range p.samples[:p.filled] {
		total += smp.total
		if i == 0 || smp.total < s.MinStep {
			s.MinStep = smp.total
		}
		s.MaxStep = max(s.MaxStep, smp.total)
		for ph, d := range smp.phases {
			phases[ph] += d
		}
		actors += smp.actors
	}

	n := time.Duration(p.filled)
	s.AvgStep = total / n
	for ph := range phases {
		s.PhaseAvg[ph] = phases[ph] / n
		if s.AvgStep > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) * 100 / float64(s.AvgStep)
		}
	}
	if s.AvgStep > 0 {
		s.StepsPerSecond = float64(time.Second) / float64(s.AvgStep)
	}
	s.AvgActors = float64(actors) / float64(p.filled)
	if actors > 0 {
		s.ActNsPerOrganism = float64(phases[PhaseAct]) / float64(actors)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("steps", s.Steps),
		slog.Int64("avg_step_us", s.AvgStep.Microseconds()),
		slog.Int64("max_step_us", s.MaxStep.Microseconds()),
		slog.Float64("steps_per_sec", s.StepsPerSecond),
		slog.Float64("act_ns_per_organism", s.ActNsPerOrganism),
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd        int     `csv:"window_end"`
	Steps            int     `csv:"steps"`
	AvgStepUS        int64   `csv:"avg_step_us"`
	MinStepUS        int64   `csv:"min_step_us"`
	MaxStepUS        int64   `csv:"max_step_us"`
	StepsPerSec      float64 `csv:"steps_per_sec"`
	AvgActors        float64 `csv:"avg_actors"`
	ActNsPerOrganism float64 `csv:"act_ns_per_organism"`
	TimePct          float64 `csv:"time_pct"`
	ActPct           float64 `csv:"act_pct"`
	ReconcilePct     float64 `csv:"reconcile_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		Steps:            s.Steps,
		AvgStepUS:        s.AvgStep.Microseconds(),
		MinStepUS:        s.MinStep.Microseconds(),
		MaxStepUS:        s.MaxStep.Microseconds(),
		StepsPerSec:      s.StepsPerSecond,
		AvgActors:        s.AvgActors,
		ActNsPerOrganism: s.ActNsPerOrganism,
		TimePct:          s.PhasePct[PhaseTime],
		ActPct:           s.PhasePct[PhaseAct],
		ReconcilePct:     s.PhasePct[PhaseReconcile],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
