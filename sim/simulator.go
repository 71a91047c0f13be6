// Package sim drives the field: it owns the roster of living organisms,
// seeds the initial population and advances the world one step at a time.
package sim

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/rng"
	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/world"
)

// Options configures a Simulator.
type Options struct {
	Depth, Width int
	Layout       world.Layout
	Thresholds   world.WeatherThresholds
	Registry     []config.RegistryEntry

	Seed   int64
	Source rng.Source // overrides Seed when set

	Delay     time.Duration
	Viability Viability // nil = always viable
	Sinks     []Sink

	WindowSteps     int
	BookmarkHistory int
	MinSpecies      int
	PerfWindow      int
	LogStats        bool
	Output          *telemetry.OutputManager
	StatsCallback   func(telemetry.WindowStats)
}

// OptionsFromConfig fills Options from a loaded config.
func OptionsFromConfig(cfg *config.Config, seed int64) Options {
	return Options{
		Depth:           cfg.World.Depth,
		Width:           cfg.World.Width,
		Layout:          cfg.Derived.Layout,
		Thresholds:      cfg.Derived.Thresholds,
		Registry:        cfg.Derived.Registry,
		Seed:            seed,
		Delay:           cfg.Derived.Delay,
		Viability:       MinSpecies(cfg.Simulation.MinSpecies),
		WindowSteps:     cfg.Telemetry.Window,
		BookmarkHistory: cfg.Telemetry.BookmarkHistory,
		MinSpecies:      cfg.Simulation.MinSpecies,
		PerfWindow:      cfg.Telemetry.PerfWindow,
	}
}

// Simulator holds the field and every organism currently alive on it.
type Simulator struct {
	field    *world.Field
	roster   []*world.Organism
	newborns []*world.Organism
	step     int

	rng      rng.Source
	seed     int64
	registry []config.RegistryEntry

	delay     time.Duration
	viability Viability
	sinks     []Sink

	// Telemetry
	collector        *telemetry.Collector
	lifetimes        *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
	bookmarkHistory  int
	minSpecies       int
	lastCensus       telemetry.Census
}

// New creates a simulator and populates its field.
func New(opts Options) *Simulator {
	src := opts.Source
	if src == nil {
		src = rng.New(opts.Seed)
	}
	s := &Simulator{
		field:            world.NewField(opts.Depth, opts.Width, opts.Layout, opts.Thresholds),
		rng:              src,
		seed:             opts.Seed,
		registry:         opts.Registry,
		delay:            opts.Delay,
		viability:        opts.Viability,
		sinks:            opts.Sinks,
		collector:        telemetry.NewCollector(opts.WindowSteps),
		lifetimes:        telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(opts.BookmarkHistory, opts.MinSpecies),
		perfCollector:    telemetry.NewPerfCollector(opts.PerfWindow),
		outputManager:    opts.Output,
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		bookmarkHistory:  opts.BookmarkHistory,
		minSpecies:       opts.MinSpecies,
	}
	if s.viability == nil {
		s.viability = ViabilityFunc(func(*world.Field) bool { return true })
	}
	s.Reset()
	return s
}

// AddSink registers a sink after construction. It is not notified until the
// next step or reset.
func (s *Simulator) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// Reset clears the field, repopulates it and notifies the sinks with step 0.
func (s *Simulator) Reset() {
	clear(s.roster)
	s.roster = s.roster[:0]
	s.step = 0
	s.field.Reset()

	s.collector.Reset(0)
	s.lifetimes.Reset()
	s.perfCollector.Reset()
	s.bookmarkDetector = telemetry.NewBookmarkDetector(s.bookmarkHistory, s.minSpecies)

	s.populate()

	s.lastCensus = telemetry.TakeCensus(0, s.field)
	s.writeCensus(s.lastCensus)
	slog.Info("reset",
		"seed", s.seed,
		"depth", s.field.Depth(),
		"width", s.field.Width(),
		"census", s.lastCensus,
	)
	s.notify()
}

// populate rolls each registered species in order for every cell; the first
// success claims it. Water cells only roll species that may live in water,
// land cells only those that may live on land.
func (s *Simulator) populate() {
	for row := 0; row < s.field.Depth(); row++ {
		for col := 0; col < s.field.Width(); col++ {
			loc := world.Loc(row, col)
			water := s.field.IsWater(loc)
			for _, e := range s.registry {
				if !world.Lookup(e.Species).Territory.Allows(water) {
					continue
				}
				if s.rng.Float64() <= e.Probability {
					o := world.Spawn(s.field, e.Species, loc, s.rng)
					s.admit(o)
					break
				}
			}
		}
	}
}

// Add places an organism with an explicit state and appends it to the
// roster. loc must be free.
func (s *Simulator) Add(id world.SpeciesID, loc world.Location, st world.State) *world.Organism {
	o := world.SpawnWith(s.field, id, loc, st)
	s.admit(o)
	return o
}

func (s *Simulator) admit(o *world.Organism) {
	o.SetBornTick(s.step)
	s.lifetimes.Register(o, s.step)
	s.roster = append(s.roster, o)
}

// Simulate runs up to steps steps, stopping early once the viability check
// fails. It returns the number of steps taken.
func (s *Simulator) Simulate(steps int) int {
	start := s.step
	for i := 0; i < steps; i++ {
		if !s.viability.IsViable(s.field) {
			slog.Info("non_viable", "step", s.step, "census", s.lastCensus)
			break
		}
		s.SimulateOneStep()
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	slog.Info("run_complete",
		"steps", s.step-start,
		"step", s.step,
		"population", len(s.roster),
		"lifespan_mean", s.lifetimes.OverallMeanLifespan(),
	)
	return s.step - start
}

// SimulateOneStep advances time and lets every organism on the roster act
// once, in roster order. Newborns join the roster only after the pass.
func (s *Simulator) SimulateOneStep() {
	s.step++
	s.perfCollector.StartTick()

	s.perfCollector.StartPhase(telemetry.PhaseTime)
	s.field.IncrementTime(s.rng)

	s.perfCollector.StartPhase(telemetry.PhaseAct)
	actors := len(s.roster)
	newborns := s.newborns[:0]
	for _, o := range s.roster {
		o.Step(s.rng, &newborns)
	}

	s.perfCollector.StartPhase(telemetry.PhaseReconcile)
	s.reconcile(newborns)
	clear(newborns)
	s.newborns = newborns[:0]

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.lastCensus = telemetry.TakeCensus(s.step, s.field)
	s.writeCensus(s.lastCensus)
	s.flushTelemetry()

	s.perfCollector.EndTick(actors)
	s.notify()
}

// reconcile drops organisms that died during the pass, including prey eaten
// after its own turn, then appends the step's newborns. A newborn that was
// eaten before the pass ended counts as both a birth and a death.
func (s *Simulator) reconcile(newborns []*world.Organism) {
	live := s.roster[:0]
	for _, o := range s.roster {
		if o.Alive() {
			live = append(live, o)
			continue
		}
		s.retire(o)
	}
	clear(s.roster[len(live):])
	s.roster = live

	for _, o := range newborns {
		o.SetBornTick(s.step)
		s.lifetimes.Register(o, s.step)
		s.collector.RecordBirth(o)
		if !o.Alive() {
			s.retire(o)
			continue
		}
		s.roster = append(s.roster, o)
	}
}

func (s *Simulator) retire(o *world.Organism) {
	s.collector.RecordDeath(o)
	s.lifetimes.Remove(o, s.step)
}

// flushTelemetry closes the stats window when due and checks for bookmarks.
func (s *Simulator) flushTelemetry() {
	if !s.collector.ShouldFlush(s.step) {
		return
	}

	ages := make([]float64, 0, len(s.roster))
	var food []float64
	for _, o := range s.roster {
		ages = append(ages, float64(o.Age()))
		if o.Species().Hungers() {
			food = append(food, float64(o.FoodLevel()))
		}
	}

	stats := s.collector.Flush(s.lastCensus, ages, food)
	s.lifetimes.Fill(&stats)
	perfStats := s.perfCollector.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteWindow(stats); err != nil {
			slog.Error("failed to write window", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if s.outputManager != nil {
			if err := s.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

func (s *Simulator) writeCensus(c telemetry.Census) {
	if s.outputManager == nil {
		return
	}
	if err := s.outputManager.WriteCensus(c); err != nil {
		slog.Error("failed to write census", "error", err)
	}
}

func (s *Simulator) notify() {
	for _, sink := range s.sinks {
		sink.ShowStatus(s.step, s.field)
	}
}

// Field returns the simulated field.
func (s *Simulator) Field() *world.Field { return s.field }

// Step returns the number of steps taken since the last reset.
func (s *Simulator) Step() int { return s.step }

// Seed returns the seed the simulator was built with.
func (s *Simulator) Seed() int64 { return s.seed }

// Roster returns the living organisms in acting order. The slice is owned by
// the simulator and is only valid until the next step.
func (s *Simulator) Roster() []*world.Organism { return s.roster }

// Population returns the roster size.
func (s *Simulator) Population() int { return len(s.roster) }

// Census returns the census taken after the most recent step or reset.
func (s *Simulator) Census() telemetry.Census { return s.lastCensus }

// Lifetimes returns the lifetime tracker.
func (s *Simulator) Lifetimes() *telemetry.LifetimeTracker { return s.lifetimes }

// Perf returns the step timing collector.
func (s *Simulator) Perf() *telemetry.PerfCollector { return s.perfCollector }
