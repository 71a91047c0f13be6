package telemetry

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/habitat/world"
)

// Lifetime is the ECS component holding one organism's life record.
type Lifetime struct {
	OrganismID uint64
	Species    world.SpeciesID
	BirthTick  int
	Generation int
	BornSick   bool
}

// lifespanTotals accumulates finished lifespans for one species.
type lifespanTotals struct {
	count int
	sum   int
	max   int
}

// LifetimeTracker keeps a record for every living organism, one ECS entity
// each, and folds finished lifespans into per-species totals.
type LifetimeTracker struct {
	world    *ecs.World
	mapper   *ecs.Map1[Lifetime]
	filter   *ecs.Filter1[Lifetime]
	entities map[uint64]ecs.Entity

	totals []lifespanTotals
}

// NewLifetimeTracker creates an empty tracker.
func NewLifetimeTracker() *LifetimeTracker {
	w := ecs.NewWorld()
	return &LifetimeTracker{
		world:    w,
		mapper:   ecs.NewMap1[Lifetime](w),
		filter:   ecs.NewFilter1[Lifetime](w),
		entities: make(map[uint64]ecs.Entity),
		totals:   make([]lifespanTotals, len(world.AllSpecies())),
	}
}

// Register starts a record for o, born at tick.
func (lt *LifetimeTracker) Register(o *world.Organism, tick int) {
	rec := Lifetime{
		OrganismID: o.ID(),
		Species:    o.Species().ID,
		BirthTick:  tick,
		Generation: o.Generation(),
		BornSick:   o.Sick(),
	}
	lt.entities[o.ID()] = lt.mapper.NewEntity(&rec)
}

// Remove ends o's record at tick and returns its lifespan in steps.
func (lt *LifetimeTracker) Remove(o *world.Organism, tick int) (int, bool) {
	e, ok := lt.entities[o.ID()]
	if !ok {
		return 0, false
	}
	rec := lt.mapper.Get(e)
	span := tick - rec.BirthTick
	t := &lt.totals[rec.Species]
	t.count++
	t.sum += span
	if span > t.max {
		t.max = span
	}

	lt.world.RemoveEntity(e)
	delete(lt.entities, o.ID())
	return span, true
}

// Reset drops every record and total.
func (lt *LifetimeTracker) Reset() {
	for id, e := range lt.entities {
		lt.world.RemoveEntity(e)
		delete(lt.entities, id)
	}
	for i := range lt.totals {
		lt.totals[i] = lifespanTotals{}
	}
}

// Count returns the number of living organisms tracked.
func (lt *LifetimeTracker) Count() int {
	return len(lt.entities)
}

// MeanLifespan is the mean finished lifespan of a species, in steps.
func (lt *LifetimeTracker) MeanLifespan(id world.SpeciesID) float64 {
	t := lt.totals[id]
	if t.count == 0 {
		return 0
	}
	return float64(t.sum) / float64(t.count)
}

// MaxLifespan is the longest finished lifespan of a species.
func (lt *LifetimeTracker) MaxLifespan(id world.SpeciesID) int {
	return lt.totals[id].max
}

// Fill copies the lineage and lifespan figures into stats.
func (lt *LifetimeTracker) Fill(stats *WindowStats) {
	stats.MaxGeneration = lt.MaxGeneration()
	stats.MeanLifespan = lt.OverallMeanLifespan()
	stats.MaxLifespan = 0
	for _, id := range world.AllSpecies() {
		stats.MaxLifespan = max(stats.MaxLifespan, lt.MaxLifespan(id))
	}
	stats.RabbitLifespan = lt.MeanLifespan(world.Rabbit)
	stats.FoxLifespan = lt.MeanLifespan(world.Fox)
	stats.CrocodileLifespan = lt.MeanLifespan(world.Crocodile)
	stats.FishLifespan = lt.MeanLifespan(world.Fish)
	stats.GrassLifespan = lt.MeanLifespan(world.Grass)
}

// OverallMeanLifespan is the mean finished lifespan across all species.
func (lt *LifetimeTracker) OverallMeanLifespan() float64 {
	var count, sum int
	for _, t := range lt.totals {
		count += t.count
		sum += t.sum
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// MaxGenerations returns the deepest living generation per species.
func (lt *LifetimeTracker) MaxGenerations() []int {
	out := make([]int, len(world.AllSpecies()))
	query := lt.filter.Query()
	for query.Next() {
		rec := query.Get()
		if rec.Generation > out[rec.Species] {
			out[rec.Species] = rec.Generation
		}
	}
	return out
}

// MaxGeneration is the deepest living generation of any species.
func (lt *LifetimeTracker) MaxGeneration() int {
	best := 0
	for _, g := range lt.MaxGenerations() {
		if g > best {
			best = g
		}
	}
	return best
}
