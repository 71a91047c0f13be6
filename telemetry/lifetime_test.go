package telemetry

import (
	"testing"

	"github.com/pthm-cable/habitat/world"
)

func TestLifetimeTracker(t *testing.T) {
	f := world.NewField(2, 2, world.AllLand, world.DefaultWeatherThresholds())
	rabbit := world.SpawnWith(f, world.Rabbit, world.Loc(0, 0), world.State{Food: 3})
	fox := world.SpawnWith(f, world.Fox, world.Loc(0, 1), world.State{Food: 3})
	rabbit2 := world.SpawnWith(f, world.Rabbit, world.Loc(1, 0), world.State{Food: 3, Sick: true})

	lt := NewLifetimeTracker()
	lt.Register(rabbit, 0)
	lt.Register(fox, 2)
	lt.Register(rabbit2, 4)

	if lt.Count() != 3 {
		t.Fatalf("Count = %d, want 3", lt.Count())
	}
	span, ok := lt.Remove(rabbit, 10)
	if !ok || span != 10 {
		t.Errorf("Remove = %d,%v, want 10,true", span, ok)
	}
	span, ok = lt.Remove(rabbit2, 10)
	if !ok || span != 6 {
		t.Errorf("Remove = %d,%v, want 6,true", span, ok)
	}
	if _, ok := lt.Remove(rabbit, 12); ok {
		t.Error("removing twice succeeded")
	}
	if lt.Count() != 1 {
		t.Errorf("Count = %d after removals, want 1", lt.Count())
	}

	if got := lt.MeanLifespan(world.Rabbit); got != 8 {
		t.Errorf("rabbit mean lifespan = %v, want 8", got)
	}
	if got := lt.MaxLifespan(world.Rabbit); got != 10 {
		t.Errorf("rabbit max lifespan = %d, want 10", got)
	}
	if got := lt.MeanLifespan(world.Fox); got != 0 {
		t.Errorf("fox mean lifespan = %v, want 0 while alive", got)
	}
	if got := lt.OverallMeanLifespan(); got != 8 {
		t.Errorf("overall mean lifespan = %v, want 8", got)
	}

	var stats WindowStats
	lt.Fill(&stats)
	if stats.RabbitLifespan != 8 || stats.FoxLifespan != 0 || stats.MaxLifespan != 10 || stats.MeanLifespan != 8 {
		t.Errorf("Fill: rabbit %v fox %v max %d mean %v, want 8 0 10 8",
			stats.RabbitLifespan, stats.FoxLifespan, stats.MaxLifespan, stats.MeanLifespan)
	}

	gens := lt.MaxGenerations()
	if len(gens) != len(world.AllSpecies()) || lt.MaxGeneration() != 0 {
		t.Errorf("generations = %v", gens)
	}

	lt.Reset()
	if lt.Count() != 0 || lt.OverallMeanLifespan() != 0 {
		t.Error("Reset left records behind")
	}
}
