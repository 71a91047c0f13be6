package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/habitat/world"
)

func TestQuantiles(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	p10, p50, p90 := Quantiles(values)

	if p10 < 1 || p10 > 2 {
		t.Errorf("p10 = %v, want within [1,2]", p10)
	}
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want within [5,6]", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want within [9,10]", p90)
	}
	if values[0] != 10 {
		t.Error("Quantiles reordered its input")
	}
}

func TestQuantilesEmpty(t *testing.T) {
	p10, p50, p90 := Quantiles(nil)
	if p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 0},
		{"classic", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 || math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("MeanStd = %v,%v, want %v,%v", mean, std, tt.wantMean, tt.wantStd)
			}
		})
	}
}

func TestTakeCensus(t *testing.T) {
	f := world.NewField(3, 3, world.AllLand, world.DefaultWeatherThresholds())
	world.SpawnWith(f, world.Rabbit, world.Loc(0, 0), world.State{Age: 2, Food: 3})
	world.SpawnWith(f, world.Rabbit, world.Loc(0, 1), world.State{Age: 4, Food: 3, Sick: true})
	world.SpawnWith(f, world.Fox, world.Loc(1, 1), world.State{Age: 6, Food: 3})
	world.SpawnWith(f, world.Grass, world.Loc(2, 2), world.State{Age: 0})

	c := TakeCensus(7, f)

	if c.Tick != 7 || c.Weather != "sunny" || !c.Day {
		t.Errorf("header = %d,%s,%v", c.Tick, c.Weather, c.Day)
	}
	if c.Rabbits != 2 || c.Foxes != 1 || c.Grass != 1 || c.Fish != 0 {
		t.Errorf("counts = r%d f%d g%d fish%d", c.Rabbits, c.Foxes, c.Grass, c.Fish)
	}
	if c.Total != 4 || c.Sick != 1 {
		t.Errorf("total=%d sick=%d, want 4,1", c.Total, c.Sick)
	}
	if math.Abs(c.AgeMean-3) > 1e-9 {
		t.Errorf("age mean = %v, want 3", c.AgeMean)
	}
	if c.SpeciesAlive() != 3 {
		t.Errorf("SpeciesAlive = %d, want 3", c.SpeciesAlive())
	}
	if c.Count(world.Fox) != 1 {
		t.Errorf("Count(fox) = %d", c.Count(world.Fox))
	}
}

func TestCollectorFlush(t *testing.T) {
	f := world.NewField(3, 3, world.AllLand, world.DefaultWeatherThresholds())
	c := NewCollector(10)

	born := world.SpawnWith(f, world.Rabbit, world.Loc(0, 0), world.State{Food: 3, Sick: true})
	c.RecordBirth(born)
	c.RecordBirth(world.SpawnWith(f, world.Grass, world.Loc(0, 1), world.State{}))

	eaten := world.SpawnWith(f, world.Rabbit, world.Loc(1, 0), world.State{Food: 3})
	eaten.Kill(world.Eaten)
	c.RecordDeath(eaten)
	starved := world.SpawnWith(f, world.Fox, world.Loc(1, 1), world.State{Food: 3})
	starved.Kill(world.Starvation)
	c.RecordDeath(starved)

	if c.ShouldFlush(9) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("no flush at window end")
	}

	stats := c.Flush(TakeCensus(10, f), []float64{1, 2, 3}, []float64{3, 3})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = %d..%d", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.RabbitBirths != 1 || stats.GrassBirths != 1 || stats.SickBirths != 1 {
		t.Errorf("births r%d g%d sick%d", stats.RabbitBirths, stats.GrassBirths, stats.SickBirths)
	}
	if stats.RabbitDeaths != 1 || stats.FoxDeaths != 1 || stats.Deaths() != 2 {
		t.Errorf("deaths r%d f%d total%d", stats.RabbitDeaths, stats.FoxDeaths, stats.Deaths())
	}
	if stats.Kills != 1 || stats.StarvationDeaths != 1 {
		t.Errorf("kills=%d starvation=%d", stats.Kills, stats.StarvationDeaths)
	}
	if stats.Total != 2 || stats.Rabbits != 1 {
		t.Errorf("census total=%d rabbits=%d", stats.Total, stats.Rabbits)
	}
	if stats.FoodMean != 3 || stats.FoodStd != 0 {
		t.Errorf("food = %v±%v", stats.FoodMean, stats.FoodStd)
	}

	// Counters reset for the next window.
	next := c.Flush(TakeCensus(20, f), nil, nil)
	if next.Births() != 0 || next.Deaths() != 0 || next.WindowStartTick != 10 {
		t.Errorf("counters not reset: births=%d deaths=%d start=%d", next.Births(), next.Deaths(), next.WindowStartTick)
	}
}
