package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/habitat/world"
)

// Census is a per-step snapshot of the field, written one row per step.
type Census struct {
	Tick    int    `csv:"tick"`
	Weather string `csv:"weather"`
	Day     bool   `csv:"day"`

	Rabbits    int `csv:"rabbits"`
	Foxes      int `csv:"foxes"`
	Crocodiles int `csv:"crocodiles"`
	Fish       int `csv:"fish"`
	Grass      int `csv:"grass"`

	Total int `csv:"total"`
	Sick  int `csv:"sick"`

	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
}

// TakeCensus counts the occupied cells of f.
func TakeCensus(tick int, f *world.Field) Census {
	c := Census{
		Tick:    tick,
		Weather: f.Weather().String(),
		Day:     f.IsDay(),
	}
	ages := make([]float64, 0, f.Count())
	f.Each(func(_ world.Location, o *world.Organism) {
		c.add(o.Species().ID, 1)
		c.Total++
		if o.Sick() {
			c.Sick++
		}
		ages = append(ages, float64(o.Age()))
	})
	if len(ages) > 0 {
		c.AgeMean, c.AgeStd = stat.PopMeanStdDev(ages, nil)
	}
	return c
}

func (c *Census) add(id world.SpeciesID, n int) {
	switch id {
	case world.Rabbit:
		c.Rabbits += n
	case world.Fox:
		c.Foxes += n
	case world.Crocodile:
		c.Crocodiles += n
	case world.Fish:
		c.Fish += n
	case world.Grass:
		c.Grass += n
	}
}

// Count returns the population of one species.
func (c Census) Count(id world.SpeciesID) int {
	switch id {
	case world.Rabbit:
		return c.Rabbits
	case world.Fox:
		return c.Foxes
	case world.Crocodile:
		return c.Crocodiles
	case world.Fish:
		return c.Fish
	case world.Grass:
		return c.Grass
	}
	return 0
}

// SpeciesAlive counts species with at least one member.
func (c Census) SpeciesAlive() int {
	n := 0
	for _, id := range world.AllSpecies() {
		if c.Count(id) > 0 {
			n++
		}
	}
	return n
}

func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", c.Tick),
		slog.String("weather", c.Weather),
		slog.Bool("day", c.Day),
		slog.Int("rabbits", c.Rabbits),
		slog.Int("foxes", c.Foxes),
		slog.Int("crocodiles", c.Crocodiles),
		slog.Int("fish", c.Fish),
		slog.Int("grass", c.Grass),
		slog.Int("sick", c.Sick),
	)
}
