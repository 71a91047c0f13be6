// Package telemetry tracks population health: per-step census, windowed
// event stats, bookmarks, lifetimes and step timing.
package telemetry

import "github.com/pthm-cable/habitat/world"

// Collector accumulates birth and death events within step windows and
// produces WindowStats.
type Collector struct {
	windowSteps     int
	windowStartTick int

	// Event counters for the current window, indexed by species.
	births     []int
	deaths     []int
	sickBirths int
	causes     map[world.DeathCause]int
}

// NewCollector creates a collector flushing every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	n := len(world.AllSpecies())
	return &Collector{
		windowSteps: windowSteps,
		births:      make([]int, n),
		deaths:      make([]int, n),
		causes:      make(map[world.DeathCause]int),
	}
}

// RecordBirth records an organism joining the roster.
func (c *Collector) RecordBirth(o *world.Organism) {
	c.births[o.Species().ID]++
	if o.Sick() {
		c.sickBirths++
	}
}

// RecordDeath records an organism leaving the roster.
func (c *Collector) RecordDeath(o *world.Organism) {
	c.deaths[o.Species().ID]++
	c.causes[o.Cause()]++
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowSteps
}

// Reset drops the current window, used when the simulator is reset.
func (c *Collector) Reset(tick int) {
	c.windowStartTick = tick
	c.clear()
}

func (c *Collector) clear() {
	for i := range c.births {
		c.births[i] = 0
		c.deaths[i] = 0
	}
	c.sickBirths = 0
	clear(c.causes)
}

// Flush produces a WindowStats from the window's events and the census at
// its end, then resets counters for the next window.
func (c *Collector) Flush(census Census, ages, food []float64) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   census.Tick,
		Census:          census,

		RabbitBirths:    c.births[world.Rabbit],
		FoxBirths:       c.births[world.Fox],
		CrocodileBirths: c.births[world.Crocodile],
		FishBirths:      c.births[world.Fish],
		GrassBirths:     c.births[world.Grass],
		SickBirths:      c.sickBirths,

		RabbitDeaths:    c.deaths[world.Rabbit],
		FoxDeaths:       c.deaths[world.Fox],
		CrocodileDeaths: c.deaths[world.Crocodile],
		FishDeaths:      c.deaths[world.Fish],
		GrassDeaths:     c.deaths[world.Grass],

		OldAgeDeaths:       c.causes[world.OldAge],
		StarvationDeaths:   c.causes[world.Starvation],
		OvercrowdingDeaths: c.causes[world.Overcrowding],
		Kills:              c.causes[world.Eaten],
	}
	stats.AgeP10, stats.AgeP50, stats.AgeP90 = Quantiles(ages)
	stats.FoodMean, stats.FoodStd = MeanStd(food)

	c.windowStartTick = census.Tick
	c.clear()

	return stats
}
