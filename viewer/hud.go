package viewer

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/world"
)

// HUDData holds everything the status bar shows.
type HUDData struct {
	Step    int
	Census  telemetry.Census
	Paused  bool
	Viable  bool
	FPS     int32
	Species []world.SpeciesID
}

// StatusLine is the first HUD line: step, weather and time of day.
func (d HUDData) StatusLine() string {
	tod := "day"
	if !d.Census.Day {
		tod = "night"
	}
	state := "running"
	switch {
	case d.Paused:
		state = "paused"
	case !d.Viable:
		state = "stopped"
	}
	return fmt.Sprintf("Step: %d | %s | %s | %s", d.Step, d.Census.Weather, tod, state)
}

// PopulationLine lists the count of each species, in table order.
func (d HUDData) PopulationLine() string {
	ids := d.Species
	if ids == nil {
		ids = world.AllSpecies()
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %d", id, d.Census.Count(id)))
	}
	return "Population: " + strings.Join(parts, "  ")
}
