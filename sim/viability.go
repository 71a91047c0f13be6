package sim

import "github.com/pthm-cable/habitat/world"

// Viability decides whether a run should continue. It is consulted once
// before every step.
type Viability interface {
	IsViable(f *world.Field) bool
}

// ViabilityFunc adapts a function to Viability.
type ViabilityFunc func(f *world.Field) bool

func (fn ViabilityFunc) IsViable(f *world.Field) bool { return fn(f) }

// MinSpecies is viable while at least n distinct species are alive.
func MinSpecies(n int) Viability {
	return ViabilityFunc(func(f *world.Field) bool {
		if n <= 0 {
			return true
		}
		seen := make(map[world.SpeciesID]bool)
		viable := false
		f.Each(func(_ world.Location, o *world.Organism) {
			if viable {
				return
			}
			seen[o.Species().ID] = true
			viable = len(seen) >= n
		})
		return viable
	})
}

// AllOf is viable only while every check is. Nil entries are skipped.
func AllOf(checks ...Viability) Viability {
	return ViabilityFunc(func(f *world.Field) bool {
		for _, c := range checks {
			if c != nil && !c.IsViable(f) {
				return false
			}
		}
		return true
	})
}

// Sink receives a read-only view of the field once after reset (step 0) and
// after every completed step.
type Sink interface {
	ShowStatus(step int, f *world.Field)
}
