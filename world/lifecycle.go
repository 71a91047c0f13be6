package world

import "github.com/pthm-cable/habitat/rng"

const (
	// SickLitterChance is the chance any mating yields an extra sick litter,
	// independent of the parents' health.
	SickLitterChance = 0.1
	// SickSproutChance is the per-offspring chance a plant sprout starts sick.
	SickSproutChance = 0.02
)

// Step runs one tick of o's life. Offspring are placed on the field at once
// and appended to newborns; they must not act until the next tick.
//
// Step is a no-op for a detached organism, and for a night-inactive species
// while it is night.
func (o *Organism) Step(r rng.Source, newborns *[]*Organism) {
	if o.field == nil || !o.alive {
		return
	}
	if !o.field.IsDay() && !o.species.NightActive {
		return
	}

	if !o.incrementAge() {
		return
	}

	if o.species.Kind == Plant {
		if o.field.IsRaining() {
			o.spread(r, newborns)
		}
		return
	}

	if !o.incrementHunger() {
		return
	}
	o.breed(r, newborns)

	target, ok := o.findFood()
	if !ok {
		target, ok = o.freeTerritory()
	}
	if !ok {
		o.Kill(Overcrowding)
		return
	}
	o.setLocation(target)
}

// incrementAge ages o by one tick, plus one under acid rain and one more if
// sick. Returns false if o died of old age.
func (o *Organism) incrementAge() bool {
	o.age++
	if o.field.IsAcidRaining() {
		o.age++
	}
	if o.sick {
		o.age++
	}
	if o.age > o.species.MaxAge {
		o.Kill(OldAge)
		return false
	}
	return true
}

// incrementHunger returns false if o starved.
func (o *Organism) incrementHunger() bool {
	if !o.species.Hungers() {
		return true
	}
	o.food--
	if o.food <= 0 {
		o.Kill(Starvation)
		return false
	}
	return true
}

// litterSize draws the number of offspring for one breeding or spreading
// attempt. Zero below breeding age or on a failed probability draw.
func (o *Organism) litterSize(r rng.Source) int {
	if o.age >= o.species.BreedingAge && r.Float64() <= o.species.BreedProbability {
		return r.IntN(o.species.MaxLitter) + 1
	}
	return 0
}

// breed tries to mate with every adjacent organism of the same species and
// opposite gender.
func (o *Organism) breed(r rng.Source, newborns *[]*Organism) {
	for _, loc := range o.field.AdjacentLocations(o.loc) {
		mate := o.field.OccupantAt(loc)
		if mate == nil || mate.species != o.species || mate.male == o.male {
			continue
		}
		bothSick := o.sick && mate.sick
		if (bothSick && r.Float64() >= o.species.Immunity) || r.Float64() < SickLitterChance {
			o.giveBirth(r, newborns, true)
		}
		o.giveBirth(r, newborns, false)
	}
}

// giveBirth places one litter into the free cells around o. A free cell in
// the wrong territory still uses up one birth.
func (o *Organism) giveBirth(r rng.Source, newborns *[]*Organism, sick bool) {
	free := o.field.FreeAdjacentLocations(o.loc)
	births := o.litterSize(r)
	for b := 0; b < births && len(free) > 0; b++ {
		loc := free[0]
		free = free[1:]
		if !o.IsCorrectTerritory(loc) {
			continue
		}
		*newborns = append(*newborns, o.birth(loc, r.Bool(), sick))
	}
}

// spread is asexual plant reproduction, only called while it rains.
func (o *Organism) spread(r rng.Source, newborns *[]*Organism) {
	free := o.field.FreeAdjacentLocations(o.loc)
	births := o.litterSize(r)
	for b := 0; b < births && len(free) > 0; b++ {
		loc := free[0]
		free = free[1:]
		if !o.IsCorrectTerritory(loc) {
			continue
		}
		sick := r.Float64() < SickSproutChance
		*newborns = append(*newborns, o.birth(loc, false, sick))
	}
}

// findFood eats the first adjacent prey and returns its cell. A predator at
// or above its food ceiling does not eat, and prey standing on a cell the
// predator may not enter is ignored.
func (o *Organism) findFood() (Location, bool) {
	if o.food >= o.species.MaxFood {
		return Location{}, false
	}
	for _, loc := range o.field.AdjacentLocations(o.loc) {
		prey := o.field.OccupantAt(loc)
		if prey == nil || !prey.alive || !o.species.Prey.Has(prey.species.ID) {
			continue
		}
		if !o.IsCorrectTerritory(loc) {
			continue
		}
		prey.killerID = o.id
		prey.Kill(Eaten)
		o.kills++
		o.food += prey.species.FoodValue
		return loc, true
	}
	return Location{}, false
}

// freeTerritory returns the first free adjacent cell o may occupy.
func (o *Organism) freeTerritory() (Location, bool) {
	for _, loc := range o.field.FreeAdjacentLocations(o.loc) {
		if o.IsCorrectTerritory(loc) {
			return loc, true
		}
	}
	return Location{}, false
}
