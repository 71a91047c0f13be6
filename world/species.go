package world

import (
	"fmt"
	"math"
)

// SpeciesID identifies one entry of the fixed species table.
type SpeciesID uint8

const (
	Rabbit SpeciesID = iota
	Fox
	Crocodile
	Fish
	Grass

	numSpecies
)

// AllSpecies lists every species in table order.
func AllSpecies() []SpeciesID {
	out := make([]SpeciesID, numSpecies)
	for i := range out {
		out[i] = SpeciesID(i)
	}
	return out
}

func (id SpeciesID) String() string {
	if id >= numSpecies {
		return fmt.Sprintf("species(%d)", uint8(id))
	}
	return speciesTable[id].Name
}

// SpeciesSet is a bit set of species, used for prey lists.
type SpeciesSet uint32

// SetOf builds a set from ids.
func SetOf(ids ...SpeciesID) SpeciesSet {
	var s SpeciesSet
	for _, id := range ids {
		s |= 1 << id
	}
	return s
}

// Has reports whether id is in the set.
func (s SpeciesSet) Has(id SpeciesID) bool { return s&(1<<id) != 0 }

// Kind separates animals (hunger, gender, mates) from plants (asexual spread).
type Kind uint8

const (
	Animal Kind = iota
	Plant
)

// Territory is the set of cells a species may occupy.
type Territory uint8

const (
	Ground Territory = iota
	Water
	Amphibian
)

func (t Territory) String() string {
	switch t {
	case Ground:
		return "ground"
	case Water:
		return "water"
	case Amphibian:
		return "amphibian"
	default:
		return "unknown"
	}
}

// Allows reports whether a cell of the given terrain class is legal.
func (t Territory) Allows(water bool) bool {
	switch t {
	case Ground:
		return !water
	case Water:
		return water
	default:
		return true
	}
}

// NeverHungry marks a species whose food level is not tracked.
const NeverHungry = math.MaxInt

// Species is the constant table for one species. Values are fixed per build.
type Species struct {
	ID        SpeciesID
	Name      string
	Kind      Kind
	Territory Territory

	BreedingAge      int
	MaxAge           int
	BreedProbability float64
	MaxLitter        int

	// MaxFood is the food ceiling; NeverHungry disables hunger entirely.
	MaxFood   int
	FoodValue int

	NightActive bool
	// Immunity is the chance a litter of two sick parents escapes infection.
	Immunity float64
	Prey     SpeciesSet
}

// Hungers reports whether food level is decremented each tick.
func (s *Species) Hungers() bool {
	return s.Kind == Animal && s.MaxFood != NeverHungry
}

// NewbornFood is the food level given to offspring.
func (s *Species) NewbornFood() int {
	if !s.Hungers() {
		return NeverHungry
	}
	return s.MaxFood / 2
}

var speciesTable = [numSpecies]Species{
	Rabbit: {
		ID: Rabbit, Name: "rabbit", Kind: Animal, Territory: Ground,
		BreedingAge: 5, MaxAge: 25, BreedProbability: 0.87, MaxLitter: 6,
		MaxFood: 7, FoodValue: 19,
		NightActive: true, Immunity: 0.02,
		Prey: SetOf(Grass),
	},
	Fox: {
		ID: Fox, Name: "fox", Kind: Animal, Territory: Ground,
		BreedingAge: 8, MaxAge: 37, BreedProbability: 0.35, MaxLitter: 2,
		MaxFood: 17, FoodValue: 30,
		NightActive: true, Immunity: 0.02,
		Prey: SetOf(Rabbit),
	},
	Crocodile: {
		ID: Crocodile, Name: "crocodile", Kind: Animal, Territory: Amphibian,
		BreedingAge: 15, MaxAge: 38, BreedProbability: 0.30, MaxLitter: 2,
		MaxFood: 25, FoodValue: 30,
		NightActive: false, Immunity: 0.02,
		Prey: SetOf(Rabbit, Fox, Fish),
	},
	Fish: {
		ID: Fish, Name: "fish", Kind: Animal, Territory: Water,
		BreedingAge: 3, MaxAge: 10, BreedProbability: 0.2, MaxLitter: 10,
		MaxFood: NeverHungry, FoodValue: 1,
		NightActive: true, Immunity: 0.10,
	},
	Grass: {
		ID: Grass, Name: "grass", Kind: Plant, Territory: Ground,
		BreedingAge: 1, MaxAge: 7, BreedProbability: 0.2, MaxLitter: 6,
		FoodValue: 6,
		NightActive: true, Immunity: 1,
	},
}

// Lookup returns the table entry for id. An id outside the table is a
// programming error and panics.
func Lookup(id SpeciesID) *Species {
	if id >= numSpecies {
		panic(fmt.Sprintf("world: unknown species id %d", uint8(id)))
	}
	return &speciesTable[id]
}

// SpeciesByName finds a species by its table name.
func SpeciesByName(name string) (SpeciesID, bool) {
	for i := range speciesTable {
		if speciesTable[i].Name == name {
			return speciesTable[i].ID, true
		}
	}
	return 0, false
}

// SpeciesNames returns table names in table order.
func SpeciesNames() []string {
	out := make([]string, numSpecies)
	for i := range speciesTable {
		out[i] = speciesTable[i].Name
	}
	return out
}
