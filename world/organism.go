package world

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/habitat/rng"
)

// DeathCause records why an organism left the field.
type DeathCause uint8

const (
	Living DeathCause = iota
	OldAge
	Starvation
	Overcrowding
	Eaten
)

func (c DeathCause) String() string {
	switch c {
	case Living:
		return "living"
	case OldAge:
		return "old_age"
	case Starvation:
		return "starvation"
	case Overcrowding:
		return "overcrowding"
	case Eaten:
		return "eaten"
	default:
		return "unknown"
	}
}

// Organism is a single plant or animal. Behaviour comes from its species
// descriptor; the record only carries per-individual state.
//
// A dead organism holds no field reference and no grid slot.
type Organism struct {
	species *Species
	field   *Field
	loc     Location

	id         uint64
	parentID   uint64
	generation int
	bornTick   int

	alive bool
	age   int
	sick  bool
	male  bool
	food  int

	cause    DeathCause
	killerID uint64
	kills    int
	children int
}

// State is the explicit initial state used by SpawnWith.
type State struct {
	Age  int
	Food int
	Male bool
	Sick bool
}

// Spawn creates an organism of the given species at loc with a randomised
// seed state: gender first (animals only), then age in [0, MaxAge), then
// food in [0, MaxFood).
func Spawn(f *Field, id SpeciesID, loc Location, r rng.Source) *Organism {
	sp := Lookup(id)
	var st State
	if sp.Kind == Animal {
		st.Male = r.Bool()
	}
	st.Age = r.IntN(sp.MaxAge)
	if sp.Hungers() {
		st.Food = r.IntN(sp.MaxFood)
	} else {
		st.Food = NeverHungry
	}
	return SpawnWith(f, id, loc, st)
}

// SpawnWith creates an organism with the given state and places it at loc.
// loc must be free.
func SpawnWith(f *Field, id SpeciesID, loc Location, st State) *Organism {
	sp := Lookup(id)
	if st.Age < 0 {
		panic(fmt.Sprintf("world: negative age %d for %s", st.Age, sp.Name))
	}
	if !sp.Hungers() {
		st.Food = NeverHungry
	}
	o := &Organism{
		species: sp,
		field:   f,
		loc:     loc,
		id:      f.newID(),
		alive:   true,
		age:     st.Age,
		sick:    st.Sick,
		male:    st.Male,
		food:    st.Food,
	}
	f.Place(o, loc)
	return o
}

// birth places an offspring of o at loc.
func (o *Organism) birth(loc Location, male, sick bool) *Organism {
	child := SpawnWith(o.field, o.species.ID, loc, State{
		Food: o.species.NewbornFood(),
		Male: male,
		Sick: sick,
	})
	child.parentID = o.id
	child.generation = o.generation + 1
	o.children++
	return child
}

// Species returns the constant table of o's species.
func (o *Organism) Species() *Species { return o.species }

// ID is unique within the field that created o.
func (o *Organism) ID() uint64 { return o.id }

// ParentID is zero for the initial population.
func (o *Organism) ParentID() uint64 { return o.parentID }

// Generation counts ancestors back to the initial population.
func (o *Organism) Generation() int { return o.generation }

func (o *Organism) Alive() bool { return o.alive }
func (o *Organism) Age() int { return o.age }
func (o *Organism) Sick() bool { return o.sick }
func (o *Organism) Male() bool { return o.male }
func (o *Organism) FoodLevel() int { return o.food }
func (o *Organism) Kills() int { return o.kills }
func (o *Organism) Children() int { return o.children }
func (o *Organism) Cause() DeathCause { return o.cause }

// KillerID is the predator that ate o, or zero.
func (o *Organism) KillerID() uint64 { return o.killerID }

// Field returns the owning field, or nil once o is dead.
func (o *Organism) Field() *Field { return o.field }

// Location returns o's cell; ok is false once o is dead.
func (o *Organism) Location() (loc Location, ok bool) {
	if o.field == nil {
		return Location{}, false
	}
	return o.loc, true
}

// BornTick is the simulation step o was created in.
func (o *Organism) BornTick() int { return o.bornTick }

// SetBornTick is set by the simulator when o joins the roster.
func (o *Organism) SetBornTick(tick int) { o.bornTick = tick }

// IsCorrectTerritory reports whether o may occupy loc.
func (o *Organism) IsCorrectTerritory(loc Location) bool {
	return o.species.Territory.Allows(o.field.IsWater(loc))
}

// Kill removes o from the field with the given cause. Killing a dead
// organism is a no-op.
func (o *Organism) Kill(cause DeathCause) {
	if !o.alive {
		return
	}
	o.alive = false
	o.cause = cause
	if o.field != nil && o.field.OccupantAt(o.loc) == o {
		o.field.Clear(o.loc)
	}
	o.field = nil
}

func (o *Organism) setLocation(loc Location) {
	o.field.Clear(o.loc)
	o.field.Place(o, loc)
	o.loc = loc
}

func (o *Organism) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Uint64("id", o.id),
		slog.String("species", o.species.Name),
		slog.Int("age", o.age),
		slog.Bool("sick", o.sick),
		slog.Bool("alive", o.alive),
	}
	if o.alive {
		attrs = append(attrs, slog.String("loc", o.loc.String()))
	} else {
		attrs = append(attrs, slog.String("cause", o.cause.String()))
	}
	if o.species.Hungers() {
		attrs = append(attrs, slog.Int("food", o.food))
	}
	return slog.GroupValue(attrs...)
}
