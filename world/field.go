// Package world holds the grid, its weather, and the organisms living on it.
package world

import (
	"fmt"

	"github.com/pthm-cable/habitat/rng"
)

// neighborOffsets is the row-major scan order used for every adjacency query.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Field is a depth×width grid where each cell holds at most one organism.
type Field struct {
	depth, width int

	cells []*Organism
	water []bool

	day     bool
	weather *Weather

	nextID uint64
}

// NewField builds an empty field with the given water layout and weather
// thresholds. Dimensions below 1 are clamped to 1.
func NewField(depth, width int, layout Layout, thresholds WeatherThresholds) *Field {
	if depth < 1 {
		depth = 1
	}
	if width < 1 {
		width = 1
	}
	if layout == nil {
		layout = AllLand
	}
	f := &Field{
		depth:   depth,
		width:   width,
		cells:   make([]*Organism, depth*width),
		water:   make([]bool, depth*width),
		day:     true,
		weather: NewWeather(thresholds),
	}
	for row := 0; row < depth; row++ {
		for col := 0; col < width; col++ {
			f.water[row*width+col] = layout(row, col, depth, width)
		}
	}
	return f
}

// Depth returns the number of rows.
func (f *Field) Depth() int { return f.depth }

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// InBounds reports whether loc lies on the grid.
func (f *Field) InBounds(loc Location) bool {
	return loc.Row >= 0 && loc.Row < f.depth && loc.Col >= 0 && loc.Col < f.width
}

func (f *Field) index(loc Location) int {
	if !f.InBounds(loc) {
		panic(fmt.Sprintf("world: location %v outside %dx%d field", loc, f.depth, f.width))
	}
	return loc.Row*f.width + loc.Col
}

// IsWater reports the fixed terrain class of loc.
func (f *Field) IsWater(loc Location) bool {
	return f.water[f.index(loc)]
}

// OccupantAt returns the organism at loc, or nil.
func (f *Field) OccupantAt(loc Location) *Organism {
	return f.cells[f.index(loc)]
}

// Place records o at loc. Placing onto a cell held by another organism is a
// caller bug and panics.
func (f *Field) Place(o *Organism, loc Location) {
	i := f.index(loc)
	if cur := f.cells[i]; cur != nil && cur != o {
		panic(fmt.Sprintf("world: %s#%d cannot be placed at %v, occupied by %s#%d",
			o.Species().Name, o.ID(), loc, cur.Species().Name, cur.ID()))
	}
	f.cells[i] = o
}

// Clear empties loc without touching the organism that was there.
func (f *Field) Clear(loc Location) {
	f.cells[f.index(loc)] = nil
}

// Reset empties every cell, restores daytime and sunny weather.
func (f *Field) Reset() {
	for i := range f.cells {
		f.cells[i] = nil
	}
	f.day = true
	f.weather.Reset()
}

// AdjacentLocations returns the in-bounds neighbours of loc in row-major
// offset order.
func (f *Field) AdjacentLocations(loc Location) []Location {
	out := make([]Location, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		n := Location{Row: loc.Row + d[0], Col: loc.Col + d[1]}
		if f.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// FreeAdjacentLocations returns the unoccupied neighbours of loc in the same
// order as AdjacentLocations.
func (f *Field) FreeAdjacentLocations(loc Location) []Location {
	adjacent := f.AdjacentLocations(loc)
	free := adjacent[:0]
	for _, n := range adjacent {
		if f.OccupantAt(n) == nil {
			free = append(free, n)
		}
	}
	return free
}

// FreeAdjacentLocation returns the first unoccupied neighbour of loc.
// ok is false when every neighbour is taken.
func (f *Field) FreeAdjacentLocation(loc Location) (Location, bool) {
	for _, d := range neighborOffsets {
		n := Location{Row: loc.Row + d[0], Col: loc.Col + d[1]}
		if f.InBounds(n) && f.OccupantAt(n) == nil {
			return n, true
		}
	}
	return Location{}, false
}

// IncrementTime toggles day/night and advances the weather. Called once at
// the start of every tick.
func (f *Field) IncrementTime(r rng.Source) {
	f.day = !f.day
	f.weather.Next(r)
}

// IsDay reports whether it is currently daytime.
func (f *Field) IsDay() bool { return f.day }

// SetDay forces the day flag.
func (f *Field) SetDay(day bool) { f.day = day }

// Weather returns the current weather.
func (f *Field) Weather() WeatherType { return f.weather.Current() }

// SetWeather forces the current weather.
func (f *Field) SetWeather(w WeatherType) { f.weather.current = w }

// IsRaining is true for both rain and acid rain.
func (f *Field) IsRaining() bool {
	w := f.weather.Current()
	return w == Rain || w == AcidRain
}

// IsAcidRaining reports acid rain.
func (f *Field) IsAcidRaining() bool { return f.weather.Current() == AcidRain }

// Each calls fn for every occupied cell in row-major order. fn must not
// mutate the field.
func (f *Field) Each(fn func(loc Location, o *Organism)) {
	for i, o := range f.cells {
		if o != nil {
			fn(Location{Row: i / f.width, Col: i % f.width}, o)
		}
	}
}

// Count returns the number of occupied cells.
func (f *Field) Count() int {
	n := 0
	for _, o := range f.cells {
		if o != nil {
			n++
		}
	}
	return n
}

func (f *Field) newID() uint64 {
	f.nextID++
	return f.nextID
}
