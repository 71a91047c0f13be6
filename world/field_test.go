package world

import (
	"reflect"
	"testing"

	"github.com/pthm-cable/habitat/rng"
)

func newTestField(depth, width int, layout Layout) *Field {
	return NewField(depth, width, layout, DefaultWeatherThresholds())
}

func TestAdjacentLocations(t *testing.T) {
	f := newTestField(3, 4, AllLand)

	tests := []struct {
		name string
		loc  Location
		want []Location
	}{
		{"corner", Loc(0, 0), []Location{Loc(0, 1), Loc(1, 0), Loc(1, 1)}},
		{"centre", Loc(1, 1), []Location{
			Loc(0, 0), Loc(0, 1), Loc(0, 2),
			Loc(1, 0), Loc(1, 2),
			Loc(2, 0), Loc(2, 1), Loc(2, 2),
		}},
		{"right edge", Loc(1, 3), []Location{
			Loc(0, 2), Loc(0, 3), Loc(1, 2), Loc(2, 2), Loc(2, 3),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.AdjacentLocations(tt.loc)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AdjacentLocations(%v) = %v, want %v", tt.loc, got, tt.want)
			}
		})
	}
}

func TestFreeAdjacentLocations(t *testing.T) {
	f := newTestField(3, 3, AllLand)
	SpawnWith(f, Grass, Loc(0, 0), State{})
	SpawnWith(f, Grass, Loc(0, 2), State{})
	SpawnWith(f, Grass, Loc(1, 0), State{})

	got := f.FreeAdjacentLocations(Loc(1, 1))
	want := []Location{Loc(0, 1), Loc(1, 2), Loc(2, 0), Loc(2, 1), Loc(2, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeAdjacentLocations = %v, want %v", got, want)
	}

	first, ok := f.FreeAdjacentLocation(Loc(1, 1))
	if !ok || first != Loc(0, 1) {
		t.Errorf("FreeAdjacentLocation = %v,%v, want (0,1),true", first, ok)
	}
}

func TestFreeAdjacentLocationFull(t *testing.T) {
	f := newTestField(1, 2, AllLand)
	SpawnWith(f, Grass, Loc(0, 0), State{})
	SpawnWith(f, Grass, Loc(0, 1), State{})

	if _, ok := f.FreeAdjacentLocation(Loc(0, 0)); ok {
		t.Error("expected no free neighbour on a full field")
	}
	if got := f.FreeAdjacentLocations(Loc(0, 0)); len(got) != 0 {
		t.Errorf("FreeAdjacentLocations = %v, want empty", got)
	}
}

func TestPlaceOccupiedPanics(t *testing.T) {
	f := newTestField(2, 2, AllLand)
	SpawnWith(f, Grass, Loc(0, 0), State{})

	defer func() {
		if recover() == nil {
			t.Error("expected panic placing onto an occupied cell")
		}
	}()
	SpawnWith(f, Rabbit, Loc(0, 0), State{Food: 3})
}

func TestClearAndReset(t *testing.T) {
	f := newTestField(2, 2, AllLand)
	o := SpawnWith(f, Grass, Loc(1, 1), State{})
	if f.OccupantAt(Loc(1, 1)) != o {
		t.Fatal("organism not placed")
	}
	f.Clear(Loc(1, 1))
	if f.OccupantAt(Loc(1, 1)) != nil {
		t.Error("Clear left an occupant")
	}
	if !o.Alive() {
		t.Error("Clear must not kill the organism")
	}

	SpawnWith(f, Grass, Loc(0, 0), State{})
	f.SetDay(false)
	f.SetWeather(Rain)
	f.Reset()
	if f.Count() != 0 {
		t.Errorf("Count after Reset = %d, want 0", f.Count())
	}
	if !f.IsDay() || f.Weather() != Sunny {
		t.Errorf("Reset: day=%v weather=%v, want true sunny", f.IsDay(), f.Weather())
	}
}

func TestIncrementTime(t *testing.T) {
	f := newTestField(1, 1, AllLand)
	r := &rng.Scripted{Ints: []int{50, 5, 1}}

	f.IncrementTime(r)
	if f.IsDay() {
		t.Error("first tick should be night")
	}
	if !f.IsRaining() || f.IsAcidRaining() {
		t.Errorf("weather = %v, want rain", f.Weather())
	}

	f.IncrementTime(r)
	if !f.IsDay() || f.IsRaining() {
		t.Errorf("second tick: day=%v weather=%v, want day sunny", f.IsDay(), f.Weather())
	}

	f.IncrementTime(r)
	if !f.IsRaining() || !f.IsAcidRaining() {
		t.Errorf("acid rain must count as raining, weather = %v", f.Weather())
	}
}

func TestLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		row    int
		col    int
		want   bool
	}{
		{"bands left edge", EdgeBands(0.4), 3, 0, true},
		{"bands inside left", EdgeBands(0.4), 3, 1, true},
		{"bands middle", EdgeBands(0.4), 3, 2, false},
		{"bands inside right", EdgeBands(0.4), 3, 8, true},
		{"bands no water", EdgeBands(0), 0, 0, false},
		{"checker origin", Checkerboard(2), 0, 0, false},
		{"checker next block", Checkerboard(2), 0, 2, true},
		{"checker diagonal", Checkerboard(2), 2, 2, false},
		{"land", AllLand, 1, 1, false},
		{"water", AllWater, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout(tt.row, tt.col, 6, 10); got != tt.want {
				t.Errorf("layout(%d,%d) = %v, want %v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestLayoutByName(t *testing.T) {
	opts := LayoutOptions{WaterFraction: 0.2, CheckerBlock: 4, NoiseScale: 0.1, NoiseSeed: 1}
	for _, name := range []string{"", "bands", "checkerboard", "lakes", "land", "water"} {
		if _, err := LayoutByName(name, opts); err != nil {
			t.Errorf("LayoutByName(%q) error: %v", name, err)
		}
	}
	if _, err := LayoutByName("islands", opts); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestWeatherNext(t *testing.T) {
	tests := []struct {
		draw int
		prev WeatherType
		want WeatherType
	}{
		{0, Sunny, AcidRain},
		{2, Rain, AcidRain},
		{3, Rain, Sunny},
		{10, Rain, Sunny},
		{11, Sunny, Rain},
		{88, Sunny, Rain},
		{89, Sunny, Sunny},
		{99, Rain, Rain},
		{95, AcidRain, AcidRain},
	}
	for _, tt := range tests {
		w := NewWeather(DefaultWeatherThresholds())
		w.current = tt.prev
		got := w.Next(&rng.Scripted{Ints: []int{tt.draw}})
		if got != tt.want {
			t.Errorf("draw %d from %v = %v, want %v", tt.draw, tt.prev, got, tt.want)
		}
	}
}
