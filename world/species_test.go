package world

import "testing"

func TestTerritoryAllows(t *testing.T) {
	tests := []struct {
		territory Territory
		water     bool
		want      bool
	}{
		{Ground, false, true},
		{Ground, true, false},
		{Water, true, true},
		{Water, false, false},
		{Amphibian, true, true},
		{Amphibian, false, true},
	}
	for _, tt := range tests {
		if got := tt.territory.Allows(tt.water); got != tt.want {
			t.Errorf("%v.Allows(water=%v) = %v, want %v", tt.territory, tt.water, got, tt.want)
		}
	}
}

func TestSpeciesTable(t *testing.T) {
	for _, id := range AllSpecies() {
		sp := Lookup(id)
		if sp.ID != id {
			t.Errorf("table entry %d has id %d", id, sp.ID)
		}
		if sp.MaxAge <= 0 || sp.MaxLitter <= 0 {
			t.Errorf("%s: max age %d, max litter %d must be positive", sp.Name, sp.MaxAge, sp.MaxLitter)
		}
		got, ok := SpeciesByName(sp.Name)
		if !ok || got != id {
			t.Errorf("SpeciesByName(%q) = %v,%v", sp.Name, got, ok)
		}
	}

	if Lookup(Fish).Hungers() || Lookup(Grass).Hungers() {
		t.Error("fish and grass must not hunger")
	}
	if !Lookup(Fox).Hungers() {
		t.Error("fox must hunger")
	}
	if got := Lookup(Fox).NewbornFood(); got != 8 {
		t.Errorf("fox newborn food = %d, want 8", got)
	}
	if !Lookup(Crocodile).Prey.Has(Fish) || Lookup(Fox).Prey.Has(Fish) {
		t.Error("prey sets wrong")
	}
	if Lookup(Crocodile).NightActive {
		t.Error("crocodile should sleep at night")
	}
	if _, ok := SpeciesByName("unicorn"); ok {
		t.Error("unknown name resolved")
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown species id")
		}
	}()
	Lookup(SpeciesID(200))
}
