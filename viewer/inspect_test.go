package viewer

import (
	"testing"

	"github.com/pthm-cable/habitat/world"
)

func rowsByLabel(rows []LabelValue) map[string]string {
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.Label] = r.Value
	}
	return m
}

func TestInspect(t *testing.T) {
	f := world.NewField(3, 3, world.AllLand, world.DefaultWeatherThresholds())
	fox := world.SpawnWith(f, world.Fox, world.Loc(1, 2), world.State{Age: 4, Food: 9, Male: true, Sick: true})
	grass := world.SpawnWith(f, world.Grass, world.Loc(0, 0), world.State{Age: 2})

	got := rowsByLabel(Inspect(fox))
	want := map[string]string{
		"Species": "fox",
		"Cell":    "(1,2)",
		"Age":     "4 / 37",
		"Food":    "9 / 17",
		"Gender":  "male",
		"Health":  "sick",
		"Kills":   "0",
	}
	for label, v := range want {
		if got[label] != v {
			t.Errorf("fox %s = %q, want %q", label, got[label], v)
		}
	}
	if _, ok := got["Died of"]; ok {
		t.Error("living fox should not show a death cause")
	}

	g := rowsByLabel(Inspect(grass))
	for _, hidden := range []string{"Food", "Gender", "Kills"} {
		if _, ok := g[hidden]; ok {
			t.Errorf("grass should not show %s", hidden)
		}
	}

	grass.Kill(world.Eaten)
	g = rowsByLabel(Inspect(grass))
	if g["Died of"] != world.Eaten.String() || g["Cell"] != "-" {
		t.Errorf("dead grass rows = %v", g)
	}

	if Inspect(nil) != nil {
		t.Error("Inspect(nil) should be empty")
	}
}
