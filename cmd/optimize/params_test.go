package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/world"
)

func loadDefaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestParamVectorFromRegistry(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector(cfg)

	if pv.Dim() != len(cfg.Derived.Registry) {
		t.Fatalf("dim = %d, want %d", pv.Dim(), len(cfg.Derived.Registry))
	}
	if pv.Specs[0].Name != "rabbit_creation" {
		t.Errorf("first param = %q", pv.Specs[0].Name)
	}
	for i, spec := range pv.Specs {
		if spec.Default < probMin || spec.Default > probMax {
			t.Errorf("%s default %v outside bounds", spec.Name, spec.Default)
		}
		if got := pv.ExtractFromConfig(cfg)[i]; math.Abs(got-cfg.Derived.Registry[i].Probability) > 1e-12 {
			t.Errorf("%s extract = %v", spec.Name, got)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(loadDefaults(t))
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %d: %v -> %v", i, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector(cfg)

	values := make([]float64, pv.Dim())
	values[0] = -1
	values[1] = 2
	for i := 2; i < len(values); i++ {
		values[i] = 0.5
	}
	pv.ApplyToConfig(cfg, values)

	if got := cfg.Derived.Registry[0].Probability; got != probMin {
		t.Errorf("low value clamped to %v, want %v", got, probMin)
	}
	if got := cfg.Species[1].CreationProbability; got != probMax {
		t.Errorf("high value clamped to %v, want %v", got, probMax)
	}
	if got := cfg.Derived.Registry[2].Probability; got != 0.5 {
		t.Errorf("registry[2] = %v, want 0.5", got)
	}

	// The written config must reload with the tuned values.
	path := filepath.Join(t.TempDir(), "best_config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Derived.Registry[1].Probability != probMax {
		t.Errorf("reloaded registry[1] = %v", back.Derived.Registry[1].Probability)
	}
}

func TestCopyConfigIsDeep(t *testing.T) {
	base := loadDefaults(t)
	fe := NewFitnessEvaluator(NewParamVector(base), 10, []int64{1}, base)

	cp := fe.copyConfig()
	cp.Derived.Registry[0].Probability = 0.123
	cp.Species[0].CreationProbability = 0.123

	if base.Derived.Registry[0].Probability == 0.123 || base.Species[0].CreationProbability == 0.123 {
		t.Error("copy shares the species registry with the base config")
	}
}

func TestComputeQuality(t *testing.T) {
	window := func(rabbits, foxes, grass, sick int) telemetry.WindowStats {
		total := rabbits + foxes + grass
		return telemetry.WindowStats{Census: telemetry.Census{
			Rabbits: rabbits, Foxes: foxes, Grass: grass, Total: total, Sick: sick,
		}}
	}

	if q := computeQuality(nil); q != 0 {
		t.Errorf("no windows: quality = %v", q)
	}
	if q := computeQuality([]telemetry.WindowStats{window(10, 2, 30, 0)}); q != 0 {
		t.Errorf("warmup only: quality = %v", q)
	}

	steady := []telemetry.WindowStats{window(0, 0, 0, 0), window(10, 2, 30, 0), window(10, 2, 30, 0)}
	swinging := []telemetry.WindowStats{window(0, 0, 0, 0), window(40, 2, 30, 0), window(2, 2, 3, 0)}
	sickly := []telemetry.WindowStats{window(0, 0, 0, 0), window(10, 2, 30, 21), window(10, 2, 30, 21)}

	qs, qw, qk := computeQuality(steady), computeQuality(swinging), computeQuality(sickly)
	if qs <= qw {
		t.Errorf("steady %v should beat swinging %v", qs, qw)
	}
	if qs <= qk {
		t.Errorf("healthy %v should beat sickly %v", qs, qk)
	}
	// 3 of 5 species, perfectly stable, all healthy.
	want := qualityWeightDiversity*3.0/float64(len(world.AllSpecies())) + qualityWeightStability + qualityWeightHealth
	if math.Abs(qs-want) > 1e-9 {
		t.Errorf("steady quality = %v, want %v", qs, want)
	}
}

func TestEvaluateSmallRun(t *testing.T) {
	cfg, err := config.Parse([]byte(`
world:
  depth: 12
  width: 16
simulation:
  delay_ms: 0
telemetry:
  window: 5
`))
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 20, []int64{1, 2}, cfg)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -20*1.2 {
		t.Errorf("fitness = %v, want within [-24, 0]", fitness)
	}
	if s := fe.LastSurvival(); s < 0 || s > 20 {
		t.Errorf("survival = %v, want within [0, 20]", s)
	}
	if q := fe.LastQuality(); q < 0 || q > 1 {
		t.Errorf("quality = %v, want within [0, 1]", q)
	}
}
