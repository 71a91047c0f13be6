package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end.
	Census

	// Events during window
	RabbitBirths    int `csv:"rabbit_births"`
	FoxBirths       int `csv:"fox_births"`
	CrocodileBirths int `csv:"crocodile_births"`
	FishBirths      int `csv:"fish_births"`
	GrassBirths     int `csv:"grass_births"`
	SickBirths      int `csv:"sick_births"`

	RabbitDeaths    int `csv:"rabbit_deaths"`
	FoxDeaths       int `csv:"fox_deaths"`
	CrocodileDeaths int `csv:"crocodile_deaths"`
	FishDeaths      int `csv:"fish_deaths"`
	GrassDeaths     int `csv:"grass_deaths"`

	// Deaths by cause
	OldAgeDeaths       int `csv:"old_age"`
	StarvationDeaths   int `csv:"starvation"`
	OvercrowdingDeaths int `csv:"overcrowding"`
	Kills              int `csv:"eaten"`

	// Distributions sampled at window end
	AgeP10   float64 `csv:"age_p10"`
	AgeP50   float64 `csv:"age_p50"`
	AgeP90   float64 `csv:"age_p90"`
	FoodMean float64 `csv:"food_mean"`
	FoodStd  float64 `csv:"food_std"`

	// Lineage and lifespans since reset
	MaxGeneration     int     `csv:"max_generation"`
	MeanLifespan      float64 `csv:"mean_lifespan"`
	MaxLifespan       int     `csv:"max_lifespan"`
	RabbitLifespan    float64 `csv:"rabbit_lifespan"`
	FoxLifespan       float64 `csv:"fox_lifespan"`
	CrocodileLifespan float64 `csv:"crocodile_lifespan"`
	FishLifespan      float64 `csv:"fish_lifespan"`
	GrassLifespan     float64 `csv:"grass_lifespan"`
}

// Births sums births over all species.
func (s WindowStats) Births() int {
	return s.RabbitBirths + s.FoxBirths + s.CrocodileBirths + s.FishBirths + s.GrassBirths
}

// Deaths sums deaths over all species.
func (s WindowStats) Deaths() int {
	return s.RabbitDeaths + s.FoxDeaths + s.CrocodileDeaths + s.FishDeaths + s.GrassDeaths
}

// SickFraction is the share of the population that is sick.
func (s WindowStats) SickFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Sick) / float64(s.Total)
}

// Quantiles returns the 10th, 50th and 90th percentiles of values.
// Returns zeros for an empty slice.
func Quantiles(values []float64) (p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return p10, p50, p90
}

// MeanStd returns the population mean and standard deviation of values.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.String("weather", s.Weather),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("foxes", s.Foxes),
		slog.Int("crocodiles", s.Crocodiles),
		slog.Int("fish", s.Fish),
		slog.Int("grass", s.Grass),
		slog.Int("sick", s.Sick),
		slog.Int("births", s.Births()),
		slog.Int("sick_births", s.SickBirths),
		slog.Int("deaths", s.Deaths()),
		slog.Int("old_age", s.OldAgeDeaths),
		slog.Int("starvation", s.StarvationDeaths),
		slog.Int("overcrowding", s.OvercrowdingDeaths),
		slog.Int("eaten", s.Kills),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("food_mean", s.FoodMean),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Float64("mean_lifespan", s.MeanLifespan),
		slog.Int("max_lifespan", s.MaxLifespan),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
