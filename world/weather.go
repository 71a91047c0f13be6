package world

import "github.com/pthm-cable/habitat/rng"

// WeatherType enumerates the weather states.
type WeatherType uint8

const (
	Sunny WeatherType = iota
	Rain
	AcidRain
)

func (w WeatherType) String() string {
	switch w {
	case Sunny:
		return "sunny"
	case Rain:
		return "rain"
	case AcidRain:
		return "acid_rain"
	default:
		return "unknown"
	}
}

// WeatherThresholds are inclusive upper bounds on a draw in [0,100).
// Acid rain is checked last and overrides the other two, so its band
// overlaps the sun band. Draws above RainMax leave the weather unchanged.
type WeatherThresholds struct {
	SunMax      int
	RainMax     int
	AcidRainMax int
}

// DefaultWeatherThresholds gives an effective distribution of 3% acid rain,
// 8% sun, 78% rain and 11% carry-over.
func DefaultWeatherThresholds() WeatherThresholds {
	return WeatherThresholds{SunMax: 10, RainMax: 88, AcidRainMax: 2}
}

// Weather tracks the current weather and moves it on once per tick.
type Weather struct {
	current    WeatherType
	thresholds WeatherThresholds
}

// NewWeather starts sunny.
func NewWeather(t WeatherThresholds) *Weather {
	return &Weather{current: Sunny, thresholds: t}
}

// Current returns the weather in effect.
func (w *Weather) Current() WeatherType { return w.current }

// Next draws the weather for the coming tick.
func (w *Weather) Next(r rng.Source) WeatherType {
	draw := r.IntN(100)
	if draw <= w.thresholds.SunMax {
		w.current = Sunny
	} else if draw <= w.thresholds.RainMax {
		w.current = Rain
	}
	if draw <= w.thresholds.AcidRainMax {
		w.current = AcidRain
	}
	return w.current
}

// Reset returns to sunny.
func (w *Weather) Reset() { w.current = Sunny }
