// Package viewer draws the field in a raylib window. Colors and status text
// live in plain Go so they work in headless builds too.
package viewer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/world"
)

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#rrggbb" (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Darken scales each channel by factor in [0,1].
func (c RGB) Darken(factor float64) RGB {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	k := 1 - factor
	return RGB{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
	}
}

// SickShade is how much darker a sick organism is drawn.
const SickShade = 0.45

var fallbackColor = RGB{R: 128, G: 128, B: 128}

// Palette maps terrain and species to colors.
type Palette struct {
	Water   RGB
	Land    RGB
	species map[world.SpeciesID]RGB
}

// NewPalette builds a palette from the viewer config. Species without a
// configured color are drawn gray.
func NewPalette(cfg config.ViewerConfig) (Palette, error) {
	p := Palette{species: make(map[world.SpeciesID]RGB)}

	var err error
	if p.Water, err = ParseHex(cfg.Water); err != nil {
		return Palette{}, fmt.Errorf("water: %w", err)
	}
	if p.Land, err = ParseHex(cfg.Land); err != nil {
		return Palette{}, fmt.Errorf("land: %w", err)
	}

	for name, hex := range cfg.Colors {
		id, ok := world.SpeciesByName(strings.ToLower(name))
		if !ok {
			slog.Warn("color for unknown species ignored", "species", name)
			continue
		}
		c, err := ParseHex(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s: %w", name, err)
		}
		p.species[id] = c
	}
	return p, nil
}

// Species returns the color for a species.
func (p Palette) Species(id world.SpeciesID) RGB {
	if c, ok := p.species[id]; ok {
		return c
	}
	return fallbackColor
}

// Cell returns the color a cell is drawn with.
func (p Palette) Cell(f *world.Field, loc world.Location) RGB {
	if o := f.OccupantAt(loc); o != nil {
		c := p.Species(o.Species().ID)
		if o.Sick() {
			c = c.Darken(SickShade)
		}
		return c
	}
	if f.IsWater(loc) {
		return p.Water
	}
	return p.Land
}
