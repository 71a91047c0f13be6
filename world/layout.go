package world

import "fmt"

// Layout classifies each cell of a depth×width grid as water (true) or land.
// It is evaluated once when the field is built.
type Layout func(row, col, depth, width int) bool

// AllLand has no water.
func AllLand(_, _, _, _ int) bool { return false }

// AllWater has no land.
func AllWater(_, _, _, _ int) bool { return true }

// EdgeBands puts water in vertical bands along the left and right edges,
// each covering fraction/2 of the width.
func EdgeBands(fraction float64) Layout {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return func(_, col, _, width int) bool {
		band := int(float64(width) * fraction / 2)
		return col < band || col >= width-band
	}
}

// Checkerboard alternates block×block squares of water and land, starting
// with land in the top-left corner.
func Checkerboard(block int) Layout {
	if block < 1 {
		block = 1
	}
	return func(row, col, _, _ int) bool {
		return (row/block+col/block)%2 == 1
	}
}

// LayoutOptions parameterises the named layouts.
type LayoutOptions struct {
	WaterFraction float64 // bands, lakes
	CheckerBlock  int     // checkerboard
	NoiseScale    float64 // lakes
	NoiseSeed     int64   // lakes
}

// LayoutByName resolves a configured layout name.
func LayoutByName(name string, opts LayoutOptions) (Layout, error) {
	switch name {
	case "", "bands":
		return EdgeBands(opts.WaterFraction), nil
	case "checkerboard":
		return Checkerboard(opts.CheckerBlock), nil
	case "lakes":
		return Lakes(opts.NoiseSeed, opts.NoiseScale, opts.WaterFraction), nil
	case "land":
		return AllLand, nil
	case "water":
		return AllWater, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", name)
	}
}
