package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pthm-cable/habitat/world"
)

// ErrUnknownSpecies is returned for a registry name with no species.
var ErrUnknownSpecies = errors.New("unknown species")

// RegistryEntry maps a species to its chance of claiming a cell at populate.
type RegistryEntry struct {
	Species     world.SpeciesID
	Probability float64
}

// Registry resolves the configured species list, preserving its order.
func (c *Config) Registry() ([]RegistryEntry, error) {
	out := make([]RegistryEntry, 0, len(c.Species))
	seen := make(map[world.SpeciesID]bool, len(c.Species))
	for i, sc := range c.Species {
		name := strings.ToLower(strings.TrimSpace(sc.Name))
		id, ok := world.SpeciesByName(name)
		if !ok {
			if s := suggestSpecies(name); s != "" {
				return nil, fmt.Errorf("species[%d] %q: %w (did you mean %q?)", i, sc.Name, ErrUnknownSpecies, s)
			}
			return nil, fmt.Errorf("species[%d] %q: %w", i, sc.Name, ErrUnknownSpecies)
		}
		if seen[id] {
			return nil, fmt.Errorf("species[%d] %q: listed more than once", i, sc.Name)
		}
		if sc.CreationProbability < 0 || sc.CreationProbability > 1 {
			return nil, fmt.Errorf("species[%d] %q: creation probability %v outside [0,1]", i, sc.Name, sc.CreationProbability)
		}
		seen[id] = true
		out = append(out, RegistryEntry{Species: id, Probability: sc.CreationProbability})
	}
	return out, nil
}

// suggestSpecies returns the closest species name within an edit distance
// scaled to the name length, or "".
func suggestSpecies(name string) string {
	if name == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, cand := range world.SpeciesNames() {
		dist := levenshtein.ComputeDistance(name, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
