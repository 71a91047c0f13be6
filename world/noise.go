package world

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/habitat/rng"
)

// PerlinNoise generates coherent noise values.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	r := rng.New(seed)

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}
	return p
}

// Noise2D returns a noise value in roughly [-1, 1].
func (p *PerlinNoise) Noise2D(x, y float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	A := p.perm[X] + Y
	B := p.perm[X+1] + Y

	return lerp(v,
		lerp(u, grad2D(p.perm[A], x, y), grad2D(p.perm[B], x-1, y)),
		lerp(u, grad2D(p.perm[A+1], x, y-1), grad2D(p.perm[B+1], x-1, y-1)))
}

// Fractal sums octaves of noise, halving amplitude and doubling frequency
// each time. The result is normalized to roughly [-1, 1].
func (p *PerlinNoise) Fractal(x, y float64, octaves int) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := 0; i < max(octaves, 1); i++ {
		sum += amp * p.Noise2D(x*freq, y*freq)
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad2D(hash int, x, y float64) float64 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}

const lakeOctaves = 3

// Lakes places water where fractal noise is highest, so that fraction of
// the grid is water. The noise map is computed once per grid size.
func Lakes(seed int64, scale, fraction float64) Layout {
	if scale <= 0 {
		scale = 0.1
	}
	fraction = min(max(fraction, 0), 1)
	noise := NewPerlinNoise(seed)

	var (
		mu    sync.Mutex
		cache = make(map[[2]int][]bool)
	)
	build := func(depth, width int) []bool {
		values := make([]float64, depth*width)
		for row := 0; row < depth; row++ {
			for col := 0; col < width; col++ {
				values[row*width+col] = noise.Fractal((float64(col)+0.5)*scale, (float64(row)+0.5)*scale, lakeOctaves)
			}
		}
		water := make([]bool, len(values))
		if fraction == 0 || len(values) == 0 {
			return water
		}
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		threshold := stat.Quantile(1-fraction, stat.Empirical, sorted, nil)
		for i, v := range values {
			water[i] = fraction == 1 || v > threshold
		}
		return water
	}

	return func(row, col, depth, width int) bool {
		key := [2]int{depth, width}
		mu.Lock()
		water, ok := cache[key]
		if !ok {
			water = build(depth, width)
			cache[key] = water
		}
		mu.Unlock()
		return water[row*width+col]
	}
}
