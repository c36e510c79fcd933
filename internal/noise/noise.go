// Package noise provides the perturbation noise texture and the per-world
// hash grid consumed by the triangulator. Both are immutable once built.
package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sampler returns four noise channels in [0,1] for texture coordinates u, v.
type Sampler interface {
	SampleBilinear(u, v float32) mgl32.Vec4
}

// fade is the 6t^5 - 15t^4 + 10t^3 smoothstep.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 is a SplitMix64 style integer hash, stable across runs for the same inputs.
func hash2(x int64, z int64, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

// latticeValue maps the lattice hash to [0,1]. Lattice coordinates wrap at
// period so the resulting field tiles.
func latticeValue(x int64, z int64, period int64, seed int64) float64 {
	x = ((x % period) + period) % period
	z = ((z % period) + period) % period
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func tileableValueNoise2D(x float64, z float64, period int64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fz := fade(z - z0)

	ix, iz := int64(x0), int64(z0)
	v00 := latticeValue(ix, iz, period, seed)
	v10 := latticeValue(ix+1, iz, period, seed)
	v01 := latticeValue(ix, iz+1, period, seed)
	v11 := latticeValue(ix+1, iz+1, period, seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz) // [0,1]
}

// tileableOctaveNoise2D sums octaves whose periods double with the frequency,
// so every octave tiles over the same [0,1) square.
func tileableOctaveNoise2D(u float64, v float64, basePeriod int64, seed int64, octaves int, persistence float64) float64 {
	amplitude := 1.0
	period := basePeriod
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		n := tileableValueNoise2D(u*float64(period), v*float64(period), period, seed+int64(i*131))
		sum += n * amplitude
		norm += amplitude
		amplitude *= persistence
		period *= 2
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

// Generate builds a size×size four channel tileable noise texture. Each
// channel uses its own seed offset.
func Generate(seed int64, size int) *Texture {
	if size < 1 {
		size = 1
	}
	t := &Texture{width: size, height: size, pix: make([]mgl32.Vec4, size*size)}
	const (
		basePeriod  = 8
		octaves     = 4
		persistence = 0.5
	)
	for y := 0; y < size; y++ {
		v := float64(y) / float64(size)
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size)
			var px mgl32.Vec4
			for c := 0; c < 4; c++ {
				px[c] = float32(tileableOctaveNoise2D(u, v, basePeriod, seed+int64(c)*7919, octaves, persistence))
			}
			t.pix[y*size+x] = px
		}
	}
	return t
}

type flat struct{}

func (flat) SampleBilinear(u, v float32) mgl32.Vec4 {
	return mgl32.Vec4{0.5, 0.5, 0.5, 0.5}
}

// Flat returns a sampler that yields 0.5 on every channel, which disables
// perturbation entirely.
func Flat() Sampler {
	return flat{}
}
