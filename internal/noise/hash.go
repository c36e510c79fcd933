package noise

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Hash holds five independent pseudo-random values in [0, 0.999).
type Hash struct {
	A, B, C, D, E float32
}

func newHash(rng *rand.Rand) Hash {
	return Hash{
		A: rng.Float32() * 0.999,
		B: rng.Float32() * 0.999,
		C: rng.Float32() * 0.999,
		D: rng.Float32() * 0.999,
		E: rng.Float32() * 0.999,
	}
}

// HashGrid is a size×size table of hashes covering world space at a fixed
// scale, repeating beyond its bounds.
type HashGrid struct {
	size   int
	scale  float32
	values []Hash
}

// NewHashGrid fills a grid deterministically from seed.
func NewHashGrid(seed int64, size int, scale float32) *HashGrid {
	if size < 1 {
		size = 1
	}
	rng := rand.New(rand.NewSource(seed))
	g := &HashGrid{size: size, scale: scale, values: make([]Hash, size*size)}
	for i := range g.values {
		g.values[i] = newHash(rng)
	}
	return g
}

// Sample returns the hash for the hash-space cell containing position.
func (g *HashGrid) Sample(position mgl32.Vec3) Hash {
	x := int(position.X()*g.scale) % g.size
	if x < 0 {
		x += g.size
	}
	z := int(position.Z()*g.scale) % g.size
	if z < 0 {
		z += g.size
	}
	return g.values[x+z*g.size]
}
