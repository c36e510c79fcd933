package metrics

import "github.com/go-gl/mathgl/mgl32"

// SampleNoise reads the noise texture at the XZ position scaled by NoiseScale.
func (m *Metrics) SampleNoise(position mgl32.Vec3) mgl32.Vec4 {
	return m.noise.SampleBilinear(position.X()*m.NoiseScale, position.Z()*m.NoiseScale)
}

// Perturb jitters X and Z. It depends only on the position, so cells that
// compute a shared vertex independently get the same result.
func (m *Metrics) Perturb(position mgl32.Vec3) mgl32.Vec3 {
	sample := m.SampleNoise(position)
	position[0] += (sample.X()*2 - 1) * m.CellPerturbStrength
	position[2] += (sample.Z()*2 - 1) * m.CellPerturbStrength
	return position
}
