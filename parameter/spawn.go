package parameter

import (
	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Particle templates
const (
	SwarmParticleMass   = 0.1
	SwarmParticleRadius = 0.008
	FreeParticleMass    = 0.1
	FreeParticleRadius  = 0.006
	BurstParticleMass   = 0.05
)

var (
	SwarmParticleColor = component.Color{R: 0.4, G: 0.7, B: 1.0, A: 0.9}
	FreeParticleColor  = component.Color{R: 1.0, G: 0.8, B: 0.3, A: 0.8}
)

// Burst spawn spread
var (
	BurstOffsetExtent   = vmath.Vec3F{X: 0.1, Y: 0.1, Z: 0.1}
	BurstVelocityExtent = vmath.Vec3F{X: 0.5, Y: 0.5, Z: 0.5}
)

// Swarm formation spread (flattened toward the ecliptic)
var (
	SwarmOffsetExtent   = vmath.Vec3F{X: 0.15, Y: 0.05, Z: 0.15}
	SwarmVelocityExtent = vmath.Vec3F{X: 0.3, Y: 0.15, Z: 0.3}
)

// Orbital swarm jitter
const (
	OrbitalSwarmAngleJitter  = 0.1
	OrbitalSwarmRadiusJitter = 0.02
	OrbitalSwarmHeightJitter = 0.01
	// Fraction of circular speed, particles spiral in
	OrbitalSwarmSpeedFactor = 0.3
)
