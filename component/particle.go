package component

import (
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// ParticleKind discriminates gravity-only particles from flocking ones
type ParticleKind uint8

const (
	ParticleFree  ParticleKind = iota // Gravity only
	ParticleSwarm                     // Gravity (attenuated) + boids steering + speed clamp
)

func (k ParticleKind) String() string {
	switch k {
	case ParticleFree:
		return "free"
	case ParticleSwarm:
		return "swarm"
	default:
		return "unknown"
	}
}

// Particle is one slot of the particle buffer
// Slots are never removed, dead slots are reused by the spawner
type Particle struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Mass     float64
	Kind     ParticleKind
	Color    Color

	Radius     float64
	Planet     bool
	TrailTimer float64 // Age in simulated seconds since spawn
	Alive      bool
}

// IsSwarm reports whether the particle takes part in flocking
func (p *Particle) IsSwarm() bool {
	return p.Kind == ParticleSwarm
}
