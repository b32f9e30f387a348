package component

import (
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// SimParams is the per-tick parameter block shared by both kernels
// Immutable for the duration of a tick, replaced wholesale between ticks
type SimParams struct {
	Dt float64

	// Particle-facing gravitational constant, bodies use a fixed constant
	Gravity float64

	NumParticles int
	NumBodies    int

	// Boids
	SeparationRadius float64
	AlignmentRadius  float64
	CohesionRadius   float64
	SeparationWeight float64
	AlignmentWeight  float64
	CohesionWeight   float64
	MaxSpeed         float64
	MaxForce         float64

	// Steering target for swarm particles
	Target       vmath.Vec3F
	TargetActive bool

	Softening          float64
	Damping            float64
	SwarmGravityWeight float64

	// Elapsed simulated time, consumed by the render stage only
	Time float64
}
