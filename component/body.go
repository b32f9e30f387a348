package component

import (
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// CelestialBody is a massive body (star or planet)
// Count is fixed for the run, only the orbital pass mutates bodies
type CelestialBody struct {
	Name     string
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Mass     float64
	Radius   float64
	Color    Color

	// Star bodies are fixed points: no force, no motion, no trail
	Star bool
	// Initial circular orbit speed, informational
	OrbitalSpeed float64
}
