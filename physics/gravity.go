package physics

import (
	"math"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// GravityAccel returns net acceleration at pos from all bodies
// g: gravitational constant
// softening: length added in quadrature to distance, prevents singularity at r -> 0
// Returns acceleration (force/mass of the probe), not force
func GravityAccel(pos vmath.Vec3F, bodies []component.CelestialBody, g, softening float64) vmath.Vec3F {
	return GravityAccelExcept(pos, bodies, -1, g, softening)
}

// GravityAccelExcept is GravityAccel with bodies[skip] excluded, used for body-on-body gravity
func GravityAccelExcept(pos vmath.Vec3F, bodies []component.CelestialBody, skip int, g, softening float64) vmath.Vec3F {
	softSq := softening * softening
	var acc vmath.Vec3F

	for i := range bodies {
		if i == skip {
			continue
		}
		b := &bodies[i]

		delta := vmath.V3FSub(b.Position, pos)
		distSq := vmath.V3FMagSq(delta) + softSq
		// Only reachable with zero softening and coincident points
		if distSq == 0 {
			continue
		}

		// a = G*M*delta / (r^2 + eps^2)^1.5
		invDist3 := 1.0 / (distSq * math.Sqrt(distSq))
		s := g * b.Mass * invDist3
		acc.X += delta.X * s
		acc.Y += delta.Y * s
		acc.Z += delta.Z * s
	}

	return acc
}
