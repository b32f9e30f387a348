package physics

import (
	"math"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// OrbitalConstants are the body-to-body gravity settings, fixed for a run
// Independent of SimParams.Gravity so particle tuning never perturbs orbits
type OrbitalConstants struct {
	Gravity   float64
	Softening float64
}

// DefaultOrbital returns the compiled-in orbital constants
func DefaultOrbital() OrbitalConstants {
	return OrbitalConstants{
		Gravity:   parameter.OrbitalGravityFloat,
		Softening: parameter.OrbitalSofteningFloat,
	}
}

// TrailSink receives one trail sample per moving body per tick
type TrailSink interface {
	Push(body int, v component.TrailVertex)
}

// StepBody computes the next state of body i from the in snapshot and writes out[i]
// Star bodies are copied through; others integrate undamped under the fixed constants
// and append to their own trail segment, so concurrent calls for distinct i are safe
func StepBody(
	i int,
	in, out []component.CelestialBody,
	p *component.SimParams,
	orbit OrbitalConstants,
	trails TrailSink,
) bool {
	n := p.NumBodies
	if n > len(in) {
		n = len(in)
	}
	if i < 0 || i >= n || i >= len(out) {
		return false
	}

	b := in[i]
	if b.Star {
		out[i] = b
		return true
	}

	acc := GravityAccelExcept(b.Position, in[:n], i, orbit.Gravity, orbit.Softening)
	b.Position, b.Velocity = SymplecticEuler(b.Position, b.Velocity, acc, p.Dt)
	out[i] = b

	if trails != nil {
		trails.Push(i, component.TrailVertex{
			Position: b.Position,
			Color:    b.Color.Scale(parameter.TrailDimFactor),
		})
	}
	return true
}

// CircularSpeed returns the speed of a circular orbit of radius r around mass m
// under softened gravity: v^2 = G*m*r^2 / (r^2 + eps^2)^1.5
func CircularSpeed(g, m, r, softening float64) float64 {
	if r <= 0 {
		return 0
	}
	r2 := r * r
	d2 := r2 + softening*softening
	return math.Sqrt(g * m * r2 / (d2 * math.Sqrt(d2)))
}

// CircularVelocity returns the circular-orbit velocity for a body at pos around center
// Direction is radial x up, so +X with up +Y orbits toward +Z
func CircularVelocity(center, pos, up vmath.Vec3F, g, m, softening float64) vmath.Vec3F {
	radial := vmath.V3FSub(pos, center)
	r := vmath.V3FMag(radial)
	if r == 0 {
		return vmath.Vec3F{}
	}
	tangent := vmath.V3FNormalize(vmath.V3FCross(radial, up))
	return vmath.V3FScale(tangent, CircularSpeed(g, m, r, softening))
}
