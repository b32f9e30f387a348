package physics

import (
	"math"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Fate reports what a particle invocation did with its slot
type Fate uint8

const (
	FateSkipped   Fate = iota // Index beyond configured count, no slot touched
	FateInert                 // Dead on input, copied through unchanged
	FateAlive                 // Integrated and still alive
	FateCollision             // Killed this tick by entering a body
	FateBounds                // Killed this tick by leaving the world
)

// SymplecticEuler performs v' = v + a*dt; p' = p + v'*dt
// Position uses the updated velocity
func SymplecticEuler(pos, vel, acc vmath.Vec3F, dt float64) (vmath.Vec3F, vmath.Vec3F) {
	vel = vmath.V3FAdd(vel, vmath.V3FScale(acc, dt))
	pos = vmath.V3FAdd(pos, vmath.V3FScale(vel, dt))
	return pos, vel
}

// StepParticle computes the next state of particle i from the in snapshot and writes out[i]
// bodies is the post-orbital-pass body snapshot, read only
// Writes nothing but out[i], safe to run concurrently for distinct i
func StepParticle(
	i int,
	in, out []component.Particle,
	bodies []component.CelestialBody,
	p *component.SimParams,
) Fate {
	if i < 0 || i >= p.NumParticles || i >= len(in) || i >= len(out) {
		return FateSkipped
	}

	cur := in[i]
	if !cur.Alive {
		out[i] = cur
		return FateInert
	}

	acc := GravityAccel(cur.Position, bodies, p.Gravity, p.Softening)

	swarm := cur.Kind == component.ParticleSwarm
	if swarm {
		// Attenuated gravity plus thruster-like steering
		steer := SwarmForce(i, cur.Position, cur.Velocity, in, p)
		acc = vmath.V3FAdd(
			vmath.V3FScale(acc, p.SwarmGravityWeight),
			vmath.V3FScale(steer, 1.0/math.Max(cur.Mass, parameter.SwarmMinMass)),
		)
	}

	vel := vmath.V3FAdd(cur.Velocity, vmath.V3FScale(acc, p.Dt))
	if swarm {
		vel = vmath.V3FClampMagnitude(vel, p.MaxSpeed)
	}
	vel = vmath.V3FDamp(vel, p.Damping)
	pos := vmath.V3FAdd(cur.Position, vmath.V3FScale(vel, p.Dt))

	cur.Position = pos
	cur.Velocity = vel

	fate := FateAlive
	if hitsBody(pos, bodies) {
		cur.Alive = false
		fate = FateCollision
	}
	if vmath.V3FMag(pos) > parameter.WorldBoundsRadius {
		cur.Alive = false
		if fate == FateAlive {
			fate = FateBounds
		}
	}

	cur.TrailTimer += p.Dt

	if swarm {
		cur.Color = SpeedColor(vmath.V3FMag(vel), p.MaxSpeed)
	}

	out[i] = cur
	return fate
}

// hitsBody reports whether pos lies strictly inside CollisionRadiusScale*radius of any body
func hitsBody(pos vmath.Vec3F, bodies []component.CelestialBody) bool {
	for j := range bodies {
		limit := parameter.CollisionRadiusScale * bodies[j].Radius
		if vmath.V3FDist(pos, bodies[j].Position) < limit {
			return true
		}
	}
	return false
}
