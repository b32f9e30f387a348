package physics

import (
	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Steer converts a desired direction into a steering force
// force = normalize(desired)*maxSpeed - vel, clamped to maxForce
// Zero desired direction is not normalized (yields -vel before clamp)
func Steer(desired, vel vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	want := vmath.V3FScale(vmath.V3FNormalize(desired), maxSpeed)
	return vmath.V3FClampMagnitude(vmath.V3FSub(want, vel), maxForce)
}

// Seek steers from pos toward target
func Seek(pos, vel, target vmath.Vec3F, maxSpeed, maxForce float64) vmath.Vec3F {
	return Steer(vmath.V3FSub(target, pos), vel, maxSpeed, maxForce)
}

// SwarmForce returns the weighted boids steering force on particle self
// Only live swarm particles within each radius contribute, self excluded by index
// O(NumParticles) per call
func SwarmForce(self int, pos, vel vmath.Vec3F, particles []component.Particle, p *component.SimParams) vmath.Vec3F {
	n := p.NumParticles
	if n > len(particles) {
		n = len(particles)
	}

	sepSq := p.SeparationRadius * p.SeparationRadius
	aliSq := p.AlignmentRadius * p.AlignmentRadius
	cohSq := p.CohesionRadius * p.CohesionRadius

	var sep, ali, coh vmath.Vec3F
	var sepN, aliN, cohN int

	for j := 0; j < n; j++ {
		if j == self {
			continue
		}
		other := &particles[j]
		if !other.Alive || other.Kind != component.ParticleSwarm {
			continue
		}

		away := vmath.V3FSub(pos, other.Position)
		distSq := vmath.V3FMagSq(away)

		// Unit vector away scaled by 1/dist: away/dist^2
		if distSq < sepSq && distSq > 0 {
			sep = vmath.V3FAdd(sep, vmath.V3FScale(away, 1.0/distSq))
			sepN++
		}
		if distSq < aliSq {
			ali = vmath.V3FAdd(ali, other.Velocity)
			aliN++
		}
		if distSq < cohSq {
			coh = vmath.V3FAdd(coh, other.Position)
			cohN++
		}
	}

	var force vmath.Vec3F

	if sepN > 0 {
		avg := vmath.V3FScale(sep, 1.0/float64(sepN))
		steer := Steer(avg, vel, p.MaxSpeed, p.MaxForce)
		force = vmath.V3FAdd(force, vmath.V3FScale(steer, p.SeparationWeight))
	}
	if aliN > 0 {
		avg := vmath.V3FScale(ali, 1.0/float64(aliN))
		steer := Steer(avg, vel, p.MaxSpeed, p.MaxForce)
		force = vmath.V3FAdd(force, vmath.V3FScale(steer, p.AlignmentWeight))
	}
	if cohN > 0 {
		center := vmath.V3FScale(coh, 1.0/float64(cohN))
		steer := Seek(pos, vel, center, p.MaxSpeed, p.MaxForce)
		force = vmath.V3FAdd(force, vmath.V3FScale(steer, p.CohesionWeight))
	}

	if p.TargetActive {
		steer := Seek(pos, vel, p.Target, p.MaxSpeed, p.MaxForce*parameter.SeekForceScaleFloat)
		force = vmath.V3FAdd(force, vmath.V3FScale(steer, parameter.SeekWeightFloat))
	}

	return force
}
