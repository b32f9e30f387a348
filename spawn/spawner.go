// Package spawn fills dead particle slots from templates
//
// Spawns happen between ticks under the simulation lock. A spawn that finds
// no dead slot is dropped, so batch calls report how many particles were
// actually placed.
package spawn

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/engine"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Mode selects the template for single spawns and bursts
type Mode int

const (
	ModeSwarm Mode = iota
	ModeFree
	ModeBurst
)

func (m Mode) String() string {
	switch m {
	case ModeSwarm:
		return "swarm"
	case ModeFree:
		return "free"
	case ModeBurst:
		return "burst"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by Mode.String, case-insensitive
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swarm":
		return ModeSwarm, nil
	case "free":
		return ModeFree, nil
	case "burst":
		return ModeBurst, nil
	}
	return 0, fmt.Errorf("unknown spawn mode %q", s)
}

// Template returns the particle a mode produces at pos with vel
func (m Mode) Template(pos, vel vmath.Vec3F) component.Particle {
	p := component.Particle{
		Position: pos,
		Velocity: vel,
		Alive:    true,
	}
	switch m {
	case ModeSwarm:
		p.Kind = component.ParticleSwarm
		p.Mass = parameter.SwarmParticleMass
		p.Radius = parameter.SwarmParticleRadius
		p.Color = parameter.SwarmParticleColor
	case ModeBurst:
		p.Kind = component.ParticleFree
		p.Mass = parameter.BurstParticleMass
		p.Radius = parameter.FreeParticleRadius
		p.Color = parameter.FreeParticleColor
	default:
		p.Kind = component.ParticleFree
		p.Mass = parameter.FreeParticleMass
		p.Radius = parameter.FreeParticleRadius
		p.Color = parameter.FreeParticleColor
	}
	return p
}

// Spawner places particles into a simulation's dead slots
// Not safe for concurrent use
type Spawner struct {
	sim     *engine.Simulation
	rng     *vmath.FastRand
	mode    Mode
	gravity float64
}

// New creates a spawner in swarm mode using the default particle gravity for orbital swarms
func New(sim *engine.Simulation, seed uint64) *Spawner {
	return &Spawner{
		sim:     sim,
		rng:     vmath.NewFastRand(seed),
		mode:    ModeSwarm,
		gravity: parameter.GravityFloat,
	}
}

func (s *Spawner) Mode() Mode {
	return s.mode
}

func (s *Spawner) SetMode(m Mode) {
	s.mode = m
}

// SetGravity sets the constant used to size orbital swarm velocities
func (s *Spawner) SetGravity(g float64) {
	s.gravity = g
}

// batch walks dead slots in index order, emit is called until it returns false or slots run out
func (s *Spawner) batch(n int, emit func(k int) component.Particle) int {
	if n <= 0 {
		return 0
	}
	placed := 0
	s.sim.WithParticles(func(ps []component.Particle) {
		slot := 0
		for placed < n {
			for slot < len(ps) && ps[slot].Alive {
				slot++
			}
			if slot == len(ps) {
				return
			}
			ps[slot] = emit(placed)
			placed++
			slot++
		}
	})
	return placed
}

// Spawn places one particle using the current mode, returns false when full
func (s *Spawner) Spawn(pos, vel vmath.Vec3F) bool {
	return s.batch(1, func(int) component.Particle {
		return s.mode.Template(pos, vel)
	}) == 1
}

// Burst scatters n particles of the current mode around center
func (s *Spawner) Burst(center vmath.Vec3F, n int) int {
	placed := s.batch(n, func(int) component.Particle {
		pos := vmath.V3FAdd(center, s.rng.V3FRange(parameter.BurstOffsetExtent))
		vel := s.rng.V3FRange(parameter.BurstVelocityExtent)
		return s.mode.Template(pos, vel)
	})
	log.Printf("spawn: burst %s %d/%d at (%.3f, %.3f, %.3f)", s.mode, placed, n, center.X, center.Y, center.Z)
	return placed
}

// Swarm places n swarm particles in a flattened cloud around center, regardless of mode
func (s *Spawner) Swarm(center vmath.Vec3F, n int) int {
	placed := s.batch(n, func(int) component.Particle {
		pos := vmath.V3FAdd(center, s.rng.V3FRange(parameter.SwarmOffsetExtent))
		vel := s.rng.V3FRange(parameter.SwarmVelocityExtent)
		return ModeSwarm.Template(pos, vel)
	})
	log.Printf("spawn: swarm %d/%d at (%.3f, %.3f, %.3f)", placed, n, center.X, center.Y, center.Z)
	return placed
}

// OrbitalSwarm rings body with n swarm particles at radius in its xz plane
// Tangential speed is a fraction of circular speed so the ring spirals inward
// Particles inherit the body velocity
func (s *Spawner) OrbitalSwarm(body, n int, radius float64) int {
	var (
		b  component.CelestialBody
		ok bool
	)
	s.sim.WithBodies(func(bodies []component.CelestialBody) {
		if body >= 0 && body < len(bodies) {
			b, ok = bodies[body], true
		}
	})
	if !ok || n <= 0 {
		return 0
	}

	placed := s.batch(n, func(k int) component.Particle {
		angle := 2*math.Pi*float64(k)/float64(n) +
			s.rng.Range(-parameter.OrbitalSwarmAngleJitter, parameter.OrbitalSwarmAngleJitter)
		r := radius + s.rng.Range(-parameter.OrbitalSwarmRadiusJitter, parameter.OrbitalSwarmRadiusJitter)
		sin, cos := math.Sincos(angle)

		offset := vmath.Vec3F{
			X: r * cos,
			Y: s.rng.Range(-parameter.OrbitalSwarmHeightJitter, parameter.OrbitalSwarmHeightJitter),
			Z: r * sin,
		}
		speed := 0.0
		if r > 0 {
			speed = math.Sqrt(s.gravity*b.Mass/r) * parameter.OrbitalSwarmSpeedFactor
		}
		tangent := vmath.Vec3F{X: -sin, Z: cos}

		pos := vmath.V3FAdd(b.Position, offset)
		vel := vmath.V3FAdd(b.Velocity, vmath.V3FScale(tangent, speed))
		return ModeSwarm.Template(pos, vel)
	})
	log.Printf("spawn: orbital swarm %d/%d around %q r=%.3f", placed, n, b.Name, radius)
	return placed
}

// Clear kills every particle and returns how many were alive
func (s *Spawner) Clear() int {
	killed := 0
	s.sim.WithParticles(func(ps []component.Particle) {
		for i := range ps {
			if ps[i].Alive {
				ps[i].Alive = false
				killed++
			}
		}
	})
	log.Printf("spawn: cleared %d particles", killed)
	return killed
}

// Alive counts live particles in the current generation
func (s *Spawner) Alive() int {
	alive := 0
	s.sim.WithParticles(func(ps []component.Particle) {
		for i := range ps {
			if ps[i].Alive {
				alive++
			}
		}
	})
	return alive
}
