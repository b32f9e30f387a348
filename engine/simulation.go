package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/physics"
	"github.com/lixenwraith/orbit-swarm/status"
	"github.com/lixenwraith/orbit-swarm/trail"
)

// Options configures a Simulation, zero values select defaults
type Options struct {
	// Capacity is the particle buffer size, default parameter.MaxParticles
	Capacity int
	// Workers for the dispatcher, default GOMAXPROCS
	Workers int
	// Orbital constants for the body pass, default physics.DefaultOrbital
	Orbital *physics.OrbitalConstants
	// TrailLength per body, default parameter.TrailLength
	TrailLength int
	// Registry receives per-tick telemetry, a private registry is created when nil
	Registry *status.Registry
}

// Simulation owns the double-buffered particle and body state
// Each Step reads generation cur and writes generation 1-cur, then swaps
type Simulation struct {
	mu sync.Mutex

	particles [2][]component.Particle
	bodies    [2][]component.CelestialBody
	cur       int

	initial  []component.CelestialBody
	trails   *trail.Buffer
	fates    []physics.Fate
	orbit    physics.OrbitalConstants
	dispatch *Dispatcher

	tick uint64

	reg   *status.Registry
	stats tickStats
}

// NewSimulation allocates buffers for the given bodies and a fixed particle capacity
// All particle slots start dead
func NewSimulation(bodies []component.CelestialBody, opts Options) (*Simulation, error) {
	if len(bodies) > parameter.MaxBodies {
		return nil, fmt.Errorf("%d bodies, max %d: %w", len(bodies), parameter.MaxBodies, ErrCapacity)
	}

	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = parameter.MaxParticles
	}
	if capacity > parameter.MaxParticles {
		return nil, fmt.Errorf("%d particles, max %d: %w", capacity, parameter.MaxParticles, ErrCapacity)
	}

	trailLen := opts.TrailLength
	if trailLen <= 0 {
		trailLen = parameter.TrailLength
	}

	orbit := physics.DefaultOrbital()
	if opts.Orbital != nil {
		orbit = *opts.Orbital
	}

	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}

	s := &Simulation{
		initial:  append([]component.CelestialBody(nil), bodies...),
		trails:   trail.New(len(bodies), trailLen),
		fates:    make([]physics.Fate, capacity),
		orbit:    orbit,
		dispatch: NewDispatcher(opts.Workers),
		reg:      reg,
	}
	for g := range s.particles {
		s.particles[g] = make([]component.Particle, capacity)
		s.bodies[g] = make([]component.CelestialBody, len(bodies))
	}
	s.stats.bind(reg)
	s.resetLocked()

	return s, nil
}

// Step advances one tick with params
// The orbital pass completes before the particle pass so particles see the new body positions
// Returns ErrStopped when ctx is done, in which case no state changes
func (s *Simulation) Step(ctx context.Context, params component.SimParams) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("tick %d: %w: %v", s.Tick(), ErrStopped, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if params.NumParticles < 0 || params.NumParticles > len(s.particles[0]) {
		return fmt.Errorf("num particles %d, capacity %d: %w", params.NumParticles, len(s.particles[0]), ErrCapacity)
	}
	if params.NumBodies < 0 || params.NumBodies > len(s.bodies[0]) {
		return fmt.Errorf("num bodies %d, allocated %d: %w", params.NumBodies, len(s.bodies[0]), ErrCapacity)
	}

	in, out := s.cur, 1-s.cur
	p := &params

	// Orbital pass
	bodiesIn, bodiesOut := s.bodies[in], s.bodies[out]
	s.dispatch.For(params.NumBodies, func(i int) {
		physics.StepBody(i, bodiesIn, bodiesOut, p, s.orbit, s.trails)
	})
	copy(bodiesOut[params.NumBodies:], bodiesIn[params.NumBodies:])

	// Particle pass against the post-orbital snapshot
	snapshot := bodiesOut[:params.NumBodies]
	partIn, partOut := s.particles[in], s.particles[out]
	fates := s.fates
	s.dispatch.For(params.NumParticles, func(i int) {
		fates[i] = physics.StepParticle(i, partIn, partOut, snapshot, p)
	})
	copy(partOut[params.NumParticles:], partIn[params.NumParticles:])

	s.cur = out
	s.tick++
	s.stats.record(s.tick, fates[:params.NumParticles], partOut[:params.NumParticles], params.Time)

	return nil
}

// Tick returns the number of committed ticks
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Capacity returns the particle buffer size
func (s *Simulation) Capacity() int {
	return len(s.particles[0])
}

// BodyCount returns the number of allocated bodies
func (s *Simulation) BodyCount() int {
	return len(s.bodies[0])
}

// Particles returns the current generation
// The slice is valid until the next Step and must not be modified
func (s *Simulation) Particles() []component.Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.particles[s.cur]
}

// Bodies returns the current body generation, same validity as Particles
func (s *Simulation) Bodies() []component.CelestialBody {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[s.cur]
}

// Trails returns the trail buffer, written by the orbital pass only
func (s *Simulation) Trails() *trail.Buffer {
	return s.trails
}

// Registry returns the telemetry registry
func (s *Simulation) Registry() *status.Registry {
	return s.reg
}

// WithParticles grants exclusive write access to the current particle generation between ticks
func (s *Simulation) WithParticles(fn func(particles []component.Particle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.particles[s.cur])
}

// WithBodies grants exclusive write access to the current body generation between ticks
func (s *Simulation) WithBodies(fn func(bodies []component.CelestialBody)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.bodies[s.cur])
}

// Reset kills all particles, restores the initial bodies and reseeds trails
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	log.Printf("simulation: reset at tick %d, %d bodies, capacity %d", s.tick, len(s.initial), len(s.particles[0]))
}

func (s *Simulation) resetLocked() {
	for g := range s.particles {
		clear(s.particles[g])
		copy(s.bodies[g], s.initial)
	}
	s.trails.Reset()
	for i, b := range s.initial {
		if b.Star {
			continue
		}
		s.trails.Fill(i, component.TrailVertex{
			Position: b.Position,
			Color:    b.Color.Scale(parameter.TrailDimFactor),
		})
	}
	s.cur = 0
}

// Snapshot is a copy of the visible state, safe to read while the simulation keeps stepping
type Snapshot struct {
	Tick      uint64
	Particles []component.Particle
	Bodies    []component.CelestialBody
	// Trails in the flat render layout, body-major, oldest first
	Trails      []component.TrailVertex
	TrailLength int
}

// Snapshot copies the current generation into dst, reusing its slices
func (s *Simulation) Snapshot(dst *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst.Tick = s.tick
	dst.Particles = append(dst.Particles[:0], s.particles[s.cur]...)
	dst.Bodies = append(dst.Bodies[:0], s.bodies[s.cur]...)
	dst.Trails = s.trails.Flatten(dst.Trails)
	dst.TrailLength = s.trails.Length()
}
