// Package config loads scenario files
//
// Files use git-config syntax:
//
//	[sim]
//	particles = 4096
//	dt = 0.016
//
//	[swarm]
//	cohesion-weight = 1.2
//
//	[body "sun"]
//	order = 0
//	mass = 1
//	radius = 0.05
//	star
//	color = "#ffe680"
//
//	[body "earth"]
//	order = 1
//	x = 1
//	mass = 3e-6
//	radius = 0.01
//	auto-orbit
//
//	[spawn "cloud"]
//	kind = swarm
//	count = 500
//	x = 1.5
//
// Hex colors must be quoted since '#' starts a comment.
// Unset values keep the compiled-in defaults from package parameter.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/gcfg.v1"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/physics"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// SimConfig is the [sim] section
type SimConfig struct {
	Dt        float64
	Gravity   float64
	Softening float64
	Damping   float64
	TimeScale float64 `gcfg:"time-scale"`

	// Particle buffer capacity
	Particles   int
	Workers     int
	TrailLength int `gcfg:"trail-length"`

	// Headless run length and spawn RNG seed
	Ticks int
	Seed  int64
}

// SwarmConfig is the [swarm] section
type SwarmConfig struct {
	SeparationRadius float64 `gcfg:"separation-radius"`
	AlignmentRadius  float64 `gcfg:"alignment-radius"`
	CohesionRadius   float64 `gcfg:"cohesion-radius"`
	SeparationWeight float64 `gcfg:"separation-weight"`
	AlignmentWeight  float64 `gcfg:"alignment-weight"`
	CohesionWeight   float64 `gcfg:"cohesion-weight"`
	MaxSpeed         float64 `gcfg:"max-speed"`
	MaxForce         float64 `gcfg:"max-force"`
	GravityWeight    float64 `gcfg:"gravity-weight"`

	Target  bool
	TargetX float64 `gcfg:"target-x"`
	TargetY float64 `gcfg:"target-y"`
	TargetZ float64 `gcfg:"target-z"`
}

// Config is a complete scenario
type Config struct {
	Sim   SimConfig
	Swarm SwarmConfig
	Body  map[string]*BodyConfig
	Spawn map[string]*SpawnConfig
}

// Default returns a scenario with compiled-in parameters and no bodies
func Default() *Config {
	p := parameter.DefaultSimParams()
	return &Config{
		Sim: SimConfig{
			Dt:          p.Dt,
			Gravity:     p.Gravity,
			Softening:   p.Softening,
			Damping:     p.Damping,
			TimeScale:   parameter.TimeScaleDefault,
			Particles:   parameter.MaxParticles,
			TrailLength: parameter.TrailLength,
			Ticks:       1000,
			Seed:        1,
		},
		Swarm: SwarmConfig{
			SeparationRadius: p.SeparationRadius,
			AlignmentRadius:  p.AlignmentRadius,
			CohesionRadius:   p.CohesionRadius,
			SeparationWeight: p.SeparationWeight,
			AlignmentWeight:  p.AlignmentWeight,
			CohesionWeight:   p.CohesionWeight,
			MaxSpeed:         p.MaxSpeed,
			MaxForce:         p.MaxForce,
			GravityWeight:    p.SwarmGravityWeight,
		},
	}
}

// Load reads and validates a scenario file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadFileInto(cfg, path); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := cfg.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads and validates scenario text over the defaults
func Parse(text string) (*Config, error) {
	cfg := Default()
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := cfg.CheckInit(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CheckInit validates every section and fills derived fields
func (cfg *Config) CheckInit() error {
	if err := cfg.Sim.CheckInit(); err != nil {
		return err
	}
	if err := cfg.Swarm.CheckInit(); err != nil {
		return err
	}

	if len(cfg.Body) > parameter.MaxBodies {
		return fmt.Errorf("%d bodies configured, at most %d are supported", len(cfg.Body), parameter.MaxBodies)
	}

	orders := make(map[int]string, len(cfg.Body))
	for name, body := range cfg.Body {
		if err := body.CheckInit(name); err != nil {
			return err
		}
		if other, ok := orders[body.Order]; ok {
			return fmt.Errorf("Body '%s' and Body '%s' share order %d", other, name, body.Order)
		}
		orders[body.Order] = name
	}

	for name, sp := range cfg.Spawn {
		if err := sp.CheckInit(name, cfg.Body); err != nil {
			return err
		}
	}

	return cfg.resolveOrbits()
}

func (sim *SimConfig) CheckInit() error {
	if sim.Dt < 0 {
		return fmt.Errorf("Dt of [sim] must be non-negative, but is %g", sim.Dt)
	} else if sim.Softening < 0 {
		return fmt.Errorf("Softening of [sim] must be non-negative, but is %g", sim.Softening)
	} else if sim.Damping < 0 || sim.Damping > 1 {
		return fmt.Errorf("Damping of [sim] must be in range [0, 1], but is %g", sim.Damping)
	} else if sim.TimeScale < parameter.TimeScaleMinFloat || sim.TimeScale > parameter.TimeScaleMaxFloat {
		return fmt.Errorf(
			"TimeScale of [sim] must be in range [%g, %g], but is %g",
			parameter.TimeScaleMinFloat, parameter.TimeScaleMaxFloat, sim.TimeScale,
		)
	} else if sim.Particles < 0 || sim.Particles > parameter.MaxParticles {
		return fmt.Errorf(
			"Particles of [sim] must be in range [0, %d], but is %d",
			parameter.MaxParticles, sim.Particles,
		)
	} else if sim.TrailLength < 1 {
		return fmt.Errorf("TrailLength of [sim] must be positive, but is %d", sim.TrailLength)
	} else if sim.Ticks < 0 {
		return fmt.Errorf("Ticks of [sim] must be non-negative, but is %d", sim.Ticks)
	}
	return nil
}

func (sw *SwarmConfig) CheckInit() error {
	if sw.SeparationRadius < 0 || sw.AlignmentRadius < 0 || sw.CohesionRadius < 0 {
		return fmt.Errorf("Neighbor radii of [swarm] must be non-negative")
	} else if sw.SeparationWeight < 0 || sw.AlignmentWeight < 0 || sw.CohesionWeight < 0 {
		return fmt.Errorf("Weights of [swarm] must be non-negative")
	} else if sw.MaxSpeed <= 0 {
		return fmt.Errorf("MaxSpeed of [swarm] must be positive, but is %g", sw.MaxSpeed)
	} else if sw.MaxForce <= 0 {
		return fmt.Errorf("MaxForce of [swarm] must be positive, but is %g", sw.MaxForce)
	} else if sw.GravityWeight < 0 || sw.GravityWeight > parameter.SwarmGravityWeightMax {
		return fmt.Errorf(
			"GravityWeight of [swarm] must be in range [0, %g], but is %g",
			parameter.SwarmGravityWeightMax, sw.GravityWeight,
		)
	}
	return nil
}

// Params returns the per-tick parameter block the scenario starts from
func (cfg *Config) Params() component.SimParams {
	p := parameter.DefaultSimParams()
	p.Dt = cfg.Sim.Dt
	p.Gravity = cfg.Sim.Gravity
	p.Softening = cfg.Sim.Softening
	p.Damping = cfg.Sim.Damping
	p.NumParticles = cfg.Sim.Particles
	p.NumBodies = len(cfg.Body)

	sw := cfg.Swarm
	p.SeparationRadius = sw.SeparationRadius
	p.AlignmentRadius = sw.AlignmentRadius
	p.CohesionRadius = sw.CohesionRadius
	p.SeparationWeight = sw.SeparationWeight
	p.AlignmentWeight = sw.AlignmentWeight
	p.CohesionWeight = sw.CohesionWeight
	p.MaxSpeed = sw.MaxSpeed
	p.MaxForce = sw.MaxForce
	p.SwarmGravityWeight = sw.GravityWeight
	p.Target = vmath.Vec3F{X: sw.TargetX, Y: sw.TargetY, Z: sw.TargetZ}
	p.TargetActive = sw.Target
	return p
}

// Bodies returns the configured bodies in buffer order
func (cfg *Config) Bodies() []component.CelestialBody {
	ordered := cfg.orderedBodies()
	out := make([]component.CelestialBody, len(ordered))
	for i, b := range ordered {
		out[i] = b.Body()
	}
	return out
}

// BodyIndex returns the buffer index of the named body
func (cfg *Config) BodyIndex(name string) (int, bool) {
	for i, b := range cfg.orderedBodies() {
		if strings.EqualFold(b.Name, name) {
			return i, true
		}
	}
	return 0, false
}

func (cfg *Config) orderedBodies() []*BodyConfig {
	ordered := make([]*BodyConfig, 0, len(cfg.Body))
	for _, b := range cfg.Body {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })
	return ordered
}

// resolveOrbits sets circular velocities for auto-orbit bodies around the heaviest star
func (cfg *Config) resolveOrbits() error {
	var central *BodyConfig
	for _, b := range cfg.orderedBodies() {
		if b.Star && (central == nil || b.Mass > central.Mass) {
			central = b
		}
	}

	orbit := physics.DefaultOrbital()
	for _, b := range cfg.orderedBodies() {
		if !b.AutoOrbit || b.Star {
			continue
		}
		if central == nil {
			return fmt.Errorf("Body '%s' sets auto-orbit but no star is configured", b.Name)
		}
		center := central.position()
		pos := b.position()
		if vmath.V3FDist(center, pos) == 0 {
			return fmt.Errorf("Body '%s' sets auto-orbit but sits on star '%s'", b.Name, central.Name)
		}
		vel := physics.CircularVelocity(center, pos, vmath.Vec3F{Y: 1}, orbit.Gravity, central.Mass, orbit.Softening)
		b.VX, b.VY, b.VZ = vel.X, vel.Y, vel.Z
		b.OrbitalSpeed = vmath.V3FMag(vel)
	}
	return nil
}

// parseColor reads #rrggbb, the leading '#' is optional
func parseColor(s string, alpha float64) (component.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return component.Color{}, err
	}
	return component.Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}
