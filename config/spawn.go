package config

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/lixenwraith/orbit-swarm/spawn"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Spawn batch kinds
const (
	SpawnBurst   = "burst"
	SpawnSwarm   = "swarm"
	SpawnOrbital = "orbital"
)

// SpawnConfig is one [spawn "name"] subsection, applied once at startup
type SpawnConfig struct {
	// Required
	Kind  string
	Count int

	// burst: particle mode, default swarm
	Mode string
	// burst, swarm: center
	X, Y, Z float64
	// orbital: body name and ring radius
	Body   string
	Radius float64

	Name string
	mode spawn.Mode
}

func (sp *SpawnConfig) CheckInit(name string, bodies map[string]*BodyConfig) error {
	sp.Kind = strings.ToLower(strings.TrimSpace(sp.Kind))

	if sp.Count <= 0 {
		return fmt.Errorf("Need to specify a positive Count for Spawn '%s'", name)
	}

	switch sp.Kind {
	case SpawnBurst:
		sp.mode = spawn.ModeSwarm
		if sp.Mode != "" {
			m, err := spawn.ParseMode(sp.Mode)
			if err != nil {
				return fmt.Errorf("Mode of Spawn '%s': %w", name, err)
			}
			sp.mode = m
		}
	case SpawnSwarm:
	case SpawnOrbital:
		if _, ok := bodies[sp.Body]; !ok {
			return fmt.Errorf("Spawn '%s' orbits unknown Body '%s'", name, sp.Body)
		} else if sp.Radius <= 0 {
			return fmt.Errorf("Need to specify a positive Radius for orbital Spawn '%s'", name)
		}
	default:
		return fmt.Errorf(
			"Kind of Spawn '%s' must be one of [burst | swarm | orbital]. '%s' is not recognized.",
			name, sp.Kind,
		)
	}

	sp.Name = name
	return nil
}

func (sp *SpawnConfig) center() vmath.Vec3F {
	return vmath.Vec3F{X: sp.X, Y: sp.Y, Z: sp.Z}
}

// ApplySpawns runs every spawn batch in name order and returns the particles placed
func (cfg *Config) ApplySpawns(s *spawn.Spawner) int {
	names := make([]string, 0, len(cfg.Spawn))
	for name := range cfg.Spawn {
		names = append(names, name)
	}
	sort.Strings(names)

	s.SetGravity(cfg.Sim.Gravity)

	total := 0
	for _, name := range names {
		sp := cfg.Spawn[name]
		placed := 0
		switch sp.Kind {
		case SpawnBurst:
			prev := s.Mode()
			s.SetMode(sp.mode)
			placed = s.Burst(sp.center(), sp.Count)
			s.SetMode(prev)
		case SpawnSwarm:
			placed = s.Swarm(sp.center(), sp.Count)
		case SpawnOrbital:
			idx, _ := cfg.BodyIndex(sp.Body)
			placed = s.OrbitalSwarm(idx, sp.Count, sp.Radius)
		}
		if placed < sp.Count {
			log.Printf("config: spawn %q placed %d of %d, buffer full", name, placed, sp.Count)
		}
		total += placed
	}
	return total
}
