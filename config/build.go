package config

import (
	"fmt"
	"log"

	"github.com/lixenwraith/orbit-swarm/engine"
	"github.com/lixenwraith/orbit-swarm/spawn"
	"github.com/lixenwraith/orbit-swarm/status"
)

// Scene is a ready-to-step simulation built from a scenario
type Scene struct {
	Sim     *engine.Simulation
	Ctrl    *engine.Controller
	Spawner *spawn.Spawner
}

// Build allocates the simulation, applies the spawn batches and sets up a controller
// reg may be nil
func (cfg *Config) Build(reg *status.Registry) (*Scene, error) {
	sim, err := engine.NewSimulation(cfg.Bodies(), engine.Options{
		Capacity:    cfg.Sim.Particles,
		Workers:     cfg.Sim.Workers,
		TrailLength: cfg.Sim.TrailLength,
		Registry:    reg,
	})
	if err != nil {
		return nil, fmt.Errorf("create simulation: %w", err)
	}

	spawner := spawn.New(sim, uint64(cfg.Sim.Seed))
	placed := cfg.ApplySpawns(spawner)
	log.Printf("config: scene with %d bodies, %d/%d particles spawned", sim.BodyCount(), placed, sim.Capacity())

	ctrl := engine.NewController(cfg.Params())
	ctrl.SetTimeScale(cfg.Sim.TimeScale)
	ctrl.SetCounts(sim.Capacity(), sim.BodyCount())

	return &Scene{Sim: sim, Ctrl: ctrl, Spawner: spawner}, nil
}
