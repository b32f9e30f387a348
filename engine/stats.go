package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/physics"
	"github.com/lixenwraith/orbit-swarm/status"
)

// Telemetry keys written once per tick
const (
	StatTicks          = "sim.ticks"
	StatTime           = "sim.time"
	StatAlive          = "particles.alive"
	StatSwarm          = "particles.swarm"
	StatFree           = "particles.free"
	StatKillsCollision = "kills.collision"
	StatKillsBounds    = "kills.bounds"
	StatKillsTotal     = "kills.total"
)

// tickStats caches registry pointers so recording never touches the map
type tickStats struct {
	ticks          *atomic.Int64
	time           *status.AtomicFloat
	alive          *atomic.Int64
	swarm          *atomic.Int64
	free           *atomic.Int64
	killsCollision *atomic.Int64
	killsBounds    *atomic.Int64
	killsTotal     *atomic.Int64
}

func (t *tickStats) bind(reg *status.Registry) {
	t.ticks = reg.Ints.Get(StatTicks)
	t.time = reg.Floats.Get(StatTime)
	t.alive = reg.Ints.Get(StatAlive)
	t.swarm = reg.Ints.Get(StatSwarm)
	t.free = reg.Ints.Get(StatFree)
	t.killsCollision = reg.Ints.Get(StatKillsCollision)
	t.killsBounds = reg.Ints.Get(StatKillsBounds)
	t.killsTotal = reg.Ints.Get(StatKillsTotal)
}

// record publishes counts from the fates and output of the particle pass
// Kill counters are cumulative, population counters reflect the latest tick
func (t *tickStats) record(tick uint64, fates []physics.Fate, out []component.Particle, simTime float64) {
	var alive, swarm, collisions, bounds int64
	for i, f := range fates {
		switch f {
		case physics.FateAlive:
			alive++
			if out[i].Kind == component.ParticleSwarm {
				swarm++
			}
		case physics.FateCollision:
			collisions++
		case physics.FateBounds:
			bounds++
		}
	}

	t.ticks.Store(int64(tick))
	t.time.Store(simTime)
	t.alive.Store(alive)
	t.swarm.Store(swarm)
	t.free.Store(alive - swarm)
	t.killsCollision.Add(collisions)
	t.killsBounds.Add(bounds)
	t.killsTotal.Add(collisions + bounds)
}
