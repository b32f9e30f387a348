package engine

import (
	"math"
	"sync"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Controller owns the host-side parameter block
// Each tick it hands the engine an immutable copy via Next
type Controller struct {
	mu sync.Mutex

	base      component.SimParams
	paused    bool
	timeScale float64
	elapsed   float64
}

// NewController creates a controller around base, Dt and Time in base are ignored
func NewController(base component.SimParams) *Controller {
	return &Controller{
		base:      base,
		timeScale: parameter.TimeScaleDefault,
	}
}

// Next produces the parameter block for one tick
// dt is zero while paused, otherwise frameDt capped at FrameDtMaxFloat and scaled by the time scale
func (c *Controller) Next(frameDt float64) component.SimParams {
	c.mu.Lock()
	defer c.mu.Unlock()

	dt := 0.0
	if !c.paused && frameDt > 0 {
		dt = math.Min(frameDt, parameter.FrameDtMaxFloat) * c.timeScale
	}
	c.elapsed += dt

	p := c.base
	p.Dt = dt
	p.Time = c.elapsed
	return p
}

// Params returns a copy of the base block
func (c *Controller) Params() component.SimParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.base
	p.Time = c.elapsed
	return p
}

// SetCounts sets the active particle and body ranges
func (c *Controller) SetCounts(particles, bodies int) {
	c.mu.Lock()
	c.base.NumParticles = particles
	c.base.NumBodies = bodies
	c.mu.Unlock()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *Controller) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// TogglePause flips the pause state and returns the new state
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetTimeScale clamps s to [TimeScaleMinFloat, TimeScaleMaxFloat], non-positive or NaN input is ignored
func (c *Controller) SetTimeScale(s float64) {
	if !(s > 0) {
		return
	}
	c.mu.Lock()
	c.timeScale = vmath.Clamp(s, parameter.TimeScaleMinFloat, parameter.TimeScaleMaxFloat)
	c.mu.Unlock()
}

// SpeedUp multiplies the time scale by TimeScaleStepFloat and returns the result
func (c *Controller) SpeedUp() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeScale = math.Min(c.timeScale*parameter.TimeScaleStepFloat, parameter.TimeScaleMaxFloat)
	return c.timeScale
}

// SlowDown divides the time scale by TimeScaleStepFloat and returns the result
func (c *Controller) SlowDown() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeScale = math.Max(c.timeScale/parameter.TimeScaleStepFloat, parameter.TimeScaleMinFloat)
	return c.timeScale
}

func (c *Controller) TimeScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeScale
}

// Elapsed returns accumulated simulated time
func (c *Controller) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// SetTarget activates the swarm steering target
func (c *Controller) SetTarget(v vmath.Vec3F) {
	c.mu.Lock()
	c.base.Target = v
	c.base.TargetActive = true
	c.mu.Unlock()
}

func (c *Controller) ClearTarget() {
	c.mu.Lock()
	c.base.TargetActive = false
	c.mu.Unlock()
}

// SetGravity sets the particle-facing gravitational constant
// Body motion is unaffected
func (c *Controller) SetGravity(g float64) {
	c.mu.Lock()
	c.base.Gravity = g
	c.mu.Unlock()
}

// AdjustWeights adds deltas to the boid weights, each floored at zero
func (c *Controller) AdjustWeights(separation, alignment, cohesion float64) {
	c.mu.Lock()
	c.base.SeparationWeight = math.Max(0, c.base.SeparationWeight+separation)
	c.base.AlignmentWeight = math.Max(0, c.base.AlignmentWeight+alignment)
	c.base.CohesionWeight = math.Max(0, c.base.CohesionWeight+cohesion)
	c.mu.Unlock()
}

// AdjustSwarmGravity adds delta to the swarm gravity weight, clamped to [0, SwarmGravityWeightMax]
func (c *Controller) AdjustSwarmGravity(delta float64) {
	c.mu.Lock()
	c.base.SwarmGravityWeight = vmath.Clamp(c.base.SwarmGravityWeight+delta, 0, parameter.SwarmGravityWeightMax)
	c.mu.Unlock()
}
