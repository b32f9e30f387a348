package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

func TestController_NextScalesAndAccumulates(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())

	p := c.Next(0.01)
	assert.InDelta(t, 0.01, p.Dt, 1e-12)
	assert.InDelta(t, 0.01, p.Time, 1e-12)

	c.SetTimeScale(4)
	p = c.Next(0.01)
	assert.InDelta(t, 0.04, p.Dt, 1e-12)
	assert.InDelta(t, 0.05, p.Time, 1e-12)
	assert.InDelta(t, 0.05, c.Elapsed(), 1e-12)
}

func TestController_PauseFreezesTime(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())
	c.Next(0.02)

	c.Pause()
	assert.True(t, c.Paused())
	p := c.Next(0.02)
	assert.Zero(t, p.Dt)
	assert.InDelta(t, 0.02, p.Time, 1e-12)

	assert.False(t, c.TogglePause())
	p = c.Next(0.02)
	assert.InDelta(t, 0.02, p.Dt, 1e-12)
}

func TestController_TimeScaleBounds(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())
	c.SetTimeScale(1e6)
	assert.Equal(t, parameter.TimeScaleMaxFloat, c.TimeScale())

	c.SetTimeScale(0)
	c.SetTimeScale(-2)
	c.SetTimeScale(math.NaN())
	assert.Equal(t, parameter.TimeScaleMaxFloat, c.TimeScale())

	c.SetTimeScale(1e-6)
	assert.Equal(t, parameter.TimeScaleMinFloat, c.TimeScale())
}

func TestController_SpeedSteps(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())
	assert.InDelta(t, 1.5, c.SpeedUp(), 1e-12)
	assert.InDelta(t, 1.0, c.SlowDown(), 1e-12)

	for i := 0; i < 20; i++ {
		c.SpeedUp()
	}
	assert.Equal(t, parameter.TimeScaleMaxFloat, c.TimeScale())
	for i := 0; i < 40; i++ {
		c.SlowDown()
	}
	assert.Equal(t, parameter.TimeScaleMinFloat, c.TimeScale())
}

func TestController_CapsFrameDt(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())
	c.SetTimeScale(2)
	p := c.Next(1.0)
	assert.InDelta(t, 2*parameter.FrameDtMaxFloat, p.Dt, 1e-12)
}

func TestController_Target(t *testing.T) {
	c := NewController(parameter.DefaultSimParams())
	target := vmath.Vec3F{X: 1, Y: 2, Z: 3}

	c.SetTarget(target)
	p := c.Next(0.01)
	assert.True(t, p.TargetActive)
	assert.Equal(t, target, p.Target)

	c.ClearTarget()
	assert.False(t, c.Next(0.01).TargetActive)
}

func TestController_Tuning(t *testing.T) {
	base := parameter.DefaultSimParams()
	c := NewController(base)

	c.AdjustWeights(-10, 0.5, -0.2)
	p := c.Params()
	assert.Zero(t, p.SeparationWeight)
	assert.InDelta(t, base.AlignmentWeight+0.5, p.AlignmentWeight, 1e-12)
	assert.InDelta(t, base.CohesionWeight-0.2, p.CohesionWeight, 1e-12)

	c.AdjustSwarmGravity(10)
	assert.Equal(t, parameter.SwarmGravityWeightMax, c.Params().SwarmGravityWeight)
	c.AdjustSwarmGravity(-10)
	assert.Zero(t, c.Params().SwarmGravityWeight)

	c.SetGravity(1)
	c.SetCounts(100, 3)
	p = c.Next(0.01)
	assert.Equal(t, 1.0, p.Gravity)
	assert.Equal(t, 100, p.NumParticles)
	assert.Equal(t, 3, p.NumBodies)
}
