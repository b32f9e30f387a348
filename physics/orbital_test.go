package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

type recordingSink struct {
	pushes map[int][]component.TrailVertex
}

func (r *recordingSink) Push(body int, v component.TrailVertex) {
	if r.pushes == nil {
		r.pushes = make(map[int][]component.TrailVertex)
	}
	r.pushes[body] = append(r.pushes[body], v)
}

func starAndPlanet() []component.CelestialBody {
	orbit := DefaultOrbital()
	return []component.CelestialBody{
		{Name: "star", Mass: 1000, Radius: 0.5, Star: true, Color: component.Color{R: 1, G: 1, B: 0.8, A: 1}},
		{
			Name:     "planet",
			Position: vmath.Vec3F{X: 10},
			Velocity: vmath.Vec3F{Y: CircularSpeed(orbit.Gravity, 1000, 10, orbit.Softening)},
			Mass:     1,
			Radius:   0.1,
			Color:    component.Color{R: 0.2, G: 0.4, B: 0.8, A: 1},
		},
	}
}

func stepBodies(bodies []component.CelestialBody, p *component.SimParams, orbit OrbitalConstants, sink TrailSink) []component.CelestialBody {
	out := make([]component.CelestialBody, len(bodies))
	for i := range bodies {
		StepBody(i, bodies, out, p, orbit, sink)
	}
	return out
}

func TestStepBody_StarImmobile(t *testing.T) {
	bodies := starAndPlanet()
	// Heavy planet must still not move the star
	bodies[1].Mass = 1e6
	p := parameter.DefaultSimParams()
	p.NumBodies = len(bodies)
	sink := &recordingSink{}

	star := bodies[0]
	for tick := 0; tick < 100; tick++ {
		bodies = stepBodies(bodies, &p, DefaultOrbital(), sink)
	}
	assert.Equal(t, star, bodies[0])
	assert.Empty(t, sink.pushes[0])
	assert.Len(t, sink.pushes[1], 100)
}

func TestStepBody_TrailSampleDimmed(t *testing.T) {
	bodies := starAndPlanet()
	p := parameter.DefaultSimParams()
	p.NumBodies = len(bodies)
	sink := &recordingSink{}

	out := stepBodies(bodies, &p, DefaultOrbital(), sink)
	require.Len(t, sink.pushes[1], 1)
	v := sink.pushes[1][0]
	assert.Equal(t, out[1].Position, v.Position)
	assert.Equal(t, bodies[1].Color.Scale(0.5), v.Color)
}

func TestStepBody_IgnoresParticleGravity(t *testing.T) {
	bodies := starAndPlanet()
	p := parameter.DefaultSimParams()
	p.NumBodies = len(bodies)

	q := p
	q.Gravity = p.Gravity * 50

	a, b := bodies, bodies
	for tick := 0; tick < 50; tick++ {
		a = stepBodies(a, &p, DefaultOrbital(), nil)
		b = stepBodies(b, &q, DefaultOrbital(), nil)
		require.Equal(t, a, b)
	}
}

func TestStepBody_OrbitCloses(t *testing.T) {
	bodies := starAndPlanet()
	start := bodies[1].Position
	orbit := DefaultOrbital()

	p := parameter.DefaultSimParams()
	p.NumBodies = len(bodies)
	p.Dt = 1e-4

	speed := vmath.V3FMag(bodies[1].Velocity)
	period := 2 * math.Pi * 10 / speed
	ticks := int(math.Round(period / p.Dt))

	for tick := 0; tick < ticks; tick++ {
		bodies = stepBodies(bodies, &p, orbit, nil)
	}

	assert.InDelta(t, 0.0, vmath.V3FDist(start, bodies[1].Position), 0.05)
	assert.InDelta(t, 10.0, vmath.V3FMag(bodies[1].Position), 0.05)
}

func TestStepBody_OutOfRange(t *testing.T) {
	bodies := starAndPlanet()
	p := parameter.DefaultSimParams()
	p.NumBodies = 1
	out := make([]component.CelestialBody, 2)

	assert.True(t, StepBody(0, bodies, out, &p, DefaultOrbital(), nil))
	assert.False(t, StepBody(1, bodies, out, &p, DefaultOrbital(), nil))
	assert.Equal(t, component.CelestialBody{}, out[1])
}

func TestCircularSpeed(t *testing.T) {
	// Unsoftened reduces to sqrt(GM/r)
	assert.InDelta(t, math.Sqrt(4.0), CircularSpeed(2, 8, 4, 0), 1e-12)
	assert.Equal(t, 0.0, CircularSpeed(1, 1, 0, 0.01))
}

func TestCircularVelocity_Direction(t *testing.T) {
	v := CircularVelocity(vmath.Vec3F{}, vmath.Vec3F{X: 1}, vmath.Vec3F{Y: 1}, 4*math.Pi*math.Pi, 1, 0)
	assert.InDelta(t, 2*math.Pi, v.Z, 1e-9)
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.Equal(t, vmath.Vec3F{}, CircularVelocity(vmath.Vec3F{}, vmath.Vec3F{}, vmath.Vec3F{Y: 1}, 1, 1, 0))
}
