package wire

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/parameter"
	"github.com/lixenwraith/orbit-swarm/trail"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

func word(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestParticle_FieldOffsets(t *testing.T) {
	p := component.Particle{
		Position:   vmath.Vec3F{X: 1, Y: 2, Z: 3},
		Velocity:   vmath.Vec3F{X: -1, Y: -2, Z: -3},
		Mass:       0.1,
		Kind:       component.ParticleSwarm,
		Color:      component.Color{R: 0.4, G: 0.7, B: 1, A: 0.9},
		Radius:     0.008,
		TrailTimer: 2.5,
		Alive:      true,
	}
	b := AppendParticles(nil, []component.Particle{p})
	require.Len(t, b, ParticleBytes)

	assert.Equal(t, float32(3), word(b, 2))
	assert.Equal(t, float32(0.1), word(b, 3))
	assert.Equal(t, float32(-1), word(b, 4))
	assert.Equal(t, float32(1), word(b, 7), "kind")
	assert.Equal(t, float32(0.9), word(b, 11))
	assert.Equal(t, float32(0.008), word(b, 12))
	assert.Equal(t, float32(0), word(b, 13), "planet")
	assert.Equal(t, float32(2.5), word(b, 14))
	assert.Equal(t, float32(1), word(b, 15), "alive")
}

func TestParticle_DecodePreservesState(t *testing.T) {
	in := []component.Particle{
		{Position: vmath.Vec3F{X: 0.5}, Mass: 0.05, Radius: 0.006, Alive: true},
		{Position: vmath.Vec3F{Z: -4}, Velocity: vmath.Vec3F{Y: 0.25}, Mass: 0.1, Kind: component.ParticleSwarm, Planet: true},
	}
	out, err := DecodeParticles(nil, AppendParticles(nil, in))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.True(t, out[0].Alive)
	assert.Equal(t, component.ParticleFree, out[0].Kind)
	assert.False(t, out[1].Alive)
	assert.True(t, out[1].IsSwarm())
	assert.True(t, out[1].Planet)
	// float32 precision
	assert.InDelta(t, 0.05, out[0].Mass, 1e-8)
	assert.InDelta(t, 0.006, out[0].Radius, 1e-9)
	assert.Equal(t, in[1].Position, out[1].Position)
}

func TestBody_FieldOffsets(t *testing.T) {
	b := component.CelestialBody{
		Name:         "earth",
		Position:     vmath.Vec3F{X: 1},
		Velocity:     vmath.Vec3F{Z: 6.25},
		Mass:         3e-6,
		Radius:       0.01,
		Color:        component.Color{R: 0.2, G: 0.5, B: 1, A: 1},
		OrbitalSpeed: 6.25,
	}
	buf := AppendBodies(nil, []component.CelestialBody{b, {Star: true, Mass: 1, Radius: 0.05}})
	require.Len(t, buf, 2*BodyBytes)

	assert.Equal(t, float32(3e-6), word(buf, 3))
	assert.Equal(t, float32(6.25), word(buf, 6))
	assert.Equal(t, float32(0.01), word(buf, 7), "radius in velocity.w")
	assert.Equal(t, float32(0), word(buf, 12), "star flag")
	assert.Equal(t, float32(6.25), word(buf, 13))
	assert.Equal(t, float32(1), word(buf, 16+12), "second body is a star")

	out, err := DecodeBodies(nil, buf)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Empty(t, out[0].Name)
	assert.False(t, out[0].Star)
	assert.True(t, out[1].Star)
	assert.InDelta(t, b.Radius, out[0].Radius, 1e-9)
}

func TestParams_Layout(t *testing.T) {
	p := parameter.DefaultSimParams()
	p.NumParticles = 65536
	p.NumBodies = 9
	p.Target = vmath.Vec3F{X: 1, Y: -1, Z: 0.5}
	p.TargetActive = true
	p.Time = 12.5

	b := AppendParams(nil, p)
	require.Len(t, b, ParamsBytes)

	// Counts are integers, not float bits
	assert.Equal(t, uint32(65536), binary.LittleEndian.Uint32(b[8:]))
	assert.Equal(t, uint32(9), binary.LittleEndian.Uint32(b[12:]))
	assert.Equal(t, float32(0.016), word(b, 0))
	assert.Equal(t, float32(-1), word(b, 13))
	assert.Equal(t, float32(1), word(b, 15))
	assert.Equal(t, float32(12.5), word(b, 19))

	got, err := DecodeParams(b)
	require.NoError(t, err)
	assert.Equal(t, 65536, got.NumParticles)
	assert.True(t, got.TargetActive)
	assert.Equal(t, p.Target, got.Target)
	assert.InDelta(t, p.Gravity, got.Gravity, 1e-5)

	_, err = DecodeParams(b[:ParamsBytes-4])
	assert.Error(t, err)
}

func TestParams_NegativeCountsClamp(t *testing.T) {
	w := PackParams(component.SimParams{NumParticles: -5, NumBodies: -1})
	assert.Zero(t, w[2])
	assert.Zero(t, w[3])
}

func TestTrails_BodyMajorChronological(t *testing.T) {
	tb := trail.New(2, 4)
	for i := 1; i <= 6; i++ {
		tb.Push(0, component.TrailVertex{Position: vmath.Vec3F{X: float64(i)}})
	}
	tb.Fill(1, component.TrailVertex{Position: vmath.Vec3F{Y: 7}, Color: component.Color{A: 0.5}})

	buf, scratch := AppendTrails(nil, tb, nil)
	require.Len(t, buf, 8*TrailBytes)
	assert.Len(t, scratch, 8)

	// Body 0 oldest first: 3 4 5 6, w padding is zero
	for i := 0; i < 4; i++ {
		assert.Equal(t, float32(i+3), word(buf, i*8))
		assert.Equal(t, float32(0), word(buf, i*8+3))
	}
	assert.Equal(t, float32(7), word(buf, 4*8+1))
	assert.Equal(t, float32(0.5), word(buf, 4*8+7))

	out, err := DecodeTrails(nil, buf)
	require.NoError(t, err)
	assert.Equal(t, tb.Flatten(nil), out)
}

func TestDecode_RejectsPartialRecords(t *testing.T) {
	_, err := DecodeParticles(nil, make([]byte, ParticleBytes+1))
	assert.Error(t, err)
	_, err = DecodeBodies(nil, make([]byte, 10))
	assert.Error(t, err)
	_, err = DecodeTrails(nil, make([]byte, TrailBytes-4))
	assert.Error(t, err)

	out, err := DecodeParticles(nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, out)
}
