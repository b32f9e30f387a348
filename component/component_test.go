package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorScale(t *testing.T) {
	c := Color{R: 0.8, G: 0.4, B: 0.2, A: 1.0}.Scale(0.5)
	assert.Equal(t, Color{R: 0.4, G: 0.2, B: 0.1, A: 0.5}, c)
}

func TestParticleKind_String(t *testing.T) {
	assert.Equal(t, "free", ParticleFree.String())
	assert.Equal(t, "swarm", ParticleSwarm.String())
	assert.Equal(t, "unknown", ParticleKind(9).String())
}

func TestParticle_IsSwarm(t *testing.T) {
	p := Particle{Kind: ParticleSwarm}
	assert.True(t, p.IsSwarm())
	p.Kind = ParticleFree
	assert.False(t, p.IsSwarm())
}
