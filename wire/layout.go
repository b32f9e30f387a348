// Package wire converts simulation state to the packed float32 layout used by GPU buffers
//
// Every record is a sequence of float4 vectors:
//
//	particle: position(xyz, mass) velocity(xyz, kind) color(rgba) data(radius, planet, trail timer, alive)
//	body:     position(xyz, mass) velocity(xyz, radius) color(rgba) data(star, orbital speed, 0, 0)
//	trail:    position(xyz, 0) color(rgba)
//
// Flags are 0 or 1. Parameters are 20 consecutive 32-bit words, the two
// counts as unsigned integers and everything else as float32.
package wire

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Record sizes
const (
	ParticleBytes = 4 * 16
	BodyBytes     = 4 * 16
	TrailBytes    = 2 * 16
	ParamsWords   = 20
	ParamsBytes   = ParamsWords * 4
)

// Particle is one packed particle record
type Particle [4]mgl32.Vec4

// Body is one packed body record
type Body [4]mgl32.Vec4

// TrailVertex is one packed trail sample
type TrailVertex [2]mgl32.Vec4

// Params is the packed parameter block
type Params [ParamsWords]uint32

func vec3(v vmath.Vec3F) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func unvec3(v mgl32.Vec4) vmath.Vec3F {
	return vmath.Vec3F{X: float64(v.X()), Y: float64(v.Y()), Z: float64(v.Z())}
}

func color4(c component.Color) mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func uncolor4(v mgl32.Vec4) component.Color {
	return component.Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])}
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// set reads a packed flag, anything above one half is true
func set(f float32) bool {
	return f > 0.5
}

func PackParticle(p component.Particle) Particle {
	kind := float32(0)
	if p.Kind == component.ParticleSwarm {
		kind = 1
	}
	return Particle{
		vec3(p.Position).Vec4(float32(p.Mass)),
		vec3(p.Velocity).Vec4(kind),
		color4(p.Color),
		{float32(p.Radius), flag(p.Planet), float32(p.TrailTimer), flag(p.Alive)},
	}
}

func UnpackParticle(r Particle) component.Particle {
	kind := component.ParticleFree
	if set(r[1].W()) {
		kind = component.ParticleSwarm
	}
	return component.Particle{
		Position:   unvec3(r[0]),
		Velocity:   unvec3(r[1]),
		Mass:       float64(r[0].W()),
		Kind:       kind,
		Color:      uncolor4(r[2]),
		Radius:     float64(r[3][0]),
		Planet:     set(r[3][1]),
		TrailTimer: float64(r[3][2]),
		Alive:      set(r[3][3]),
	}
}

// PackBody drops the name, it has no place in the GPU record
func PackBody(b component.CelestialBody) Body {
	return Body{
		vec3(b.Position).Vec4(float32(b.Mass)),
		vec3(b.Velocity).Vec4(float32(b.Radius)),
		color4(b.Color),
		{flag(b.Star), float32(b.OrbitalSpeed), 0, 0},
	}
}

func UnpackBody(r Body) component.CelestialBody {
	return component.CelestialBody{
		Position:     unvec3(r[0]),
		Velocity:     unvec3(r[1]),
		Mass:         float64(r[0].W()),
		Radius:       float64(r[1].W()),
		Color:        uncolor4(r[2]),
		Star:         set(r[3][0]),
		OrbitalSpeed: float64(r[3][1]),
	}
}

func PackTrailVertex(v component.TrailVertex) TrailVertex {
	return TrailVertex{vec3(v.Position).Vec4(0), color4(v.Color)}
}

func UnpackTrailVertex(r TrailVertex) component.TrailVertex {
	return component.TrailVertex{Position: unvec3(r[0]), Color: uncolor4(r[1])}
}

func f32(v float64) uint32 {
	return math.Float32bits(float32(v))
}

func unf32(w uint32) float64 {
	return float64(math.Float32frombits(w))
}

// PackParams lays out p in the uniform order, negative counts clamp to zero
func PackParams(p component.SimParams) Params {
	count := func(n int) uint32 {
		if n < 0 {
			return 0
		}
		return uint32(n)
	}
	active := 0.0
	if p.TargetActive {
		active = 1
	}
	return Params{
		f32(p.Dt),
		f32(p.Gravity),
		count(p.NumParticles),
		count(p.NumBodies),
		f32(p.SeparationRadius),
		f32(p.AlignmentRadius),
		f32(p.CohesionRadius),
		f32(p.SeparationWeight),
		f32(p.AlignmentWeight),
		f32(p.CohesionWeight),
		f32(p.MaxSpeed),
		f32(p.MaxForce),
		f32(p.Target.X),
		f32(p.Target.Y),
		f32(p.Target.Z),
		f32(active),
		f32(p.Softening),
		f32(p.Damping),
		f32(p.SwarmGravityWeight),
		f32(p.Time),
	}
}

func UnpackParams(w Params) component.SimParams {
	return component.SimParams{
		Dt:                 unf32(w[0]),
		Gravity:            unf32(w[1]),
		NumParticles:       int(w[2]),
		NumBodies:          int(w[3]),
		SeparationRadius:   unf32(w[4]),
		AlignmentRadius:    unf32(w[5]),
		CohesionRadius:     unf32(w[6]),
		SeparationWeight:   unf32(w[7]),
		AlignmentWeight:    unf32(w[8]),
		CohesionWeight:     unf32(w[9]),
		MaxSpeed:           unf32(w[10]),
		MaxForce:           unf32(w[11]),
		Target:             vmath.Vec3F{X: unf32(w[12]), Y: unf32(w[13]), Z: unf32(w[14])},
		TargetActive:       set(float32(unf32(w[15]))),
		Softening:          unf32(w[16]),
		Damping:            unf32(w[17]),
		SwarmGravityWeight: unf32(w[18]),
		Time:               unf32(w[19]),
	}
}
