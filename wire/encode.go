package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/trail"
)

var le = binary.LittleEndian

func appendVec4(dst []byte, v mgl32.Vec4) []byte {
	for _, f := range v {
		dst = le.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

func readVec4(src []byte) mgl32.Vec4 {
	var v mgl32.Vec4
	for i := range v {
		v[i] = math.Float32frombits(le.Uint32(src[i*4:]))
	}
	return v
}

func checkLen(what string, n, size int) error {
	if n%size != 0 {
		return fmt.Errorf("%s buffer of %d bytes is not a multiple of %d", what, n, size)
	}
	return nil
}

// AppendParticles encodes ps little-endian onto dst
func AppendParticles(dst []byte, ps []component.Particle) []byte {
	for i := range ps {
		for _, v := range PackParticle(ps[i]) {
			dst = appendVec4(dst, v)
		}
	}
	return dst
}

// DecodeParticles appends the particles in src to dst
func DecodeParticles(dst []component.Particle, src []byte) ([]component.Particle, error) {
	if err := checkLen("particle", len(src), ParticleBytes); err != nil {
		return dst, err
	}
	for off := 0; off < len(src); off += ParticleBytes {
		var r Particle
		for j := range r {
			r[j] = readVec4(src[off+j*16:])
		}
		dst = append(dst, UnpackParticle(r))
	}
	return dst, nil
}

func AppendBodies(dst []byte, bodies []component.CelestialBody) []byte {
	for i := range bodies {
		for _, v := range PackBody(bodies[i]) {
			dst = appendVec4(dst, v)
		}
	}
	return dst
}

func DecodeBodies(dst []component.CelestialBody, src []byte) ([]component.CelestialBody, error) {
	if err := checkLen("body", len(src), BodyBytes); err != nil {
		return dst, err
	}
	for off := 0; off < len(src); off += BodyBytes {
		var r Body
		for j := range r {
			r[j] = readVec4(src[off+j*16:])
		}
		dst = append(dst, UnpackBody(r))
	}
	return dst, nil
}

// AppendTrails encodes every segment chronologically, body-major
// scratch is reused for the flattened view and returned for the next call
func AppendTrails(dst []byte, b *trail.Buffer, scratch []component.TrailVertex) ([]byte, []component.TrailVertex) {
	scratch = b.Flatten(scratch)
	for i := range scratch {
		for _, v := range PackTrailVertex(scratch[i]) {
			dst = appendVec4(dst, v)
		}
	}
	return dst, scratch
}

func DecodeTrails(dst []component.TrailVertex, src []byte) ([]component.TrailVertex, error) {
	if err := checkLen("trail", len(src), TrailBytes); err != nil {
		return dst, err
	}
	for off := 0; off < len(src); off += TrailBytes {
		r := TrailVertex{readVec4(src[off:]), readVec4(src[off+16:])}
		dst = append(dst, UnpackTrailVertex(r))
	}
	return dst, nil
}

func AppendParams(dst []byte, p component.SimParams) []byte {
	for _, w := range PackParams(p) {
		dst = le.AppendUint32(dst, w)
	}
	return dst
}

func DecodeParams(src []byte) (component.SimParams, error) {
	if len(src) != ParamsBytes {
		return component.SimParams{}, fmt.Errorf("params buffer of %d bytes, want %d", len(src), ParamsBytes)
	}
	var w Params
	for i := range w {
		w[i] = le.Uint32(src[i*4:])
	}
	return UnpackParams(w), nil
}
