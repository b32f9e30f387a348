// Package trail keeps a fixed-length position history per body
//
// Each body owns one ring of Length samples. A push overwrites the oldest
// sample, so the chronological view after a push equals the previous view
// shifted left by one with the new sample appended. Rings are disjoint, so
// pushes for different bodies may run concurrently.
package trail

import (
	"github.com/lixenwraith/orbit-swarm/component"
)

// ring is one body's history: storage[head] is the oldest sample
type ring struct {
	head    int
	storage []component.TrailVertex
}

// Buffer holds one ring per body
type Buffer struct {
	length int
	rings  []ring
}

// New creates a buffer for bodies rings of length samples each, zero filled
func New(bodies, length int) *Buffer {
	if length < 1 {
		length = 1
	}
	b := &Buffer{
		length: length,
		rings:  make([]ring, bodies),
	}
	// Single backing array keeps the segments contiguous like the flat layout
	backing := make([]component.TrailVertex, bodies*length)
	for i := range b.rings {
		b.rings[i].storage = backing[i*length : (i+1)*length : (i+1)*length]
	}
	return b
}

// Bodies returns the number of rings
func (b *Buffer) Bodies() int {
	return len(b.rings)
}

// Length returns samples per ring
func (b *Buffer) Length() int {
	return b.length
}

// Push discards the oldest sample of body and appends v, out-of-range bodies are ignored
func (b *Buffer) Push(body int, v component.TrailVertex) {
	if body < 0 || body >= len(b.rings) {
		return
	}
	r := &b.rings[body]
	r.storage[r.head] = v
	r.head++
	if r.head == b.length {
		r.head = 0
	}
}

// Fill sets every sample of body to v, used to seed a fresh trail at the body position
func (b *Buffer) Fill(body int, v component.TrailVertex) {
	if body < 0 || body >= len(b.rings) {
		return
	}
	r := &b.rings[body]
	for i := range r.storage {
		r.storage[i] = v
	}
	r.head = 0
}

// Latest returns the most recent sample of body
func (b *Buffer) Latest(body int) (component.TrailVertex, bool) {
	if body < 0 || body >= len(b.rings) {
		return component.TrailVertex{}, false
	}
	r := &b.rings[body]
	idx := r.head - 1
	if idx < 0 {
		idx = b.length - 1
	}
	return r.storage[idx], true
}

// Segment copies body's samples oldest-first into dst, growing it if needed
func (b *Buffer) Segment(body int, dst []component.TrailVertex) []component.TrailVertex {
	if body < 0 || body >= len(b.rings) {
		return dst[:0]
	}
	if cap(dst) < b.length {
		dst = make([]component.TrailVertex, b.length)
	}
	dst = dst[:b.length]

	r := &b.rings[body]
	n := copy(dst, r.storage[r.head:])
	copy(dst[n:], r.storage[:r.head])
	return dst
}

// Flatten writes all segments chronologically into the render layout: dst[body*Length + i]
func (b *Buffer) Flatten(dst []component.TrailVertex) []component.TrailVertex {
	total := len(b.rings) * b.length
	if cap(dst) < total {
		dst = make([]component.TrailVertex, total)
	}
	dst = dst[:total]
	for i := range b.rings {
		b.Segment(i, dst[i*b.length:(i+1)*b.length])
	}
	return dst
}

// Reset zeroes all rings
func (b *Buffer) Reset() {
	for i := range b.rings {
		r := &b.rings[i]
		clear(r.storage)
		r.head = 0
	}
}
