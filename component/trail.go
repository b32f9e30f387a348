package component

import (
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// TrailVertex is one historical body position with its dimmed color
type TrailVertex struct {
	Position vmath.Vec3F
	Color    Color
}
