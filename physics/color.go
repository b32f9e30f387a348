package physics

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// Speed ramp stops: slow -> mid -> fast
var (
	rampSlow = colorful.Color{R: 0.1, G: 0.3, B: 1.0}
	rampMid  = colorful.Color{R: 0.2, G: 0.9, B: 1.0}
	rampFast = colorful.Color{R: 1.0, G: 1.0, B: 1.0}
)

// Alpha range across the ramp
const (
	rampAlphaMin = 0.5
	rampAlphaMax = 1.0
)

// SpeedColor maps speed/maxSpeed to blue -> cyan -> white, alpha rises with speed
func SpeedColor(speed, maxSpeed float64) component.Color {
	t := 0.0
	if maxSpeed > 0 {
		t = vmath.Clamp(speed/maxSpeed, 0, 1)
	}

	var c colorful.Color
	if t < 0.5 {
		c = rampSlow.BlendRgb(rampMid, t*2)
	} else {
		c = rampMid.BlendRgb(rampFast, (t-0.5)*2)
	}

	return component.Color{
		R: c.R,
		G: c.G,
		B: c.B,
		A: vmath.Lerp(rampAlphaMin, rampAlphaMax, t),
	}
}
