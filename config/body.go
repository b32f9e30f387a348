package config

import (
	"fmt"

	"github.com/lixenwraith/orbit-swarm/component"
	"github.com/lixenwraith/orbit-swarm/vmath"
)

// BodyConfig is one [body "name"] subsection
type BodyConfig struct {
	// Required
	Mass, Radius float64

	// Optional
	Order        int
	X, Y, Z      float64
	VX, VY, VZ   float64
	Star         bool
	Color        string
	Alpha        float64
	AutoOrbit    bool    `gcfg:"auto-orbit"`
	OrbitalSpeed float64 `gcfg:"orbital-speed"`

	Name  string
	color component.Color
}

func (body *BodyConfig) CheckInit(name string) error {
	if body.Mass <= 0 {
		return fmt.Errorf("Need to specify a positive Mass for Body '%s'", name)
	} else if body.Radius <= 0 {
		return fmt.Errorf("Need to specify a positive Radius for Body '%s'", name)
	} else if body.Alpha < 0 || body.Alpha > 1 {
		return fmt.Errorf("Alpha of Body '%s' must be in range [0, 1], but is %g", name, body.Alpha)
	} else if body.Order < 0 {
		return fmt.Errorf("Order of Body '%s' must be non-negative, but is %d", name, body.Order)
	}

	body.Name = name
	if body.Alpha == 0 {
		body.Alpha = 1
	}

	body.color = component.Color{R: 1, G: 1, B: 1, A: body.Alpha}
	if body.Color != "" {
		c, err := parseColor(body.Color, body.Alpha)
		if err != nil {
			return fmt.Errorf("Color '%s' of Body '%s' is not #rrggbb: %w", body.Color, name, err)
		}
		body.color = c
	}

	if body.OrbitalSpeed == 0 && !body.Star {
		body.OrbitalSpeed = vmath.V3FMag(body.velocity())
	}

	return nil
}

func (body *BodyConfig) position() vmath.Vec3F {
	return vmath.Vec3F{X: body.X, Y: body.Y, Z: body.Z}
}

func (body *BodyConfig) velocity() vmath.Vec3F {
	return vmath.Vec3F{X: body.VX, Y: body.VY, Z: body.VZ}
}

// Body converts the section into a simulation body, CheckInit must have run
func (body *BodyConfig) Body() component.CelestialBody {
	return component.CelestialBody{
		Name:         body.Name,
		Position:     body.position(),
		Velocity:     body.velocity(),
		Mass:         body.Mass,
		Radius:       body.Radius,
		Color:        body.color,
		Star:         body.Star,
		OrbitalSpeed: body.OrbitalSpeed,
	}
}
