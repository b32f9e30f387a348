package parameter

import (
	"math"

	"github.com/lixenwraith/orbit-swarm/component"
)

// Simulation step defaults (AU, solar masses, years)
const (
	DtFloat           = 0.016
	GravityFloat      = 4 * math.Pi * math.Pi // AU^3 / (M_sun * yr^2)
	SofteningFloat    = 0.01
	DampingFloat      = 1.0 // 1 = undamped
	MaxParticles      = 65536
	MaxBodies         = 32
	TimeScaleDefault  = 1.0
	TimeScaleMinFloat = 0.1
	TimeScaleMaxFloat = 10.0
)

// Host controls
const (
	// Wall-clock frame time is capped before time scaling so a stall does not explode the step
	FrameDtMaxFloat      = 0.05
	TimeScaleStepFloat   = 1.5
	TuneWeightStepFloat  = 0.2
	TuneGravityStepFloat = 0.1
)

// Boids defaults
const (
	SeparationRadiusFloat   = 0.1
	AlignmentRadiusFloat    = 0.3
	CohesionRadiusFloat     = 0.5
	SeparationWeightFloat   = 1.8
	AlignmentWeightFloat    = 1.0
	CohesionWeightFloat     = 1.2
	SwarmMaxSpeedFloat      = 10.0
	SwarmMaxForceFloat      = 5.0
	SwarmGravityWeightFloat = 0.3
	SwarmGravityWeightMax   = 2.0
)

// Target seeking overrides cohesion: fixed weight, looser force clamp
const (
	SeekWeightFloat     = 1.5
	SeekForceScaleFloat = 2.0
)

// SwarmMinMass bounds the steering divisor for near-massless particles
const SwarmMinMass = 0.01

// DefaultSimParams returns the compiled-in parameter block with zero counts
func DefaultSimParams() component.SimParams {
	return component.SimParams{
		Dt:                 DtFloat,
		Gravity:            GravityFloat,
		SeparationRadius:   SeparationRadiusFloat,
		AlignmentRadius:    AlignmentRadiusFloat,
		CohesionRadius:     CohesionRadiusFloat,
		SeparationWeight:   SeparationWeightFloat,
		AlignmentWeight:    AlignmentWeightFloat,
		CohesionWeight:     CohesionWeightFloat,
		MaxSpeed:           SwarmMaxSpeedFloat,
		MaxForce:           SwarmMaxForceFloat,
		Softening:          SofteningFloat,
		Damping:            DampingFloat,
		SwarmGravityWeight: SwarmGravityWeightFloat,
	}
}
