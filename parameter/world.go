package parameter

import "math"

// Lifecycle limits
const (
	// Particles farther than this from the origin are despawned
	WorldBoundsRadius = 100.0
	// Particles closer than scale*radius to a body center are absorbed
	CollisionRadiusScale = 1.1
)

// Body-to-body gravity, decoupled from the tunable particle constant
const (
	OrbitalGravityFloat   = 4 * math.Pi * math.Pi
	OrbitalSofteningFloat = 0.01
)

// Trail history
const (
	TrailLength    = 512
	TrailDimFactor = 0.5
)
