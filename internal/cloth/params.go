package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Defaults matching a 40x40 cloth hanging from its two top corners.
const (
	DefaultSpringStiffness = 500.0
	DefaultBendStiffness   = 50.0
	DefaultSpringDamping   = 0.1
	DefaultAirDamping      = 0.01
	DefaultMass            = 1.0
	DefaultMaxStretch      = 1.10
	DefaultMaxCompress     = 0.90
	DefaultConstraintIters = 15
	DefaultWindStrength    = 2.0
	DefaultTimestep        = 1.0 / 60.0
)

// Params holds the live-tunable simulation parameters. Fields may be
// mutated freely between Update calls; no validation is performed, and
// out-of-range values degrade the simulation rather than erroring.
type Params struct {
	// Gravitational acceleration, m/s². Default (0, -9.8, 0).
	Gravity mgl64.Vec3

	// AirDamping is the linear drag coefficient. Range [0, 0.5].
	AirDamping float64

	// SpringStiffness is the Hooke constant for structural and shear
	// springs. Range [1, 2000].
	SpringStiffness float64

	// BendStiffness is the Hooke constant for bending springs, typically
	// a tenth of SpringStiffness. Range [0, 500].
	BendStiffness float64

	// SpringDamping acts along the spring axis only. Range [0, 1].
	SpringDamping float64

	// MaxStretch and MaxCompress bound spring length as a factor of rest
	// length during constraint projection. Ranges [1.0, 1.3] and [0.7, 1.0].
	MaxStretch  float64
	MaxCompress float64

	// ConstraintIters is the fixed number of projection passes per
	// Update. Range [1, 40]; more passes diffuse corrections further.
	ConstraintIters int

	// Wind applies a global sinusoidal gust force when enabled.
	WindEnabled   bool
	WindStrength  float64
	WindDirection mgl64.Vec3

	// SpherePinRespect makes CollideSphere leave pinned particles in
	// place. Off by default: the sphere stays authoritative over pinning.
	SpherePinRespect bool
}

// DefaultParams returns the stock parameter set for a hanging sheet.
func DefaultParams() Params {
	return Params{
		Gravity:         mgl64.Vec3{0, -9.8, 0},
		AirDamping:      DefaultAirDamping,
		SpringStiffness: DefaultSpringStiffness,
		BendStiffness:   DefaultBendStiffness,
		SpringDamping:   DefaultSpringDamping,
		MaxStretch:      DefaultMaxStretch,
		MaxCompress:     DefaultMaxCompress,
		ConstraintIters: DefaultConstraintIters,
		WindEnabled:     false,
		WindStrength:    DefaultWindStrength,
		WindDirection:   mgl64.Vec3{1, 0, 0.3}.Normalize(),
	}
}

// GetParams exposes the scalar parameters by name for UI tuning and sweeps.
func (c *Cloth) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity_y":        c.Params.Gravity.Y(),
		"air_damping":      c.Params.AirDamping,
		"stiffness":        c.Params.SpringStiffness,
		"bend_stiffness":   c.Params.BendStiffness,
		"spring_damping":   c.Params.SpringDamping,
		"max_stretch":      c.Params.MaxStretch,
		"max_compress":     c.Params.MaxCompress,
		"constraint_iters": float64(c.Params.ConstraintIters),
		"wind_strength":    c.Params.WindStrength,
	}
}

// SetParam sets a scalar parameter by name. Setting a parameter does not
// rebuild the spring network; new stiffness values only apply to springs on
// the next Reset.
func (c *Cloth) SetParam(name string, value float64) error {
	switch name {
	case "gravity_y":
		c.Params.Gravity[1] = value
	case "air_damping":
		c.Params.AirDamping = value
	case "stiffness":
		c.Params.SpringStiffness = value
	case "bend_stiffness":
		c.Params.BendStiffness = value
	case "spring_damping":
		c.Params.SpringDamping = value
	case "max_stretch":
		c.Params.MaxStretch = value
	case "max_compress":
		c.Params.MaxCompress = value
	case "constraint_iters":
		c.Params.ConstraintIters = int(value)
	case "wind_strength":
		c.Params.WindStrength = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
