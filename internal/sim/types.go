package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tombanker/clothsim/internal/cloth"
)

// Observer is notified after every completed frame.
type Observer interface {
	OnFrame(c *cloth.Cloth, t float64)
}

// Metric observes frames and reduces them to a single named value.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Value() float64
	Reset()
}

// SphereScene is an optional static collision sphere applied every frame.
type SphereScene struct {
	Enabled bool
	Center  mgl64.Vec3
	Radius  float64
}

// Config controls a recorded run.
type Config struct {
	Dt       float64
	Duration float64

	// Collision passes applied after each Update, in this order.
	Sphere      SphereScene
	SelfCollide bool

	// RecordEvery keeps one frame out of every n (0 or 1 records all).
	RecordEvery int

	// TrackRow/TrackCol pick the particle whose trajectory frames carry.
	TrackRow, TrackCol int

	// ValidateState aborts the run when positions go NaN/Inf.
	ValidateState bool
}

// DefaultConfig records every frame of a ten-second run at 60 Hz,
// tracking the grid center.
func DefaultConfig(c *cloth.Cloth) Config {
	return Config{
		Dt:            cloth.DefaultTimestep,
		Duration:      10.0,
		RecordEvery:   1,
		TrackRow:      c.Rows() / 2,
		TrackCol:      c.Cols() / 2,
		ValidateState: true,
	}
}

// Frame is one recorded sample of the run.
type Frame struct {
	Time       float64
	Tracked    mgl64.Vec3
	Energy     float64
	MaxStretch float64
}

// Result collects the recorded frames and final metric values.
type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

func validPositions(c *cloth.Cloth) bool {
	for _, p := range c.Particles() {
		for i := 0; i < 3; i++ {
			if math.IsNaN(p.Position[i]) || math.IsInf(p.Position[i], 0) {
				return false
			}
		}
	}
	return true
}
