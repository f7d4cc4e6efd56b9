// Package metrics provides per-run observables for cloth simulations.
package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tombanker/clothsim/internal/cloth"
)

// EnergyDrift tracks the maximum relative deviation of total energy from
// its first observed value. A hanging cloth dissipates, so drift here
// measures damping behavior rather than conservation error.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(c *cloth.Cloth, t float64) {
	energy := c.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MaxStretch tracks the worst spring length/rest ratio seen over the run;
// values above Params.MaxStretch mean the constraint budget is too small.
type MaxStretch struct {
	max float64
}

func NewMaxStretch() *MaxStretch { return &MaxStretch{} }

func (m *MaxStretch) Name() string { return "max_stretch" }

func (m *MaxStretch) Observe(c *cloth.Cloth, t float64) {
	if r := c.MaxStretchRatio(); r > m.max {
		m.max = r
	}
}

func (m *MaxStretch) Value() float64 { return m.max }
func (m *MaxStretch) Reset()         { m.max = 0 }

// PinDrift tracks the largest displacement of any pinned particle from
// where it was first observed. It must stay exactly zero unless a sphere
// collision pass overrides pinning.
type PinDrift struct {
	anchors map[int]mgl64.Vec3
	max     float64
}

func NewPinDrift() *PinDrift {
	return &PinDrift{anchors: make(map[int]mgl64.Vec3)}
}

func (p *PinDrift) Name() string { return "pin_drift" }

func (p *PinDrift) Observe(c *cloth.Cloth, t float64) {
	for i, part := range c.Particles() {
		if !part.Pinned {
			continue
		}
		anchor, ok := p.anchors[i]
		if !ok {
			p.anchors[i] = part.Position
			continue
		}
		if d := part.Position.Sub(anchor).Len(); d > p.max {
			p.max = d
		}
	}
}

func (p *PinDrift) Value() float64 { return p.max }

func (p *PinDrift) Reset() {
	p.anchors = make(map[int]mgl64.Vec3)
	p.max = 0
}
