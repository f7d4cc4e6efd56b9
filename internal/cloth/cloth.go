package cloth

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Cloth owns the particle arena and spring network of one simulated sheet.
// All state is confined to a single goroutine; Params may be mutated
// between Update calls only.
type Cloth struct {
	Params Params

	particles []Particle
	springs   []Spring

	rows, cols int
	spacing    float64

	// Accumulated simulation time, drives the wind phase.
	time float64
}

// New builds a rows×cols grid of particles at the given spacing, wires the
// spring network and pins the two top corners.
func New(rows, cols int, spacing float64) (*Cloth, error) {
	if rows < 1 || cols < 1 || spacing <= 0 {
		return nil, fmt.Errorf("%w: rows=%d cols=%d spacing=%g", ErrInvalidGrid, rows, cols, spacing)
	}
	c := &Cloth{
		Params:  DefaultParams(),
		rows:    rows,
		cols:    cols,
		spacing: spacing,
	}
	c.buildParticles()
	c.buildSprings()
	return c, nil
}

// Reset discards all dynamics state and rebuilds particles and springs from
// the stored grid dimensions. Default pin state is restored and accumulated
// time is cleared. Any slices previously obtained from the accessors are
// invalidated.
func (c *Cloth) Reset() {
	c.particles = nil
	c.springs = nil
	c.time = 0
	c.buildParticles()
	c.buildSprings()
}

func (c *Cloth) idx(row, col int) int { return row*c.cols + col }

// buildParticles lays the grid out in the XY plane, top row at
// y=(rows-1)*spacing and x centered around zero, hanging down. All
// particles start at rest with prev == current.
func (c *Cloth) buildParticles() {
	c.particles = make([]Particle, 0, c.rows*c.cols)

	startX := -float64(c.cols-1) * c.spacing * 0.5
	startY := float64(c.rows-1) * c.spacing

	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			pos := mgl64.Vec3{startX + float64(col)*c.spacing, startY - float64(r)*c.spacing, 0}
			c.particles = append(c.particles, Particle{
				Position:     pos,
				PrevPosition: pos,
				Mass:         DefaultMass,
			})
		}
	}

	// Default: hang from the two top corners.
	c.particles[c.idx(0, 0)].Pinned = true
	c.particles[c.idx(0, c.cols-1)].Pinned = true
}

func (c *Cloth) buildSprings() {
	for r := 0; r < c.rows; r++ {
		for col := 0; col < c.cols; col++ {
			// Structural: right and down neighbors.
			if col+1 < c.cols {
				c.addSpring(c.idx(r, col), c.idx(r, col+1), c.Params.SpringStiffness, Structural)
			}
			if r+1 < c.rows {
				c.addSpring(c.idx(r, col), c.idx(r+1, col), c.Params.SpringStiffness, Structural)
			}

			// Shear: down-right and down-left diagonals.
			if r+1 < c.rows && col+1 < c.cols {
				c.addSpring(c.idx(r, col), c.idx(r+1, col+1), c.Params.SpringStiffness, Shear)
			}
			if r+1 < c.rows && col-1 >= 0 {
				c.addSpring(c.idx(r, col), c.idx(r+1, col-1), c.Params.SpringStiffness, Shear)
			}

			// Bending: two-ring right and down.
			if col+2 < c.cols {
				c.addSpring(c.idx(r, col), c.idx(r, col+2), c.Params.BendStiffness, Bending)
			}
			if r+2 < c.rows {
				c.addSpring(c.idx(r, col), c.idx(r+2, col), c.Params.BendStiffness, Bending)
			}
		}
	}
}

// addSpring fixes the rest length from the current particle separation,
// which pins the natural shape permanently even for non-uniform spacing.
func (c *Cloth) addSpring(a, b int, stiffness float64, t SpringType) {
	c.springs = append(c.springs, Spring{
		A:          a,
		B:          b,
		RestLength: c.particles[b].Position.Sub(c.particles[a].Position).Len(),
		Stiffness:  stiffness,
		Damping:    c.Params.SpringDamping,
		Type:       t,
	})
}

// Pin fixes the particle at (row, col) in place; it is excluded from force
// accumulation and integration until unpinned.
func (c *Cloth) Pin(row, col int) error {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrIndexOutOfRange, row, col, c.rows, c.cols)
	}
	c.particles[c.idx(row, col)].Pinned = true
	return nil
}

// UnpinAll releases every particle.
func (c *Cloth) UnpinAll() {
	for i := range c.particles {
		c.particles[i].Pinned = false
	}
}

// Update advances the simulation by dt seconds: force accumulation, Verlet
// integration, then constraint projection. Collision passes are separate;
// call them after Update if desired.
func (c *Cloth) Update(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: dt=%g", ErrInvalidTimestep, dt)
	}
	c.applyForces()
	c.integrate(dt)
	c.satisfyConstraints()
	// The advanced phase governs the next frame's wind.
	c.time += dt
	return nil
}

// Particles returns the particle arena. The slice is a live view into
// simulation state, valid until the next Update or Reset.
func (c *Cloth) Particles() []Particle { return c.particles }

// Springs returns the spring network, immutable between resets.
func (c *Cloth) Springs() []Spring { return c.springs }

func (c *Cloth) Rows() int        { return c.rows }
func (c *Cloth) Cols() int        { return c.cols }
func (c *Cloth) Spacing() float64 { return c.spacing }

// Time returns accumulated simulation time.
func (c *Cloth) Time() float64 { return c.time }

// At returns the particle at (row, col).
func (c *Cloth) At(row, col int) *Particle {
	return &c.particles[c.idx(row, col)]
}
