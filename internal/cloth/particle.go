package cloth

import "github.com/go-gl/mathgl/mgl64"

// Particle is a single point mass of the grid. Position and PrevPosition
// together carry the full Verlet state; Velocity is a cache recovered each
// integration step and consumed only by the damping terms of the next one.
type Particle struct {
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	Velocity     mgl64.Vec3
	Force        mgl64.Vec3
	Mass         float64
	Pinned       bool
}
