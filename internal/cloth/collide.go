package cloth

import "github.com/go-gl/mathgl/mgl64"

// surfaceOffset keeps a pushed-out particle strictly off the sphere
// boundary so floating point cannot re-trigger the check next frame.
const surfaceOffset = 1e-3

// CollideSphere projects every particle found inside the sphere radially
// out to its surface. Velocity is ignored. Unless Params.SpherePinRespect
// is set, pinned particles are repositioned too: the sphere wins over
// pinning.
func (c *Cloth) CollideSphere(center mgl64.Vec3, radius float64) {
	for i := range c.particles {
		p := &c.particles[i]
		if c.Params.SpherePinRespect && p.Pinned {
			continue
		}

		dir := p.Position.Sub(center)
		dist := dir.Len()
		if dist >= radius {
			continue
		}

		// A particle sitting exactly on the center has no radial
		// direction; push it out along the up axis.
		normal := mgl64.Vec3{0, 1, 0}
		if dist > degenerateDist {
			normal = dir.Mul(1 / dist)
		}
		p.Position = center.Add(normal.Mul(radius + surfaceOffset))
	}
}

// CollideSelf resolves particle interpenetration with the marble model:
// each particle is a sphere of radius spacing/2, and any overlapping pair
// is separated symmetrically. Pinned particles absorb no correction here.
// Both velocities are zeroed entirely to dissipate the collision impulse.
//
// All-pairs O(n²); acceptable for the small grids this solver targets.
func (c *Cloth) CollideSelf() {
	minDist := c.spacing // 2 * marble radius

	n := len(c.particles)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pa := &c.particles[i]
			pb := &c.particles[j]

			delta := pb.Position.Sub(pa.Position)
			dist := delta.Len()
			if dist >= minDist || dist <= degenerateDist {
				continue
			}

			correction := delta.Mul((dist - minDist) / dist)
			if !pa.Pinned {
				pa.Position = pa.Position.Add(correction.Mul(0.5))
			}
			if !pb.Pinned {
				pb.Position = pb.Position.Sub(correction.Mul(0.5))
			}
			pa.Velocity = zero3
			pb.Velocity = zero3
		}
	}
}
