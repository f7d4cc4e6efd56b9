package cloth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var zero3 mgl64.Vec3

// degenerateDist guards Hooke's law and separation math against division
// by a vanishing spring length.
const degenerateDist = 1e-6

// applyForces rebuilds every particle's force accumulator: gravity, air
// drag and wind per particle, then Hooke tension plus axial damping per
// spring. Pinned particles accumulate nothing.
func (c *Cloth) applyForces() {
	for i := range c.particles {
		c.particles[i].Force = zero3
	}

	for i := range c.particles {
		p := &c.particles[i]
		if p.Pinned {
			continue
		}

		p.Force = p.Force.Add(c.Params.Gravity.Mul(p.Mass))
		p.Force = p.Force.Sub(p.Velocity.Mul(c.Params.AirDamping))

		if c.Params.WindEnabled {
			gust := c.Params.WindStrength * math.Sin(2*c.time)
			p.Force = p.Force.Add(c.Params.WindDirection.Mul(gust * p.Mass))
		}
	}

	for i := range c.springs {
		s := &c.springs[i]
		pa := &c.particles[s.A]
		pb := &c.particles[s.B]

		delta := pb.Position.Sub(pa.Position)
		dist := delta.Len()
		if dist < degenerateDist {
			continue
		}

		dir := delta.Mul(1 / dist)
		stretch := dist - s.RestLength

		// Hooke's law: pulls together when stretched, pushes apart when
		// compressed.
		springF := dir.Mul(s.Stiffness * stretch)

		// Damping acts along the spring axis only, so it cannot bleed
		// energy out of shear or bending motion.
		relVel := pb.Velocity.Sub(pa.Velocity)
		dampF := dir.Mul(s.Damping * relVel.Dot(dir))

		totalF := springF.Add(dampF)

		if !pa.Pinned {
			pa.Force = pa.Force.Add(totalF)
		}
		if !pb.Pinned {
			pb.Force = pb.Force.Sub(totalF)
		}
	}
}
