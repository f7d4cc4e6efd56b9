package cloth

import "github.com/go-gl/mathgl/mgl64"

// satisfyConstraints runs a fixed number of projection passes clamping
// every spring's length into [rest·MaxCompress, rest·MaxStretch]. Springs
// are processed in construction order and no convergence check is made:
// the fixed budget keeps per-frame cost bounded, and repeated sweeps let a
// correction at one spring diffuse to its neighbors. This projection, not
// the timestep, is the dominant stability mechanism.
func (c *Cloth) satisfyConstraints() {
	for iter := 0; iter < c.Params.ConstraintIters; iter++ {
		for i := range c.springs {
			s := &c.springs[i]
			pa := &c.particles[s.A]
			pb := &c.particles[s.B]

			delta := pb.Position.Sub(pa.Position)
			dist := delta.Len()
			if dist < degenerateDist {
				continue
			}

			minLen := s.RestLength * c.Params.MaxCompress
			maxLen := s.RestLength * c.Params.MaxStretch
			if dist >= minLen && dist <= maxLen {
				continue
			}

			target := mgl64.Clamp(dist, minLen, maxLen)
			correction := delta.Mul((dist - target) / dist)

			// Split the correction between the endpoints; a pinned
			// particle absorbs none, the other end takes it all. Two
			// pinned endpoints cannot be corrected.
			switch {
			case !pa.Pinned && !pb.Pinned:
				pa.Position = pa.Position.Add(correction.Mul(0.5))
				pb.Position = pb.Position.Sub(correction.Mul(0.5))
			case !pa.Pinned:
				pa.Position = pa.Position.Add(correction)
			case !pb.Pinned:
				pb.Position = pb.Position.Sub(correction)
			}
		}
	}
}
