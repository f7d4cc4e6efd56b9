package cloth

// Energy returns kinetic + gravitational + elastic energy of the sheet.
// Kinetic energy uses the recovered velocity cache, so it shares that
// cache's one-step lag. Useful for drift monitoring, not authoritative.
func (c *Cloth) Energy() float64 {
	energy := 0.0

	for i := range c.particles {
		p := &c.particles[i]
		v2 := p.Velocity.Dot(p.Velocity)
		energy += 0.5 * p.Mass * v2
		// Potential against the gravity vector; zero level at the origin.
		energy -= p.Mass * c.Params.Gravity.Dot(p.Position)
	}

	for i := range c.springs {
		s := &c.springs[i]
		dist := c.particles[s.B].Position.Sub(c.particles[s.A].Position).Len()
		stretch := dist - s.RestLength
		energy += 0.5 * s.Stiffness * stretch * stretch
	}

	return energy
}

// MaxStretchRatio returns the largest length/rest ratio over all springs,
// a direct readout of how well the constraint band is holding.
func (c *Cloth) MaxStretchRatio() float64 {
	max := 0.0
	for i := range c.springs {
		s := &c.springs[i]
		if s.RestLength < degenerateDist {
			continue
		}
		dist := c.particles[s.B].Position.Sub(c.particles[s.A].Position).Len()
		if r := dist / s.RestLength; r > max {
			max = r
		}
	}
	return max
}
