package cloth

// integrate advances every unpinned particle with Störmer–Verlet:
//
//	x(t+dt) = 2x(t) - x(t-dt) + a(t)·dt²
//
// Velocity is recovered by central difference against the pre-update
// previous position. It lags one step behind the true motion and feeds
// only the damping terms of the next frame; prev/current positions remain
// the authoritative state.
func (c *Cloth) integrate(dt float64) {
	dt2 := dt * dt
	inv2dt := 1 / (2 * dt)

	for i := range c.particles {
		p := &c.particles[i]
		if p.Pinned {
			continue
		}

		accel := p.Force.Mul(1 / p.Mass)
		newPos := p.Position.Mul(2).Sub(p.PrevPosition).Add(accel.Mul(dt2))

		p.Velocity = newPos.Sub(p.PrevPosition).Mul(inv2dt)
		p.PrevPosition = p.Position
		p.Position = newPos
	}
}
