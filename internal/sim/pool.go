package sim

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tombanker/clothsim/internal/cloth"
)

// PositionPool recycles position snapshot buffers for UIs that copy the
// mesh out of the simulation state every frame.
type PositionPool struct {
	pool sync.Pool
	size int
}

func NewPositionPool(size int) *PositionPool {
	return &PositionPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]mgl64.Vec3, size)
			},
		},
	}
}

func (p *PositionPool) Get() []mgl64.Vec3 {
	return p.pool.Get().([]mgl64.Vec3)
}

func (p *PositionPool) Put(buf []mgl64.Vec3) {
	if len(buf) == p.size {
		p.pool.Put(buf)
	}
}

// Snapshot copies current particle positions into a pooled buffer.
func (p *PositionPool) Snapshot(c *cloth.Cloth) []mgl64.Vec3 {
	buf := p.Get()
	for i, part := range c.Particles() {
		buf[i] = part.Position
	}
	return buf
}
