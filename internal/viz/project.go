package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tombanker/clothsim/internal/cloth"
)

// Camera projects world space onto the canvas with a simple perspective
// model: rotate around the target, then scale by distance.
type Camera struct {
	Distance float64
	Yaw      float64
	Pitch    float64
	Zoom     float64
	Target   mgl64.Vec3
}

func NewCamera() *Camera {
	return &Camera{Distance: 8, Pitch: -0.2, Zoom: 1}
}

func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch = mgl64.Clamp(c.Pitch+dPitch, -1.4, 1.4)
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(8, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.2, c.Zoom/1.2) }

// Project returns sub-pixel coordinates, depth, and whether the point
// lands on a canvas of the given size.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, bool) {
	rel := p.Sub(c.Target)

	// Yaw around Y, then pitch around X.
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	x := rel.X()*cy + rel.Z()*sy
	z := -rel.X()*sy + rel.Z()*cy
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	y := rel.Y()*cp - z*sp
	z = rel.Y()*sp + z*cp

	if z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - z) * c.Zoom

	minDim := math.Min(float64(sw), float64(sh))
	pixels := minDim / 4.0
	sx := int(x*scale*pixels) + sw/2
	syp := sh/2 - int(y*scale*pixels)
	return sx, syp, z, sx >= 0 && sx < sw && syp >= 0 && syp < sh
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// RenderCloth draws the spring network as a wireframe, back to front, and
// marks pinned particles. Bending springs are skipped; they overlay the
// structural grid and only add clutter.
func RenderCloth(canvas *Canvas, c *cloth.Cloth, cam *Camera) {
	sw, sh := canvas.Width*2, canvas.Height*4
	ps := c.Particles()

	edges := make([]projectedEdge, 0, len(c.Springs()))
	for _, s := range c.Springs() {
		if s.Type == cloth.Bending {
			continue
		}
		x1, y1, d1, v1 := cam.Project(ps[s.A].Position, sw, sh)
		x2, y2, d2, v2 := cam.Project(ps[s.B].Position, sw, sh)
		if v1 || v2 {
			edges = append(edges, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].depth < edges[j].depth })
	for _, e := range edges {
		canvas.DrawLine(e.x1, e.y1, e.x2, e.y2)
	}

	for i := range ps {
		if !ps[i].Pinned {
			continue
		}
		if x, y, _, ok := cam.Project(ps[i].Position, sw, sh); ok {
			// A small cross makes pins stand out from the mesh.
			canvas.Set(x, y)
			canvas.Set(x-1, y)
			canvas.Set(x+1, y)
			canvas.Set(x, y-1)
			canvas.Set(x, y+1)
		}
	}
}

// RenderSphere draws a collision sphere as a circle of points.
func RenderSphere(canvas *Canvas, center mgl64.Vec3, radius float64, cam *Camera) {
	sw, sh := canvas.Width*2, canvas.Height*4
	const segments = 48
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		p := center.Add(mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0})
		if x, y, _, ok := cam.Project(p, sw, sh); ok {
			canvas.Set(x, y)
		}
	}
}

// FitCamera aims the camera at the cloth's initial center of mass.
func FitCamera(cam *Camera, c *cloth.Cloth) {
	var sum mgl64.Vec3
	for _, p := range c.Particles() {
		sum = sum.Add(p.Position)
	}
	cam.Target = sum.Mul(1 / float64(len(c.Particles())))
	span := float64(c.Rows()) * c.Spacing()
	cam.Distance = math.Max(4, span*2.5)
}
