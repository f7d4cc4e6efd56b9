// Package export writes cloth snapshots and recorded trajectories as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/tombanker/clothsim/internal/cloth"
)

// ClothToSVG renders the current mesh as a front (XY) orthographic
// projection: one line per structural/shear spring, a filled circle per
// pinned particle.
func ClothToSVG(c *cloth.Cloth, width, height int) string {
	ps := c.Particles()
	if len(ps) == 0 {
		return ""
	}

	minX, maxX := ps[0].Position.X(), ps[0].Position.X()
	minY, maxY := ps[0].Position.Y(), ps[0].Position.Y()
	for _, p := range ps {
		minX = min(minX, p.Position.X())
		maxX = max(maxX, p.Position.X())
		minY = min(minY, p.Position.Y())
		maxY = max(maxY, p.Position.Y())
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.05
	minX -= rangeX * pad
	minY -= rangeY * pad
	rangeX *= 1 + 2*pad
	rangeY *= 1 + 2*pad

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ff88" stroke-width="0.6">
`, width, height, width, height))

	for _, s := range c.Springs() {
		if s.Type == cloth.Bending {
			continue
		}
		a, b := ps[s.A].Position, ps[s.B].Position
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, toX(a.X()), toY(a.Y()), toX(b.X()), toY(b.Y())))
	}
	sb.WriteString("</g>\n<g fill=\"#ff4444\">\n")

	for _, p := range ps {
		if p.Pinned {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5"/>
`, toX(p.Position.X()), toY(p.Position.Y())))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG plots a recorded 2D trajectory as a polyline.
func TrajectoryToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = min(minX, xs[i])
		maxX = max(maxX, xs[i])
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
