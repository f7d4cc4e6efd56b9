// Package gui is the raylib 3D viewer: a windowed wireframe rendering of
// the cloth with live keyboard tuning and an orbital camera.
package gui

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tombanker/clothsim/internal/cloth"
	"github.com/tombanker/clothsim/internal/sim"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

var (
	colBg     = rl.NewColor(10, 10, 10, 255)
	colCloth  = rl.NewColor(180, 140, 230, 255)
	colPinned = rl.NewColor(255, 80, 80, 255)
	colSphere = rl.NewColor(120, 120, 120, 200)
	colText   = rl.NewColor(140, 140, 140, 255)
	colActive = rl.NewColor(255, 255, 255, 255)
)

// App owns the window loop and the simulation it drives.
type App struct {
	cloth *cloth.Cloth
	cfg   sim.Config
	pool  *sim.PositionPool

	camera      rl.Camera3D
	running     bool
	showSphere  bool
	selfCollide bool
	t           float64

	paramKeys []string
	paramSel  int
}

func NewApp(c *cloth.Cloth, cfg sim.Config) *App {
	keys := make([]string, 0)
	for k := range c.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	span := float32(c.Rows()) * float32(c.Spacing())
	center := rl.NewVector3(0, span/2, 0)

	return &App{
		cloth: c,
		cfg:   cfg,
		pool:  sim.NewPositionPool(len(c.Particles())),
		camera: rl.Camera3D{
			Position:   rl.NewVector3(0, span*0.7, span*2.2),
			Target:     center,
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
		running:     true,
		showSphere:  cfg.Sphere.Enabled,
		selfCollide: cfg.SelfCollide,
		paramKeys:   keys,
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	rl.InitWindow(windowWidth, windowHeight, "clothsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		a.handleInput()
		if a.running {
			a.step()
		}
		a.draw()
	}
}

func (a *App) handleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyR):
		a.cloth.Reset()
		a.t = 0
	case rl.IsKeyPressed(rl.KeyW):
		a.cloth.Params.WindEnabled = !a.cloth.Params.WindEnabled
	case rl.IsKeyPressed(rl.KeyS):
		a.showSphere = !a.showSphere
	case rl.IsKeyPressed(rl.KeyC):
		a.selfCollide = !a.selfCollide
	case rl.IsKeyPressed(rl.KeyU):
		a.cloth.UnpinAll()
	case rl.IsKeyPressed(rl.KeyTab):
		if len(a.paramKeys) > 0 {
			a.paramSel = (a.paramSel + 1) % len(a.paramKeys)
		}
	case rl.IsKeyPressed(rl.KeyUp):
		a.adjustParam(1.05)
	case rl.IsKeyPressed(rl.KeyDown):
		a.adjustParam(0.95)
	}

	rl.UpdateCamera(&a.camera, rl.CameraOrbital)
}

func (a *App) adjustParam(factor float64) {
	if len(a.paramKeys) == 0 {
		return
	}
	name := a.paramKeys[a.paramSel]
	value := a.cloth.GetParams()[name]
	if value == 0 {
		value = 0.01
	}
	_ = a.cloth.SetParam(name, value*factor)
}

func (a *App) step() {
	if err := a.cloth.Update(a.cfg.Dt); err != nil {
		return
	}
	if a.showSphere {
		a.cloth.CollideSphere(a.cfg.Sphere.Center, a.cfg.Sphere.Radius)
	}
	if a.selfCollide {
		a.cloth.CollideSelf()
	}
	a.t += a.cfg.Dt
}

func (a *App) draw() {
	// Draw from a pooled snapshot so the mesh seen on screen is one
	// coherent frame.
	positions := a.pool.Snapshot(a.cloth)
	defer a.pool.Put(positions)

	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	rl.BeginMode3D(a.camera)
	rl.DrawGrid(12, 0.5)

	for _, s := range a.cloth.Springs() {
		if s.Type == cloth.Bending {
			continue
		}
		a1 := positions[s.A]
		b1 := positions[s.B]
		rl.DrawLine3D(
			rl.NewVector3(float32(a1.X()), float32(a1.Y()), float32(a1.Z())),
			rl.NewVector3(float32(b1.X()), float32(b1.Y()), float32(b1.Z())),
			colCloth,
		)
	}

	for i, p := range a.cloth.Particles() {
		if p.Pinned {
			pos := positions[i]
			rl.DrawSphere(rl.NewVector3(float32(pos.X()), float32(pos.Y()), float32(pos.Z())), 0.03, colPinned)
		}
	}

	if a.showSphere {
		c := a.cfg.Sphere.Center
		rl.DrawSphereWires(
			rl.NewVector3(float32(c.X()), float32(c.Y()), float32(c.Z())),
			float32(a.cfg.Sphere.Radius), 16, 16, colSphere,
		)
	}
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	status := "running"
	if !a.running {
		status = "paused"
	}
	rl.DrawText(fmt.Sprintf("t=%.2fs  %s  stretch=%.3f", a.t, status, a.cloth.MaxStretchRatio()), 16, 16, 18, colText)
	rl.DrawText("space pause  r reset  w wind  s sphere  c self-collide  u unpin  tab/up/down tune", 16, windowHeight-32, 16, colText)

	params := a.cloth.GetParams()
	y := int32(52)
	for i, key := range a.paramKeys {
		color := colText
		prefix := "  "
		if i == a.paramSel {
			color = colActive
			prefix = "> "
		}
		rl.DrawText(fmt.Sprintf("%s%s: %.3f", prefix, key, params[key]), 16, y, 16, color)
		y += 20
	}
}
