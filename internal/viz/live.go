package viz

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/tombanker/clothsim/internal/cloth"
	"github.com/tombanker/clothsim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 300
)

type tickMsg time.Time

// Model is the bubbletea state for the live terminal view.
type Model struct {
	cloth  *cloth.Cloth
	cfg    sim.Config
	canvas *Canvas
	camera *Camera

	running     bool
	showSphere  bool
	selfCollide bool
	t           float64
	frameRate   int

	paramKeys []string
	selected  int

	energyHistory []float64
}

// NewModel wires a cloth into the live view. The sim config provides the
// timestep and the optional collision scene.
func NewModel(c *cloth.Cloth, cfg sim.Config, frameRate int) Model {
	keys := make([]string, 0)
	for k := range c.GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cam := NewCamera()
	FitCamera(cam, c)

	return Model{
		cloth:         c,
		cfg:           cfg,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		camera:        cam,
		running:       true,
		showSphere:    cfg.Sphere.Enabled,
		selfCollide:   cfg.SelfCollide,
		frameRate:     frameRate,
		paramKeys:     keys,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.cloth.Reset()
			m.t = 0
			m.energyHistory = m.energyHistory[:0]
		case "w":
			m.cloth.Params.WindEnabled = !m.cloth.Params.WindEnabled
		case "s":
			m.showSphere = !m.showSphere
		case "c":
			m.selfCollide = !m.selfCollide
		case "u":
			m.cloth.UnpinAll()
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "left":
			m.camera.Rotate(-0.1, 0)
		case "right":
			m.camera.Rotate(0.1, 0)
		case "shift+up":
			m.camera.Rotate(0, 0.1)
		case "shift+down":
			m.camera.Rotate(0, -0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-":
			m.camera.ZoomOut()
		}
		return m, nil

	case tickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) step() {
	if err := m.cloth.Update(m.cfg.Dt); err != nil {
		return
	}
	if m.showSphere {
		m.cloth.CollideSphere(m.cfg.Sphere.Center, m.cfg.Sphere.Radius)
	}
	if m.selfCollide {
		m.cloth.CollideSelf()
	}
	m.t += m.cfg.Dt

	m.energyHistory = append(m.energyHistory, m.cloth.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	name := m.paramKeys[m.selected]
	value := m.cloth.GetParams()[name]
	if value == 0 {
		value = 0.01
	}
	// Errors only occur for unknown names, which the key list rules out.
	_ = m.cloth.SetParam(name, value*factor)
}

func (m Model) View() string {
	m.canvas.Clear()
	RenderCloth(m.canvas, m.cloth, m.camera)
	if m.showSphere {
		RenderSphere(m.canvas, m.cfg.Sphere.Center, m.cfg.Sphere.Radius, m.camera)
	}

	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.statsView())

	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("total energy"),
		)
		view = lipgloss.JoinVertical(lipgloss.Left, view, graphStyle.Render(graph))
	}

	help := helpStyle.Render("space pause · r reset · w wind · s sphere · c self-collide · u unpin · tab/↑/↓ tune · ←/→ orbit · +/- zoom · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, view, help)
}

func (m Model) statsView() string {
	status := "running"
	if !m.running {
		status = "paused"
	}

	s := headerStyle.Render(fmt.Sprintf("cloth %dx%d · %s", m.cloth.Rows(), m.cloth.Cols(), status)) + "\n"
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("time"), valueStyle.Render(fmt.Sprintf("%.2f s", m.t)))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("particles"), valueStyle.Render(fmt.Sprintf("%d", len(m.cloth.Particles()))))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("springs"), valueStyle.Render(fmt.Sprintf("%d", len(m.cloth.Springs()))))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("max stretch"), valueStyle.Render(fmt.Sprintf("%.3f", m.cloth.MaxStretchRatio())))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("wind"), toggleView(m.cloth.Params.WindEnabled))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("sphere"), toggleView(m.showSphere))
	s += fmt.Sprintf("%s%s\n", labelStyle.Render("self-collide"), toggleView(m.selfCollide))

	s += "\n" + headerStyle.Render("parameters") + "\n"
	params := m.cloth.GetParams()
	for i, key := range m.paramKeys {
		line := fmt.Sprintf("%-17s %8.3f", key, params[key])
		if i == m.selected {
			s += activeParamStyle.Render("> "+line) + "\n"
		} else {
			s += valueStyle.Render("  "+line) + "\n"
		}
	}
	return s
}

func toggleView(on bool) string {
	if on {
		return onStyle.Render("on")
	}
	return offStyle.Render("off")
}

// Run starts the live view and blocks until the user quits.
func Run(c *cloth.Cloth, cfg sim.Config, frameRate int) error {
	p := tea.NewProgram(NewModel(c, cfg, frameRate))
	_, err := p.Run()
	return err
}
