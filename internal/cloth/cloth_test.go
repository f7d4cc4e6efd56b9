package cloth

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNew_InvalidGrid(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		spacing float64
	}{
		{"zero rows", 0, 4, 0.1},
		{"zero cols", 4, 0, 0.1},
		{"negative rows", -1, 4, 0.1},
		{"zero spacing", 4, 4, 0},
		{"negative spacing", 4, 4, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rows, tt.cols, tt.spacing); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNew_GridLayout(t *testing.T) {
	c, err := New(3, 4, 0.5)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	ps := c.Particles()
	if len(ps) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(ps))
	}

	// Top row at (rows-1)*spacing, x symmetric around 0, z = 0.
	top := c.At(0, 0)
	if top.Position.Y() != 1.0 {
		t.Errorf("top row height: expected 1.0, got %g", top.Position.Y())
	}
	left := c.At(0, 0).Position.X()
	right := c.At(0, 3).Position.X()
	if left != -right {
		t.Errorf("grid not centered: x range [%g, %g]", left, right)
	}

	for i := range ps {
		if ps[i].Position.Z() != 0 {
			t.Errorf("particle %d: z = %g, want 0", i, ps[i].Position.Z())
		}
		if ps[i].Position != ps[i].PrevPosition {
			t.Errorf("particle %d not at rest: prev != current", i)
		}
		if ps[i].Velocity != zero3 || ps[i].Force != zero3 {
			t.Errorf("particle %d has nonzero velocity or force", i)
		}
		if ps[i].Mass != 1 {
			t.Errorf("particle %d: mass = %g, want 1", i, ps[i].Mass)
		}
	}
}

func TestNew_DefaultPins(t *testing.T) {
	c, _ := New(4, 5, 0.1)

	for i, p := range c.Particles() {
		pinned := i == 0 || i == 4 // top-left and top-right corners
		if p.Pinned != pinned {
			t.Errorf("particle %d: pinned = %v, want %v", i, p.Pinned, pinned)
		}
	}
}

func TestNew_SpringCounts(t *testing.T) {
	tests := []struct {
		rows, cols                 int
		structural, shear, bending int
	}{
		{1, 2, 1, 0, 0},
		{2, 2, 4, 2, 0},
		{3, 3, 12, 8, 6},
		{4, 3, 17, 12, 10},
	}

	for _, tt := range tests {
		c, err := New(tt.rows, tt.cols, 0.1)
		if err != nil {
			t.Fatalf("new %dx%d failed: %v", tt.rows, tt.cols, err)
		}

		counts := map[SpringType]int{}
		for _, s := range c.Springs() {
			counts[s.Type]++
		}

		if counts[Structural] != tt.structural {
			t.Errorf("%dx%d: structural = %d, want %d", tt.rows, tt.cols, counts[Structural], tt.structural)
		}
		if counts[Shear] != tt.shear {
			t.Errorf("%dx%d: shear = %d, want %d", tt.rows, tt.cols, counts[Shear], tt.shear)
		}
		if counts[Bending] != tt.bending {
			t.Errorf("%dx%d: bending = %d, want %d", tt.rows, tt.cols, counts[Bending], tt.bending)
		}
	}
}

func TestNew_NoSelfOrDuplicateSprings(t *testing.T) {
	c, _ := New(5, 5, 0.1)

	seen := map[[2]int]bool{}
	for _, s := range c.Springs() {
		if s.A == s.B {
			t.Errorf("spring connects particle %d to itself", s.A)
		}
		key := [2]int{s.A, s.B}
		if s.B < s.A {
			key = [2]int{s.B, s.A}
		}
		if seen[key] {
			t.Errorf("duplicate spring between %d and %d", s.A, s.B)
		}
		seen[key] = true
	}
}

func TestRestLengthInvariant(t *testing.T) {
	c, _ := New(6, 4, 0.25)

	ps := c.Particles()
	for i, s := range c.Springs() {
		dist := ps[s.B].Position.Sub(ps[s.A].Position).Len()
		if dist != s.RestLength {
			t.Errorf("spring %d: initial length %g != rest length %g", i, dist, s.RestLength)
		}
	}
}

func TestUpdate_InvalidTimestep(t *testing.T) {
	c, _ := New(2, 2, 0.1)

	for _, dt := range []float64{0, -0.01} {
		if err := c.Update(dt); err == nil {
			t.Errorf("dt=%g: expected error, got nil", dt)
		}
	}
}

func TestPin_OutOfRange(t *testing.T) {
	c, _ := New(3, 3, 0.1)

	tests := []struct{ row, col int }{
		{-1, 0}, {0, -1}, {3, 0}, {0, 3},
	}
	for _, tt := range tests {
		if err := c.Pin(tt.row, tt.col); err == nil {
			t.Errorf("pin(%d, %d): expected error", tt.row, tt.col)
		}
	}
}

func TestPinInvariant(t *testing.T) {
	c, _ := New(6, 6, 0.1)
	if err := c.Pin(3, 3); err != nil {
		t.Fatalf("pin failed: %v", err)
	}

	type snap struct{ pos, prev mgl64.Vec3 }
	before := map[int]snap{}
	for i, p := range c.Particles() {
		if p.Pinned {
			before[i] = snap{p.Position, p.PrevPosition}
		}
	}

	for step := 0; step < 200; step++ {
		if err := c.Update(DefaultTimestep); err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}

	for i, want := range before {
		p := c.Particles()[i]
		if p.Position != want.pos || p.PrevPosition != want.prev {
			t.Errorf("pinned particle %d moved during updates", i)
		}
	}
}

func TestFreeFall(t *testing.T) {
	// Two unpinned particles, one slack spring, gravity only. First Verlet
	// step from rest (prev == current) displaces by a*dt².
	c, _ := New(1, 2, 0.1)
	c.UnpinAll()
	c.Params.AirDamping = 0

	springs := c.Springs()
	for i := range springs {
		springs[i].Stiffness = 0
		springs[i].Damping = 0
	}

	startY := c.At(0, 0).Position.Y()
	dt := DefaultTimestep
	if err := c.Update(dt); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	want := -9.8 * dt * dt
	for i, p := range c.Particles() {
		got := p.Position.Y() - startY
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("particle %d: fell %g, want %g", i, got, want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	build := func() *Cloth {
		c, _ := New(8, 8, 0.1)
		c.Params.WindEnabled = true
		return c
	}

	a, b := build(), build()
	for step := 0; step < 120; step++ {
		if err := a.Update(DefaultTimestep); err != nil {
			t.Fatal(err)
		}
		if err := b.Update(DefaultTimestep); err != nil {
			t.Fatal(err)
		}
	}

	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i].Position != pb[i].Position {
			t.Fatalf("trajectories diverged at particle %d", i)
		}
	}
}

func TestReset(t *testing.T) {
	c, _ := New(4, 4, 0.1)
	initial := make([]Particle, len(c.Particles()))
	copy(initial, c.Particles())

	c.UnpinAll()
	for i := 0; i < 30; i++ {
		if err := c.Update(DefaultTimestep); err != nil {
			t.Fatal(err)
		}
	}

	c.Reset()

	if c.Time() != 0 {
		t.Errorf("accumulated time not cleared: %g", c.Time())
	}
	for i, p := range c.Particles() {
		if p.Position != initial[i].Position {
			t.Errorf("particle %d not restored", i)
		}
		if p.Pinned != initial[i].Pinned {
			t.Errorf("particle %d pin state not restored", i)
		}
	}
}

func TestPinnedCornerHang(t *testing.T) {
	// 2x2 grid hanging from a single corner: after settling, no spring may
	// exceed the stretch band.
	c, _ := New(2, 2, 0.1)
	c.UnpinAll()
	if err := c.Pin(0, 0); err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 600; step++ {
		if err := c.Update(DefaultTimestep); err != nil {
			t.Fatal(err)
		}
	}

	ps := c.Particles()
	for i, s := range c.Springs() {
		dist := ps[s.B].Position.Sub(ps[s.A].Position).Len()
		if dist > s.RestLength*c.Params.MaxStretch+1e-9 {
			t.Errorf("spring %d stretched to %g, limit %g", i, dist, s.RestLength*c.Params.MaxStretch)
		}
	}
}

func TestConstraintBound(t *testing.T) {
	// Yank one particle far out of the band, then give the solver a large
	// iteration budget; every spring must come back inside the band.
	c, _ := New(4, 4, 0.1)
	c.UnpinAll()
	c.Params.ConstraintIters = 100

	ps := c.Particles()
	ps[5].Position = ps[5].Position.Add(mgl64.Vec3{0.3, -0.2, 0.15})

	c.satisfyConstraints()

	minF, maxF := c.Params.MaxCompress, c.Params.MaxStretch
	for i, s := range c.Springs() {
		dist := ps[s.B].Position.Sub(ps[s.A].Position).Len()
		if dist < s.RestLength*minF-1e-6 || dist > s.RestLength*maxF+1e-6 {
			t.Errorf("spring %d length %g outside [%g, %g]", i, dist, s.RestLength*minF, s.RestLength*maxF)
		}
	}
}

func TestSetParam(t *testing.T) {
	c, _ := New(2, 2, 0.1)

	if err := c.SetParam("air_damping", 0.2); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if c.Params.AirDamping != 0.2 {
		t.Errorf("air_damping = %g, want 0.2", c.Params.AirDamping)
	}

	if err := c.SetParam("constraint_iters", 8); err != nil {
		t.Fatal(err)
	}
	if c.Params.ConstraintIters != 8 {
		t.Errorf("constraint_iters = %d, want 8", c.Params.ConstraintIters)
	}

	if err := c.SetParam("no_such_param", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}

	for name := range c.GetParams() {
		if err := c.SetParam(name, 1); err != nil {
			t.Errorf("param %q listed but not settable: %v", name, err)
		}
	}
}
