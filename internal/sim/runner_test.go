package sim

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tombanker/clothsim/internal/cloth"
)

func newTestCloth(t *testing.T) *cloth.Cloth {
	t.Helper()
	c, err := cloth.New(4, 4, 0.1)
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}
	return c
}

func TestRunnerRun(t *testing.T) {
	r := New(newTestCloth(t))

	cfg := DefaultConfig(r.Cloth())
	cfg.Duration = 1.0
	cfg.Dt = 0.01

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 100 {
		t.Errorf("expected 100 frames, got %d", len(result.Frames))
	}
	if result.Frames[0].Time >= result.Frames[len(result.Frames)-1].Time {
		t.Error("frame times not increasing")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(newTestCloth(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.01, Duration: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerRecordEvery(t *testing.T) {
	r := New(newTestCloth(t))

	cfg := DefaultConfig(r.Cloth())
	cfg.Duration = 1.0
	cfg.Dt = 0.01
	cfg.RecordEvery = 10

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Frames) != 10 {
		t.Errorf("expected 10 frames, got %d", len(result.Frames))
	}
}

func TestRunnerCancellation(t *testing.T) {
	r := New(newTestCloth(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig(r.Cloth())
	_, err := r.Run(ctx, cfg)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countMetric struct{ count int }

func (m *countMetric) Name() string                    { return "count" }
func (m *countMetric) Observe(_ *cloth.Cloth, _ float64) { m.count++ }
func (m *countMetric) Value() float64                  { return float64(m.count) }
func (m *countMetric) Reset()                          { m.count = 0 }

func TestRunnerMetrics(t *testing.T) {
	r := New(newTestCloth(t))
	m := &countMetric{}
	r.AddMetric(m)

	cfg := DefaultConfig(r.Cloth())
	cfg.Duration = 0.5
	cfg.Dt = 0.01

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got, ok := result.Metrics["count"]; !ok || got != 50 {
		t.Errorf("metric count = %v (present: %v), want 50", got, ok)
	}
}

func TestRunnerSphereScene(t *testing.T) {
	r := New(newTestCloth(t))

	cfg := DefaultConfig(r.Cloth())
	cfg.Duration = 2.0
	cfg.Sphere = SphereScene{Enabled: true, Center: mgl64.Vec3{0, 0.1, 0}, Radius: 0.12}

	if _, err := r.Run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	for i, p := range r.Cloth().Particles() {
		if p.Position.Sub(cfg.Sphere.Center).Len() < cfg.Sphere.Radius {
			t.Errorf("particle %d ended inside the collision sphere", i)
		}
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	r := New(newTestCloth(t))

	cfg := DefaultConfig(r.Cloth())
	cfg.Duration = 10.0

	frames := 0
	err := r.RunWithCallback(context.Background(), cfg, func(c *cloth.Cloth, t float64) bool {
		frames++
		return frames < 5
	})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 5 {
		t.Errorf("expected 5 frames, got %d", frames)
	}
}

func TestPositionPool(t *testing.T) {
	c := newTestCloth(t)
	pool := NewPositionPool(len(c.Particles()))

	buf := pool.Snapshot(c)
	if len(buf) != 16 {
		t.Fatalf("expected 16 positions, got %d", len(buf))
	}
	if buf[0] != c.Particles()[0].Position {
		t.Error("snapshot did not copy positions")
	}
	pool.Put(buf)
}
