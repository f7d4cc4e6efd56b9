package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/tombanker/clothsim/internal/cloth"
)

// ErrDiverged indicates the simulation produced NaN/Inf positions.
var ErrDiverged = errors.New("sim: cloth state diverged (NaN/Inf positions)")

// Runner steps a cloth over a fixed duration, applying the configured
// collision passes and feeding metrics and observers. The Runner owns the
// cloth for the duration of a Run; no other goroutine may touch it.
type Runner struct {
	cloth     *cloth.Cloth
	metrics   []Metric
	observers []Observer
}

func New(c *cloth.Cloth) *Runner {
	return &Runner{cloth: c}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Cloth returns the simulated cloth.
func (r *Runner) Cloth() *cloth.Cloth { return r.cloth }

// Run executes the configured number of frames and records the result.
// The context cancels between frames; a canceled run returns the partial
// result alongside the context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps/every+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.step(cfg, t); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(r.cloth, t)
		}
		for _, o := range r.observers {
			o.OnFrame(r.cloth, t)
		}

		if cfg.ValidateState && !validPositions(r.cloth) {
			err := fmt.Errorf("%w: step %d (t=%.4f)", ErrDiverged, i, t)
			result.Errors = append(result.Errors, err)
			break
		}

		if i%every == 0 {
			result.Frames = append(result.Frames, r.snapshot(cfg, t))
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams frames to the callback instead of recording
// them; returning false from the callback stops the run early. The cloth
// passed to the callback is the live simulation state; copy anything that
// must outlive the frame.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(c *cloth.Cloth, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := r.step(cfg, t); err != nil {
			return err
		}
		t += cfg.Dt

		if cfg.ValidateState && !validPositions(r.cloth) {
			return fmt.Errorf("%w: t=%.4f", ErrDiverged, t)
		}

		if !callback(r.cloth, t) {
			return nil
		}
	}

	return nil
}

// step runs one full frame: physics pipeline, then collision passes.
func (r *Runner) step(cfg Config, t float64) error {
	if err := r.cloth.Update(cfg.Dt); err != nil {
		return err
	}
	if cfg.Sphere.Enabled {
		r.cloth.CollideSphere(cfg.Sphere.Center, cfg.Sphere.Radius)
	}
	if cfg.SelfCollide {
		r.cloth.CollideSelf()
	}
	return nil
}

func (r *Runner) snapshot(cfg Config, t float64) Frame {
	return Frame{
		Time:       t,
		Tracked:    r.cloth.At(cfg.TrackRow, cfg.TrackCol).Position,
		Energy:     r.cloth.Energy(),
		MaxStretch: r.cloth.MaxStretchRatio(),
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %g", cfg.Duration)
	}
	return nil
}
