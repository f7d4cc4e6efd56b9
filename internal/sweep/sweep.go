// Package sweep runs grid searches over cloth parameters, scoring each
// combination by a recorded metric.
package sweep

import (
	"context"
	"fmt"
	"math"

	"github.com/tombanker/clothsim/internal/config"
	"github.com/tombanker/clothsim/internal/metrics"
	"github.com/tombanker/clothsim/internal/sim"
)

// GridSearch enumerates the cartesian product of per-parameter value
// lists. Parameter names follow cloth.SetParam.
type GridSearch struct {
	paramNames []string
	values     [][]float64
}

func NewGridSearch(params []string, values [][]float64) (*GridSearch, error) {
	if len(params) != len(values) {
		return nil, fmt.Errorf("sweep: %d parameters but %d value lists", len(params), len(values))
	}
	return &GridSearch{paramNames: params, values: values}, nil
}

// Search evaluates every combination and returns the parameter set with
// the lowest value of the named metric, along with that value.
func (g *GridSearch) Search(ctx context.Context, cfg *config.Config, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	assign := make(map[string]float64)
	err := g.walk(ctx, 0, assign, func(params map[string]float64) error {
		score, err := evaluate(ctx, cfg, params, metricName)
		if err != nil {
			return err
		}
		if score < best {
			best = score
			bestParams = make(map[string]float64, len(params))
			for k, v := range params {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("sweep: no combinations evaluated")
	}
	return bestParams, best, nil
}

func (g *GridSearch) walk(ctx context.Context, depth int, assign map[string]float64, visit func(map[string]float64) error) error {
	if depth == len(g.paramNames) {
		return visit(assign)
	}
	for _, v := range g.values[depth] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		assign[g.paramNames[depth]] = v
		if err := g.walk(ctx, depth+1, assign, visit); err != nil {
			return err
		}
	}
	return nil
}

// evaluate builds a fresh cloth per combination so runs stay independent.
func evaluate(ctx context.Context, cfg *config.Config, params map[string]float64, metricName string) (float64, error) {
	c, err := cfg.Build()
	if err != nil {
		return 0, err
	}
	for name, value := range params {
		if err := c.SetParam(name, value); err != nil {
			return 0, err
		}
	}
	// Stiffness-type parameters live on the springs, so rebuild once.
	c.Reset()

	runner := sim.New(c)
	var metric sim.Metric
	switch metricName {
	case "max_stretch":
		metric = metrics.NewMaxStretch()
	case "energy_drift":
		metric = metrics.NewEnergyDrift()
	case "pin_drift":
		metric = metrics.NewPinDrift()
	default:
		return 0, fmt.Errorf("sweep: unknown metric %q", metricName)
	}
	runner.AddMetric(metric)

	runCfg := sim.DefaultConfig(c)
	runCfg.Dt = cfg.Dt
	runCfg.Duration = cfg.Duration
	runCfg.SelfCollide = cfg.Collision.Self
	if cfg.Collision.Sphere {
		runCfg.Sphere = sim.SphereScene{Enabled: true, Center: cfg.SphereCenter(), Radius: cfg.Collision.SphereRadius}
	}

	result, err := runner.Run(ctx, runCfg)
	if err != nil {
		return 0, err
	}
	if len(result.Errors) > 0 {
		// A diverged run is the worst possible score, not a failure.
		return math.Inf(1), nil
	}
	return result.Metrics[metricName], nil
}
