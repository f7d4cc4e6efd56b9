// Package config loads and saves simulation configurations as YAML and
// ships a set of named presets.
package config

import (
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/tombanker/clothsim/internal/cloth"
)

const (
	DefaultRows    = 40
	DefaultCols    = 40
	DefaultSpacing = 0.1
)

type Config struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	Spacing  float64 `yaml:"spacing"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`

	Physics   PhysicsConfig   `yaml:"physics"`
	Wind      WindConfig      `yaml:"wind"`
	Collision CollisionConfig `yaml:"collision"`
}

type PhysicsConfig struct {
	GravityY        float64 `yaml:"gravity_y"`
	AirDamping      float64 `yaml:"air_damping"`
	Stiffness       float64 `yaml:"stiffness"`
	BendStiffness   float64 `yaml:"bend_stiffness"`
	SpringDamping   float64 `yaml:"spring_damping"`
	MaxStretch      float64 `yaml:"max_stretch"`
	MaxCompress     float64 `yaml:"max_compress"`
	ConstraintIters int     `yaml:"constraint_iters"`
}

type WindConfig struct {
	Enabled   bool      `yaml:"enabled"`
	Strength  float64   `yaml:"strength"`
	Direction []float64 `yaml:"direction"`
}

type CollisionConfig struct {
	Sphere       bool      `yaml:"sphere"`
	SphereCenter []float64 `yaml:"sphere_center"`
	SphereRadius float64   `yaml:"sphere_radius"`
	Self         bool      `yaml:"self"`
}

func DefaultConfig() *Config {
	p := cloth.DefaultParams()
	return &Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		Spacing:  DefaultSpacing,
		Dt:       cloth.DefaultTimestep,
		Duration: 10.0,
		Physics: PhysicsConfig{
			GravityY:        p.Gravity.Y(),
			AirDamping:      p.AirDamping,
			Stiffness:       p.SpringStiffness,
			BendStiffness:   p.BendStiffness,
			SpringDamping:   p.SpringDamping,
			MaxStretch:      p.MaxStretch,
			MaxCompress:     p.MaxCompress,
			ConstraintIters: p.ConstraintIters,
		},
		Wind: WindConfig{
			Strength:  p.WindStrength,
			Direction: []float64{p.WindDirection.X(), p.WindDirection.Y(), p.WindDirection.Z()},
		},
		Collision: CollisionConfig{
			SphereCenter: []float64{0, 1, 0},
			SphereRadius: 0.5,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the physics section into a cloth parameter set.
func (c *Config) Params() cloth.Params {
	p := cloth.DefaultParams()
	p.Gravity = mgl64.Vec3{0, c.Physics.GravityY, 0}
	p.AirDamping = c.Physics.AirDamping
	p.SpringStiffness = c.Physics.Stiffness
	p.BendStiffness = c.Physics.BendStiffness
	p.SpringDamping = c.Physics.SpringDamping
	p.MaxStretch = c.Physics.MaxStretch
	p.MaxCompress = c.Physics.MaxCompress
	p.ConstraintIters = c.Physics.ConstraintIters
	p.WindEnabled = c.Wind.Enabled
	p.WindStrength = c.Wind.Strength
	if len(c.Wind.Direction) == 3 {
		dir := mgl64.Vec3{c.Wind.Direction[0], c.Wind.Direction[1], c.Wind.Direction[2]}
		if dir.Len() > 0 {
			p.WindDirection = dir.Normalize()
		}
	}
	return p
}

// SphereCenter returns the collision sphere center as a vector.
func (c *Config) SphereCenter() mgl64.Vec3 {
	if len(c.Collision.SphereCenter) == 3 {
		return mgl64.Vec3{c.Collision.SphereCenter[0], c.Collision.SphereCenter[1], c.Collision.SphereCenter[2]}
	}
	return mgl64.Vec3{}
}

// Build constructs a cloth from the grid section with the configured
// parameters applied. Stiffness values must be set before the spring
// network is built, so the cloth is reset once after assignment.
func (c *Config) Build() (*cloth.Cloth, error) {
	cl, err := cloth.New(c.Rows, c.Cols, c.Spacing)
	if err != nil {
		return nil, err
	}
	cl.Params = c.Params()
	cl.Reset()
	return cl, nil
}
