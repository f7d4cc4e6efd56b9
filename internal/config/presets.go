package config

// Presets are ready-made scenes for the CLI and the interactive viewers.
var Presets = map[string]*Config{
	"hang": {
		Rows: 40, Cols: 40, Spacing: 0.1, Dt: 1.0 / 60.0, Duration: 10,
	},
	"breeze": {
		Rows: 40, Cols: 40, Spacing: 0.1, Dt: 1.0 / 60.0, Duration: 20,
		Wind: WindConfig{Enabled: true, Strength: 3, Direction: []float64{1, 0, 0.3}},
	},
	"drape": {
		Rows: 30, Cols: 30, Spacing: 0.12, Dt: 1.0 / 60.0, Duration: 15,
		Collision: CollisionConfig{
			Sphere:       true,
			SphereCenter: []float64{0, 1.2, 0},
			SphereRadius: 0.6,
		},
	},
	"curtain": {
		Rows: 50, Cols: 24, Spacing: 0.08, Dt: 1.0 / 60.0, Duration: 20,
		Wind: WindConfig{Enabled: true, Strength: 5, Direction: []float64{0.2, 0, 1}},
		Physics: PhysicsConfig{
			GravityY: -9.8, AirDamping: 0.02, Stiffness: 500, BendStiffness: 25,
			SpringDamping: 0.1, MaxStretch: 1.15, MaxCompress: 0.85, ConstraintIters: 10,
		},
	},
	"marble": {
		Rows: 12, Cols: 12, Spacing: 0.1, Dt: 1.0 / 60.0, Duration: 10,
		Collision: CollisionConfig{Self: true},
	},
}

// GetPreset returns a fully populated config for the named preset, with
// zero-valued physics sections filled from the defaults.
func GetPreset(name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Rows = preset.Rows
	cfg.Cols = preset.Cols
	cfg.Spacing = preset.Spacing
	cfg.Dt = preset.Dt
	cfg.Duration = preset.Duration
	if preset.Physics != (PhysicsConfig{}) {
		cfg.Physics = preset.Physics
	}
	if preset.Wind.Enabled {
		cfg.Wind = preset.Wind
	}
	if preset.Collision.Sphere || preset.Collision.Self {
		collision := preset.Collision
		if len(collision.SphereCenter) != 3 {
			collision.SphereCenter = cfg.Collision.SphereCenter
			collision.SphereRadius = cfg.Collision.SphereRadius
		}
		cfg.Collision = collision
	}
	return cfg
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
