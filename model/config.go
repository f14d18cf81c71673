package model

import "github.com/kjirou/curvedspaces/geom"

// Option customizes construction-time defaults a ModelData is built with:
// initial aperture, motion-speed bounds, and per-curvature horizon-radius
// overrides — the one concern the core geometry packages don't need but a
// sibling pack repo's builder.Option/config pattern demonstrates cleanly
// (spec.md's ambient-stack configuration section).
type Option func(*config)

// config holds construction-time defaults; a fresh one is built with
// newConfig, applying defaults first and options in order so later
// options win.
type config struct {
	initialAperture float64
	maxSpeed        float64
	speedIncrement  float64
	horizonOverride map[geom.Curvature]float64
}

// WithInitialAperture sets the aperture a freshly constructed or reset
// Observer starts at.
func WithInitialAperture(aperture float64) Option {
	return func(cfg *config) { cfg.initialAperture = aperture }
}

// WithMaxSpeed overrides the default maximum observer speed (spec §6:
// 0.25).
func WithMaxSpeed(maxSpeed float64) Option {
	return func(cfg *config) { cfg.maxSpeed = maxSpeed }
}

// WithSpeedIncrement overrides the default per-gesture speed increment
// (spec §6: 0.02).
func WithSpeedIncrement(increment float64) Option {
	return func(cfg *config) { cfg.speedIncrement = increment }
}

// WithHorizonOverride replaces the built-in horizon-radius preset for one
// curvature (spec §6's per-family switch: 3.15 spherical, 11 flat, 3.0-7.0
// hyperbolic).
func WithHorizonOverride(c geom.Curvature, radius float64) Option {
	return func(cfg *config) {
		if cfg.horizonOverride == nil {
			cfg.horizonOverride = make(map[geom.Curvature]float64)
		}
		cfg.horizonOverride[c] = radius
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		initialAperture: 0.5,
		maxSpeed:        DefaultMaxSpeed,
		speedIncrement:  DefaultSpeedIncrement,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
