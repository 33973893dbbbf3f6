package flock

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate when a parameter would make the
// simulation degenerate.
var ErrInvalidConfig = errors.New("invalid flock config")

// Config controls the physics constants of a Flock.
// A Config is never patched field by field once attached to a Flock: build a
// new one and hand it to WithConfig between two ticks.
type Config struct {
	Separation float64 `json:"separation" yaml:"separation"` // Neighbor radius for repulsion
	Alignment  float64 `json:"alignment" yaml:"alignment"`   // Divisor of the summed velocities (not an agent count)
	Cohesion   float64 `json:"cohesion" yaml:"cohesion"`     // Divisor of the summed positions (not an agent count)
	Limit      float64 `json:"limit" yaml:"limit"`           // Max speed magnitude

	// World bounds used by the boundary override
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewConfig builds a Config from its parameters.
func NewConfig(separation, alignment, cohesion, limit, width, height float64) Config {
	return Config{
		Separation: separation,
		Alignment:  alignment,
		Cohesion:   cohesion,
		Limit:      limit,
		Width:      width,
		Height:     height,
	}
}

// DefaultConfig returns the classic tuning: a 500x300 world where boids
// repel within 100 units and never exceed a speed of 4.
func DefaultConfig() Config {
	return Config{
		Separation: 100.0,
		Alignment:  100.0,
		Cohesion:   8.0,
		Limit:      4.0,
		Width:      500.0,
		Height:     300.0,
	}
}

// Validate rejects parameters that would produce NaN or Inf during Step.
// Step itself never calls it: a Flock built with a degenerate Config
// propagates the non-finite values silently.
func (c Config) Validate() error {
	switch {
	case c.Alignment <= 0:
		return fmt.Errorf("%w: alignment must be > 0, got %v", ErrInvalidConfig, c.Alignment)
	case c.Cohesion <= 0:
		return fmt.Errorf("%w: cohesion must be > 0, got %v", ErrInvalidConfig, c.Cohesion)
	case c.Separation < 0:
		return fmt.Errorf("%w: separation must be >= 0, got %v", ErrInvalidConfig, c.Separation)
	case c.Limit < 0:
		return fmt.Errorf("%w: limit must be >= 0, got %v", ErrInvalidConfig, c.Limit)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: world must have a positive size, got %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}
