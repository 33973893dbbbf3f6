// Package flock implements the boids flocking model.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. Every tick each agent's
// velocity is rebuilt from three rules evaluated against the whole flock
// (cohesion, separation, alignment), clamped to a speed limit, overridden at
// the world edges, and then integrated into its position.
// https://en.wikipedia.org/wiki/Boids
//
// The scan is deliberately the naive all-pairs one, O(n²) per tick.
// A Flock is not safe for concurrent use: callers serialize Step calls.
package flock

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// BoundarySpeed is the velocity component forced on an agent found outside
// the world, pointing back inside.
const BoundarySpeed = 3.0

// ErrLengthMismatch is returned by New when positions and velocities do not
// describe the same agents.
var ErrLengthMismatch = errors.New("positions and velocities must have the same length")

// RandomSource supplies uniform floats in [0, 1).
// *math/rand/v2.Rand and *math/rand.Rand both satisfy it.
type RandomSource interface {
	Float64() float64
}

// Flock owns the state of every agent. Index i of positions and velocities
// always refers to the same agent, and the population never changes.
type Flock struct {
	positions  []geometry.Vector2D
	velocities []geometry.Vector2D
	// next receives the velocities of the tick being computed, so the rules
	// only ever read the pre-tick state.
	next   []geometry.Vector2D
	config Config
}

// New builds a Flock from explicit agent state. The slices are copied.
func New(positions, velocities []geometry.Vector2D, cfg Config) (*Flock, error) {
	if len(positions) != len(velocities) {
		return nil, fmt.Errorf("%w: %d positions, %d velocities", ErrLengthMismatch, len(positions), len(velocities))
	}
	n := len(positions)
	f := &Flock{
		positions:  make([]geometry.Vector2D, n),
		velocities: make([]geometry.Vector2D, n),
		next:       make([]geometry.Vector2D, n),
		config:     cfg,
	}
	copy(f.positions, positions)
	copy(f.velocities, velocities)
	return f, nil
}

// NewRandom creates n agents at random integer coordinates inside a
// width x height world, all at rest.
func NewRandom(n, width, height uint, separation, alignment, cohesion, limit float64, src RandomSource) *Flock {
	f := &Flock{
		positions:  make([]geometry.Vector2D, n),
		velocities: make([]geometry.Vector2D, n),
		next:       make([]geometry.Vector2D, n),
		config:     NewConfig(separation, alignment, cohesion, limit, float64(width), float64(height)),
	}
	for i := range f.positions {
		f.positions[i] = geometry.Vector2D{
			X: randRange(src, 0, width),
			Y: randRange(src, 0, height),
		}
	}
	return f
}

// randRange draws floor(start + (end-start)*r) with r uniform in [0, 1).
func randRange(src RandomSource, start, end uint) float64 {
	return math.Floor(float64(start) + float64(end-start)*src.Float64())
}

// WithConfig replaces the whole config, keeping every agent where it is.
func (f *Flock) WithConfig(cfg Config) *Flock {
	f.config = cfg
	return f
}

// Config returns the config in use.
func (f *Flock) Config() Config {
	return f.config
}

// Len returns the population size.
func (f *Flock) Len() int {
	return len(f.positions)
}

// Positions returns a copy of the agent positions, safe to retain.
func (f *Flock) Positions() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.positions))
	copy(out, f.positions)
	return out
}

// Velocities returns a copy of the agent velocities, safe to retain.
func (f *Flock) Velocities() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.velocities))
	copy(out, f.velocities)
	return out
}

// PositionsView lends the live position slice to fn without copying.
// The slice must not be modified, and must not be kept after fn returns:
// the next Step rewrites it.
func (f *Flock) PositionsView(fn func(positions []geometry.Vector2D)) {
	fn(f.positions[:len(f.positions):len(f.positions)])
}

// Step advances the whole flock by one tick.
func (f *Flock) Step() {
	// 1. Velocities, computed from the pre-tick snapshot
	for i, pos := range f.positions {
		v := f.cohesion(pos).Add(f.separation(pos)).Add(f.alignment(i))
		v = f.limit(v)
		f.next[i] = f.bounce(pos, v)
	}
	f.velocities, f.next = f.next, f.velocities

	// 2. Euler integration, once every velocity is final
	for i := range f.positions {
		f.positions[i] = f.positions[i].Add(f.velocities[i])
	}
}
