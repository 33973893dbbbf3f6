package flock

import "github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"

// cohesion pulls b toward the rest of the flock.
// Other agents are recognized by value: every position equal to b is skipped,
// including a distinct agent that happens to share b's coordinates.
func (f *Flock) cohesion(b geometry.Vector2D) geometry.Vector2D {
	acc := geometry.Zero
	for _, c := range f.positions {
		if c != b {
			acc = acc.Add(c)
		}
	}
	return acc.Div(f.config.Cohesion)
}

// separation accumulates -(b - c) for every agent c strictly closer to b than
// the separation radius. b compared with itself yields a zero displacement, so
// it needs no exclusion.
func (f *Flock) separation(b geometry.Vector2D) geometry.Vector2D {
	acc := geometry.Zero
	for _, c := range f.positions {
		d := b.Sub(c)
		if d.Len() < f.config.Separation {
			acc = acc.Sub(d)
		}
	}
	return acc
}

// alignment steers agent e toward the heading of the rest of the flock.
// Unlike cohesion the agent is excluded by index.
func (f *Flock) alignment(e int) geometry.Vector2D {
	acc := geometry.Zero
	for i, v := range f.velocities {
		if i != e {
			acc = acc.Add(v)
		}
	}
	return acc.Div(f.config.Alignment)
}

// limit rescales v to the configured speed when it is faster.
func (f *Flock) limit(v geometry.Vector2D) geometry.Vector2D {
	if speed := v.Len(); speed > f.config.Limit {
		return v.Div(speed).Mul(f.config.Limit)
	}
	return v
}

// bounce forces a velocity component back toward the world when the agent's
// position lies strictly outside it. It overrides whatever limit produced.
func (f *Flock) bounce(pos, v geometry.Vector2D) geometry.Vector2D {
	if pos.X > f.config.Width {
		v.X = -BoundarySpeed
	} else if pos.X < 0 {
		v.X = BoundarySpeed
	}

	if pos.Y > f.config.Height {
		v.Y = -BoundarySpeed
	} else if pos.Y < 0 {
		v.Y = BoundarySpeed
	}
	return v
}
