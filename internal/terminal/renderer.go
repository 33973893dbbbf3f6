// Package terminal draws flock snapshots on a character grid with tcell.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
)

// headings are indexed by octant, clockwise from east with y growing downwards.
var headings = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

const still = '•'

// Renderer scales world coordinates onto the screen, keeping the last row for
// a status line.
type Renderer struct {
	screen        tcell.Screen
	width, height float64

	Inside  tcell.Style
	Outside tcell.Style
	Status  tcell.Style
}

func NewRenderer(screen tcell.Screen, worldWidth, worldHeight float64) *Renderer {
	return &Renderer{
		screen:  screen,
		width:   worldWidth,
		height:  worldHeight,
		Inside:  tcell.StyleDefault.Foreground(tcell.ColorAqua),
		Outside: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		Status:  tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	}
}

// CellFor maps p onto a cols x rows grid. Points outside the world, including
// non-finite ones, are clamped to the border and reported with inside false.
func (r *Renderer) CellFor(p geometry.Vector2D, cols, rows int) (x, y int, inside bool) {
	inside = p.IsFinite() && p.X >= 0 && p.X < r.width && p.Y >= 0 && p.Y < r.height
	return scale(p.X, r.width, cols), scale(p.Y, r.height, rows), inside
}

func scale(v, extent float64, cells int) int {
	if cells <= 0 {
		return 0
	}
	f := math.Floor(v / extent * float64(cells))
	// the negated test also catches NaN
	if !(f >= 0) {
		return 0
	}
	if f > float64(cells-1) {
		return cells - 1
	}
	return int(f)
}

// Glyph picks an arrow for the heading of v.
func Glyph(v geometry.Vector2D) rune {
	if v.X == 0 && v.Y == 0 || !v.IsFinite() {
		return still
	}
	octant := int(math.Round(v.Angle() / (math.Pi / 4)))
	return headings[(octant%8+8)%8]
}

// Draw clears the screen and paints every agent of snap plus the status line.
func (r *Renderer) Draw(snap *simulation.Snapshot, paused bool) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	field := rows - 1

	for i, p := range snap.Positions {
		x, y, inside := r.CellFor(p, cols, field)
		style := r.Inside
		if !inside {
			style = r.Outside
		}
		r.screen.SetContent(x, y, Glyph(snap.Velocities[i]), nil, style)
	}

	state := "running"
	if paused {
		state = "paused"
	}
	// fixed width fields first, so narrow terminals only lose the key help
	status := []rune(fmt.Sprintf(" %016x  %s  tick %d  boids %d  [space] pause [n] step [q] quit",
		snap.Checksum, state, snap.Tick, snap.Len()))
	for x := 0; x < cols; x++ {
		ch := ' '
		if x < len(status) {
			ch = status[x]
		}
		r.screen.SetContent(x, rows-1, ch, nil, r.Status)
	}
	r.screen.Show()
}
