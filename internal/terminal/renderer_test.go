package terminal

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	cols, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestRenderer_CellFor(t *testing.T) {
	r := NewRenderer(nil, 500, 300)

	tests := []struct {
		name       string
		p          geometry.Vector2D
		x, y       int
		wantInside bool
	}{
		{"origin", geometry.Vector2D{X: 0, Y: 0}, 0, 0, true},
		{"centre", geometry.Vector2D{X: 250, Y: 150}, 25, 15, true},
		{"last cell", geometry.Vector2D{X: 499.9, Y: 299.9}, 49, 29, true},
		{"right edge is outside", geometry.Vector2D{X: 500, Y: 15}, 49, 1, false},
		{"negative clamps", geometry.Vector2D{X: -40, Y: -1}, 0, 0, false},
		{"far away clamps", geometry.Vector2D{X: 1e9, Y: 1e9}, 49, 29, false},
		{"infinite", geometry.Vector2D{X: math.Inf(1), Y: math.Inf(-1)}, 49, 0, false},
		{"nan", geometry.Vector2D{X: math.NaN(), Y: 15}, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, inside := r.CellFor(tt.p, 50, 30)
			assert.Equal(t, tt.x, x, "column")
			assert.Equal(t, tt.y, y, "row")
			assert.Equal(t, tt.wantInside, inside)
		})
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		v    geometry.Vector2D
		want rune
	}{
		{geometry.Vector2D{}, '•'},
		{geometry.Vector2D{X: 1, Y: 0}, '→'},
		{geometry.Vector2D{X: 1, Y: 1}, '↘'},
		{geometry.Vector2D{X: 0, Y: 2}, '↓'},
		{geometry.Vector2D{X: -1, Y: 1}, '↙'},
		{geometry.Vector2D{X: -3, Y: 0}, '←'},
		{geometry.Vector2D{X: -1, Y: -1}, '↖'},
		{geometry.Vector2D{X: 0, Y: -1}, '↑'},
		{geometry.Vector2D{X: 1, Y: -1}, '↗'},
		{geometry.Vector2D{X: math.NaN(), Y: 1}, '•'},
	}
	for _, tt := range tests {
		assert.Equal(t, string(tt.want), string(Glyph(tt.v)), "velocity %v", tt.v)
	}
}

func TestRenderer_Draw(t *testing.T) {
	screen := newScreen(t, 80, 31)
	r := NewRenderer(screen, 500, 300)

	snap := &simulation.Snapshot{
		Tick: 7,
		Positions: []geometry.Vector2D{
			{X: 250, Y: 150},
			{X: -20, Y: 150},
		},
		Velocities: []geometry.Vector2D{
			{X: 1, Y: 0},
			{},
		},
		Config:   flock.DefaultConfig(),
		Checksum: 0xabc,
	}
	r.Draw(snap, true)

	ch, _, style, _ := screen.GetContent(40, 15)
	assert.Equal(t, '→', ch)
	assert.Equal(t, r.Inside, style)

	ch, _, style, _ = screen.GetContent(0, 15)
	assert.Equal(t, '•', ch)
	assert.Equal(t, r.Outside, style, "agents outside the world use their own style")

	status := rowText(screen, 30)
	assert.Contains(t, status, "tick 7")
	assert.Contains(t, status, "boids 2")
	assert.Contains(t, status, "paused")
	assert.Contains(t, status, "0000000000000abc")
}

func TestRenderer_DrawStatusInNarrowTerminal(t *testing.T) {
	tests := []struct {
		cols int
		want string
	}{
		{80, " 00000000deadbeef  running  tick 123456  boids 1"},
		{26, " 00000000deadbeef  running"},
		{17, " 00000000deadbeef"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d columns", tt.cols), func(t *testing.T) {
			screen := newScreen(t, tt.cols, 10)
			r := NewRenderer(screen, 500, 300)
			r.Draw(&simulation.Snapshot{
				Tick:       123456,
				Positions:  []geometry.Vector2D{{X: 1, Y: 1}},
				Velocities: []geometry.Vector2D{{}},
				Checksum:   0xdeadbeef,
			}, false)

			assert.True(t, strings.HasPrefix(rowText(screen, 9), tt.want), "status %q", rowText(screen, 9))
		})
	}
}

func TestRenderer_DrawClearsPreviousFrame(t *testing.T) {
	screen := newScreen(t, 50, 31)
	r := NewRenderer(screen, 500, 300)

	r.Draw(&simulation.Snapshot{
		Positions:  []geometry.Vector2D{{X: 15, Y: 15}},
		Velocities: []geometry.Vector2D{{X: 1}},
	}, false)
	r.Draw(&simulation.Snapshot{
		Positions:  []geometry.Vector2D{{X: 400, Y: 200}},
		Velocities: []geometry.Vector2D{{X: 1}},
	}, false)

	ch, _, _, _ := screen.GetContent(1, 1)
	assert.Equal(t, ' ', ch)
	ch, _, _, _ = screen.GetContent(40, 20)
	assert.Equal(t, '→', ch)
}
