// Package gui renders a running flock in an ebiten window, with a side panel
// to retune the rule weights while it runs.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/ui"
	"go.uber.org/zap"
)

const (
	PanelWidth = 260
	minHeight  = 420
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}

type Game struct {
	ctx    context.Context
	engine *simulation.Engine
	logger *zap.Logger

	initial flock.Config
	cfg     flock.Config
	last    *simulation.Snapshot

	panel         *ui.UIPanel
	separation    *ui.Slider
	alignment     *ui.Slider
	cohesion      *ui.Slider
	limit         *ui.Slider
	paused        *ui.Checkbox
	showRadius    *ui.Checkbox
	stepRequested bool

	updateAvg float64 // rolling average in ms
}

// NewGame builds the window state around a started engine. cfg must be the
// config the engine's flock was created with.
func NewGame(ctx context.Context, engine *simulation.Engine, cfg flock.Config, logger *zap.Logger) *Game {
	g := &Game{
		ctx:     ctx,
		engine:  engine,
		logger:  logger,
		initial: cfg,
		cfg:     cfg,
		last:    &simulation.Snapshot{Config: cfg},
	}

	panel := ui.NewUIPanel(0, 0, PanelWidth, float64(max(int(cfg.Height), minHeight)), "Boids")
	panel.AddSection("Rules")
	g.separation = panel.AddSlider("Separation", 0, 100, cfg.Separation)
	g.alignment = panel.AddSlider("Alignment", 1, 200, cfg.Alignment)
	g.cohesion = panel.AddSlider("Cohesion", 1, 1000, cfg.Cohesion)
	g.limit = panel.AddSlider("Speed limit", 0, 10, cfg.Limit)
	g.separation.Format = "%.0f"
	g.alignment.Format = "%.0f"
	g.cohesion.Format = "%.0f"

	panel.AddSection("Run")
	g.paused = panel.AddCheckbox("Paused (space)", false)
	panel.AddButton("Step", func() { g.stepRequested = true })
	panel.AddButton("Reset rules", g.resetRules)

	panel.AddSection("Display")
	g.showRadius = panel.AddCheckbox("Separation radius", false)

	g.panel = panel
	return g
}

func (g *Game) resetRules() {
	g.separation.Set(g.initial.Separation)
	g.alignment.Set(g.initial.Alignment)
	g.cohesion.Set(g.initial.Cohesion)
	g.limit.Set(g.initial.Limit)
	g.pushConfig()
}

func (g *Game) pushConfig() {
	g.cfg.Separation = g.separation.Value
	g.cfg.Alignment = g.alignment.Value
	g.cfg.Cohesion = g.cohesion.Value
	g.cfg.Limit = g.limit.Value
	if err := g.engine.UpdateConfig(g.ctx, g.cfg); err != nil {
		g.logger.Warn("failed to send config", zap.Error(err))
		return
	}
	g.logger.Debug("config updated", zap.Any("config", g.cfg))
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused.Toggle()
	}

	changed := false
	for _, s := range []*ui.Slider{g.separation, g.alignment, g.cohesion, g.limit} {
		// no short circuit: every slider must drop its flag
		changed = s.Changed() || changed
	}
	if changed {
		g.pushConfig()
	}

	// keep only the newest snapshot
	for drained := false; !drained; {
		select {
		case snap := <-g.engine.Snapshots():
			g.last = snap
		default:
			drained = true
		}
	}

	if !g.paused.Value || g.stepRequested {
		g.stepRequested = false
		if err := g.engine.Tick(g.ctx, 1); err != nil {
			g.logger.Warn("failed to send tick", zap.Error(err))
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	// world border
	vector.StrokeRect(screen, PanelWidth, 0, float32(g.cfg.Width), float32(g.cfg.Height), 1,
		color.RGBA{R: 60, G: 60, B: 90, A: 255}, true)

	for i, p := range g.last.Positions {
		x, y := p.X+PanelWidth, p.Y
		if g.showRadius.Value {
			vector.StrokeCircle(screen, float32(x), float32(y), float32(g.last.Config.Separation), 1,
				color.RGBA{R: 255, G: 80, B: 80, A: 60}, true)
		}
		v := g.last.Velocities[i]
		drawBoid(screen, x, y, math.Atan2(v.Y, v.X))
	}

	g.panel.Draw(screen)

	status := ""
	if g.paused.Value {
		status = "PAUSED\n"
	}
	msg := fmt.Sprintf("%sFPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nTick: %d\nBoids: %d\nChecksum: %016x",
		status,
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.last.Tick,
		g.last.Len(),
		g.last.Checksum)
	ebitenutil.DebugPrintAt(screen, msg, PanelWidth+10, 10)
}

// drawBoid draws a small triangle at (x, y) pointing along angle.
func drawBoid(screen *ebiten.Image, x, y, angle float64) {
	tipX := x + math.Cos(angle)*6
	tipY := y + math.Sin(angle)*6
	rightX := x + math.Cos(angle+2.5)*5
	rightY := y + math.Sin(angle+2.5)*5
	leftX := x + math.Cos(angle-2.5)*5
	leftY := y + math.Sin(angle-2.5)*5

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
}

// Layout keeps the panel on the left and the world at its own scale on the right.
func (g *Game) Layout(_, _ int) (int, int) {
	return PanelWidth + int(g.cfg.Width), max(int(g.cfg.Height), minHeight)
}
