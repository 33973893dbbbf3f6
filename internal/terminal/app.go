package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"go.uber.org/zap"
)

const defaultRate = 30

// App drives an Engine from a terminal: it ticks at Rate per second, draws
// every snapshot it receives and reacts to the keyboard.
type App struct {
	Screen   tcell.Screen
	Engine   *simulation.Engine
	Renderer *Renderer
	Logger   *zap.Logger
	Rate     int

	paused bool
	last   *simulation.Snapshot
}

// Run blocks until the user quits or ctx is done. The caller owns the
// screen and must Fini it afterwards.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval(a.Rate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			// nil once the screen is finalized
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	if snap, err := a.Engine.Snapshot(ctx); err == nil {
		a.last = snap
		a.Renderer.Draw(a.last, a.paused)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.handleInput(ctx, ev) {
				return nil
			}

		case snap := <-a.Engine.Snapshots():
			a.last = snap
			a.Renderer.Draw(a.last, a.paused)

		case <-ticker.C:
			if a.paused {
				continue
			}
			if err := a.Engine.Tick(ctx, 1); err != nil {
				a.Logger.Warn("failed to send tick", zap.Error(err))
			}
		}
	}
}

// tickInterval converts a rate to a ticker period. Rates past one tick per
// nanosecond get the shortest period instead of a zero one.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultRate
	}
	return max(time.Second/time.Duration(rate), 1)
}

// handleInput returns false when the user asked to quit.
func (a *App) handleInput(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.paused = !a.paused
			a.Logger.Debug("pause toggled", zap.Bool("paused", a.paused))
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n' && a.paused:
			// single step while paused
			if err := a.Engine.Tick(ctx, 1); err != nil {
				a.Logger.Warn("failed to send tick", zap.Error(err))
			}
		}
	case *tcell.EventResize:
		a.Screen.Sync()
	}

	if a.last != nil {
		a.Renderer.Draw(a.last, a.paused)
	}
	return true
}
