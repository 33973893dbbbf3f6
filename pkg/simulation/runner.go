package simulation

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner drives an Engine without a display: it queues a fixed number of
// ticks at a fixed rate while a second goroutine consumes the snapshots.
type Runner struct {
	Engine *Engine
	Logger *zap.Logger
	// Ticks is the number of steps to run.
	Ticks uint64
	// Rate is the number of ticks per second, 0 queues them all at once.
	// Rates too high for a ticker behave like 0.
	Rate int
	// OnSnapshot, when set, sees every snapshot the engine delivers.
	OnSnapshot func(*Snapshot)
}

// Run blocks until every tick has been processed or ctx is canceled, and
// returns the final state.
func (r *Runner) Run(ctx context.Context) (*Snapshot, error) {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return r.drive(gctx)
	})

	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case snap := <-r.Engine.Snapshots():
				if r.OnSnapshot != nil {
					r.OnSnapshot(snap)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Asked after the last Tick, so the mailbox order makes it the final state.
	final, err := r.Engine.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("run finished",
		zap.Uint64("tick", final.Tick),
		zap.Int("population", final.Len()),
		zap.Uint64("checksum", final.Checksum))
	return final, nil
}

func (r *Runner) drive(ctx context.Context) error {
	var interval time.Duration
	if r.Rate > 0 {
		interval = time.Second / time.Duration(r.Rate)
	}
	// rates above one tick per nanosecond round to zero and run unthrottled
	if interval <= 0 {
		for i := uint64(0); i < r.Ticks; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.Engine.Tick(ctx, 1); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := uint64(0); i < r.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Engine.Tick(ctx, 1); err != nil {
				return err
			}
		}
	}
	return nil
}
