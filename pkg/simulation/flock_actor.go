package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"go.uber.org/zap"
)

// FlockActor owns the authoritative flock. The mailbox serializes every
// Tick and config swap, so the flock itself needs no locking.
type FlockActor struct {
	flock *flock.Flock
	tick  uint64
	// Communication with the renderer
	snapshotCh chan<- *Snapshot
	logger     *zap.Logger
	// --- Benchmark Stats ---
	stepCount   int
	droppedSnap int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps f. Snapshots are pushed to snapshotCh after every Tick,
// a nil channel disables the push.
func NewFlockActor(f *flock.Flock, snapshotCh chan<- *Snapshot, logger *zap.Logger) *FlockActor {
	return &FlockActor{
		flock:       f,
		snapshotCh:  snapshotCh,
		logger:      logger,
		lastLogTime: time.Now(),
	}
}

func (a *FlockActor) PreStart(ctx *actor.Context) error {
	a.logger.Info("flock actor starting",
		zap.String("actor", ctx.ActorName()),
		zap.Int("population", a.flock.Len()))
	return nil
}

func (a *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		a.logger.Debug("flock actor started", zap.Any("config", a.flock.Config()))

	// The main simulation step, driven by the renderer loop
	case *Tick:
		steps := max(msg.GetValue(), 1)
		for range steps {
			a.flock.Step()
		}
		a.tick += steps
		a.stepCount += int(steps)
		a.logBenchmarks()
		a.pushSnapshot()

	// Config swap between two ticks
	case *UpdateConfig:
		cfg, err := ConfigFromProto(msg)
		if err != nil {
			a.logger.Warn("ignoring config update", zap.Error(err))
			return
		}
		a.flock.WithConfig(cfg)
		a.logger.Debug("config replaced", zap.Uint64("tick", a.tick), zap.Any("config", cfg))

	case *GetSnapshot:
		ctx.Response(NewSnapshot(a.tick, a.flock).ToProto())

	default:
		ctx.Unhandled()
	}
}

func (a *FlockActor) PostStop(ctx *actor.Context) error {
	a.logger.Info("flock actor stopped",
		zap.String("actor", ctx.ActorName()),
		zap.Uint64("tick", a.tick),
		zap.Uint64("checksum", a.flock.Checksum()))
	return nil
}

func (a *FlockActor) logBenchmarks() {
	if time.Since(a.lastLogTime) >= time.Second {
		a.logger.Info("📊 step rate",
			zap.Int("stepsPerSec", a.stepCount),
			zap.Int("droppedSnapshots", a.droppedSnap),
			zap.Int("population", a.flock.Len()),
			zap.Uint64("tick", a.tick),
			zap.Uint64("checksum", a.flock.Checksum()))
		a.stepCount = 0
		a.droppedSnap = 0
		a.lastLogTime = time.Now()
	}
}

func (a *FlockActor) pushSnapshot() {
	if a.snapshotCh == nil {
		return
	}
	select {
	case a.snapshotCh <- NewSnapshot(a.tick, a.flock):
	default:
		// Renderer busy, skip frame
		a.droppedSnap++
	}
}
