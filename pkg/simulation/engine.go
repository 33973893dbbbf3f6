package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	actorSystemName = "BoidsFlock"
	flockActorName  = "flock"
	snapshotBuffer  = 10
	defaultAskWait  = 5 * time.Second
)

// Engine runs a flock inside a goakt actor system and gives renderers a
// plain Go API on top of the actor messages.
type Engine struct {
	system    actor.ActorSystem
	pid       *actor.PID
	snapshots chan *Snapshot
	logger    *zap.Logger
	runID     string
	askWait   time.Duration
}

// NewEngine starts the actor system and spawns the actor owning f.
// The engine takes ownership of f: it must not be touched afterwards.
func NewEngine(ctx context.Context, f *flock.Flock, logger *zap.Logger) (*Engine, error) {
	runID := uuid.NewString()
	logger = logger.With(zap.String("run", runID))

	system, err := actor.NewActorSystem(actorSystemName, actor.WithLogger(golog.DiscardLogger))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking the actor when the renderer lags
	snapshots := make(chan *Snapshot, snapshotBuffer)
	pid, err := system.Spawn(ctx, flockActorName, NewFlockActor(f, snapshots, logger))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock actor: %w", err)
	}

	logger.Info("engine started", zap.Int("population", f.Len()))
	return &Engine{
		system:    system,
		pid:       pid,
		snapshots: snapshots,
		logger:    logger,
		runID:     runID,
		askWait:   defaultAskWait,
	}, nil
}

// RunID identifies this engine in the logs.
func (e *Engine) RunID() string {
	return e.runID
}

// Snapshots delivers a snapshot after each processed Tick. Frames are
// dropped while the channel is full.
func (e *Engine) Snapshots() <-chan *Snapshot {
	return e.snapshots
}

// Tick asks the flock to advance by steps ticks. It returns once the message
// is queued, not once the steps are done.
func (e *Engine) Tick(ctx context.Context, steps uint64) error {
	return actor.Tell(ctx, e.pid, &Tick{Value: steps})
}

// UpdateConfig swaps the flock config before the next queued Tick.
func (e *Engine) UpdateConfig(ctx context.Context, cfg flock.Config) error {
	return actor.Tell(ctx, e.pid, ConfigToProto(cfg))
}

// Snapshot returns the state once every message queued before it is processed.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	reply, err := actor.Ask(ctx, e.pid, &GetSnapshot{}, e.askWait)
	if err != nil {
		return nil, fmt.Errorf("snapshot request failed: %w", err)
	}
	msg, ok := reply.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected snapshot reply %T", ErrMalformedMessage, reply)
	}
	return SnapshotFromProto(msg)
}

// Stop shuts the actor system down.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("engine stopping")
	if err := e.system.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop actor system: %w", err)
	}
	return nil
}
