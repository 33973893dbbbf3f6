package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestConfigFromProto(t *testing.T) {
	cfg := flock.NewConfig(5, 100, 8, 4, 500, 300)

	got, err := ConfigFromProto(ConfigToProto(cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestConfigFromProto_Malformed(t *testing.T) {
	missing := ConfigToProto(flock.DefaultConfig())
	delete(missing.Fields, "limit")

	wrongKind := ConfigToProto(flock.DefaultConfig())
	wrongKind.Fields["width"] = structpb.NewStringValue("wide")

	for name, msg := range map[string]*structpb.Struct{
		"missing field": missing,
		"wrong kind":    wrongKind,
		"empty":         {},
		"nil":           nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ConfigFromProto(msg)
			assert.ErrorIs(t, err, ErrMalformedMessage)
		})
	}
}

func TestSnapshotProto(t *testing.T) {
	snap := &Snapshot{
		Tick:       42,
		Positions:  []geometry.Vector2D{{X: 1.25, Y: 0}, {X: 10, Y: -3}},
		Velocities: []geometry.Vector2D{{X: 1.25, Y: 0}, {X: 0, Y: 3}},
		Config:     flock.NewConfig(5, 100, 8, 4, 500, 300),
		Checksum:   1<<63 + 12345,
	}

	got, err := SnapshotFromProto(snap.ToProto())
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestSnapshotFromProto_Malformed(t *testing.T) {
	snap := &Snapshot{
		Positions:  []geometry.Vector2D{{X: 1, Y: 2}},
		Velocities: []geometry.Vector2D{{X: 0, Y: 0}},
		Config:     flock.DefaultConfig(),
	}

	t.Run("length mismatch", func(t *testing.T) {
		msg := snap.ToProto()
		msg.Fields["velocities"] = structpb.NewListValue(&structpb.ListValue{})
		_, err := SnapshotFromProto(msg)
		assert.ErrorIs(t, err, flock.ErrLengthMismatch)
	})

	t.Run("bad pair", func(t *testing.T) {
		msg := snap.ToProto()
		msg.Fields["positions"] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(1),
		}})
		_, err := SnapshotFromProto(msg)
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})

	t.Run("bad checksum", func(t *testing.T) {
		msg := snap.ToProto()
		msg.Fields["checksum"] = structpb.NewStringValue("abc")
		_, err := SnapshotFromProto(msg)
		assert.ErrorIs(t, err, ErrMalformedMessage)
	})
}
