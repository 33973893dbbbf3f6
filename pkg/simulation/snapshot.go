package simulation

import (
	"fmt"
	"strconv"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is a copy of the flock state after a tick. Renderers may keep it
// as long as they like: it shares nothing with the live flock.
type Snapshot struct {
	Tick       uint64
	Positions  []geometry.Vector2D
	Velocities []geometry.Vector2D
	Config     flock.Config
	Checksum   uint64
}

// NewSnapshot copies the current state of f.
func NewSnapshot(tick uint64, f *flock.Flock) *Snapshot {
	return &Snapshot{
		Tick:       tick,
		Positions:  f.Positions(),
		Velocities: f.Velocities(),
		Config:     f.Config(),
		Checksum:   f.Checksum(),
	}
}

// Len returns the number of agents in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.Positions)
}

// ToProto encodes the snapshot as a Struct:
// {tick, checksum, config, positions: [[x, y]...], velocities: [[x, y]...]}.
// The checksum travels as a decimal string since a JSON number cannot hold
// every uint64.
func (s *Snapshot) ToProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"tick":       structpb.NewNumberValue(float64(s.Tick)),
		"checksum":   structpb.NewStringValue(strconv.FormatUint(s.Checksum, 10)),
		"config":     structpb.NewStructValue(ConfigToProto(s.Config)),
		"positions":  structpb.NewListValue(vectorsToList(s.Positions)),
		"velocities": structpb.NewListValue(vectorsToList(s.Velocities)),
	}}
}

// SnapshotFromProto decodes a Struct built by ToProto.
func SnapshotFromProto(msg *structpb.Struct) (*Snapshot, error) {
	fields := msg.GetFields()

	tick, err := numberField(msg, "tick")
	if err != nil {
		return nil, err
	}
	checksum, err := strconv.ParseUint(fields["checksum"].GetStringValue(), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrMalformedMessage, err)
	}
	cfg, err := ConfigFromProto(fields["config"].GetStructValue())
	if err != nil {
		return nil, err
	}
	positions, err := listToVectors(fields["positions"].GetListValue())
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	velocities, err := listToVectors(fields["velocities"].GetListValue())
	if err != nil {
		return nil, fmt.Errorf("velocities: %w", err)
	}
	if len(positions) != len(velocities) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, flock.ErrLengthMismatch)
	}

	return &Snapshot{
		Tick:       uint64(tick),
		Positions:  positions,
		Velocities: velocities,
		Config:     cfg,
		Checksum:   checksum,
	}, nil
}

func vectorsToList(vs []geometry.Vector2D) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, len(vs))}
	for i, v := range vs {
		list.Values[i] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(v.X),
			structpb.NewNumberValue(v.Y),
		}})
	}
	return list
}

func listToVectors(list *structpb.ListValue) ([]geometry.Vector2D, error) {
	out := make([]geometry.Vector2D, len(list.GetValues()))
	for i, item := range list.GetValues() {
		pair := item.GetListValue().GetValues()
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: entry %d is not an [x, y] pair", ErrMalformedMessage, i)
		}
		out[i] = geometry.NewVector(pair[0].GetNumberValue(), pair[1].GetNumberValue())
	}
	return out, nil
}
