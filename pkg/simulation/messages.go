package simulation

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages understood by FlockActor.
// goakt only routes proto.Message values, so the protocol is built on the
// protobuf well-known types.
type (
	// Tick advances the flock. Value is the number of steps; 0 counts as 1.
	Tick = wrapperspb.UInt64Value
	// UpdateConfig carries a whole flock.Config, see ConfigToProto.
	UpdateConfig = structpb.Struct
	// GetSnapshot is answered with the current Snapshot, see Snapshot.ToProto.
	GetSnapshot = emptypb.Empty
)

// ErrMalformedMessage is returned when a message lacks a required field.
var ErrMalformedMessage = errors.New("malformed message")

var configFields = []string{"separation", "alignment", "cohesion", "limit", "width", "height"}

// ConfigToProto encodes cfg as an UpdateConfig message.
func ConfigToProto(cfg flock.Config) *UpdateConfig {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"separation": structpb.NewNumberValue(cfg.Separation),
		"alignment":  structpb.NewNumberValue(cfg.Alignment),
		"cohesion":   structpb.NewNumberValue(cfg.Cohesion),
		"limit":      structpb.NewNumberValue(cfg.Limit),
		"width":      structpb.NewNumberValue(cfg.Width),
		"height":     structpb.NewNumberValue(cfg.Height),
	}}
}

// ConfigFromProto decodes an UpdateConfig message. Every field is required:
// a config is always replaced as a whole.
func ConfigFromProto(msg *UpdateConfig) (flock.Config, error) {
	values := make(map[string]float64, len(configFields))
	for _, name := range configFields {
		n, err := numberField(msg, name)
		if err != nil {
			return flock.Config{}, err
		}
		values[name] = n
	}
	return flock.NewConfig(values["separation"], values["alignment"], values["cohesion"],
		values["limit"], values["width"], values["height"]), nil
}

func numberField(msg *structpb.Struct, name string) (float64, error) {
	v, ok := msg.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedMessage, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: field %q is not a number", ErrMalformedMessage, name)
	}
	return n.NumberValue, nil
}
