package flock

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// Checksum hashes the exact IEEE-754 bits of every position, then every
// velocity. Two flocks in the same state always share a checksum, which makes
// it a cheap way to compare replays.
func (f *Flock) Checksum() uint64 {
	return StateChecksum(f.positions, f.velocities)
}

// StateChecksum is Checksum for state held outside a Flock, such as a snapshot.
func StateChecksum(positions, velocities []geometry.Vector2D) uint64 {
	d := xxhash.New()
	var buf [16]byte
	for _, set := range [][]geometry.Vector2D{positions, velocities} {
		for _, v := range set {
			binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(v.X))
			binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(v.Y))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}
