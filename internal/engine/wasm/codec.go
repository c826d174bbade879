package wasm

import (
	"encoding/binary"
	"math"

	"doodlebox/internal/engine"
)

// packPoints serializes vertices as consecutive little-endian float64 x,y
// pairs, the layout add_polygon reads out of guest memory.
func packPoints(pts []engine.Point) []byte {
	buf := make([]byte, len(pts)*16)
	for i, p := range pts {
		binary.LittleEndian.PutUint64(buf[i*16:], math.Float64bits(p.X))
		binary.LittleEndian.PutUint64(buf[i*16+8:], math.Float64bits(p.Y))
	}
	return buf
}

// unpackRegion splits run_iteration's packed return value into the guest
// pointer (high word) and byte length (low word).
func unpackRegion(v uint64) (ptr, length uint32) {
	return uint32(v >> 32), uint32(v)
}
