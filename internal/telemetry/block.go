// internal/telemetry/block.go
package telemetry

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Telemetry block layout.
// These values are fixed by the peripheral firmware and MUST NOT be configurable.
const (
	// BlockSize is the minimum number of bytes a telemetry block must carry.
	BlockSize = 6

	// StateOffset is the first byte of the signed 16-bit little-endian system state.
	StateOffset = 0

	// VoltageOffset is the first byte of the 32-bit little-endian IEEE-754 voltage.
	VoltageOffset = 2
)

// ErrShortBlock is returned when a block is too short to decode.
var ErrShortBlock = errors.New("telemetry: block shorter than 6 bytes")

// Block is one decoded telemetry reading.
type Block struct {
	State   int16
	Voltage float32 // volts
}

// Decode decodes system state and voltage from a raw block.
// Bytes past BlockSize are ignored.
func Decode(raw []byte) (Block, error) {
	state, err := DecodeState(raw)
	if err != nil {
		return Block{}, err
	}
	v, err := DecodeVoltage(raw)
	if err != nil {
		return Block{}, err
	}
	return Block{State: state, Voltage: v}, nil
}

// DecodeState reads bytes 0-1 as a signed little-endian int16.
// Any bit pattern is accepted.
func DecodeState(raw []byte) (int16, error) {
	if len(raw) < BlockSize {
		return 0, fmt.Errorf("%w: got %d", ErrShortBlock, len(raw))
	}
	return int16(binary.LittleEndian.Uint16(raw[StateOffset : StateOffset+2])), nil
}

// DecodeVoltage reads bytes 2-5 as a little-endian float32.
func DecodeVoltage(raw []byte) (float32, error) {
	if len(raw) < BlockSize {
		return 0, fmt.Errorf("%w: got %d", ErrShortBlock, len(raw))
	}
	bits := binary.LittleEndian.Uint32(raw[VoltageOffset : VoltageOffset+4])
	return math.Float32frombits(bits), nil
}
