package core

import "errors"

// MaxPayload is the classical CAN payload size.
const MaxPayload = 8

// Identifier limits.
const (
	MaxStandardAddress = 0x7FF
	MaxExtendedAddress = 0x1FFFFFFF
)

var (
	ErrInvalidLength  = errors.New("frame length exceeds 8 bytes")
	ErrInvalidAddress = errors.New("frame address out of range")
)

// Frame is one message on the field bus.
//
// Address is a routing key, not a unique identifier: several nodes may
// transmit with the same one. Request frames (remote transmission requests)
// carry a Length but no payload; Payload bytes beyond Length are ignored.
type Frame struct {
	Address   uint32
	Extended  bool // 29-bit identifier
	IsRequest bool
	Length    uint8
	Payload   [MaxPayload]byte
}

// Validate checks the length and identifier range.
func (f Frame) Validate() error {
	if f.Length > MaxPayload {
		return ErrInvalidLength
	}
	limit := uint32(MaxStandardAddress)
	if f.Extended {
		limit = MaxExtendedAddress
	}
	if f.Address > limit {
		return ErrInvalidAddress
	}
	return nil
}

// Data returns the valid payload bytes. Request frames have none.
func (f *Frame) Data() []byte {
	if f.IsRequest {
		return nil
	}
	n := f.Length
	if n > MaxPayload {
		n = MaxPayload
	}
	return f.Payload[:n]
}

// NewDataFrame builds a data frame for address carrying data.
// Addresses above the standard range are marked extended.
func NewDataFrame(address uint32, data []byte) (Frame, error) {
	var f Frame
	if len(data) > MaxPayload {
		return f, ErrInvalidLength
	}
	f.Address = address
	f.Extended = address > MaxStandardAddress
	f.Length = uint8(len(data))
	copy(f.Payload[:], data)
	return f, f.Validate()
}
