// Package socketcan drives a Linux SocketCAN interface as the backplane's
// bus transceiver, so the core can run on a desktop against vcan or a USB
// CAN adapter.
package socketcan

import (
	"encoding/binary"
	"errors"
	"fmt"

	"backplane/core"
)

// FrameSize is the size of a classical struct can_frame
const FrameSize = 16

// can_id flag bits and masks from linux/can.h
const (
	canEffFlag = 0x80000000
	canRtrFlag = 0x40000000
	canErrFlag = 0x20000000
	canSffMask = 0x000007FF
	canEffMask = 0x1FFFFFFF
)

var (
	ErrShortFrame = errors.New("socketcan: short frame")
	ErrErrorFrame = errors.New("socketcan: error frame")
	ErrClosed     = errors.New("socketcan: closed")
)

// MarshalFrame encodes f into the struct can_frame layout (little-endian
// can_id with EFF/RTR flags, DLC at byte 4, data at bytes 8..15).
func MarshalFrame(f core.Frame) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id := f.Address
	if f.Extended {
		id |= canEffFlag
	}
	if f.IsRequest {
		id |= canRtrFlag
	}

	raw := make([]byte, FrameSize)
	binary.LittleEndian.PutUint32(raw[0:4], id)
	raw[4] = f.Length
	if !f.IsRequest {
		copy(raw[8:], f.Data())
	}
	return raw, nil
}

// UnmarshalFrame decodes a struct can_frame
func UnmarshalFrame(raw []byte) (core.Frame, error) {
	var f core.Frame
	if len(raw) < FrameSize {
		return f, fmt.Errorf("%w: need %d bytes, got %d", ErrShortFrame, FrameSize, len(raw))
	}

	id := binary.LittleEndian.Uint32(raw[0:4])
	if id&canErrFlag != 0 {
		return f, ErrErrorFrame
	}

	f.Extended = id&canEffFlag != 0
	f.IsRequest = id&canRtrFlag != 0
	if f.Extended {
		f.Address = id & canEffMask
	} else {
		f.Address = id & canSffMask
	}

	f.Length = raw[4]
	if f.Length > core.MaxPayload {
		f.Length = core.MaxPayload
	}
	if !f.IsRequest {
		copy(f.Payload[:], raw[8:8+int(f.Length)])
	}
	return f, nil
}
