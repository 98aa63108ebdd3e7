//go:build !linux

package socketcan

import (
	"errors"

	"backplane/core"
)

var errUnsupported = errors.New("socketcan: only available on linux")

// Bus is unavailable off Linux; Open always fails.
type Bus struct{}

// Open always fails off Linux
func Open(ifname string, receiveID uint32) (*Bus, error) {
	return nil, errUnsupported
}

func (b *Bus) OnFrameArrived(h core.FrameHandler) {}

func (b *Bus) TransmitFrame(f core.Frame) error {
	return errUnsupported
}

func (b *Bus) Close() error {
	return nil
}
