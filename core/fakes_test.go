package core

import (
	"errors"
	"io"
)

// fakeLink is an in-memory SerialLink
type fakeLink struct {
	input   []byte
	written []byte
}

func (l *fakeLink) BytesAvailable() bool {
	return len(l.input) > 0
}

func (l *fakeLink) ReadByte() (byte, error) {
	if len(l.input) == 0 {
		return 0, io.EOF
	}
	b := l.input[0]
	l.input = l.input[1:]
	return b, nil
}

func (l *fakeLink) WriteByte(b byte) error {
	l.written = append(l.written, b)
	return nil
}

var errBusOff = errors.New("bus off")

// fakeTransceiver records transmitted frames
type fakeTransceiver struct {
	sent []Frame
	err  error
}

func (x *fakeTransceiver) TransmitFrame(f Frame) error {
	if x.err != nil {
		return x.err
	}
	x.sent = append(x.sent, f)
	return nil
}

// fakeSelector records the multiplexer programming done by the sampler
type fakeSelector struct {
	selected []ADCChannelID
	starts   int
}

func (s *fakeSelector) SelectChannel(ch ADCChannelID) {
	s.selected = append(s.selected, ch)
}

func (s *fakeSelector) StartConversion() {
	s.starts++
}

// fakeLEDs counts toggles per LED index
type fakeLEDs struct {
	order []int
}

func (l *fakeLEDs) Toggle(index int) {
	l.order = append(l.order, index)
}
