package core

import "errors"

// ErrUnsupportedFrame is returned for frames the controller cannot put on
// the bus as addressed.
var ErrUnsupportedFrame = errors.New("frame type not supported by bus controller")

// Controller is a bus controller chip whose receive interrupt and transmit
// path share one peripheral bus (an SPI-attached controller, for example).
type Controller interface {
	// Received reports whether a receive buffer holds a frame
	Received() bool

	// ReadFrame pops one frame from the receive buffers
	ReadFrame() (Frame, error)

	// WriteFrame queues f for transmission
	WriteFrame(f Frame) error

	// CanSend reports whether the controller can transmit f faithfully
	CanSend(f Frame) bool
}

// drainLimit bounds one OnInterrupt call so a controller that keeps
// reporting data without yielding frames cannot wedge the interrupt
const drainLimit = 16

// ControllerTransceiver adapts a Controller to Transceiver.
//
// OnInterrupt must be called from the controller's receive interrupt. The
// interrupt line stays asserted while any receive buffer is full, so every
// buffered frame is drained per call; under the mailbox's latest-wins
// policy only the newest survives anyway. Transmits run with interrupts
// masked so a receive never interleaves with a transmit on the shared bus.
type ControllerTransceiver struct {
	ctl     Controller
	handler FrameHandler
}

// NewControllerTransceiver wraps ctl
func NewControllerTransceiver(ctl Controller) *ControllerTransceiver {
	return &ControllerTransceiver{ctl: ctl}
}

// OnFrameArrived registers the receive handler. Call before enabling the
// receive interrupt.
func (t *ControllerTransceiver) OnFrameArrived(h FrameHandler) {
	t.handler = h
}

// OnInterrupt drains the receive buffers. Interrupt context only.
// It returns the number of frames delivered.
func (t *ControllerTransceiver) OnInterrupt() int {
	delivered := 0
	for i := 0; i < drainLimit && t.ctl.Received(); i++ {
		f, err := t.ctl.ReadFrame()
		if err != nil {
			continue
		}
		if t.handler != nil {
			t.handler(f)
			delivered++
		}
	}
	return delivered
}

// TransmitFrame implements Transceiver
func (t *ControllerTransceiver) TransmitFrame(f Frame) error {
	if !t.ctl.CanSend(f) {
		return ErrUnsupportedFrame
	}
	var err error
	Critical(func() {
		err = t.ctl.WriteFrame(f)
	})
	return err
}

// ReceivedFrame builds a Frame from fields read out of a controller.
// Length is clamped to MaxPayload and request frames keep no payload.
func ReceivedFrame(address uint32, extended, request bool, length uint8, data []byte) Frame {
	f := Frame{
		Address:   address,
		Extended:  extended,
		IsRequest: request,
		Length:    length,
	}
	if f.Length > MaxPayload {
		f.Length = MaxPayload
	}
	if !request {
		n := int(f.Length)
		if n > len(data) {
			n = len(data)
		}
		copy(f.Payload[:], data[:n])
	}
	return f
}
