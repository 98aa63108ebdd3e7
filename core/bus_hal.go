package core

// Transceiver is the bus-controller side of the backplane.
//
// Implementations program the controller chip and, when a frame arrives,
// decode it and hand it to the callback registered with OnFrameArrived
// from interrupt context (core.Interrupt on regular Go builds).
type Transceiver interface {
	// TransmitFrame queues one frame on the bus. A non-nil error means the
	// controller refused it; the core does not retry.
	TransmitFrame(f Frame) error
}

// FrameHandler receives decoded frames in interrupt context.
type FrameHandler func(f Frame)
