package core

// Mailbox hands bus frames from the arrival interrupt to the main loop.
//
// It holds exactly one frame. A frame produced while the previous one is
// still pending replaces it; the older frame is gone and nothing records
// the loss. The host only notices it as a gap in the relayed sequence.
type Mailbox struct {
	slot    Frame
	pending bool
}

// NewMailbox returns an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Produce stores f and marks it pending.
// Interrupt context only: it copies a fixed-size value and sets a flag,
// nothing else, so it cannot fail or block.
func (m *Mailbox) Produce(f Frame) {
	m.slot = f
	m.pending = true
}

// TryConsume takes the pending frame, if any.
// Main loop only. The slot copy and the flag clear happen with interrupts
// masked, so the returned frame is always one whole produced frame and
// pending is never cleared for a frame that was not read.
func (m *Mailbox) TryConsume() (f Frame, ok bool) {
	Critical(func() {
		if !m.pending {
			return
		}
		f = m.slot
		m.pending = false
		ok = true
	})
	return f, ok
}

// Pending reports whether a frame is waiting
func (m *Mailbox) Pending() bool {
	var pending bool
	Critical(func() {
		pending = m.pending
	})
	return pending
}
