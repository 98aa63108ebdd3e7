package core

import "backplane/protocol"

// SerialAdapter bridges the host serial link and the bus.
//
// Ingress turns every byte from the host into one single-byte data frame
// for the target address. Egress writes relayed bus frames to the host as
// frame records (see package protocol).
type SerialAdapter struct {
	link SerialLink
	xcvr Transceiver

	// tx is reused for every ingress byte; only the main loop touches it
	tx Frame

	out *protocol.ScratchOutput
}

// NewSerialAdapter prepares the outbound frame for target
func NewSerialAdapter(link SerialLink, xcvr Transceiver, target uint32) *SerialAdapter {
	return &SerialAdapter{
		link: link,
		xcvr: xcvr,
		tx: Frame{
			Address:  target,
			Extended: target > MaxStandardAddress,
			Length:   1,
		},
		out: protocol.NewScratchOutput(),
	}
}

// Target returns the address ingress frames are sent to
func (a *SerialAdapter) Target() uint32 {
	return a.tx.Address
}

// PollIngress forwards one waiting host byte, if there is one.
func (a *SerialAdapter) PollIngress() bool {
	if !a.link.BytesAvailable() {
		return false
	}
	b, err := a.link.ReadByte()
	if err != nil {
		return false
	}
	a.OnByteAvailable(b)
	return true
}

// OnByteAvailable sends b to the bus as a one-byte frame.
// A refused transmit drops the frame; the host is not told.
func (a *SerialAdapter) OnByteAvailable(b byte) {
	a.tx.Payload[0] = b
	if err := a.xcvr.TransmitFrame(a.tx); err != nil {
		RecordEvent(EvtTransmitFailed, a.tx.Address, uint32(b))
		if IsDebugEnabled() {
			DebugPrintln("[BUS] transmit failed id=" + hex32(a.tx.Address) + " err=" + err.Error())
		}
		return
	}
	RecordEvent(EvtFrameSent, a.tx.Address, uint32(b))
}

// EmitFrame writes f to the host as one contiguous frame record.
func (a *SerialAdapter) EmitFrame(f Frame) {
	a.out.Reset()
	protocol.EncodeFrameRecord(a.out, f.Address, f.IsRequest, f.Length, f.Payload[:])
	writeRecord(a.link, a.out.Result())
	RecordEvent(EvtFrameRelayed, f.Address, uint32(f.Length))
}

// WriteLine writes a status line terminated by LF CR
func (a *SerialAdapter) WriteLine(msg string) {
	a.out.Reset()
	a.out.Output([]byte(msg))
	a.out.Output([]byte{'\n', '\r'})
	writeRecord(a.link, a.out.Result())
}
