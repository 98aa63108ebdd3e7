package core

import "backplane/protocol"

// TelemetryReporter writes each completed sample cycle to the host
type TelemetryReporter struct {
	link    SerialLink
	sampler *Sampler
	out     *protocol.ScratchOutput
}

// NewTelemetryReporter creates a reporter for sampler
func NewTelemetryReporter(link SerialLink, sampler *Sampler) *TelemetryReporter {
	return &TelemetryReporter{
		link:    link,
		sampler: sampler,
		out:     protocol.NewScratchOutput(),
	}
}

// OnCycleComplete sends the four samples, one byte each in channel order,
// if the sampler has flagged a full cycle. It reports whether it did.
func (r *TelemetryReporter) OnCycleComplete() bool {
	samples, ok := r.sampler.TakeCycle()
	if !ok {
		return false
	}

	r.out.Reset()
	protocol.EncodeTelemetry(r.out, samples[:])
	writeRecord(r.link, r.out.Result())
	RecordEvent(EvtTelemetrySent, 0, uint32(samples[0]))
	return true
}
