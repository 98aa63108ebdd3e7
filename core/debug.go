package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures one main-loop event for post-mortem analysis
type TraceEvent struct {
	EventType uint8
	Clock     uint32 // System clock at event
	Address   uint32 // Bus address involved
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtFrameSent      = 1 // ingress byte went out as a frame
	EvtTransmitFailed = 2 // transceiver refused an ingress frame
	EvtFrameRelayed   = 3 // mailbox frame written to the host
	EvtTelemetrySent  = 4 // sample cycle written to the host
	EvtInitStatus     = 5 // bus controller init result (Value 1 = ok)
)

const (
	TraceRingSize = 32 // Keep last 32 events
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Trace ring buffer. Written from the main loop only.
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent appends an event to the trace ring, overwriting the oldest
func RecordEvent(eventType uint8, address, value uint32) {
	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		EventType: eventType,
		Clock:     GetTime(),
		Address:   address,
		Value:     value,
	}
	traceRingHead = (idx + 1) % TraceRingSize
}

// TraceEvents returns the recorded events, oldest first
func TraceEvents() []TraceEvent {
	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace writes the trace ring through the debug writer
func DumpTrace() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[TRACE] === Trace Dump ===")
	for _, evt := range TraceEvents() {
		var name string
		switch evt.EventType {
		case EvtFrameSent:
			name = "FRAME_SENT"
		case EvtTransmitFailed:
			name = "TX_FAILED!"
		case EvtFrameRelayed:
			name = "FRAME_RELAYED"
		case EvtTelemetrySent:
			name = "TELEMETRY"
		case EvtInitStatus:
			name = "INIT"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[TRACE] " + name +
			" clock=" + utoa(evt.Clock) +
			" id=" + hex32(evt.Address) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[TRACE] === End Dump ===")
}

// ClearTrace clears the trace ring
func ClearTrace() {
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
}
