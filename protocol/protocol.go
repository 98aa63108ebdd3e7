// Package protocol holds the byte buffers and the record layouts the
// backplane writes to the host serial link.
//
// Two record kinds share the link and neither carries a delimiter,
// length prefix or checksum:
//
//	frame record:     [addrHigh][addrLow][isRequest][length][payload...]
//	telemetry record: [ch0][ch1][ch2][ch3]
//
// The host has to track byte counts itself.
package protocol

// Version represents the backplane firmware version
const Version = "0.1.0"

const (
	MessageMax = 64 // Scratch output capacity

	FrameRecordHeaderSize = 4
	FrameRecordMax        = FrameRecordHeaderSize + 8

	// One byte per channel
	TelemetryRecordSize = 4
)

// Request flag byte values in a frame record
const (
	FlagData    = 0x00
	FlagRequest = 0x01
)
