package core

import "io"

// SerialLink is the byte transport to the host computer.
// ReadByte and WriteByte match io.ByteReader and io.ByteWriter;
// BytesAvailable must return without waiting for the host.
type SerialLink interface {
	io.ByteReader
	io.ByteWriter

	// BytesAvailable reports whether ReadByte has data to return.
	BytesAvailable() bool
}

// writeRecord writes data to the link as one contiguous run.
// Write errors are the serial driver's business; nothing is retried.
func writeRecord(link SerialLink, data []byte) {
	Critical(func() {
		for _, b := range data {
			_ = link.WriteByte(b)
		}
	})
}
