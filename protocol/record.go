package protocol

// EncodeFrameRecord writes one relayed bus frame.
//
// The address is split big-endian into its low 16 bits. Payload bytes are
// written only for data frames, and never more than length or len(payload).
func EncodeFrameRecord(output OutputBuffer, address uint32, isRequest bool, length uint8, payload []byte) {
	flag := byte(FlagData)
	if isRequest {
		flag = FlagRequest
	}
	output.Output([]byte{
		byte(address >> 8),
		byte(address),
		flag,
		length,
	})
	if isRequest {
		return
	}
	n := int(length)
	if n > len(payload) {
		n = len(payload)
	}
	output.Output(payload[:n])
}

// EncodeTelemetry writes one sample cycle, one byte per channel in order.
// Values above 255 are clamped to 255.
func EncodeTelemetry(output OutputBuffer, samples []uint16) {
	var buf [TelemetryRecordSize]byte
	n := 0
	for _, v := range samples {
		if n == len(buf) {
			break
		}
		if v > 0xFF {
			v = 0xFF
		}
		buf[n] = byte(v)
		n++
	}
	output.Output(buf[:n])
}
