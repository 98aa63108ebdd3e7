package serial

import (
	"io"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the backplane UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the backplane's fixed UART rate
const DefaultBaud = 9600

// DefaultConfig returns the backplane serial settings for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}

// DefaultConfigWithBaud returns DefaultConfig with a different baud rate
func DefaultConfigWithBaud(device string, baud int) *Config {
	cfg := DefaultConfig(device)
	if baud > 0 {
		cfg.Baud = baud
	}
	return cfg
}
