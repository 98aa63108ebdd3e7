//go:build rp2040

package main

import (
	"backplane/core"
	"machine"
)

const hostBaud = 9600

// uartLink is the host serial link on UART0. The TinyGo UART buffers
// received bytes from its own interrupt, so polling it never waits.
type uartLink struct {
	uart *machine.UART
}

var _ core.SerialLink = (*uartLink)(nil)

func newUARTLink() *uartLink {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: hostBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return &uartLink{uart: uart}
}

func (l *uartLink) BytesAvailable() bool {
	return l.uart.Buffered() > 0
}

func (l *uartLink) ReadByte() (byte, error) {
	return l.uart.ReadByte()
}

func (l *uartLink) WriteByte(b byte) error {
	return l.uart.WriteByte(b)
}
