//go:build rp2040

package main

import (
	"backplane/core"
	"errors"
	"machine"

	"tinygo.org/x/drivers/mcp2515"
)

// MCP2515 wiring on SPI0
const (
	canSCK  = machine.GPIO18
	canMOSI = machine.GPIO19
	canMISO = machine.GPIO16
	canCS   = machine.GPIO17
	canINT  = machine.GPIO20

	canSPIFrequency = 4000000
)

var (
	errCANInit  = errors.New("mcp2515 did not enter normal mode")
	errCANEmpty = errors.New("mcp2515 returned no message")
)

// mcpController is the MCP2515 as a core.Controller
type mcpController struct {
	dev *mcp2515.Device
}

func (c mcpController) Received() bool {
	return c.dev.Received()
}

func (c mcpController) ReadFrame() (core.Frame, error) {
	msg, err := c.dev.Rx()
	if err != nil {
		return core.Frame{}, err
	}
	if msg == nil {
		return core.Frame{}, errCANEmpty
	}
	return core.ReceivedFrame(msg.ID, msg.Ext, msg.Rtr, msg.Dlc, msg.Data), nil
}

func (c mcpController) WriteFrame(f core.Frame) error {
	return c.dev.Tx(f.Address, f.Length, f.Data())
}

// CanSend is false for extended and request frames; the driver's Tx
// masks the id to 16 bits and never sets RTR.
func (c mcpController) CanSend(f core.Frame) bool {
	return !f.Extended && !f.IsRequest
}

// newMCPTransceiver configures SPI and the controller. The transceiver is
// returned even when init fails so the caller can keep running; transmits
// will then fail and nothing will be received.
func newMCPTransceiver() (*core.ControllerTransceiver, error) {
	spi := machine.SPI0
	err := spi.Configure(machine.SPIConfig{
		Frequency: canSPIFrequency,
		SCK:       canSCK,
		SDO:       canMOSI,
		SDI:       canMISO,
		Mode:      0,
	})
	dev := mcp2515.New(spi, canCS)
	t := core.NewControllerTransceiver(mcpController{dev: dev})
	if err != nil {
		return t, err
	}

	dev.Configure()
	if err := dev.Begin(mcp2515.CAN500kBps, mcp2515.Clock16MHz); err != nil {
		return t, errCANInit
	}
	return t, nil
}

// enableCANInterrupt arms the INT line. It falls when a receive buffer
// fills; the handler drains every buffer before returning.
func enableCANInterrupt(t *core.ControllerTransceiver) {
	canINT.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	canINT.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		t.OnInterrupt()
	})
}
