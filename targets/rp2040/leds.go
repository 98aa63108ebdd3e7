//go:build rp2040

package main

import "machine"

// Status LEDs, stepped in order by the heartbeat
var boardLEDs = ledBank{machine.GPIO2, machine.GPIO3, machine.GPIO4, machine.GPIO5}

type ledBank []machine.Pin

func (b ledBank) configure() {
	for _, pin := range b {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
}

// Toggle implements core.LEDDriver
func (b ledBank) Toggle(index int) {
	pin := b[index]
	pin.Set(!pin.Get())
}
