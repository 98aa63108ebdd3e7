//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// interruptMask stands in for the CPU interrupt mask on regular Go.
// The main loop holds it while interrupts are "disabled", and simulated
// interrupt handlers hold it for their whole run, so a handler can never
// observe a half-finished critical section and two handlers never overlap.
var interruptMask sync.Mutex

// disableInterrupts blocks simulated interrupts. Sections must not nest.
func disableInterrupts() State {
	interruptMask.Lock()
	return 0
}

// restoreInterrupts re-enables simulated interrupts
func restoreInterrupts(state State) {
	interruptMask.Unlock()
}

// Interrupt runs fn as a simulated interrupt handler.
// Host-side drivers (SocketCAN reader, simulated ADC) and tests deliver
// their events through here.
func Interrupt(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
