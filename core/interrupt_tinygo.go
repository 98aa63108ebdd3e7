//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts disables interrupts and returns the previous state
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt state
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

// Interrupt runs fn as an interrupt handler. On hardware the caller already
// is the ISR, so fn runs directly.
func Interrupt(fn func()) {
	fn()
}
