package core

// Critical runs fn with interrupts masked. Every piece of state shared
// between an interrupt handler and the main loop is read or written by the
// main loop only from inside fn.
func Critical(fn func()) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	fn()
}
