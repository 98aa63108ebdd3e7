//go:build rp2040

package main

import (
	"backplane/core"
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral: free-running 1MHz counter
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime returns the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// UpdateSystemTime feeds the core timer from the hardware counter.
// core.TimerFreq is 1MHz, so ticks map one to one.
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
