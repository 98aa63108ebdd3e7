package core

import "sync/atomic"

// TimerFreq is the tick rate of GetTime. Targets feed SetTime in microseconds.
const TimerFreq = 1000000

var systemTicks uint32

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return atomic.LoadUint32(&systemTicks)
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	atomic.StoreUint32(&systemTicks, ticks)
}

// TimerFromMS converts milliseconds to timer ticks
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// timeBefore compares tick values across counter wrap-around
func timeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
