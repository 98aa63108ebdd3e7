package emulator

import (
	"sync/atomic"
	"time"

	"backplane/core"
)

// ADCSource produces raw 10-bit readings for a channel
type ADCSource interface {
	Read(ch core.ADCChannelID) uint16
}

// RampSource walks each channel up through the 10-bit range, each channel
// offset from the others so telemetry is easy to tell apart.
type RampSource struct {
	Step  uint16
	level [256]uint16
}

// Read returns the next ramp value for ch
func (r *RampSource) Read(ch core.ADCChannelID) uint16 {
	step := r.Step
	if step == 0 {
		step = 31
	}
	v := (r.level[ch] + uint16(ch)*128) % (core.DefaultRawMax + 1)
	r.level[ch] = (r.level[ch] + step) % (core.DefaultRawMax + 1)
	return v
}

// SimADC stands in for the converter. StartConversion arms one conversion;
// a goroutine completes it after the conversion time and raises the
// conversion-complete "interrupt".
type SimADC struct {
	source     ADCSource
	conversion time.Duration

	selected uint32
	start    chan struct{}
	handler  func(raw uint16)
}

// NewSimADC creates a simulated converter
func NewSimADC(source ADCSource, conversion time.Duration) *SimADC {
	return &SimADC{
		source:     source,
		conversion: conversion,
		start:      make(chan struct{}, 1),
	}
}

// SetHandler sets the conversion-complete handler. Call before Run.
func (a *SimADC) SetHandler(h func(raw uint16)) {
	a.handler = h
}

// SelectChannel implements core.ChannelSelector
func (a *SimADC) SelectChannel(ch core.ADCChannelID) {
	atomic.StoreUint32(&a.selected, uint32(ch))
}

// StartConversion implements core.ChannelSelector. It never blocks: it is
// called from inside the simulated interrupt.
func (a *SimADC) StartConversion() {
	select {
	case a.start <- struct{}{}:
	default:
	}
}

// Run performs conversions until done is closed
func (a *SimADC) Run(done <-chan struct{}) {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-done:
			return
		case <-a.start:
		}

		timer.Reset(a.conversion)
		select {
		case <-done:
			return
		case <-timer.C:
		}

		raw := a.source.Read(core.ADCChannelID(atomic.LoadUint32(&a.selected)))
		if a.handler != nil {
			core.Interrupt(func() { a.handler(raw) })
		}
	}
}
