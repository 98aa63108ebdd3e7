//go:build rp2040

package main

import (
	"backplane/core"
	"device/rp"
	"machine"
	"runtime/interrupt"
)

// The RP2040's external analog inputs ADC0-ADC3 (GPIO26-29)
var senseChannels = [core.ChannelCount]core.ADCChannelID{0, 1, 2, 3}

// adcSampler receives conversion-complete interrupts
var adcSampler *core.Sampler

// adcSelector programs AINSEL and fires single conversions
type adcSelector struct{}

func (adcSelector) SelectChannel(ch core.ADCChannelID) {
	rp.ADC.CS.ReplaceBits(
		uint32(ch)<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)
}

func (adcSelector) StartConversion() {
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
}

// initADC routes the sense pins to the converter and enables the FIFO
// interrupt, which fires as soon as one result is ready.
func initADC(s *core.Sampler) {
	adcSampler = s

	machine.InitADC()
	for _, pin := range []machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3} {
		adc := machine.ADC{Pin: pin}
		adc.Configure(machine.ADCConfig{})
	}

	rp.ADC.FCS.ReplaceBits(1<<rp.ADC_FCS_THRESH_Pos, rp.ADC_FCS_THRESH_Msk, 0)
	rp.ADC.FCS.SetBits(rp.ADC_FCS_EN)
	rp.ADC.INTE.Set(rp.ADC_INTE_FIFO)

	intr := interrupt.New(rp.IRQ_ADC_IRQ_FIFO, handleADC)
	intr.Enable()
}

// handleADC pops the result and feeds the sampler. The converter is
// 12-bit; the sampler is configured for 10-bit readings.
func handleADC(interrupt.Interrupt) {
	raw := uint16(rp.ADC.FIFO.Get()&0xFFF) >> 2
	if adcSampler != nil {
		adcSampler.OnConversionComplete(raw)
	}
}
