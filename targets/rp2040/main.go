//go:build rp2040

package main

import (
	"backplane/core"
)

func main() {
	link := newUARTLink()
	boardLEDs.configure()

	cfg := core.DefaultConfig()
	cfg.Sampler.Channels = senseChannels

	can, canErr := newMCPTransceiver()
	bp := core.New(cfg, link, can, adcSelector{})

	// Interrupt producers: bus arrivals into the mailbox, conversions into the sampler
	can.OnFrameArrived(bp.Mailbox().Produce)
	enableCANInterrupt(can)
	initADC(bp.Sampler())

	UpdateSystemTime()
	heartbeat := core.NewHeartbeat(boardLEDs, len(boardLEDs), core.TimerFromMS(core.DefaultHeartbeatPeriodMS))
	heartbeat.Start()

	bp.SetIdleHook(func() {
		UpdateSystemTime()
		core.ProcessTimers()
	})

	// Reports the init result, starts sampling, then polls forever
	bp.Start(canErr)
	bp.Run(nil)
}
