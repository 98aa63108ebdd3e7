// Package emulator runs the backplane core on a desktop: bus traffic goes
// through SocketCAN, the host link is a real serial port and the analog
// lines come from a simulated converter.
package emulator

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"backplane/core"
)

// Bus is a transceiver that can deliver received frames
type Bus interface {
	core.Transceiver
	OnFrameArrived(h core.FrameHandler)
}

// offlineBus stands in when the bus could not be opened; every transmit
// fails and nothing is ever received.
type offlineBus struct {
	err error
}

func (b offlineBus) TransmitFrame(core.Frame) error     { return b.err }
func (b offlineBus) OnFrameArrived(h core.FrameHandler) {}

// OfflineBus returns a Bus that refuses every transmit with err
func OfflineBus(err error) Bus {
	return offlineBus{err: err}
}

// logLEDs shows heartbeat steps in the log instead of on LEDs
type logLEDs struct{}

func (logLEDs) Toggle(index int) {
	glog.V(3).Infof("heartbeat led%d", index+1)
}

// idleSleep keeps the poller from spinning a core flat out
const idleSleep = 100 * time.Microsecond

// Emulator is a backplane wired to desktop collaborators
type Emulator struct {
	cfg       Config
	backplane *core.Backplane
	adc       *SimADC
	heartbeat *core.Heartbeat
	initErr   error
}

// New wires the core to link and bus. busErr is the result of opening the
// bus; a non-nil value is reported to the host at startup like a failed
// controller init.
func New(cfg Config, link core.SerialLink, bus Bus, busErr error, source ADCSource) (*Emulator, error) {
	coreCfg, err := cfg.CoreConfig()
	if err != nil {
		return nil, err
	}
	if source == nil {
		source = &RampSource{}
	}

	adc := NewSimADC(source, time.Duration(cfg.ConversionMS)*time.Millisecond)
	bp := core.New(coreCfg, link, bus, adc)
	adc.SetHandler(bp.Sampler().OnConversionComplete)
	bus.OnFrameArrived(bp.Mailbox().Produce)

	return &Emulator{
		cfg:       cfg,
		backplane: bp,
		adc:       adc,
		heartbeat: core.NewHeartbeat(logLEDs{}, cfg.HeartbeatLEDs, core.TimerFromMS(uint32(cfg.HeartbeatPeriodMS))),
		initErr:   busErr,
	}, nil
}

// Backplane returns the wired core
func (e *Emulator) Backplane() *core.Backplane {
	return e.backplane
}

// Run starts the backplane and polls until done is closed
func (e *Emulator) Run(done <-chan struct{}) {
	if e.cfg.Debug {
		core.SetDebugWriter(func(s string) { glog.Info(s) })
		core.SetDebugEnabled(true)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.adc.Run(done)
	}()

	start := time.Now()
	core.SetTime(0)
	e.heartbeat.Start()
	defer e.heartbeat.Stop()

	if e.initErr != nil {
		glog.Warningf("bus unavailable, running without it: %v", e.initErr)
	}
	e.backplane.Start(e.initErr)
	glog.Infof("backplane running, target %#x", e.backplane.Config().TargetAddress)

	e.backplane.SetIdleHook(func() {
		core.SetTime(uint32(time.Since(start).Microseconds()))
		core.ProcessTimers()
		time.Sleep(idleSleep)
	})
	e.backplane.Run(done)

	wg.Wait()
	if e.cfg.Debug {
		core.DumpTrace()
	}
	glog.Info("backplane stopped")
}
