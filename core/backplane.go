package core

// Default addressing
const (
	DefaultTargetAddress  = 0x020
	DefaultReceiveAddress = 0x001
)

// Init status lines written to the host at startup
const (
	StatusInitSuccess = "Can Init SUCCESS!"
	StatusInitFailure = "Can Init FAILURE!"
)

// Config holds the construction-time settings of a backplane
type Config struct {
	// TargetAddress is where bytes from the host are sent on the bus
	TargetAddress uint32

	// ReceiveAddress is this node's own identifier. Transceivers that
	// support acceptance filtering pass only frames for it; 0 accepts all.
	ReceiveAddress uint32

	Sampler SamplerConfig
}

// DefaultConfig returns the stock backplane settings
func DefaultConfig() Config {
	return Config{
		TargetAddress:  DefaultTargetAddress,
		ReceiveAddress: DefaultReceiveAddress,
		Sampler:        DefaultSamplerConfig(),
	}
}

// Backplane is the main loop of the bridge.
//
// Interrupt-side producers reach it through Mailbox().Produce (bus arrivals)
// and Sampler().OnConversionComplete (conversions). Everything else runs
// from Poll on a single goroutine.
type Backplane struct {
	cfg Config

	mailbox  *Mailbox
	adapter  *SerialAdapter
	sampler  *Sampler
	reporter *TelemetryReporter

	idle func()
}

// New wires the core components
func New(cfg Config, link SerialLink, xcvr Transceiver, selector ChannelSelector) *Backplane {
	sampler := NewSampler(cfg.Sampler, selector)
	return &Backplane{
		cfg:      cfg,
		mailbox:  NewMailbox(),
		adapter:  NewSerialAdapter(link, xcvr, cfg.TargetAddress),
		sampler:  sampler,
		reporter: NewTelemetryReporter(link, sampler),
	}
}

// Config returns the backplane configuration
func (b *Backplane) Config() Config {
	return b.cfg
}

// Mailbox returns the relay mailbox; register its Produce as the
// transceiver's frame handler.
func (b *Backplane) Mailbox() *Mailbox {
	return b.mailbox
}

// Sampler returns the ADC sampler for the conversion interrupt
func (b *Backplane) Sampler() *Sampler {
	return b.sampler
}

// Adapter returns the serial ingress/egress adapter
func (b *Backplane) Adapter() *SerialAdapter {
	return b.adapter
}

// SetIdleHook sets a function Run calls after every Poll
func (b *Backplane) SetIdleHook(fn func()) {
	b.idle = fn
}

// Start reports the bus controller init result to the host and starts
// sampling. A failed init is reported and otherwise ignored: pass-through
// and telemetry keep running without the bus.
func (b *Backplane) Start(initErr error) {
	if initErr != nil {
		b.adapter.WriteLine(StatusInitFailure)
		RecordEvent(EvtInitStatus, b.cfg.TargetAddress, 0)
		DebugPrintln("[INIT] bus controller: " + initErr.Error())
	} else {
		b.adapter.WriteLine(StatusInitSuccess)
		RecordEvent(EvtInitStatus, b.cfg.TargetAddress, 1)
	}
	b.sampler.Start()
}

// Poll runs one main loop iteration and reports whether it did any work.
// None of the three checks waits.
func (b *Backplane) Poll() bool {
	worked := b.adapter.PollIngress()

	if f, ok := b.mailbox.TryConsume(); ok {
		b.adapter.EmitFrame(f)
		worked = true
	}

	if b.reporter.OnCycleComplete() {
		worked = true
	}

	return worked
}

// Run polls until done is closed. A nil done runs forever.
func (b *Backplane) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		b.Poll()
		if b.idle != nil {
			b.idle()
		}
	}
}
