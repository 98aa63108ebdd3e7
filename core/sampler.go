package core

// ChannelCount is the number of analog lines in one sampling cycle
const ChannelCount = 4

// Default scaling: 10-bit conversions mapped onto 0..50
const (
	DefaultRawMax    = 1023
	DefaultScaledMax = 50
)

// SamplerConfig describes the rotation and the scaling applied to each
// conversion result.
type SamplerConfig struct {
	// Channels lists the multiplexer input sampled in each rotation slot
	Channels [ChannelCount]ADCChannelID

	// RawMax is the largest conversion result the hardware produces
	RawMax uint16

	// ScaledMax is what RawMax maps to. Must stay below 256 so every
	// scaled value fits one telemetry byte.
	ScaledMax uint16
}

// DefaultSamplerConfig samples the current/voltage sense inputs
// ADC0, ADC1, ADC6 and ADC7.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Channels:  [ChannelCount]ADCChannelID{0, 1, 6, 7},
		RawMax:    DefaultRawMax,
		ScaledMax: DefaultScaledMax,
	}
}

// Sampler rotates the converter across ChannelCount inputs, one conversion
// per conversion-complete interrupt, and flags the main loop once per full
// rotation.
//
// The samples, cursor, cycle and flag are written only by
// OnConversionComplete. The main loop reads them only through TakeCycle.
type Sampler struct {
	cfg      SamplerConfig
	selector ChannelSelector

	samples [ChannelCount]uint16
	cursor  uint8

	// cycle is the last full rotation, copied out of samples at wrap time
	cycle    [ChannelCount]uint16
	complete bool
}

// NewSampler creates a sampler; call Start to begin converting
func NewSampler(cfg SamplerConfig, selector ChannelSelector) *Sampler {
	if cfg.RawMax == 0 {
		cfg.RawMax = DefaultRawMax
	}
	if cfg.ScaledMax == 0 {
		cfg.ScaledMax = DefaultScaledMax
	}
	return &Sampler{
		cfg:      cfg,
		selector: selector,
	}
}

// Config returns the sampler configuration
func (s *Sampler) Config() SamplerConfig {
	return s.cfg
}

// Start resets the rotation to channel 0 and triggers the first conversion.
// From then on every conversion-complete interrupt starts the next one.
func (s *Sampler) Start() {
	Critical(func() {
		s.cursor = 0
		s.complete = false
		s.selector.SelectChannel(s.cfg.Channels[0])
		s.selector.StartConversion()
	})
}

// Scale maps a raw conversion result onto 0..ScaledMax with integer
// truncation. Results above RawMax are clamped.
func (s *Sampler) Scale(raw uint16) uint16 {
	if raw > s.cfg.RawMax {
		raw = s.cfg.RawMax
	}
	return uint16(uint32(raw) * uint32(s.cfg.ScaledMax) / uint32(s.cfg.RawMax))
}

// OnConversionComplete handles one finished conversion.
// Interrupt context only.
func (s *Sampler) OnConversionComplete(raw uint16) {
	s.samples[s.cursor] = s.Scale(raw)

	s.cursor = (s.cursor + 1) % ChannelCount

	s.selector.SelectChannel(s.cfg.Channels[s.cursor])
	s.selector.StartConversion()

	// The cursor is back at 0 only for the instant of this call, so the
	// main loop gets a dedicated flag rather than watching the cursor.
	if s.cursor == 0 {
		s.cycle = s.samples
		s.complete = true
	}
}

// TakeCycle returns the latest full cycle and clears the completion flag.
// ok is false if no cycle has completed since the last call. Main loop only.
func (s *Sampler) TakeCycle() (samples [ChannelCount]uint16, ok bool) {
	Critical(func() {
		if !s.complete {
			return
		}
		samples = s.cycle
		s.complete = false
		ok = true
	})
	return samples, ok
}

// CycleComplete reports whether a full cycle is waiting
func (s *Sampler) CycleComplete() bool {
	var complete bool
	Critical(func() {
		complete = s.complete
	})
	return complete
}

// Cursor returns the rotation slot of the conversion in progress
func (s *Sampler) Cursor() uint8 {
	var cursor uint8
	Critical(func() {
		cursor = s.cursor
	})
	return cursor
}
