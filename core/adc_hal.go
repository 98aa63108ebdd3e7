package core

// ADCChannelID identifies an analog input on the converter's multiplexer.
type ADCChannelID uint8

// ChannelSelector drives the converter hardware for the sampler.
// Both methods are called from the conversion-complete interrupt and must
// only poke registers: the result of the conversion started here arrives
// later as another interrupt.
type ChannelSelector interface {
	// SelectChannel routes ch to the converter input.
	SelectChannel(ch ADCChannelID)

	// StartConversion triggers a single conversion on the selected channel.
	StartConversion()
}
