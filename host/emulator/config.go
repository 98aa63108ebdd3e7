package emulator

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/caarlos0/env/v6"

	"backplane/core"
)

// Address is a bus identifier. It parses decimal or 0x-prefixed hex from
// the environment and from command-line flags.
type Address uint32

// ParseAddress parses s with base prefixes and checks the identifier range
func ParseAddress(s string) (Address, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	if v > core.MaxExtendedAddress {
		return 0, core.ErrInvalidAddress
	}
	return Address(v), nil
}

func (a Address) String() string {
	return fmt.Sprintf("%#x", uint32(a))
}

// Set implements pflag.Value
func (a *Address) Set(s string) error {
	v, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Type implements pflag.Value
func (a *Address) Type() string {
	return "address"
}

// envParsers registers the custom field types with caarlos0/env
var envParsers = map[reflect.Type]env.ParserFunc{
	reflect.TypeOf(Address(0)): func(v string) (interface{}, error) {
		return ParseAddress(v)
	},
}

// Config is the desktop backplane's configuration, read from the
// environment and overridable from the command line.
type Config struct {
	CANInterface string `env:"BACKPLANE_CAN_IFACE" envDefault:"vcan0"`
	SerialDevice string `env:"BACKPLANE_SERIAL" envDefault:"/dev/ttyUSB0"`
	Baud         int    `env:"BACKPLANE_BAUD" envDefault:"9600"`

	Target  Address `env:"BACKPLANE_TARGET" envDefault:"0x020"`
	Receive Address `env:"BACKPLANE_RECEIVE" envDefault:"0x001"`

	// ConversionMS is how long one simulated conversion takes
	ConversionMS int `env:"BACKPLANE_CONVERSION_MS" envDefault:"50"`

	HeartbeatLEDs     int `env:"BACKPLANE_LEDS" envDefault:"4"`
	HeartbeatPeriodMS int `env:"BACKPLANE_HEARTBEAT_MS" envDefault:"200"`

	Debug bool `env:"BACKPLANE_DEBUG" envDefault:"false"`
}

// LoadConfig reads Config from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithFuncs(&cfg, envParsers); err != nil {
		return cfg, fmt.Errorf("emulator: parse environment: %w", err)
	}
	return cfg, nil
}

// CoreConfig converts the addressing settings for the backplane core
func (c Config) CoreConfig() (core.Config, error) {
	cc := core.DefaultConfig()

	if c.Target > core.MaxExtendedAddress {
		return cc, fmt.Errorf("emulator: target address %s: %w", c.Target, core.ErrInvalidAddress)
	}
	if c.Receive > core.MaxExtendedAddress {
		return cc, fmt.Errorf("emulator: receive address %s: %w", c.Receive, core.ErrInvalidAddress)
	}

	cc.TargetAddress = uint32(c.Target)
	cc.ReceiveAddress = uint32(c.Receive)
	return cc, nil
}
