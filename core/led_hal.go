package core

// LEDDriver toggles status LEDs by index.
type LEDDriver interface {
	Toggle(index int)
}
