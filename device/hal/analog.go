//go:build rp2040

package hal

import "machine"

// AnalogChannel is the interface device/powergate samples for CC-pin
// voltage readings.
type AnalogChannel interface {
	Get() uint16
}

type adcChannel struct{ adc machine.ADC }

// OpenADCChannel configures pin as an analog input and returns a reader
// for it.
func OpenADCChannel(pin machine.Pin) AnalogChannel {
	machine.InitADC()
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &adcChannel{adc: adc}
}

// Get returns a reading scaled to the RP2040's native 12-bit ADC range
// (0..4095). machine.ADC.Get() normalizes every TinyGo target's reading to
// a full 16-bit value regardless of the chip's native resolution, so the
// raw count is rescaled down before it reaches device/powergate.Classify,
// which expects a 12-bit count to match the original firmware's reading.
func (c *adcChannel) Get() uint16 { return c.adc.Get() >> 4 }
