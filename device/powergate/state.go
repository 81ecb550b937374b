// Package powergate implements the USB-C source-capability watch (§4.5):
// it samples two CC-pin ADC channels, maps each to a PowerState, combines
// them, and exposes the latched result through a single-writer,
// multi-reader Gate.
package powergate

import (
	"github.com/usedhondacivic/mote/messages"
	"github.com/usedhondacivic/mote/x/mathx"
)

// adcMaxCount is the ADC's digital ceiling (12-bit, as on the RP2040).
const adcMaxCount = 4095

// adcFullScale is adcMaxCount+1, the divisor for converting a raw count
// to a fraction of the reference voltage.
const adcFullScale = 4096.0

// adcReference is the ADC's reference voltage.
const adcReference = 3.3

// Classify maps a raw ADC sample to a PowerState per the device's fixed
// threshold table (§4.5). raw is expected to already be scaled to the
// ADC's native 12-bit range (0..adcMaxCount); a reading outside it is
// reported Invalid rather than silently clamped into a band it didn't
// actually land in.
func Classify(raw uint16) messages.PowerState {
	if !mathx.Between(raw, 0, uint16(adcMaxCount)) {
		return messages.PowerInvalid
	}
	v := mathx.Clamp(float64(raw)*adcReference/adcFullScale, 0, adcReference)
	switch {
	case v > 0.0 && v < 0.15:
		return messages.PowerDisconnected
	case v > 0.25 && v < 0.61:
		return messages.PowerMax500mA
	case v > 0.70 && v < 1.16:
		return messages.PowerMax1p5A
	case v > 1.31:
		return messages.PowerMax3A
	default:
		return messages.PowerInvalid
	}
}

// Combine applies the two-channel combine rule (§4.5): either channel
// Invalid makes the result Invalid; both Disconnected stays Disconnected;
// one Disconnected alongside any other state yields that other state;
// every remaining pairing — including two equal non-Disconnected readings
// — is Invalid. This mirrors the source's CC1/CC2 match exactly,
// quirks included: there is no rule making (Max3A, Max3A) read as Max3A.
func Combine(a, b messages.PowerState) messages.PowerState {
	if a == messages.PowerInvalid || b == messages.PowerInvalid {
		return messages.PowerInvalid
	}
	if a == messages.PowerDisconnected && b == messages.PowerDisconnected {
		return messages.PowerDisconnected
	}
	if a == messages.PowerDisconnected {
		return b
	}
	if b == messages.PowerDisconnected {
		return a
	}
	return messages.PowerInvalid
}
