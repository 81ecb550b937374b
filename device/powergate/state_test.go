package powergate

import (
	"testing"

	"github.com/usedhondacivic/mote/messages"
)

func voltsToRaw(v float64) uint16 {
	return uint16(v * adcFullScale / adcReference)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		volts float64
		want  messages.PowerState
	}{
		{0.0, messages.PowerInvalid},
		{0.10, messages.PowerDisconnected},
		{0.20, messages.PowerInvalid},
		{0.40, messages.PowerMax500mA},
		{0.65, messages.PowerInvalid},
		{1.00, messages.PowerMax1p5A},
		{1.25, messages.PowerInvalid},
		{2.00, messages.PowerMax3A},
	}
	for _, c := range cases {
		got := Classify(voltsToRaw(c.volts))
		if got != c.want {
			t.Errorf("Classify(%.2fV) = %v, want %v", c.volts, got, c.want)
		}
	}
}

func TestClassify_OutOfRangeRawIsInvalid(t *testing.T) {
	if got := Classify(4096); got != messages.PowerInvalid {
		t.Errorf("Classify(4096) = %v, want PowerInvalid", got)
	}
	if got := Classify(65535); got != messages.PowerInvalid {
		t.Errorf("Classify(65535) = %v, want PowerInvalid", got)
	}
}

func TestCombine(t *testing.T) {
	cases := []struct {
		a, b messages.PowerState
		want messages.PowerState
	}{
		{messages.PowerDisconnected, messages.PowerMax3A, messages.PowerMax3A},
		{messages.PowerMax3A, messages.PowerDisconnected, messages.PowerMax3A},
		{messages.PowerDisconnected, messages.PowerDisconnected, messages.PowerDisconnected},
		{messages.PowerMax500mA, messages.PowerMax1p5A, messages.PowerInvalid},
		{messages.PowerMax3A, messages.PowerMax3A, messages.PowerInvalid},
		{messages.PowerInvalid, messages.PowerMax3A, messages.PowerInvalid},
		{messages.PowerMax3A, messages.PowerInvalid, messages.PowerInvalid},
	}
	for _, c := range cases {
		got := Combine(c.a, c.b)
		if got != c.want {
			t.Errorf("Combine(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
