//go:build rp2040

// Package machineboard names the RP2040 pin assignments and board
// variant string for the Mote carrier board, the way the teacher's
// platform/boards package centralizes its own pin tables.
package machineboard

import "machine"

// Variant identifies this board for configstate.DefaultUID.
const Variant = "mote-rp2040"

const (
	LidarUARTTxPin machine.Pin = 4
	LidarUARTRxPin machine.Pin = 5

	// ADC-capable GPIOs on RP2040: GPIO26/27 back ADC0/ADC1.
	PowerGateADC1Pin machine.Pin = 26
	PowerGateADC2Pin machine.Pin = 27
)
