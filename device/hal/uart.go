//go:build rp2040

// Package hal adapts on-chip peripherals (UART, ADC) to the small
// interfaces device/lidar and device/powergate depend on, the way the
// teacher's resource provider adapts machine/uartx to its own core
// interfaces — but scoped to Mote's fixed two-peripheral hardware
// surface rather than a generic claimable-bus registry.
package hal

import (
	"context"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"
	"machine"
)

// SerialPort is the byte-stream interface device/lidar drives the
// sensor's wire protocol over.
type SerialPort interface {
	Write(b []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
	SetBaudRate(br uint32) error
}

type uartPort struct{ u *uartx.UART }

// OpenLidarUART configures and returns the UART used for the LiDAR's
// wire protocol, at 460 800 baud 8-N-1 (§6).
func OpenLidarUART(id string, tx, rx machine.Pin) (SerialPort, error) {
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		hw = uartx.UART0
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: 460800,
		TX:       tx,
		RX:       rx,
	}); err != nil {
		return nil, err
	}
	if err := hw.SetFormat(8, 1, uartx.ParityNone); err != nil {
		return nil, err
	}
	return &uartPort{u: hw}, nil
}

func (p *uartPort) Write(b []byte) (int, error) { return p.u.Write(b) }

func (p *uartPort) RecvSomeContext(ctx context.Context, buf []byte) (int, error) {
	return p.u.RecvSomeContext(ctx, buf)
}

func (p *uartPort) SetBaudRate(br uint32) error { p.u.SetBaudRate(br); return nil }

// ReadFull blocks, honoring ctx, until exactly len(buf) bytes have been
// read or ctx expires.
func ReadFull(ctx context.Context, p SerialPort, buf []byte) error {
	got := 0
	for got < len(buf) {
		n, err := p.RecvSomeContext(ctx, buf[got:])
		got += n
		if err != nil {
			return err
		}
	}
	return nil
}

// QuietDrain reads and discards bytes until quiet passes with nothing
// received, or ctx expires — used by the LiDAR Reset transition (§4.4).
func QuietDrain(ctx context.Context, p SerialPort, quiet time.Duration) {
	buf := make([]byte, 64)
	for {
		dctx, cancel := context.WithTimeout(ctx, quiet)
		n, err := p.RecvSomeContext(dctx, buf)
		cancel()
		if n == 0 || err != nil {
			return
		}
	}
}
