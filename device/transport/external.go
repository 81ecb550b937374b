package transport

import (
	"context"
	"errors"
	"io"
)

// USBSerialDial is injected by platform code with a real USB-CDC class
// driver. The driver itself is explicitly out of scope (§1); this
// package only needs something shaped like an io.ReadWriteCloser to run
// the configuration Link over (the same injection pattern the teacher
// uses for its own UART transport).
var USBSerialDial func(ctx context.Context) (io.ReadWriteCloser, error)

var errNoUSBSerialDial = errors.New("transport: USBSerialDial not set")

// DialUSBSerial adapts USBSerialDial to a Dialer for the configuration
// channel (§6: USB-CDC serial at the device end).
func DialUSBSerial() Dialer {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		if USBSerialDial == nil {
			return nil, errNoUSBSerialDial
		}
		return USBSerialDial(ctx)
	}
}

// MDNSAdvertiser is injected by platform code with a real mDNS responder
// (Wi-Fi firmware and the responder itself are out of scope, §1).
// Advertise should block, re-announcing as needed, until ctx is
// cancelled.
type MDNSAdvertiser func(ctx context.Context, hostname, service string, port int, ttlSeconds int) error

// AdvertiseMote calls advertise with Mote's fixed mDNS parameters (§6):
// hostname "mote.local", service "_mote._tcp", port 7465, TTL 60s.
func AdvertiseMote(ctx context.Context, advertise MDNSAdvertiser) error {
	if advertise == nil {
		return errors.New("transport: no MDNSAdvertiser configured")
	}
	return advertise(ctx, "mote.local", "_mote._tcp", CommandPort, 60)
}
