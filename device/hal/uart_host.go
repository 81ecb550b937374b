//go:build !rp2040

package hal

import (
	"context"
	"time"

	"github.com/usedhondacivic/mote/errcode"
)

// SerialPort is the byte-stream interface device/lidar drives the
// sensor's wire protocol over.
type SerialPort interface {
	Write(b []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
	SetBaudRate(br uint32) error
}

// OpenLidarUART has no host implementation; the LiDAR only runs against
// real silicon. Host builds exist for running the wire/messages/device
// state-machine logic under `go test`, not for driving hardware.
func OpenLidarUART(id string, tx, rx int) (SerialPort, error) {
	return nil, errcode.Unsupported
}

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
// received, or ctx expires.
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
