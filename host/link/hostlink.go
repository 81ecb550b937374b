// Package link wires the three Host* Link variants to concrete
// transports and keeps them pumped via device/transport's Runner, the
// same lifecycle the device side uses (§6, §9).
package link

import (
	"context"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/transport"
	"github.com/usedhondacivic/mote/messages"
	"github.com/usedhondacivic/mote/wire"
)

// Endpoint bundles a Link with the Runner driving it, so a caller can
// Send a message and then Kick the Runner to flush it.
type Endpoint[I any, O any] struct {
	Link   *wire.Link[I, O]
	Runner *transport.Runner
}

// Send encodes and enqueues msg, then wakes the Runner to flush it.
func (e *Endpoint[I, O]) Send(msg O) error {
	if err := e.Link.Send(msg); err != nil {
		return err
	}
	e.Runner.Kick()
	return nil
}

// RuntimeCommand dials the device's TCP command channel (§6, port 7465).
func RuntimeCommand(conn *bus.Connection, deviceAddr string) *Endpoint[messages.RuntimeCommand, messages.RuntimeCommand] {
	l := wire.NewHostRuntimeCommandLink()
	r := transport.NewRunner("runtime-command", transport.DialTCP(deviceAddr), l, conn)
	return &Endpoint[messages.RuntimeCommand, messages.RuntimeCommand]{Link: l, Runner: r}
}

// RuntimeData dials the device's UDP data channel (§6, port 7475).
func RuntimeData(conn *bus.Connection, deviceAddr string) *Endpoint[messages.Scan, messages.SubscribeScans] {
	l := wire.NewHostRuntimeDataLink()
	r := transport.NewRunner("runtime-data", transport.DialUDP(deviceAddr), l, conn)
	return &Endpoint[messages.Scan, messages.SubscribeScans]{Link: l, Runner: r}
}

// Configuration dials the device's USB-CDC configuration channel (§6).
func Configuration(conn *bus.Connection) *Endpoint[messages.State, messages.ConfigCommand] {
	l := wire.NewHostConfigurationLink()
	r := transport.NewRunner("configuration", transport.DialUSBSerial(), l, conn)
	return &Endpoint[messages.State, messages.ConfigCommand]{Link: l, Runner: r}
}

// RunAll starts every endpoint's Runner and blocks until ctx is
// cancelled.
func RunAll(ctx context.Context, runners ...*transport.Runner) {
	done := make(chan struct{}, len(runners))
	for _, r := range runners {
		r := r
		go func() { r.Run(ctx); done <- struct{}{} }()
	}
	for range runners {
		<-done
	}
}
