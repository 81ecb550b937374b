// Package orchestrator spawns Mote's device-side tasks across two cores
// and sequences their startup behind the power-gate (§4.6). It replaces
// the teacher's board-bring-up main loop with Mote's own rail ordering,
// keeping the same "single select loop per core, ticker-driven
// housekeeping" shape.
package orchestrator

import (
	"context"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/bit"
	"github.com/usedhondacivic/mote/device/configstate"
	"github.com/usedhondacivic/mote/device/powergate"
	"github.com/usedhondacivic/mote/messages"
)

// Core0 is networking: Wi-Fi firmware driver, DHCP client, mDNS
// responder, TCP command server, UDP data server (§4.6). The concrete
// drivers are external collaborators (§1); Core0 only needs the
// functions that bring each of them up.
type Core0 struct {
	Gate *powergate.Gate

	// EnableRadio brings up Wi-Fi once the power gate reaches ≥1.5A.
	// Out of scope per §1; nil is a valid no-op for host-side testing.
	EnableRadio func(ctx context.Context) error

	// ServeCommandChannel and ServeDataChannel run the Host-facing TCP
	// and UDP transports until ctx is cancelled.
	ServeCommandChannel func(ctx context.Context)
	ServeDataChannel    func(ctx context.Context)
}

// Run blocks until the ≥1.5A gate opens, enables the radio, then starts
// the two network-facing services concurrently, returning when ctx is
// cancelled (§4.6: "Core-0 blocks on ≥1.5A before enabling the radio").
func (c *Core0) Run(ctx context.Context) error {
	if err := c.Gate.Await(ctx, messages.PowerMax1p5A); err != nil {
		return err
	}
	if c.EnableRadio != nil {
		if err := c.EnableRadio(ctx); err != nil {
			return err
		}
	}

	done := make(chan struct{}, 2)
	if c.ServeCommandChannel != nil {
		go func() { c.ServeCommandChannel(ctx); done <- struct{}{} }()
	} else {
		done <- struct{}{}
	}
	if c.ServeDataChannel != nil {
		go func() { c.ServeDataChannel(ctx); done <- struct{}{} }()
	} else {
		done <- struct{}{}
	}
	<-done
	<-done
	return nil
}

// Core1 is local I/O: USB-CDC configuration serial, LiDAR, drive-base,
// power-gate (§4.6). Startup order is USB serial → power-gate → await
// ≥1.5A → LiDAR → await ≥3A → drive-base.
type Core1 struct {
	Conn  *bus.Connection
	Store *configstate.Store
	BIT   *bit.Registry

	// StartUSBSerial runs the configuration-channel Link/transport pair
	// until ctx is cancelled.
	StartUSBSerial func(ctx context.Context)

	// StartPowerGate builds and runs the power-gate Supervisor in the
	// background, returning the Gate Core0 also awaits once it exists.
	StartPowerGate func(ctx context.Context) *powergate.Gate

	// StartLiDAR runs the LiDAR state machine until ctx is cancelled.
	StartLiDAR func(ctx context.Context)

	// StartDriveBase brings up the drive base once ≥3A is available.
	// Out of scope per §1 (PID/H-bridge/PIO detail); nil is a valid
	// no-op.
	StartDriveBase func(ctx context.Context)

	gate *powergate.Gate
}

// Run executes Core1's bring-up order and then blocks until ctx is
// cancelled.
func (c *Core1) Run(ctx context.Context) error {
	if c.StartUSBSerial != nil {
		go c.StartUSBSerial(ctx)
	}

	if c.StartPowerGate != nil {
		c.gate = c.StartPowerGate(ctx)
	} else {
		c.gate = powergate.NewGate()
	}

	if err := c.gate.Await(ctx, messages.PowerMax1p5A); err != nil {
		return err
	}
	if c.StartLiDAR != nil {
		go c.StartLiDAR(ctx)
	}

	if err := c.gate.Await(ctx, messages.PowerMax3A); err != nil {
		return err
	}
	if c.StartDriveBase != nil {
		go c.StartDriveBase(ctx)
	}

	<-ctx.Done()
	return ctx.Err()
}

// Gate returns the power gate Core0 should await. Only valid after Run
// has started (it is created at the top of Run); callers that need it
// before then should build their own Gate and share it via both Core0
// and Core1's StartPowerGate hook instead.
func (c *Core1) Gate() *powergate.Gate { return c.gate }
