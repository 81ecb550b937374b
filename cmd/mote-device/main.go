//go:build rp2040

// Command mote-device is Mote's firmware entry point: it builds the bus,
// wires Core0 (networking) and Core1 (local I/O), and runs both until
// reset (§4.6).
package main

import (
	"context"
	"time"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/bit"
	"github.com/usedhondacivic/mote/device/configstate"
	"github.com/usedhondacivic/mote/device/hal"
	"github.com/usedhondacivic/mote/device/lidar"
	"github.com/usedhondacivic/mote/device/orchestrator"
	"github.com/usedhondacivic/mote/device/powergate"
	"github.com/usedhondacivic/mote/device/transport"
	"github.com/usedhondacivic/mote/machineboard"
	"github.com/usedhondacivic/mote/messages"
	"github.com/usedhondacivic/mote/wire"
	"github.com/usedhondacivic/mote/x/fmtx"
)

func main() {
	println("[mote] boot …")
	time.Sleep(1500 * time.Millisecond)

	ctx := context.Background()
	b := bus.NewBus(16)

	bitConn := b.NewConnection("bit")
	bitReg := bit.NewRegistry(bitConn)
	go bitReg.Run(ctx)

	cfgConn := b.NewConnection("configstate")
	store := configstate.NewStore(configstate.DefaultUID(machineboard.Variant), bitReg)

	scans := make(chan messages.Scan, 4)

	// Built up front so Core0 and Core1 await the same Gate; Core1's
	// StartPowerGate starts its sampling in bring-up order.
	powerSup := powergate.NewSupervisor(
		hal.OpenADCChannel(machineboard.PowerGateADC1Pin),
		hal.OpenADCChannel(machineboard.PowerGateADC2Pin),
		b.NewConnection("powergate"))

	c0 := &orchestrator.Core0{
		Gate: powerSup.Gate(),
		ServeCommandChannel: func(ctx context.Context) {
			l := wire.NewDeviceRuntimeCommandLink()
			r := transport.NewRunner("runtime-command", transport.ListenTCP(transport.HostAddr("0.0.0.0", transport.CommandPort)), l, b.NewConnection("runtime-command"))
			r.Run(ctx)
		},
		ServeDataChannel: func(ctx context.Context) {
			l := wire.NewDeviceRuntimeDataLink()
			r := transport.NewRunner("runtime-data", transport.ListenUDP(transport.HostAddr("0.0.0.0", transport.DataPort)), l, b.NewConnection("runtime-data"))
			go pumpScans(ctx, l, r, scans)
			r.Run(ctx)
		},
	}

	c1 := &orchestrator.Core1{
		Conn:  cfgConn,
		Store: store,
		BIT:   bitReg,
		StartUSBSerial: func(ctx context.Context) {
			l := wire.NewDeviceConfigurationLink()
			r := transport.NewRunner("configuration", transport.DialUSBSerial(), l, cfgConn)
			go pumpConfig(ctx, l, r, store)
			r.Run(ctx)
		},
		StartPowerGate: func(ctx context.Context) *powergate.Gate {
			go powerSup.Run(ctx)
			return powerSup.Gate()
		},
		StartLiDAR: func(ctx context.Context) {
			port, err := hal.OpenLidarUART("lidar", machineboard.LidarUARTTxPin, machineboard.LidarUARTRxPin)
			if err != nil {
				fmtx.Printf("[mote] lidar uart open failed: %s\n", err.Error())
				return
			}
			sm := lidar.NewStateMachine(port, b.NewConnection("lidar"), scans)
			sm.Run(ctx)
		},
	}

	go c0.Run(ctx)
	c1.Run(ctx)
}

// configStatePeriod is how often State is pushed to the host while the
// configuration link is connected, independent of inbound command
// traffic (§6: host commands are acknowledged implicitly by the next
// State, so a host that sends nothing must still see State arrive).
const configStatePeriod = 500 * time.Millisecond

func pumpConfig(ctx context.Context, l *wire.DeviceConfigurationLink, r *transport.Runner, store *configstate.Store) {
	ticker := time.NewTicker(configStatePeriod)
	defer ticker.Stop()

	send := func() {
		if st, ok := store.Snapshot(500 * time.Millisecond); ok {
			l.Send(st)
			r.Kick()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			send()
		default:
		}
		cmd, err, ok := l.PollReceive()
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if err != nil {
			continue
		}
		if !store.Lock(ctx) {
			return
		}
		store.ApplyConfigCommand(cmd)
		store.Unlock()
		send()
	}
}

func pumpScans(ctx context.Context, l *wire.DeviceRuntimeDataLink, r *transport.Runner, scans <-chan messages.Scan) {
	for {
		select {
		case <-ctx.Done():
			return
		case sc := <-scans:
			if err := l.Send(sc); err == nil {
				r.Kick()
			}
		}
	}
}
