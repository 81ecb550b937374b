// Command mote-hostctl is a minimal host-side example: it dials a Mote
// device's runtime-command channel, sends Ping, and waits for
// PingResponse (§6). It exists as a worked example of wiring host/link,
// not as the host operator tooling itself.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/transport"
	hostlink "github.com/usedhondacivic/mote/host/link"
	"github.com/usedhondacivic/mote/messages"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: mote-hostctl <device-host>")
		os.Exit(2)
	}
	deviceAddr := transport.HostAddr(os.Args[1], transport.CommandPort)

	b := bus.NewBus(16)
	conn := b.NewConnection("hostctl")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := hostlink.RuntimeCommand(conn, deviceAddr)
	go cmd.Runner.Run(ctx)

	println("[hostctl] dialing", deviceAddr)
	if err := cmd.Send(messages.Ping{}); err != nil {
		println("[hostctl] send failed:", err.Error())
		os.Exit(1)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		msg, err, ok := cmd.Link.PollReceive()
		if !ok {
			time.Sleep(20 * time.Millisecond)
			continue
		}
		if err != nil {
			println("[hostctl] decode error:", err.Error())
			continue
		}
		if _, isPong := msg.(messages.PingResponse); isPong {
			println("[hostctl] got PingResponse")
			return
		}
	}
	println("[hostctl] timed out waiting for PingResponse")
	os.Exit(1)
}
