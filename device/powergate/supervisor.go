package powergate

import (
	"context"
	"time"

	"github.com/usedhondacivic/mote/bus"
	"github.com/usedhondacivic/mote/device/bit"
	"github.com/usedhondacivic/mote/messages"
)

// Channel is the source of one CC-pin ADC reading.
type Channel interface {
	Get() uint16
}

// TopicState is where the supervisor retained-publishes the combined
// PowerState, for telemetry and for peers that would rather subscribe
// than hold a direct *Gate reference (e.g. across a process boundary).
var TopicState = bus.Topic{"power", "state"}

// Supervisor samples cc1/cc2 at 1 Hz, combines their readings, and
// drives a Gate plus BIT reporting (§4.5). Bring-up code awaits the
// Gate directly; Run is what actually advances it.
type Supervisor struct {
	cc1, cc2 Channel
	conn     *bus.Connection
	gate     *Gate

	sawMax1p5A bool
	sawMax3A   bool
}

// NewSupervisor builds a Supervisor reading cc1/cc2 and publishing
// through conn. The returned Gate starts at PowerInvalid.
func NewSupervisor(cc1, cc2 Channel, conn *bus.Connection) *Supervisor {
	return &Supervisor{cc1: cc1, cc2: cc2, conn: conn, gate: NewGate()}
}

// Gate returns the latched signal bring-up code awaits.
func (s *Supervisor) Gate() *Gate { return s.gate }

// Run samples both channels once per second until ctx is cancelled,
// updating the Gate and the retained TopicState message on every sample.
// Each capability BIT record is set to Pass once, the first time its
// threshold is reached (§4.5, mirroring the source's one-shot
// BIT-on-first-crossing behavior).
func (s *Supervisor) Run(ctx context.Context) {
	bit.Report(s.conn, "power", "Init", messages.BITPass)
	bit.Report(s.conn, "power", "7.5W Capable (enables WIFI)", messages.BITWaiting)
	bit.Report(s.conn, "power", "15W Capable (enables drive base)", messages.BITWaiting)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *Supervisor) sample() {
	state := Combine(Classify(s.cc1.Get()), Classify(s.cc2.Get()))
	s.gate.Set(state)

	msg := s.conn.NewMessage(TopicState, state, true)
	s.conn.Publish(msg)

	if !s.sawMax1p5A && (state == messages.PowerMax1p5A || state == messages.PowerMax3A) {
		s.sawMax1p5A = true
		bit.Report(s.conn, "power", "7.5W Capable (enables WIFI)", messages.BITPass)
	}
	if !s.sawMax3A && state == messages.PowerMax3A {
		s.sawMax3A = true
		bit.Report(s.conn, "power", "15W Capable (enables drive base)", messages.BITPass)
	}
}
