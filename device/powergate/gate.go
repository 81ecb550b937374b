package powergate

import (
	"context"
	"sync"

	"github.com/usedhondacivic/mote/messages"
)

// Gate is the latched POWER_GATE signal (§5): a single writer publishes
// PowerState transitions, and any number of readers can await a floor
// without polling. The "≥1.5 A" and "≥3 A" gates named in §4.6 are both
// expressed as Await calls against the same primitive with different
// floors (§9 open question: the source uses an identical predicate for
// both, so we expose one gate rather than guessing a distinct ≥3 A rule).
type Gate struct {
	mu    sync.Mutex
	state messages.PowerState
	waitC chan struct{}
}

// NewGate returns a Gate initialized to PowerInvalid.
func NewGate() *Gate {
	return &Gate{state: messages.PowerInvalid, waitC: make(chan struct{})}
}

// Set publishes a new state, waking every blocked Await call whose floor
// it now satisfies (and any whose floor it no longer satisfies, so they
// can re-check and keep waiting).
func (g *Gate) Set(state messages.PowerState) {
	g.mu.Lock()
	if state == g.state {
		g.mu.Unlock()
		return
	}
	g.state = state
	old := g.waitC
	g.waitC = make(chan struct{})
	g.mu.Unlock()
	close(old)
}

// Current returns the latest published state.
func (g *Gate) Current() messages.PowerState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Await blocks until the published state satisfies floor (via
// PowerState.AtLeast) or ctx is cancelled.
func (g *Gate) Await(ctx context.Context, floor messages.PowerState) error {
	for {
		g.mu.Lock()
		if g.state.AtLeast(floor) {
			g.mu.Unlock()
			return nil
		}
		ch := g.waitC
		g.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
