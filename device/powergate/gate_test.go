package powergate

import (
	"context"
	"testing"
	"time"

	"github.com/usedhondacivic/mote/messages"
)

func TestGateAwaitUnblocksAtFloor(t *testing.T) {
	g := NewGate()

	done1p5 := make(chan struct{})
	done3 := make(chan struct{})
	go func() {
		_ = g.Await(context.Background(), messages.PowerMax1p5A)
		close(done1p5)
	}()
	go func() {
		_ = g.Await(context.Background(), messages.PowerMax3A)
		close(done3)
	}()

	for _, s := range []messages.PowerState{
		messages.PowerInvalid,
		messages.PowerDisconnected,
		messages.PowerMax1p5A,
	} {
		g.Set(s)
	}

	select {
	case <-done1p5:
	case <-time.After(time.Second):
		t.Fatal("≥1.5A waiter never unblocked")
	}

	select {
	case <-done3:
		t.Fatal("≥3A waiter unblocked early")
	case <-time.After(50 * time.Millisecond):
	}

	g.Set(messages.PowerMax3A)
	select {
	case <-done3:
	case <-time.After(time.Second):
		t.Fatal("≥3A waiter never unblocked")
	}
}

func TestGateAwaitRespectsContext(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Await(ctx, messages.PowerMax3A); err == nil {
		t.Fatal("expected context deadline error")
	}
}
