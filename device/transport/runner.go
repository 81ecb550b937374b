// Package transport runs a wire.Link over a byte-oriented connection,
// with the reconnect-with-backoff lifecycle the teacher's bridge service
// uses, generalized to any of the six Link variants (§4.3) and to
// whichever concrete connection a caller dials (USB-CDC, TCP, UDP — all
// out of scope collaborators per §1; this package only specifies how a
// Link is driven once one exists).
package transport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/usedhondacivic/mote/bus"
)

// Dialer opens (or reopens) the underlying connection. Concrete dialers
// for USB-CDC, TCP and UDP live alongside this file; all are external
// collaborators the core only depends on through this function type.
type Dialer func(ctx context.Context) (io.ReadWriteCloser, error)

// link is the subset of *wire.Link[I, O] the runner needs — kept as an
// interface so Runner stays generic over the concrete message types
// without repeating Link's own type parameters everywhere.
type link interface {
	PollTransmit() ([]byte, bool)
	HandleReceive([]byte)
}

// Runner owns one Link's connection lifecycle: dial, shuttle bytes,
// reconnect with backoff on any I/O error, forever, until ctx ends.
type Runner struct {
	name  string
	dial  Dialer
	link  link
	conn  *bus.Connection
	state bus.Topic
	kick  chan struct{}
}

// NewRunner builds a Runner named name (used only for its published
// state topic, {"transport", name}) driving l over connections dial
// opens.
func NewRunner(name string, dial Dialer, l link, conn *bus.Connection) *Runner {
	return &Runner{
		name:  name,
		dial:  dial,
		link:  l,
		conn:  conn,
		state: bus.Topic{"transport", name},
		kick:  make(chan struct{}, 1),
	}
}

// Kick wakes the writer loop to drain any frames a Send enqueued since
// the last drain. Callers of Link.Send should call Kick right after.
func (r *Runner) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run dials, shuttles bytes, and reconnects with backoff until ctx is
// cancelled (§9: this is the only place in the system that performs
// actual transport I/O; the Link itself stays sans-I/O).
func (r *Runner) Run(ctx context.Context) {
	backoff := backoffSeq(250*time.Millisecond, 5*time.Second)
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := r.dial(ctx)
		if err != nil {
			delay := backoff()
			r.publishState("degraded", fmt.Sprintf("dial failed, retrying in %s: %v", delay, err))
			if !sleepCtx(ctx, delay) {
				return
			}
			continue
		}

		r.publishState("up", "connected")
		if err := r.shuttle(ctx, conn); err != nil {
			_ = conn.Close()
			delay := backoff()
			r.publishState("degraded", fmt.Sprintf("link lost, retrying in %s: %v", delay, err))
			if !sleepCtx(ctx, delay) {
				return
			}
			continue
		}
		_ = conn.Close()
		return
	}
}

func (r *Runner) shuttle(ctx context.Context, conn io.ReadWriteCloser) error {
	errCh := make(chan error, 2)

	go func() {
		buf := make([]byte, 1500)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				r.link.HandleReceive(buf[:n])
			}
			if err != nil {
				errCh <- err
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				errCh <- nil
				return
			case <-r.kick:
				for {
					chunk, ok := r.link.PollTransmit()
					if !ok {
						break
					}
					if _, err := conn.Write(chunk); err != nil {
						errCh <- err
						return
					}
				}
			}
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (r *Runner) publishState(level, status string) {
	if r.conn == nil {
		return
	}
	msg := r.conn.NewMessage(r.state, map[string]any{"level": level, "status": status}, true)
	r.conn.Publish(msg)
}

func backoffSeq(min, max time.Duration) func() time.Duration {
	cur := min
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > max {
			cur = max
		}
		return d
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
