package wire

import (
	"bytes"

	"github.com/usedhondacivic/mote/errcode"
)

// MaxMessageLength is the rx ring's capacity (§3). HandleReceive discards
// the oldest bytes, one-for-one, once the ring would grow past this.
const MaxMessageLength = 5000

// Encoder serializes an outbound message to bytes. It fails only on
// programmer error (an unrecognized union variant); see errcode.EncodeError.
type Encoder[O any] func(O) ([]byte, error)

// Decoder deserializes a framed, unstuffed payload into an inbound
// message. It fails with errcode.BadEncoding on any structural mismatch.
type Decoder[I any] func([]byte) (I, error)

// Link is a bidirectional, framed, typed message pipe (§4.3). It is
// sans-I/O: callers feed it bytes via HandleReceive and drain bytes via
// PollTransmit; nothing in Link touches a socket or a UART. A Link is
// owned by a single task — it has no internal synchronization.
type Link[I any, O any] struct {
	mtu     int
	encode  Encoder[O]
	decode  Decoder[I]
	txQueue [][]byte
	rx      []byte
}

// NewLink builds a Link with the given MTU (the cap each outbound frame
// chunk is split to) and the Codec functions for its message pair.
func NewLink[I any, O any](mtu int, encode Encoder[O], decode Decoder[I]) *Link[I, O] {
	return &Link[I, O]{mtu: mtu, encode: encode, decode: decode}
}

// Send serializes msg, frames it, and splits the framed bytes into
// MTU-sized chunks enqueued for transmission (§4.3). Fragmentation
// happens at the frame level: the receiver reassembles purely by
// scanning for the frame delimiter, with no knowledge of chunk
// boundaries.
func (l *Link[I, O]) Send(msg O) error {
	payload, err := l.encode(msg)
	if err != nil {
		return errcode.EncodeError
	}
	framed := Frame(nil, payload)
	for len(framed) > 0 {
		n := len(framed)
		if n > l.mtu {
			n = l.mtu
		}
		chunk := make([]byte, n)
		copy(chunk, framed[:n])
		l.txQueue = append(l.txQueue, chunk)
		framed = framed[n:]
	}
	return nil
}

// PollTransmit returns the next outbound chunk in FIFO order, or
// (nil, false) if the queue is empty. The caller owns actually
// transmitting the bytes.
func (l *Link[I, O]) PollTransmit() ([]byte, bool) {
	if len(l.txQueue) == 0 {
		return nil, false
	}
	chunk := l.txQueue[0]
	l.txQueue = l.txQueue[1:]
	return chunk, true
}

// HandleReceive appends b to the rx ring, discarding the oldest bytes
// one-for-one if it would grow past MaxMessageLength. Never fails and
// never decodes (§4.3).
func (l *Link[I, O]) HandleReceive(b []byte) {
	l.rx = append(l.rx, b...)
	if excess := len(l.rx) - MaxMessageLength; excess > 0 {
		l.rx = l.rx[excess:]
	}
}

// PollReceive seeks the earliest frame delimiter in the rx ring. With
// none found it returns (zero, nil, false). Once found it drains the
// ring up to and including that byte — unconditionally, even if the
// frame turns out corrupt — unframes, and decodes.
//
// A Corrupt or DecodeError result still reports ok=false but has already
// advanced past the bad frame; the caller should poll again immediately
// rather than treat it as "nothing yet".
func (l *Link[I, O]) PollReceive() (msg I, err error, ok bool) {
	idx := bytes.IndexByte(l.rx, frameDelimiter)
	if idx == -1 {
		return msg, nil, false
	}
	frameBytes := l.rx[:idx+1]
	l.rx = l.rx[idx+1:]

	payload, _, ferr := Unframe(frameBytes)
	if ferr != nil {
		return msg, ferr, false
	}
	decoded, derr := l.decode(payload)
	if derr != nil {
		return msg, errcode.DecodeError, false
	}
	return decoded, nil, true
}
