package wire

import (
	"bytes"
	"testing"

	"github.com/usedhondacivic/mote/errcode"
)

func TestFrameUnframeRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x01},
		{0x00},
		{0x00, 0x00, 0x00},
		bytes.Repeat([]byte{0xAB}, 300),
		bytes.Repeat([]byte{0x00, 0xFF}, 150),
	}
	for i, payload := range cases {
		framed := Frame(nil, payload)
		got, consumed, err := Unframe(framed)
		if err != nil {
			t.Fatalf("case %d: Unframe error: %v", i, err)
		}
		if consumed != len(framed) {
			t.Fatalf("case %d: consumed %d, want %d", i, consumed, len(framed))
		}
		if !bytes.Equal(got, payload) && !(len(got) == 0 && len(payload) == 0) {
			t.Fatalf("case %d: got %v, want %v", i, got, payload)
		}
	}
}

func TestFrameNoEmbeddedDelimiter(t *testing.T) {
	framed := Frame(nil, []byte{0x00, 0x01, 0x00})
	for _, b := range framed[:len(framed)-1] {
		if b == 0x00 {
			t.Fatalf("frame contains an embedded delimiter: %v", framed)
		}
	}
	if framed[len(framed)-1] != 0x00 {
		t.Fatalf("frame does not end with delimiter: %v", framed)
	}
}

func TestTwoFramesIndependentlyRecoverable(t *testing.T) {
	a := Frame(nil, []byte("hello"))
	b := Frame(nil, []byte("world"))
	both := append(append([]byte{}, a...), b...)

	p1, n1, err := Unframe(both)
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if string(p1) != "hello" {
		t.Fatalf("first frame = %q, want hello", p1)
	}
	p2, _, err := Unframe(both[n1:])
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if string(p2) != "world" {
		t.Fatalf("second frame = %q, want world", p2)
	}
}

func TestUnframeTruncated(t *testing.T) {
	_, _, err := Unframe([]byte{0x02, 0x41})
	if err != errcode.Truncated {
		t.Fatalf("got %v, want Truncated", err)
	}
}

func TestUnframeCorrupt(t *testing.T) {
	// code byte claims a run longer than the bytes available before the
	// terminator.
	_, consumed, err := Unframe([]byte{0xFF, 0x41, 0x00})
	if err != errcode.Corrupt {
		t.Fatalf("got %v, want Corrupt", err)
	}
	if consumed == 0 {
		t.Fatalf("consumed should advance past the bad frame")
	}
}

func TestOverheadBound(t *testing.T) {
	for _, n := range []int{0, 1, 254, 255, 500, 5000} {
		payload := bytes.Repeat([]byte{0x01}, n)
		framed := Frame(nil, payload)
		bound := n + (n+253)/254 + 1
		if len(framed) > bound {
			t.Fatalf("n=%d: framed len %d exceeds bound %d", n, len(framed), bound)
		}
	}
}
