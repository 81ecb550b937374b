package wire

import (
	"reflect"
	"testing"

	"github.com/usedhondacivic/mote/errcode"
	"github.com/usedhondacivic/mote/messages"
)

func TestLinkSendReceiveRoundTrip(t *testing.T) {
	tx := NewDeviceConfigurationLink()
	rx := NewHostConfigurationLink()

	want := messages.State{UID: "mote-01"}
	if err := tx.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}

	var wire []byte
	for {
		chunk, ok := tx.PollTransmit()
		if !ok {
			break
		}
		wire = append(wire, chunk...)
	}

	rx.HandleReceive(wire)
	got, err, ok := rx.PollReceive()
	if err != nil {
		t.Fatalf("poll receive error: %v", err)
	}
	if !ok {
		t.Fatal("expected a decoded message")
	}
	if got.UID != want.UID {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	if _, _, ok := rx.PollReceive(); ok {
		t.Fatal("expected no further messages")
	}
}

func TestLinkFragmentsAtMTU(t *testing.T) {
	tx := NewLink[messages.State, messages.ConfigCommand](8, EncodeConfigCommand, DecodeState)
	if err := tx.Send(messages.SetNetworkConnectionConfig{SSID: "a-long-ssid", Password: "a-long-password"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	chunks := 0
	for {
		chunk, ok := tx.PollTransmit()
		if !ok {
			break
		}
		if len(chunk) > 8 {
			t.Fatalf("chunk of %d bytes exceeds MTU 8", len(chunk))
		}
		chunks++
	}
	if chunks < 2 {
		t.Fatalf("expected fragmentation into multiple chunks, got %d", chunks)
	}
}

func TestLinkReassemblesFragmentedBytes(t *testing.T) {
	tx := NewLink[messages.State, messages.ConfigCommand](4, EncodeConfigCommand, DecodeState)
	rx := NewLink[messages.ConfigCommand, messages.State](4, EncodeState, DecodeConfigCommand)

	want := messages.SetUID{UID: "a-fairly-long-uid-value"}
	if err := tx.Send(want); err != nil {
		t.Fatalf("send: %v", err)
	}

	for {
		chunk, ok := tx.PollTransmit()
		if !ok {
			break
		}
		// Feed one byte at a time to exercise arbitrary split boundaries.
		for _, b := range chunk {
			rx.HandleReceive([]byte{b})
		}
	}

	got, err, ok := rx.PollReceive()
	if err != nil {
		t.Fatalf("poll receive error: %v", err)
	}
	if !ok {
		t.Fatal("expected a decoded message")
	}
	if !reflect.DeepEqual(got, messages.ConfigCommand(want)) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLinkDiscardsOldestOnOverflow(t *testing.T) {
	l := NewLink[messages.State, messages.ConfigCommand](RuntimeMTU, EncodeConfigCommand, DecodeState)
	l.HandleReceive([]byte{0xAA})
	big := make([]byte, MaxMessageLength)
	for i := range big {
		big[i] = 0xBB
	}
	l.HandleReceive(big)
	if len(l.rx) != MaxMessageLength {
		t.Fatalf("rx len = %d, want %d", len(l.rx), MaxMessageLength)
	}
	if l.rx[0] != 0xBB {
		t.Fatalf("expected oldest byte (0xAA) to have been discarded")
	}
}

func TestLinkSkipsCorruptFrameAndContinues(t *testing.T) {
	l := NewLink[messages.State, messages.ConfigCommand](RuntimeMTU, EncodeConfigCommand, DecodeState)

	goodPayload, err := EncodeState(messages.State{UID: "ok"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	good := Frame(nil, goodPayload)

	corrupt := []byte{0xFF, 0x41, 0x00} // invalid stuffing, self-terminated
	l.HandleReceive(append(append([]byte{}, corrupt...), good...))

	_, err, ok := l.PollReceive()
	if ok {
		t.Fatal("expected corrupt frame to fail decode")
	}
	if err != errcode.Corrupt {
		t.Fatalf("got %v, want Corrupt", err)
	}

	got, err, ok := l.PollReceive()
	if err != nil {
		t.Fatalf("second poll error: %v", err)
	}
	if !ok {
		t.Fatal("expected the good frame after the corrupt one")
	}
	if got.UID != "ok" {
		t.Fatalf("got %+v", got)
	}
}
