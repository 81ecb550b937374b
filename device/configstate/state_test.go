package configstate

import (
	"context"
	"testing"
	"time"

	"github.com/usedhondacivic/mote/messages"
)

func TestApplyConfigCommandSetUID(t *testing.T) {
	s := NewStore("mote-0000", nil)
	s.Lock(context.Background())
	s.ApplyConfigCommand(messages.SetUID{UID: "mote-0042"})
	s.Unlock()

	snap, ok := s.Snapshot(time.Second)
	if !ok {
		t.Fatal("expected snapshot to succeed")
	}
	if snap.UID != "mote-0042" {
		t.Fatalf("UID = %q, want mote-0042", snap.UID)
	}
}

func TestApplyConfigCommandSetNetwork(t *testing.T) {
	s := NewStore("mote-0000", nil)
	s.Lock(context.Background())
	s.ApplyConfigCommand(messages.SetNetworkConnectionConfig{SSID: "jangala-lab", Password: "hunter2"})
	s.Unlock()

	snap, ok := s.Snapshot(time.Second)
	if !ok {
		t.Fatal("expected snapshot to succeed")
	}
	if snap.CurrentNetwork == nil || *snap.CurrentNetwork != "jangala-lab" {
		t.Fatalf("CurrentNetwork = %v, want jangala-lab", snap.CurrentNetwork)
	}
}

func TestSnapshotTimesOutWhenLocked(t *testing.T) {
	s := NewStore("mote-0000", nil)
	s.Lock(context.Background())
	defer s.Unlock()

	_, ok := s.Snapshot(10 * time.Millisecond)
	if ok {
		t.Fatal("expected snapshot to time out while the store is held")
	}
}

func TestDefaultUID(t *testing.T) {
	if got := DefaultUID("mote-dev"); got != "mote-0001" {
		t.Fatalf("DefaultUID(mote-dev) = %q, want mote-0001", got)
	}
	if got := DefaultUID("unknown-board"); got != "mote-0000" {
		t.Fatalf("DefaultUID(unknown-board) = %q, want mote-0000", got)
	}
}
