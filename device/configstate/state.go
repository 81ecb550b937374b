// Package configstate owns CONFIGURATION_STATE (§5): device identity,
// network visibility, and the BIT snapshot that gets embedded into every
// outbound State message. It is deliberately mutex-protected rather than
// message-passed — unlike device/bit's aggregator — because every
// subsystem needs read access to it and writes are pure memory ops with
// no I/O under the lock, so the shared-lock tradeoff the source accepts
// is safe here (§9 design note).
package configstate

import (
	"context"
	"time"

	"github.com/usedhondacivic/mote/device/bit"
	"github.com/usedhondacivic/mote/messages"
)

// Store is CONFIGURATION_STATE. The zero value is not usable; build one
// with NewStore.
type Store struct {
	sem chan struct{} // capacity-1 semaphore standing in for a mutex that supports TryLock-with-timeout

	uid               string
	ip                *string
	currentNetwork    *string
	availableNetworks []string

	bitReg *bit.Registry
}

// NewStore creates a Store seeded with a default UID (§6: the firmware
// ships no persisted configuration, so the UID starts at a build-time
// default and is only ever changed by a SetUID command).
func NewStore(defaultUID string, reg *bit.Registry) *Store {
	s := &Store{sem: make(chan struct{}, 1), uid: defaultUID, bitReg: reg}
	s.sem <- struct{}{}
	return s
}

// Lock blocks until the store is acquired or ctx is cancelled. Callers
// that do not perform I/O while holding the lock (every writer in this
// package) may pass context.Background().
func (s *Store) Lock(ctx context.Context) bool {
	select {
	case <-s.sem:
		return true
	case <-ctx.Done():
		return false
	}
}

// TryLock acquires the store within timeout, or gives up. The USB
// configuration task uses this with a 500 ms timeout per telemetry tick
// (§5): an unavailable lock just means that tick is skipped.
func (s *Store) TryLock(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-s.sem:
		return true
	case <-t.C:
		return false
	}
}

// Unlock releases the store. Must be called exactly once per successful
// Lock/TryLock.
func (s *Store) Unlock() { s.sem <- struct{}{} }

// ApplyConfigCommand mutates the store per a decoded host command (§3).
// The caller must already hold the lock.
func (s *Store) ApplyConfigCommand(cmd messages.ConfigCommand) {
	switch v := cmd.(type) {
	case messages.SetUID:
		s.uid = v.UID
	case messages.SetNetworkConnectionConfig:
		ssid := v.SSID
		s.currentNetwork = &ssid
		// Joining the network itself is owned by the Wi-Fi firmware
		// driver, explicitly out of scope (§1); this records intent so
		// the next State reflects it optimistically.
	case messages.RequestNetworkScan:
		// Scanning is likewise driven by the out-of-scope Wi-Fi stack;
		// a real build would trigger it here and populate
		// availableNetworks from the result.
	}
}

// SetIP records the address DHCP (or a static fallback) has assigned.
// The caller must already hold the lock.
func (s *Store) SetIP(ip string) { s.ip = &ip }

// SetAvailableNetworks records the latest scan result. The caller must
// already hold the lock.
func (s *Store) SetAvailableNetworks(networks []string) {
	if len(networks) > messages.MaxAvailableNetworks {
		networks = networks[:messages.MaxAvailableNetworks]
	}
	s.availableNetworks = networks
}

// Snapshot builds the State message to send over the configuration Link
// (§3). It acquires the lock itself with the given timeout and releases
// it before returning.
func (s *Store) Snapshot(timeout time.Duration) (messages.State, bool) {
	if !s.TryLock(timeout) {
		return messages.State{}, false
	}
	defer s.Unlock()

	st := messages.State{
		UID:               s.uid,
		IP:                s.ip,
		CurrentNetwork:    s.currentNetwork,
		AvailableNetworks: append([]string(nil), s.availableNetworks...),
	}
	if s.bitReg != nil {
		st.BuiltInTest = s.bitReg.Snapshot()
	}
	return st, true
}
