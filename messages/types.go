// Package messages defines Mote's wire-level message schema: the four
// channel types of §3 (configuration device→host, configuration
// host→device, runtime command, runtime data-offload). The host→device
// configuration and runtime-command channels are closed tagged unions; the
// other channels carry a single struct type. See package wire's
// Encode*/Decode* functions for the binary encoding.
package messages

// ---------------------------------------------------------------------
// Configuration, device -> host
// ---------------------------------------------------------------------

// State is the single message variant device builds carry over the
// configuration channel: identity, network visibility and the latest
// built-in-test snapshot (§3).
type State struct {
	UID               string
	IP                *string // present once DHCP/static config has assigned one
	CurrentNetwork    *string
	AvailableNetworks []string
	BuiltInTest       BITCollection
}

// MaxAvailableNetworks bounds State.AvailableNetworks (implementation
// constant; §3 leaves the cap unspecified).
const MaxAvailableNetworks = 8

// ---------------------------------------------------------------------
// Configuration, host -> device
// ---------------------------------------------------------------------

// ConfigCommand is the closed union of configuration-channel commands a
// host may send (§3).
type ConfigCommand interface {
	isConfigCommand()
}

type SetNetworkConnectionConfig struct {
	SSID     string
	Password string
}

type SetUID struct {
	UID string
}

type RequestNetworkScan struct{}

func (SetNetworkConnectionConfig) isConfigCommand() {}
func (SetUID) isConfigCommand()                     {}
func (RequestNetworkScan) isConfigCommand()         {}

// ---------------------------------------------------------------------
// Runtime command (shared both directions of the runtime-command Link
// pair — see §4.3's table: Host-runtime-command's inbound and
// Device-runtime-command's outbound are both "device-command responses",
// while Host-runtime-command's outbound and Device-runtime-command's
// inbound are both "host-commands"; both draw from this one union).
// ---------------------------------------------------------------------

type RuntimeCommand interface {
	isRuntimeCommand()
}

type Ping struct{}
type PingResponse struct{}

type Enable struct {
	Subsystem Subsystem
}

type Disable struct {
	Subsystem Subsystem
}

type SoftReset struct{}

func (Ping) isRuntimeCommand()         {}
func (PingResponse) isRuntimeCommand() {}
func (Enable) isRuntimeCommand()       {}
func (Disable) isRuntimeCommand()      {}
func (SoftReset) isRuntimeCommand()    {}

// ---------------------------------------------------------------------
// Runtime data-offload, device -> host
// ---------------------------------------------------------------------

// Scan is one batch of LiDAR points (§3). It is the only variant of the
// data-offload channel's device->host union.
type Scan struct {
	Points []Point
}

// ---------------------------------------------------------------------
// Runtime data-offload, host -> device
//
// §4.3's table names a "subscribe requests" outbound type for
// Host-runtime-data (and inbound for Device-runtime-data) that §3's data
// model never spells out. We model it as a single message asking the
// device to (re)start streaming scans, with a bounded count (0 = until
// cancelled) — see DESIGN.md "Open Questions".
// ---------------------------------------------------------------------

type SubscribeScans struct {
	Count uint16 // 0 = stream continuously
}
