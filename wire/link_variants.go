package wire

import "github.com/usedhondacivic/mote/messages"

// MTUs per transport (§4.3): configuration rides the 64-byte USB control
// channel; runtime command and data ride 1460-byte IP payloads.
const (
	ConfigurationMTU = 64
	RuntimeMTU       = 1460
)

// HostRuntimeCommandLink runs on the host: it receives device-command
// responses and sends host-commands, both drawn from the shared
// RuntimeCommand union.
type HostRuntimeCommandLink = Link[messages.RuntimeCommand, messages.RuntimeCommand]

// NewHostRuntimeCommandLink builds the host side of the runtime-command
// channel.
func NewHostRuntimeCommandLink() *HostRuntimeCommandLink {
	return NewLink[messages.RuntimeCommand, messages.RuntimeCommand](
		RuntimeMTU, EncodeRuntimeCommand, DecodeRuntimeCommand)
}

// HostRuntimeDataLink runs on the host: it receives device scans and
// sends scan-subscription requests.
type HostRuntimeDataLink = Link[messages.Scan, messages.SubscribeScans]

// NewHostRuntimeDataLink builds the host side of the runtime-data
// channel.
func NewHostRuntimeDataLink() *HostRuntimeDataLink {
	return NewLink[messages.Scan, messages.SubscribeScans](
		RuntimeMTU, EncodeSubscribeScans, DecodeScan)
}

// HostConfigurationLink runs on the host: it receives device State and
// sends ConfigCommand requests.
type HostConfigurationLink = Link[messages.State, messages.ConfigCommand]

// NewHostConfigurationLink builds the host side of the configuration
// channel.
func NewHostConfigurationLink() *HostConfigurationLink {
	return NewLink[messages.State, messages.ConfigCommand](
		ConfigurationMTU, EncodeConfigCommand, DecodeState)
}

// DeviceRuntimeCommandLink runs on the device: the mirror image of
// HostRuntimeCommandLink over the same wire union.
type DeviceRuntimeCommandLink = Link[messages.RuntimeCommand, messages.RuntimeCommand]

// NewDeviceRuntimeCommandLink builds the device side of the
// runtime-command channel.
func NewDeviceRuntimeCommandLink() *DeviceRuntimeCommandLink {
	return NewLink[messages.RuntimeCommand, messages.RuntimeCommand](
		RuntimeMTU, EncodeRuntimeCommand, DecodeRuntimeCommand)
}

// DeviceRuntimeDataLink runs on the device: it receives subscription
// requests and sends scans.
type DeviceRuntimeDataLink = Link[messages.SubscribeScans, messages.Scan]

// NewDeviceRuntimeDataLink builds the device side of the runtime-data
// channel.
func NewDeviceRuntimeDataLink() *DeviceRuntimeDataLink {
	return NewLink[messages.SubscribeScans, messages.Scan](
		RuntimeMTU, EncodeScan, DecodeSubscribeScans)
}

// DeviceConfigurationLink runs on the device: it receives ConfigCommand
// requests and sends State.
type DeviceConfigurationLink = Link[messages.ConfigCommand, messages.State]

// NewDeviceConfigurationLink builds the device side of the configuration
// channel.
func NewDeviceConfigurationLink() *DeviceConfigurationLink {
	return NewLink[messages.ConfigCommand, messages.State](
		ConfigurationMTU, EncodeState, DecodeConfigCommand)
}
