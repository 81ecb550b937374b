package wire

import (
	"github.com/usedhondacivic/mote/errcode"
	"github.com/usedhondacivic/mote/messages"
)

// Discriminant bytes for the ConfigCommand union.
const (
	tagSetNetworkConnectionConfig uint8 = 1
	tagSetUID                     uint8 = 2
	tagRequestNetworkScan         uint8 = 3
)

// Discriminant bytes for the RuntimeCommand union.
const (
	tagPing         uint8 = 1
	tagPingResponse uint8 = 2
	tagEnable       uint8 = 3
	tagDisable      uint8 = 4
	tagSoftReset    uint8 = 5
)

// EncodeState encodes a State message (§3, configuration device->host).
func EncodeState(s messages.State) ([]byte, error) {
	var w writer
	w.str(s.UID)
	w.optStr(s.IP)
	w.optStr(s.CurrentNetwork)

	nets := s.AvailableNetworks
	if len(nets) > messages.MaxAvailableNetworks {
		nets = nets[:messages.MaxAvailableNetworks]
	}
	w.u8(uint8(len(nets)))
	for _, n := range nets {
		w.str(n)
	}

	bit := s.BuiltInTest
	bit.Normalize()
	for _, g := range bit.Groups() {
		w.u8(uint8(len(*g)))
		for _, rec := range *g {
			w.str(rec.Name)
			w.u8(uint8(rec.Result))
		}
	}
	return w.buf, nil
}

// DecodeState decodes a State message.
func DecodeState(b []byte) (messages.State, error) {
	r := reader{buf: b}
	var s messages.State
	var err error

	if s.UID, err = r.str(); err != nil {
		return s, err
	}
	if s.IP, err = r.optStr(); err != nil {
		return s, err
	}
	if s.CurrentNetwork, err = r.optStr(); err != nil {
		return s, err
	}

	n, err := r.u8()
	if err != nil {
		return s, err
	}
	s.AvailableNetworks = make([]string, 0, n)
	for i := uint8(0); i < n; i++ {
		name, err := r.str()
		if err != nil {
			return s, err
		}
		s.AvailableNetworks = append(s.AvailableNetworks, name)
	}

	for _, g := range s.BuiltInTest.Groups() {
		count, err := r.u8()
		if err != nil {
			return s, err
		}
		*g = make([]messages.BIT, 0, count)
		for i := uint8(0); i < count; i++ {
			name, err := r.str()
			if err != nil {
				return s, err
			}
			result, err := r.u8()
			if err != nil {
				return s, err
			}
			*g = append(*g, messages.BIT{Name: name, Result: messages.BITResult(result)})
		}
	}

	if !r.done() {
		return s, errcode.BadEncoding
	}
	return s, nil
}

// EncodeConfigCommand encodes a ConfigCommand union member (§3,
// configuration host->device).
func EncodeConfigCommand(c messages.ConfigCommand) ([]byte, error) {
	var w writer
	switch v := c.(type) {
	case messages.SetNetworkConnectionConfig:
		w.u8(tagSetNetworkConnectionConfig)
		w.str(v.SSID)
		w.str(v.Password)
	case messages.SetUID:
		w.u8(tagSetUID)
		w.str(v.UID)
	case messages.RequestNetworkScan:
		w.u8(tagRequestNetworkScan)
	default:
		return nil, errcode.EncodeError
	}
	return w.buf, nil
}

// DecodeConfigCommand decodes a ConfigCommand union member.
func DecodeConfigCommand(b []byte) (messages.ConfigCommand, error) {
	r := reader{buf: b}
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	var cmd messages.ConfigCommand
	switch tag {
	case tagSetNetworkConnectionConfig:
		var v messages.SetNetworkConnectionConfig
		if v.SSID, err = r.str(); err != nil {
			return nil, err
		}
		if v.Password, err = r.str(); err != nil {
			return nil, err
		}
		cmd = v
	case tagSetUID:
		var v messages.SetUID
		if v.UID, err = r.str(); err != nil {
			return nil, err
		}
		cmd = v
	case tagRequestNetworkScan:
		cmd = messages.RequestNetworkScan{}
	default:
		return nil, errcode.BadEncoding
	}
	if !r.done() {
		return nil, errcode.BadEncoding
	}
	return cmd, nil
}

// EncodeRuntimeCommand encodes a RuntimeCommand union member (§3, shared
// by both directions of the runtime-command channel).
func EncodeRuntimeCommand(c messages.RuntimeCommand) ([]byte, error) {
	var w writer
	switch v := c.(type) {
	case messages.Ping:
		w.u8(tagPing)
	case messages.PingResponse:
		w.u8(tagPingResponse)
	case messages.Enable:
		w.u8(tagEnable)
		w.u8(uint8(v.Subsystem))
	case messages.Disable:
		w.u8(tagDisable)
		w.u8(uint8(v.Subsystem))
	case messages.SoftReset:
		w.u8(tagSoftReset)
	default:
		return nil, errcode.EncodeError
	}
	return w.buf, nil
}

// DecodeRuntimeCommand decodes a RuntimeCommand union member.
func DecodeRuntimeCommand(b []byte) (messages.RuntimeCommand, error) {
	r := reader{buf: b}
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	var cmd messages.RuntimeCommand
	switch tag {
	case tagPing:
		cmd = messages.Ping{}
	case tagPingResponse:
		cmd = messages.PingResponse{}
	case tagEnable:
		sub, err := r.u8()
		if err != nil {
			return nil, err
		}
		cmd = messages.Enable{Subsystem: messages.Subsystem(sub)}
	case tagDisable:
		sub, err := r.u8()
		if err != nil {
			return nil, err
		}
		cmd = messages.Disable{Subsystem: messages.Subsystem(sub)}
	case tagSoftReset:
		cmd = messages.SoftReset{}
	default:
		return nil, errcode.BadEncoding
	}
	if !r.done() {
		return nil, errcode.BadEncoding
	}
	return cmd, nil
}

// EncodeScan encodes a batch of LiDAR points (§3, runtime data-offload
// device->host). The only variant on this channel, so no discriminant.
func EncodeScan(s messages.Scan) ([]byte, error) {
	pts := s.Points
	if len(pts) > messages.MaxPointsPerScanMessage {
		pts = pts[:messages.MaxPointsPerScanMessage]
	}
	var w writer
	w.u16(uint16(len(pts)))
	for _, p := range pts {
		w.u8(p.Quality)
		w.u16(p.Angle)
		w.u16(p.Distance)
	}
	return w.buf, nil
}

// DecodeScan decodes a batch of LiDAR points.
func DecodeScan(b []byte) (messages.Scan, error) {
	r := reader{buf: b}
	var s messages.Scan
	n, err := r.u16()
	if err != nil {
		return s, err
	}
	s.Points = make([]messages.Point, 0, n)
	for i := uint16(0); i < n; i++ {
		q, err := r.u8()
		if err != nil {
			return s, err
		}
		a, err := r.u16()
		if err != nil {
			return s, err
		}
		d, err := r.u16()
		if err != nil {
			return s, err
		}
		s.Points = append(s.Points, messages.Point{Quality: q, Angle: a, Distance: d})
	}
	if !r.done() {
		return s, errcode.BadEncoding
	}
	return s, nil
}

// EncodeSubscribeScans encodes a scan-subscription request (§3/§4.3,
// runtime data-offload host->device).
func EncodeSubscribeScans(s messages.SubscribeScans) ([]byte, error) {
	var w writer
	w.u16(s.Count)
	return w.buf, nil
}

// DecodeSubscribeScans decodes a scan-subscription request.
func DecodeSubscribeScans(b []byte) (messages.SubscribeScans, error) {
	r := reader{buf: b}
	var s messages.SubscribeScans
	count, err := r.u16()
	if err != nil {
		return s, err
	}
	s.Count = count
	if !r.done() {
		return s, errcode.BadEncoding
	}
	return s, nil
}
