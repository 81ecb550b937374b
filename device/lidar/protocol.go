// Package lidar drives the on-device LiDAR acquisition state machine
// (§4.4): it speaks the sensor's UART wire protocol, validates and
// decodes sample records, and streams batched scans into an outbound
// Link via the device→host data channel.
package lidar

import "github.com/usedhondacivic/mote/messages"

// Wire commands: a 2-byte {0xA5, op} prefix (§6).
var (
	cmdReset       = []byte{0xA5, 0x40}
	cmdCheckHealth = []byte{0xA5, 0x52}
	cmdScanRequest = []byte{0xA5, 0x20}
)

// healthHeader is the fixed 7-byte response descriptor CheckHealth must
// match before its status byte is meaningful.
var healthHeader = [7]byte{0xA5, 0x5A, 0x03, 0x00, 0x00, 0x00, 0x06}

// healthResponseLen is the total CheckHealth response size: the 7-byte
// header, a 1-byte status, and 2 trailing reserved bytes.
const healthResponseLen = 10

// scanAckResponse is the full 7-byte ScanRequest acknowledgement.
var scanAckResponse = [7]byte{0xA5, 0x5A, 0x05, 0x00, 0x00, 0x40, 0x81}

// decodeSample validates and decodes one 5-byte sample sub-record
// (§4.4). ok is false when the start-flag or check-bit validation fails
// and the record should be skipped.
func decodeSample(b [5]byte) (p messages.Point, ok bool) {
	startBit0 := b[0] & 0x01
	startBit1 := (b[0] & 0x02) >> 1
	if startBit0 == startBit1 {
		return p, false
	}
	if b[1]&0x01 != 1 {
		return p, false
	}
	angle := (uint16(b[2]) << 7) | ((uint16(b[1]) & 0xFE) >> 1)
	distance := uint16(b[3]) | (uint16(b[4]) << 8)
	quality := (b[0] & 0xFC) >> 2
	return messages.Point{Quality: quality, Angle: angle, Distance: distance}, true
}
