// Package wire implements the message-link layer (§4.2, §4.3): a
// byte-stuffing framer, a per-channel binary codec, and the generic Link
// that glues them together over a byte-oriented transport. The layer is
// sans-I/O throughout — nothing in this package reads or writes a file
// descriptor; Send/PollTransmit/HandleReceive/PollReceive just move bytes
// and messages through in-memory buffers (§4.1).
package wire

import (
	"github.com/usedhondacivic/mote/errcode"
	"github.com/usedhondacivic/mote/x/mathx"
)

// frameDelimiter is the reserved terminator byte. It never appears inside
// a framed payload; byte-stuffing replaces every occurrence in the
// plaintext with a code-byte run.
const frameDelimiter = 0x00

// maxRunLength is COBS's maximum distance between code bytes. A run of
// 254 non-zero bytes is capped with a code byte before the 255th.
const maxRunLength = 254

// overhead returns the worst-case number of stuffing bytes Frame adds on
// top of payload, matching the bound payload.len + ceil(payload.len/254) + 1.
func overhead(n int) int {
	return int(mathx.CeilDiv(uint(n), uint(maxRunLength))) + 1
}

// Frame encodes payload as a single delimited, byte-stuffed frame and
// appends it to dst, returning the grown slice. payload must not be
// mutated by the caller until Frame returns.
func Frame(dst []byte, payload []byte) []byte {
	start := len(dst)
	// An empty payload frames as the delimiter alone.
	if len(payload) == 0 {
		return append(dst, frameDelimiter)
	}
	out := dst
	// Reserve the leading code byte; its value is patched once the
	// length of the first run is known.
	out = append(out, 0)
	codeIdx := start
	run := byte(1)

	flush := func(nextCode byte) {
		out[codeIdx] = run
		codeIdx = len(out)
		out = append(out, nextCode)
		run = 1
	}

	for _, b := range payload {
		// A full run is closed only when another byte follows it, so a
		// payload ending on a full run gets no trailing code byte.
		if run == maxRunLength+1 {
			flush(0)
		}
		if b == frameDelimiter {
			flush(0)
			continue
		}
		out = append(out, b)
		run++
	}
	out[codeIdx] = run
	out = append(out, frameDelimiter)
	return out
}

// Unframe scans buf for one complete delimited frame starting at offset
// 0, decodes its byte-stuffing, and returns the plaintext payload, the
// number of input bytes the frame consumed (including the trailing
// delimiter), and an error.
//
// errcode.Truncated means buf does not yet hold a full frame — the
// caller should wait for more bytes and retry. errcode.Corrupt means a
// delimiter-terminated frame was found but its stuffing is invalid; the
// caller should still advance by consumed bytes and resume scanning.
func Unframe(buf []byte) (payload []byte, consumed int, err error) {
	end := -1
	for i, b := range buf {
		if b == frameDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, 0, errcode.Truncated
	}
	consumed = end + 1
	body := buf[:end]

	out := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		code := body[i]
		if code == 0 || i+int(code) > len(body)+1 {
			return nil, consumed, errcode.Corrupt
		}
		i++
		run := int(code) - 1
		if i+run > len(body) {
			return nil, consumed, errcode.Corrupt
		}
		out = append(out, body[i:i+run]...)
		i += run
		if code != maxRunLength+1 && i < len(body) {
			out = append(out, 0)
		}
	}
	return out, consumed, nil
}
