package wire

import "github.com/usedhondacivic/mote/errcode"

// writer accumulates an encoded payload. All multi-byte numerics are
// little-endian; all variable-length fields are length-prefixed, never
// delimiter-terminated (the delimiter byte 0x00 belongs to the framer,
// not the codec).
type writer struct{ buf []byte }

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16) { w.buf = append(w.buf, byte(v), byte(v>>8)) }

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }

// str writes a string as a uint8 length prefix followed by its bytes.
// Strings longer than 255 bytes are truncated; the protocol has no
// field wider than a configuration record.
func (w *writer) str(s string) {
	if len(s) > 255 {
		s = s[:255]
	}
	w.u8(uint8(len(s)))
	w.bytes([]byte(s))
}

// optStr writes a presence byte followed by str's encoding when present.
func (w *writer) optStr(s *string) {
	if s == nil {
		w.u8(0)
		return
	}
	w.u8(1)
	w.str(*s)
}

// reader consumes an encoded payload produced by writer, returning
// errcode.BadEncoding on any short read or malformed length.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) u8() (uint8, error) {
	if r.pos+1 > len(r.buf) {
		return 0, errcode.BadEncoding
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, errcode.BadEncoding
	}
	v := uint16(r.buf[r.pos]) | uint16(r.buf[r.pos+1])<<8
	r.pos += 2
	return v, nil
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, errcode.BadEncoding
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) str() (string, error) {
	n, err := r.u8()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) optStr() (*string, error) {
	present, err := r.u8()
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	s, err := r.str()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// done reports whether every byte has been consumed; a codec leaving
// trailing bytes unconsumed indicates a length mismatch.
func (r *reader) done() bool { return r.pos == len(r.buf) }
