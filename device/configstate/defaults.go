package configstate

import (
	"github.com/andreyvit/tinyjson"
	"github.com/usedhondacivic/mote/x/strx"
)

// defaultUIDs holds the build-time default UID per board variant (§6:
// the firmware carries no persisted configuration, so this is the only
// source of an initial identity before a host ever sends SetUID).
const defaultUIDsJSON = `{
  "mote-dev": "mote-0001",
  "mote-rev-a": "mote-0001",
  "mote-rp2040": "mote-0001"
}`

var defaultUIDs = parseDefaultUIDs(defaultUIDsJSON)

func parseDefaultUIDs(raw string) map[string]string {
	out := map[string]string{}
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()
	m, ok := val.(map[string]any)
	if !ok {
		return out
	}
	for k, v := range m {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// DefaultUID returns the build-time default UID for board, or a
// generic fallback if board is unrecognized.
func DefaultUID(board string) string {
	return strx.Coalesce(defaultUIDs[board], "mote-0000")
}
