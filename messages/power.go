package messages

// PowerState is the USB-C source-capability reading derived from the two
// CC-pin channels (§3, §4.5).
type PowerState uint8

const (
	PowerInvalid PowerState = iota
	PowerDisconnected
	PowerMax500mA
	PowerMax1p5A
	PowerMax3A
)

func (p PowerState) String() string {
	switch p {
	case PowerDisconnected:
		return "disconnected"
	case PowerMax500mA:
		return "max_500ma"
	case PowerMax1p5A:
		return "max_1.5a"
	case PowerMax3A:
		return "max_3a"
	default:
		return "invalid"
	}
}

// AtLeast reports whether p meets or exceeds the given floor in the natural
// PowerState ordering. PowerInvalid sorts below PowerDisconnected, so it
// never satisfies a floor of PowerDisconnected or higher.
func (p PowerState) AtLeast(floor PowerState) bool {
	return p >= floor
}
