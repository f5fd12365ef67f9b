package betabrite

import "fmt"

// HoldSpeed is the control code the sign uses to decide how long a message
// stays on the display before it moves on.
type HoldSpeed byte

const (
	NoHold       HoldSpeed = 0x09
	SpeedSlowest HoldSpeed = 0x15
	SpeedLow     HoldSpeed = 0x16
	SpeedMedium  HoldSpeed = 0x17
	SpeedHigh    HoldSpeed = 0x18
	SpeedFastest HoldSpeed = 0x19
)

// DefaultSpeedLevel is the level used when none is given.
const DefaultSpeedLevel = 1

// holdSpeeds is indexed by speed level: 0 holds nothing, 1-5 run slowest to fastest.
var holdSpeeds = [...]HoldSpeed{
	NoHold,
	SpeedSlowest,
	SpeedLow,
	SpeedMedium,
	SpeedHigh,
	SpeedFastest,
}

// HoldSpeedFor maps a speed level in [0,5] to its control code.
func HoldSpeedFor(level int) (HoldSpeed, error) {
	if level < 0 || level >= len(holdSpeeds) {
		return 0, fmt.Errorf("%w: got %d", ErrSpeedRange, level)
	}
	return holdSpeeds[level], nil
}

func (h HoldSpeed) String() string {
	switch h {
	case NoHold:
		return "no-hold"
	case SpeedSlowest:
		return "slowest"
	case SpeedLow:
		return "low"
	case SpeedMedium:
		return "medium"
	case SpeedHigh:
		return "high"
	case SpeedFastest:
		return "fastest"
	default:
		return fmt.Sprintf("HoldSpeed(0x%02x)", byte(h))
	}
}
