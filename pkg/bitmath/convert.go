package bitmath

import (
	"fmt"
	"math"
)

// BestPrefix picks the unit of the size's own system that renders the
// amount with the fewest digits left of the decimal point.
func (s Size) BestPrefix() Size { return s.BestPrefixFor(0) }

// BestPrefixFor is BestPrefix searching the given system's prefixes. A zero
// system means the size's own system.
//
// Sizes under one byte (in absolute value) are always returned as Bit.
// Otherwise the result is Byte or the largest byte prefix not exceeding the
// magnitude, saturating at the largest prefix of the system.
func (s Size) BestPrefixFor(system System) Size {
	abs := math.Abs(s.Bytes())
	if abs < 1 {
		return Bit.From(s)
	}
	if system != NIST && system != SI {
		system = s.System()
	}

	units := byteUnits(system)
	step := system.Step()
	index := 0
	for threshold := step; index < len(units) && abs >= threshold; threshold *= step {
		index++
	}
	if index == 0 {
		return Byte.From(s)
	}
	return units[index-1].From(s)
}

// BestPrefix returns the best-fit Size for a raw byte count. A zero system
// means NIST.
func BestPrefix(bytes float64, system System) Size {
	if system == 0 {
		system = NIST
	}
	return Byte.FromBytes(bytes).BestPrefixFor(system)
}

// BestPrefixValue accepts either a Size or a Go number of bytes.
func BestPrefixValue(v any, system System) (Size, error) {
	if s, ok := v.(Size); ok {
		return BestPrefix(s.Bytes(), system), nil
	}
	f, ok := toFloat(v)
	if !ok {
		return Size{}, fmt.Errorf("%w: %T is neither a size nor a number", ErrInvalidType, v)
	}
	return BestPrefix(f, system), nil
}
