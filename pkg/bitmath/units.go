// Package bitmath represents quantities of digital information in bits and
// bytes under the binary (NIST, powers of 1024) and decimal (SI, powers of
// 1000) prefix systems.
package bitmath

import (
	"math"
	"strconv"
	"strings"
)

// System is a prefix system. The zero value means no preference.
type System int

const (
	NIST System = 2
	SI   System = 10
)

// Step is the multiplier between two adjacent prefixes of the system.
func (s System) Step() float64 {
	if s == SI {
		return 1000
	}
	return 1024
}

func (s System) String() string {
	switch s {
	case NIST:
		return "NIST"
	case SI:
		return "SI"
	default:
		return ""
	}
}

// ParseSystem resolves "NIST"/"SI" (case-insensitive, "binary"/"decimal"
// accepted as well).
func ParseSystem(s string) (System, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nist", "binary", "iec":
		return NIST, true
	case "si", "decimal":
		return SI, true
	default:
		return 0, false
	}
}

// Unit identifies one entry of the unit table.
type Unit int

const (
	Bit Unit = iota
	Byte

	Kib
	Mib
	Gib
	Tib
	Pib
	Eib

	KiB
	MiB
	GiB
	TiB
	PiB
	EiB

	Kb // displayed as "kb"
	Mb
	Gb
	Tb
	Pb
	Eb
	Zb
	Yb

	KB // displayed as "kB"
	MB
	GB
	TB
	PB
	EB
	ZB
	YB

	unitCount
)

type unitInfo struct {
	base     int
	exponent int
	bitBased bool
	singular string
	plural   string
}

var unitTable = [unitCount]unitInfo{
	Bit:  {2, 0, true, "Bit", "Bits"},
	Byte: {2, 0, false, "Byte", "Bytes"},

	Kib: {2, 10, true, "Kib", "Kibs"},
	Mib: {2, 20, true, "Mib", "Mibs"},
	Gib: {2, 30, true, "Gib", "Gibs"},
	Tib: {2, 40, true, "Tib", "Tibs"},
	Pib: {2, 50, true, "Pib", "Pibs"},
	Eib: {2, 60, true, "Eib", "Eibs"},

	KiB: {2, 10, false, "KiB", "KiBs"},
	MiB: {2, 20, false, "MiB", "MiBs"},
	GiB: {2, 30, false, "GiB", "GiBs"},
	TiB: {2, 40, false, "TiB", "TiBs"},
	PiB: {2, 50, false, "PiB", "PiBs"},
	EiB: {2, 60, false, "EiB", "EiBs"},

	Kb: {10, 3, true, "kb", "kbs"},
	Mb: {10, 6, true, "Mb", "Mbs"},
	Gb: {10, 9, true, "Gb", "Gbs"},
	Tb: {10, 12, true, "Tb", "Tbs"},
	Pb: {10, 15, true, "Pb", "Pbs"},
	Eb: {10, 18, true, "Eb", "Ebs"},
	Zb: {10, 21, true, "Zb", "Zbs"},
	Yb: {10, 24, true, "Yb", "Ybs"},

	KB: {10, 3, false, "kB", "kBs"},
	MB: {10, 6, false, "MB", "MBs"},
	GB: {10, 9, false, "GB", "GBs"},
	TB: {10, 12, false, "TB", "TBs"},
	PB: {10, 15, false, "PB", "PBs"},
	EB: {10, 18, false, "EB", "EBs"},
	ZB: {10, 21, false, "ZB", "ZBs"},
	YB: {10, 24, false, "YB", "YBs"},
}

// multipliers holds base**exponent for every unit, correctly rounded.
var multipliers = func() (out [unitCount]float64) {
	for u, info := range unitTable {
		if info.base == 2 {
			out[u] = math.Ldexp(1, info.exponent)
			continue
		}
		v, err := strconv.ParseFloat("1e"+strconv.Itoa(info.exponent), 64)
		if err != nil {
			panic(err)
		}
		out[u] = v
	}
	return
}()

// Prefix lists in magnitude order, used when stepping through the orders of
// a system.
var (
	NISTPrefixes = []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}
	SIPrefixes   = []string{"k", "M", "G", "T", "P", "E", "Z", "Y"}
)

var (
	nistByteUnits = []Unit{KiB, MiB, GiB, TiB, PiB, EiB}
	siByteUnits   = []Unit{KB, MB, GB, TB, PB, EB, ZB, YB}
)

// byteUnits returns the byte-based prefix units of a system in magnitude order.
func byteUnits(s System) []Unit {
	if s == SI {
		return siByteUnits
	}
	return nistByteUnits
}

var unitNames = func() map[string]Unit {
	names := make(map[string]Unit, 2*int(unitCount))
	for u := Unit(0); u < unitCount; u++ {
		names[unitTable[u].singular] = u
	}
	names["b"] = Bit
	names["B"] = Byte

	// octet spellings
	names["o"] = Byte
	for i, p := range NISTPrefixes {
		names[p+"o"] = nistByteUnits[i]
	}
	for i, p := range SIPrefixes {
		names[p+"o"] = siByteUnits[i]
	}
	return names
}()

// Units returns every unit of the table in declaration order.
func Units() []Unit {
	out := make([]Unit, 0, unitCount)
	for u := Unit(0); u < unitCount; u++ {
		out = append(out, u)
	}
	return out
}

// LookupUnit resolves a unit name. Names are case-sensitive; "b" and "B" are
// shortcuts for Bit and Byte, and octet spellings (Kio, Mo, ...) resolve to
// the matching byte unit.
func LookupUnit(name string) (Unit, bool) {
	u, ok := unitNames[name]
	return u, ok
}

func (u Unit) valid() bool { return u >= 0 && u < unitCount }

func (u Unit) info() unitInfo {
	if !u.valid() {
		return unitTable[Byte]
	}
	return unitTable[u]
}

// Base is 2 for NIST units (and Bit/Byte), 10 for SI units.
func (u Unit) Base() int { return u.info().base }

// Exponent is the power of Base giving the number of bits or bytes in one unit.
func (u Unit) Exponent() int { return u.info().exponent }

// IsBitBased reports whether the unit counts bits rather than bytes.
func (u Unit) IsBitBased() bool { return u.info().bitBased }

// Multiplier is Base**Exponent.
func (u Unit) Multiplier() float64 {
	if !u.valid() {
		return 1
	}
	return multipliers[u]
}

func (u Unit) System() System {
	if u.Base() == 10 {
		return SI
	}
	return NIST
}

func (u Unit) String() string { return u.info().singular }

func (u Unit) Plural() string { return u.info().plural }
