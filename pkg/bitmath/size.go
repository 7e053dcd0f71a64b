package bitmath

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Size is an amount of digital information dressed in a Unit.
//
// The magnitude is held in bits; the unit only decides how the amount is
// displayed. Two sizes of different units compare equal when they hold the
// same number of bits under Equal and Compare. The == operator and map keys
// also compare the unit and value, so 1 KiB != 1024 Byte there; use Key as
// the map key instead. Sizes are immutable; every operation returns a new
// value. The zero Size is 0 Bit.
type Size struct {
	unit  Unit
	value float64
	bits  float64
}

// New returns v units.
func (u Unit) New(v float64) Size {
	bits := v * u.Multiplier()
	if !u.IsBitBased() {
		bits *= 8
	}
	return Size{unit: u, value: v, bits: bits}
}

// FromBytes returns a Size of unit u holding b bytes.
func (u Unit) FromBytes(b float64) Size {
	return u.FromBits(b * 8)
}

// FromBits returns a Size of unit u holding b bits.
func (u Unit) FromBits(b float64) Size {
	base := b
	if !u.IsBitBased() {
		base = b / 8
	}
	return Size{unit: u, value: base / u.Multiplier(), bits: b}
}

// From converts s into unit u.
func (u Unit) From(s Size) Size {
	return u.FromBits(s.bits)
}

// Number is the generic counterpart of Unit.New for any integer or float type.
func Number[T constraints.Integer | constraints.Float](u Unit, v T) Size {
	return u.New(float64(v))
}

type argKind int

const (
	argValue argKind = iota
	argBytes
	argBits
)

// Arg is one of the mutually exclusive construction arguments of NewSize.
type Arg struct {
	kind argKind
	v    float64
}

func WithValue(v float64) Arg { return Arg{kind: argValue, v: v} }

func WithBytes(b float64) Arg { return Arg{kind: argBytes, v: b} }

func WithBits(b float64) Arg { return Arg{kind: argBits, v: b} }

// NewSize builds a Size of unit u from at most one argument. With no
// argument the size is zero; more than one returns ErrInvalidArguments.
func NewSize(u Unit, args ...Arg) (Size, error) {
	if !u.valid() {
		return Size{}, fmt.Errorf("%w: unknown unit %d", ErrInvalidType, int(u))
	}
	switch len(args) {
	case 0:
		return u.New(0), nil
	case 1:
	default:
		return Size{}, ErrInvalidArguments
	}
	switch a := args[0]; a.kind {
	case argBytes:
		return u.FromBytes(a.v), nil
	case argBits:
		return u.FromBits(a.v), nil
	default:
		return u.New(a.v), nil
	}
}

// Of builds v units from any Go numeric value. Anything else returns
// ErrInvalidType.
func Of(u Unit, v any) (Size, error) {
	f, ok := toFloat(v)
	if !ok {
		return Size{}, fmt.Errorf("%w: %T is not a number", ErrInvalidType, v)
	}
	return NewSize(u, WithValue(f))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uintptr:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Bits is the magnitude in bits.
func (s Size) Bits() float64 { return s.bits }

// Bytes is the magnitude in bytes, always Bits()/8.
func (s Size) Bytes() float64 { return s.bits / 8 }

// Value is the amount expressed in the size's own unit.
func (s Size) Value() float64 { return s.value }

func (s Size) Unit() Unit { return s.unit }

func (s Size) Base() int { return s.unit.Base() }

// Exponent is the power of Base of the size's unit.
func (s Size) Exponent() int { return s.unit.Exponent() }

func (s Size) System() System { return s.unit.System() }

// UnitName is the singular unit name, or the plural name when the default
// formatter asks for plurals and the value is not exactly one.
func (s Size) UnitName() string {
	return s.unitName(DefaultFormatter().Plural)
}

func (s Size) unitName(plural bool) string {
	if s.value == 1 || !plural {
		return s.unit.String()
	}
	return s.unit.Plural()
}

// To converts s into unit u. The magnitude is unchanged.
func (s Size) To(u Unit) Size { return u.From(s) }

// Int64 truncates the display value.
func (s Size) Int64() int64 { return int64(s.value) }

func (s Size) Float64() float64 { return s.value }

// GoString renders the size as Go-ish constructor text, e.g. KiB(1.0).
func (s Size) GoString() string {
	return s.unit.String() + "(" + formatFloat(s.value) + ")"
}
