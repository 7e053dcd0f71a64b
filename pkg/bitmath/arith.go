package bitmath

import (
	"cmp"
	"math"
	"math/big"
)

// Add returns s+o in the unit of s.
func (s Size) Add(o Size) Size { return s.unit.FromBits(s.bits + o.bits) }

// Sub returns s-o in the unit of s.
func (s Size) Sub(o Size) Size { return s.unit.FromBits(s.bits - o.bits) }

// Mul multiplies the byte magnitudes of s and o and returns the product as a
// byte count in the unit of s. The result is not an area; it exists so that
// size*size is defined.
func (s Size) Mul(o Size) Size { return s.unit.FromBytes(s.Bytes() * o.Bytes()) }

// Div is the dimensionless ratio of the two magnitudes.
func (s Size) Div(o Size) float64 { return s.bits / o.bits }

// AddNumber adds n to the display value and returns a plain number. The
// reflected form n+s is the same.
func (s Size) AddNumber(n float64) float64 { return s.value + n }

// SubNumber returns the display value minus n.
func (s Size) SubNumber(n float64) float64 { return s.value - n }

// SubFrom returns n minus the display value.
func (s Size) SubFrom(n float64) float64 { return n - s.value }

// MulNumber scales s by n.
func (s Size) MulNumber(n float64) Size { return s.unit.New(s.value * n) }

// DivNumber divides s by n.
func (s Size) DivNumber(n float64) Size { return s.unit.New(s.value / n) }

// DivInto returns n divided by the display value.
func (s Size) DivInto(n float64) float64 { return n / s.value }

// NumberMul is n*s. Unlike the other number-left operations it returns a
// Size, in the unit of s.
func NumberMul(n float64, s Size) Size { return s.MulNumber(n) }

func (s Size) Neg() Size { return s.unit.FromBits(-s.bits) }

func (s Size) Pos() Size { return s }

func (s Size) Abs() Size { return s.unit.FromBits(math.Abs(s.bits)) }

// Bitwise operations work on the bit count truncated to an integer, at any
// magnitude, and keep the unit. Shifts are arithmetic like those of int64.

func (s Size) Lsh(n uint) Size {
	return s.bitwise(func(x *big.Int) *big.Int { return x.Lsh(x, n) })
}

func (s Size) Rsh(n uint) Size {
	return s.bitwise(func(x *big.Int) *big.Int { return x.Rsh(x, n) })
}

func (s Size) And(n int64) Size {
	return s.bitwise(func(x *big.Int) *big.Int { return x.And(x, big.NewInt(n)) })
}

func (s Size) Or(n int64) Size {
	return s.bitwise(func(x *big.Int) *big.Int { return x.Or(x, big.NewInt(n)) })
}

func (s Size) Xor(n int64) Size {
	return s.bitwise(func(x *big.Int) *big.Int { return x.Xor(x, big.NewInt(n)) })
}

func (s Size) bitwise(op func(*big.Int) *big.Int) Size {
	x, ok := s.bitCount()
	if !ok {
		return s
	}
	f, _ := new(big.Float).SetInt(op(x)).Float64()
	return s.unit.FromBits(f)
}

// bitCount is the bit count truncated toward zero. ok is false for NaN and
// infinite sizes.
func (s Size) bitCount() (*big.Int, bool) {
	if math.IsNaN(s.bits) || math.IsInf(s.bits, 0) {
		return nil, false
	}
	x, _ := big.NewFloat(s.bits).Int(nil)
	return x, true
}

// binary renders the bit count in base 2 with a 0b marker after the sign,
// e.g. "0b1010" or "-0b101".
func (s Size) binary() string {
	x, ok := s.bitCount()
	if !ok {
		return formatFloat(s.bits)
	}
	if x.Sign() < 0 {
		return "-0b" + new(big.Int).Neg(x).Text(2)
	}
	return "0b" + x.Text(2)
}

// Compare orders sizes by magnitude regardless of unit.
func (s Size) Compare(o Size) int { return cmp.Compare(s.bits, o.bits) }

// Key is the bit count, usable as a map key under which equal sizes of
// different units collide.
func (s Size) Key() float64 { return s.bits }

func (s Size) Equal(o Size) bool        { return s.bits == o.bits }
func (s Size) Less(o Size) bool         { return s.bits < o.bits }
func (s Size) LessEqual(o Size) bool    { return s.bits <= o.bits }
func (s Size) Greater(o Size) bool      { return s.bits > o.bits }
func (s Size) GreaterEqual(o Size) bool { return s.bits >= o.bits }

// CompareNumber compares the display value with n.
func (s Size) CompareNumber(n float64) int { return cmp.Compare(s.value, n) }

func (s Size) EqualNumber(n float64) bool { return s.value == n }

// CompareSizes is Size.Compare as a function, for slices.SortFunc.
func CompareSizes(a, b Size) int { return a.Compare(b) }

// Op is an operator understood by Eval.
type Op string

const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpLsh Op = "<<"
	OpRsh Op = ">>"
	OpAnd Op = "&"
	OpXor Op = "^"
	OpOr  Op = "|"

	OpEq Op = "=="
	OpNe Op = "!="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// Operand is either a Size or a plain number.
type Operand struct {
	size   Size
	num    float64
	isSize bool
}

func SizeOperand(s Size) Operand     { return Operand{size: s, isSize: true} }
func NumberOperand(n float64) Operand { return Operand{num: n} }

func (o Operand) Size() (Size, bool)      { return o.size, o.isSize }
func (o Operand) Number() (float64, bool) { return o.num, !o.isSize }

// Result is the outcome of Eval: a Size, a number or, for comparisons, a
// boolean.
type Result struct {
	kind resultKind
	size Size
	num  float64
	ok   bool
}

type resultKind int

const (
	resultNumber resultKind = iota
	resultSize
	resultBool
)

func (r Result) Size() (Size, bool)      { return r.size, r.kind == resultSize }
func (r Result) Number() (float64, bool) { return r.num, r.kind == resultNumber }
func (r Result) Bool() (bool, bool)      { return r.ok, r.kind == resultBool }

func (r Result) String() string {
	switch r.kind {
	case resultSize:
		return r.size.String()
	case resultBool:
		if r.ok {
			return "true"
		}
		return "false"
	default:
		return formatFloat(r.num)
	}
}

func sizeResult(s Size) Result      { return Result{kind: resultSize, size: s} }
func numberResult(n float64) Result { return Result{kind: resultNumber, num: n} }
func boolResult(b bool) Result      { return Result{kind: resultBool, ok: b} }

// Eval applies op to two operands following the mixed size/number rules of
// the methods above: size+size is a Size, size+number is a number,
// number*size is a Size and number/size is a number. Bitwise operators need
// a Size on the left and an integer on the right.
func Eval(op Op, left, right Operand) (Result, error) {
	switch {
	case left.isSize && right.isSize:
		return evalSizes(op, left.size, right.size)
	case left.isSize:
		return evalSizeNumber(op, left.size, right.num)
	case right.isSize:
		return evalNumberSize(op, left.num, right.size)
	default:
		return Result{}, unsupported(op, "two numbers")
	}
}

func evalSizes(op Op, a, b Size) (Result, error) {
	switch op {
	case OpAdd:
		return sizeResult(a.Add(b)), nil
	case OpSub:
		return sizeResult(a.Sub(b)), nil
	case OpMul:
		return sizeResult(a.Mul(b)), nil
	case OpDiv:
		return numberResult(a.Div(b)), nil
	}
	if c, ok := compareOp(op, a.Compare(b)); ok {
		return boolResult(c), nil
	}
	return Result{}, unsupported(op, "two sizes")
}

func evalSizeNumber(op Op, s Size, n float64) (Result, error) {
	switch op {
	case OpAdd:
		return numberResult(s.AddNumber(n)), nil
	case OpSub:
		return numberResult(s.SubNumber(n)), nil
	case OpMul:
		return sizeResult(s.MulNumber(n)), nil
	case OpDiv:
		return sizeResult(s.DivNumber(n)), nil
	case OpLsh, OpRsh, OpAnd, OpXor, OpOr:
		if n != math.Trunc(n) {
			return Result{}, unsupported(op, "a non-integer right operand")
		}
		i := int64(n)
		switch op {
		case OpLsh, OpRsh:
			if i < 0 {
				return Result{}, unsupported(op, "a negative shift count")
			}
			if op == OpLsh {
				return sizeResult(s.Lsh(uint(i))), nil
			}
			return sizeResult(s.Rsh(uint(i))), nil
		case OpAnd:
			return sizeResult(s.And(i)), nil
		case OpXor:
			return sizeResult(s.Xor(i)), nil
		default:
			return sizeResult(s.Or(i)), nil
		}
	}
	if c, ok := compareOp(op, s.CompareNumber(n)); ok {
		return boolResult(c), nil
	}
	return Result{}, unsupported(op, "a size and a number")
}

func evalNumberSize(op Op, n float64, s Size) (Result, error) {
	switch op {
	case OpAdd:
		return numberResult(s.AddNumber(n)), nil
	case OpSub:
		return numberResult(s.SubFrom(n)), nil
	case OpMul:
		return sizeResult(NumberMul(n, s)), nil
	case OpDiv:
		return numberResult(s.DivInto(n)), nil
	}
	// reflected comparison: n op s is s (mirrored op) n
	if c, ok := compareOp(op, -s.CompareNumber(n)); ok {
		return boolResult(c), nil
	}
	return Result{}, unsupported(op, "a number and a size")
}

func compareOp(op Op, c int) (bool, bool) {
	switch op {
	case OpEq:
		return c == 0, true
	case OpNe:
		return c != 0, true
	case OpLt:
		return c < 0, true
	case OpLe:
		return c <= 0, true
	case OpGt:
		return c > 0, true
	case OpGe:
		return c >= 0, true
	default:
		return false, false
	}
}

func unsupported(op Op, what string) error {
	return &opError{op: op, what: what}
}

type opError struct {
	op   Op
	what string
}

func (e *opError) Error() string {
	return "bitmath: operator " + string(e.op) + " is not supported for " + e.what
}

func (e *opError) Unwrap() error { return ErrUnsupportedOperation }
