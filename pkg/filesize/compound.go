package filesize

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// compoundUnits are the byte prefix units of system that fit a uint64,
// largest first.
func compoundUnits(system bitmath.System) []bitmath.Unit {
	if system == 0 {
		system = bitmath.NIST
	}
	units := lo.Filter(bitmath.Units(), func(u bitmath.Unit, _ int) bool {
		return !u.IsBitBased() && u.Exponent() > 0 && u.System() == system && u.Multiplier() <= math.MaxUint64
	})
	slices.Reverse(units)
	return units
}

// FormatCompound takes a count of bytes and returns it as whole units of the
// system from the largest down, e.g. "5MiB10KiB" or "12B".
func FormatCompound(bytes uint64, system bitmath.System) string {
	var output strings.Builder
	remainder := bytes
	for _, u := range compoundUnits(system) {
		m := uint64(u.Multiplier())
		if remainder < m {
			continue
		}
		value := remainder / m
		output.WriteString(strconv.FormatUint(value, 10) + u.String())
		remainder -= value * m
	}
	if remainder > 0 || output.Len() == 0 {
		output.WriteString(strconv.FormatUint(remainder, 10) + "B")
	}
	return output.String()
}

// ParseCompound reads a sum of sizes written back to back, like "5mb10kb" or
// "1GiB512MiB", and returns the total in Bytes. Each term is read with
// bitmath.ParseUnsafe in the given system; a bare number or a "b"/"B" suffix
// is a count of bytes.
func ParseCompound(s string, system bitmath.System) (bitmath.Size, error) {
	terms, err := splitTerms(s)
	if err != nil {
		return bitmath.Size{}, err
	}
	var bytes float64
	for _, term := range terms {
		size, err := parseTerm(term, system)
		if err != nil {
			return bitmath.Size{}, err
		}
		bytes += size.Bytes()
	}
	return bitmath.Byte.New(bytes), nil
}

// splitTerms cuts s before every digit that follows a letter.
func splitTerms(s string) ([]string, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return nil, &bitmath.ParseError{Input: s, Reason: "empty size"}
	}
	var terms []string
	start := 0
	for i := 1; i < len(s); i++ {
		if isNumberByte(s[i]) && unicode.IsLetter(rune(s[i-1])) {
			terms = append(terms, s[start:i])
			start = i
		}
	}
	return append(terms, s[start:]), nil
}

func isNumberByte(c byte) bool { return (c >= '0' && c <= '9') || c == '.' }

func parseTerm(term string, system bitmath.System) (bitmath.Size, error) {
	i := strings.IndexFunc(term, unicode.IsLetter)
	if i < 0 || strings.EqualFold(term[i:], "b") || strings.EqualFold(term[i:], "bytes") {
		num := term
		if i >= 0 {
			num = term[:i]
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return bitmath.Size{}, &bitmath.ParseError{Input: term, Reason: fmt.Sprintf("invalid number %q", num)}
		}
		return bitmath.Byte.New(v), nil
	}
	return bitmath.ParseUnsafe(term, system)
}
