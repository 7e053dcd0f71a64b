package bitmath

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a size with an explicit unit, e.g. "654 MiB", "123b" or
// "4.7 Mo". The unit must match a unit name exactly; only "b" and "B" are
// accepted as shorthands for Bit and Byte.
func Parse(s string) (Size, error) {
	num, suffix, ok := splitUnit(s)
	if !ok {
		return Size{}, parseErrorf(s, "no unit given")
	}
	v, err := parseNumber(num)
	if err != nil {
		return Size{}, parseErrorf(s, "invalid number %q", num)
	}
	u, ok := LookupUnit(suffix)
	if !ok {
		return Size{}, parseErrorf(s, "unknown unit %q", suffix)
	}
	return u.New(v), nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) Size {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseUnsafe reads sizes the way tools like ls -h or du -h print them,
// e.g. "2.7K", "4.7M", "100Gi" or "100". Every value is taken as bytes.
//
// A bare number is a count of bytes. One-letter prefixes ("k", "M") are SI
// unless system is NIST, in which case they become the matching NIST prefix
// ("100M" is 100 MiB). Two-letter prefixes ("Ki", "Gi") are always NIST.
// A zero system means SI. Anything that reads as a float, "1e3" included,
// is a count of bytes.
func ParseUnsafe(s string, system System) (Size, error) {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Byte.New(v), nil
	}
	num, suffix, ok := splitUnit(s)
	if !ok {
		v, err := parseNumber(num)
		if err != nil {
			return Size{}, parseErrorf(s, "invalid number %q", num)
		}
		return Byte.New(v), nil
	}
	v, err := parseNumber(num)
	if err != nil {
		return Size{}, parseErrorf(s, "invalid number %q", num)
	}

	prefix := suffix
	if last := prefix[len(prefix)-1]; last == 'b' || last == 'B' {
		prefix = prefix[:len(prefix)-1]
	}

	var name string
	switch len(prefix) {
	case 1:
		if system == NIST {
			name = strings.ToUpper(prefix) + "i"
			if !slices.Contains(NISTPrefixes, name) {
				return Size{}, parseErrorf(s, "unknown prefix %q", prefix)
			}
		} else {
			name = strings.ToUpper(prefix)
			if name == "K" {
				name = "k"
			}
			if !slices.Contains(SIPrefixes, name) {
				return Size{}, parseErrorf(s, "unknown prefix %q", prefix)
			}
		}
	case 2:
		name = capitalizeFirst(prefix)
		if !slices.Contains(NISTPrefixes, name) {
			return Size{}, parseErrorf(s, "unknown prefix %q", prefix)
		}
	default:
		return Size{}, parseErrorf(s, "can not guess the unit of %q", suffix)
	}

	u, ok := LookupUnit(name + "B")
	if !ok {
		return Size{}, parseErrorf(s, "unknown unit %q", name+"B")
	}
	return u.New(v), nil
}

// ParseUnsafeValue is ParseUnsafe for values of unknown type: strings are
// parsed, Go numbers are byte counts, and anything else is a *ParseError.
func ParseUnsafeValue(v any, system System) (Size, error) {
	switch t := v.(type) {
	case string:
		return ParseUnsafe(t, system)
	case Size:
		return t, nil
	}
	if f, ok := toFloat(v); ok {
		return Byte.New(f), nil
	}
	return Size{}, parseErrorf(fmt.Sprint(v), "%T is neither a string nor a number", v)
}

// splitUnit cuts s at its first letter. ok is false when s has no letter.
func splitUnit(s string) (num, suffix string, ok bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		return s, "", false
	}
	return strings.TrimSpace(s[:i]), s[i:], true
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
