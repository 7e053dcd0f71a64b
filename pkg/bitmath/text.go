package bitmath

import (
	"fmt"
	"strconv"
)

// MarshalText renders the size as "<value> <unit>", independent of the
// default formatter, so that it reads back with Parse.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatFloat(s.value, 'f', -1, 64) + " " + s.unit.String()), nil
}

// UnmarshalText parses text with Parse.
func (s *Size) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// FlagValue binds a Size to a command line flag. It implements flag.Value.
type FlagValue struct {
	Size *Size
	// Lenient falls back to ParseUnsafe with System when Parse fails.
	Lenient bool
	System  System
}

// String is the text form, which Set reads back.
func (f *FlagValue) String() string {
	if f == nil || f.Size == nil {
		return ""
	}
	text, _ := f.Size.MarshalText()
	return string(text)
}

func (f *FlagValue) Set(s string) error {
	v, err := Parse(s)
	if err != nil && f.Lenient {
		v, err = ParseUnsafe(s, f.System)
	}
	if err != nil {
		return fmt.Errorf("'%s' can not be parsed into a valid size: %w", s, err)
	}
	if f.Size == nil {
		f.Size = new(Size)
	}
	*f.Size = v
	return nil
}

func (f *FlagValue) Get() any {
	if f.Size == nil {
		return Size{}
	}
	return *f.Size
}
