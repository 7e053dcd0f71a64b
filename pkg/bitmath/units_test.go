package bitmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func Test_Unit_Properties(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		Unit       bitmath.Unit
		Name       string
		Plural     string
		Base       int
		Exponent   int
		BitBased   bool
		System     bitmath.System
		Multiplier float64
	}{
		{bitmath.Bit, "Bit", "Bits", 2, 0, true, bitmath.NIST, 1},
		{bitmath.Byte, "Byte", "Bytes", 2, 0, false, bitmath.NIST, 1},
		{bitmath.KiB, "KiB", "KiBs", 2, 10, false, bitmath.NIST, 1024},
		{bitmath.Gib, "Gib", "Gibs", 2, 30, true, bitmath.NIST, 1 << 30},
		{bitmath.EiB, "EiB", "EiBs", 2, 60, false, bitmath.NIST, 1 << 60},
		{bitmath.KB, "kB", "kBs", 10, 3, false, bitmath.SI, 1e3},
		{bitmath.Kb, "kb", "kbs", 10, 3, true, bitmath.SI, 1e3},
		{bitmath.Mb, "Mb", "Mbs", 10, 6, true, bitmath.SI, 1e6},
		{bitmath.YB, "YB", "YBs", 10, 24, false, bitmath.SI, 1e24},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Name, tc.Unit.String())
			assert.Equal(t, tc.Plural, tc.Unit.Plural())
			assert.Equal(t, tc.Base, tc.Unit.Base())
			assert.Equal(t, tc.Exponent, tc.Unit.Exponent())
			assert.Equal(t, tc.BitBased, tc.Unit.IsBitBased())
			assert.Equal(t, tc.System, tc.Unit.System())
			assert.Equal(t, tc.Multiplier, tc.Unit.Multiplier())
		})
	}
}

func Test_LookupUnit(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		Name     string
		Expected bitmath.Unit
	}{
		{"b", bitmath.Bit},
		{"B", bitmath.Byte},
		{"Bit", bitmath.Bit},
		{"Byte", bitmath.Byte},
		{"KiB", bitmath.KiB},
		{"Gb", bitmath.Gb},
		{"kB", bitmath.KB},
		{"kb", bitmath.Kb},
		{"Mio", bitmath.MiB},
		{"Eio", bitmath.EiB},
		{"ko", bitmath.KB},
		{"Mo", bitmath.MB},
		{"Eo", bitmath.EB},
		{"o", bitmath.Byte},
	}
	for _, tc := range testCases {
		u, ok := bitmath.LookupUnit(tc.Name)
		require.True(t, ok, tc.Name)
		assert.Equal(t, tc.Expected, u, tc.Name)
	}

	for _, name := range []string{"GIB", "QB", "KB", "kib", ""} {
		_, ok := bitmath.LookupUnit(name)
		assert.False(t, ok, name)
	}
}

func Test_Units(t *testing.T) {
	t.Parallel()

	units := bitmath.Units()
	require.Len(t, units, 30)
	assert.Equal(t, bitmath.Bit, units[0])
	assert.Equal(t, bitmath.Byte, units[1])
	assert.Equal(t, []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}, bitmath.NISTPrefixes)
	assert.Equal(t, []string{"k", "M", "G", "T", "P", "E", "Z", "Y"}, bitmath.SIPrefixes)
}

func Test_ParseSystem(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		Input    string
		Expected bitmath.System
		OK       bool
	}{
		{"NIST", bitmath.NIST, true},
		{"nist", bitmath.NIST, true},
		{" binary ", bitmath.NIST, true},
		{"SI", bitmath.SI, true},
		{"decimal", bitmath.SI, true},
		{"metric", 0, false},
	} {
		s, ok := bitmath.ParseSystem(tc.Input)
		assert.Equal(t, tc.OK, ok, tc.Input)
		assert.Equal(t, tc.Expected, s, tc.Input)
	}
	assert.Equal(t, "NIST", bitmath.NIST.String())
	assert.Equal(t, "SI", bitmath.SI.String())
}
