package bitmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func Test_Size_BestPrefix(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		Name     string
		Input    bitmath.Size
		System   bitmath.System
		Expected bitmath.Unit
	}{
		{"half byte is bits", bitmath.Byte.FromBits(4), 0, bitmath.Bit},
		{"two bytes of bits", bitmath.Bit.FromBytes(2), 0, bitmath.Byte},
		{"one byte", bitmath.Byte.New(1), 0, bitmath.Byte},
		{"boundary rounds up", bitmath.MiB.New(1024), 0, bitmath.GiB},
		{"boundary rounds down", bitmath.GiB.FromBytes(1048576), 0, bitmath.MiB},
		{"large KiB", bitmath.KiB.From(bitmath.PiB.New(1)), 0, bitmath.PiB},
		{"small PiB", bitmath.PiB.From(bitmath.KiB.New(1)), 0, bitmath.KiB},
		{"huge KiB", bitmath.KiB.From(bitmath.EiB.New(1)), 0, bitmath.EiB},
		{"tiny EiB", bitmath.EiB.From(bitmath.Bit.New(1)), 0, bitmath.Bit},
		{"EiB is already best", bitmath.EiB.New(1), 0, bitmath.EiB},
		{"NIST saturates", bitmath.EiB.New(4096), 0, bitmath.EiB},
		{"SI to NIST", bitmath.KB.New(1600), bitmath.NIST, bitmath.MiB},
		{"NIST half GiB", bitmath.GiB.New(0.5), bitmath.NIST, bitmath.MiB},
		{"SI boundary", bitmath.MB.New(1000), 0, bitmath.GB},
		{"SI MB in GB", bitmath.GB.FromBytes(1048576), 0, bitmath.MB},
		{"large kB", bitmath.KB.From(bitmath.PB.New(1)), 0, bitmath.PB},
		{"small PB", bitmath.PB.From(bitmath.KB.New(1)), 0, bitmath.KB},
		{"huge kB", bitmath.KB.From(bitmath.EB.New(1)), 0, bitmath.EB},
		{"tiny EB", bitmath.EB.From(bitmath.Bit.New(1)), 0, bitmath.Bit},
		{"NIST half GiB as SI", bitmath.GiB.New(0.5), bitmath.SI, bitmath.MB},
		{"kB 1600 stays SI", bitmath.KB.New(1600), bitmath.SI, bitmath.MB},
		{"SI saturates", bitmath.YB.New(5000), 0, bitmath.YB},
		{"SI bits use SI bytes", bitmath.Mb.New(16), 0, bitmath.MB},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			actual := tc.Input.BestPrefixFor(tc.System)
			assert.Equal(t, tc.Expected, actual.Unit())
			assert.InDelta(t, tc.Input.Bits(), actual.Bits(), 1e-6)

			negative := tc.Input.Neg().BestPrefixFor(tc.System)
			assert.Equal(t, tc.Expected, negative.Unit(), "negative")
			assert.Equal(t, -actual.Value(), negative.Value(), "negative")
		})
	}
}

func Test_Size_BestPrefixIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, s := range []bitmath.Size{
		bitmath.Bit.New(3),
		bitmath.Byte.New(1000),
		bitmath.KiB.New(123456),
		bitmath.KB.New(123456),
		bitmath.Gb.New(77),
		bitmath.EiB.New(1e6),
	} {
		once := s.BestPrefix()
		twice := once.BestPrefix()
		assert.Equal(t, once.Unit(), twice.Unit(), s.GoString())
		assert.Equal(t, once.Bits(), twice.Bits(), s.GoString())
	}
}

func Test_BestPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bitmath.KiB, bitmath.BestPrefix(1024, 0).Unit())
	assert.Equal(t, bitmath.KiB, bitmath.BestPrefix(1024, bitmath.NIST).Unit())
	assert.Equal(t, bitmath.KB, bitmath.BestPrefix(1024, bitmath.SI).Unit())
	assert.Equal(t, bitmath.EiB, bitmath.BestPrefix(1152921504606846977, bitmath.NIST).Unit())
	assert.Equal(t, bitmath.YB, bitmath.BestPrefix(1000000000000000000000001, bitmath.SI).Unit())

	s, err := bitmath.BestPrefixValue(bitmath.MiB.New(1024), bitmath.NIST)
	require.NoError(t, err)
	assert.Equal(t, bitmath.GiB, s.Unit())

	s, err = bitmath.BestPrefixValue(uint64(2048), 0)
	require.NoError(t, err)
	assert.Equal(t, bitmath.KiB, s.Unit())
	assert.Equal(t, float64(2), s.Value())

	_, err = bitmath.BestPrefixValue("2048", 0)
	assert.ErrorIs(t, err, bitmath.ErrInvalidType)
}
