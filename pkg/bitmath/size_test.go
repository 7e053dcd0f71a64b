package bitmath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func Test_Size_BytesAreEighthOfBits(t *testing.T) {
	t.Parallel()

	for _, s := range []bitmath.Size{
		bitmath.Bit.New(1),
		bitmath.Byte.New(3),
		bitmath.KiB.New(1.5),
		bitmath.Mb.New(12),
		bitmath.KB.New(-7),
		bitmath.YB.New(1),
	} {
		assert.Equal(t, s.Bits()/8, s.Bytes(), s.GoString())
	}
}

func Test_Size_Construction(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float64(8192), bitmath.KiB.New(1).Bits())
	assert.Equal(t, float64(1024), bitmath.KiB.New(1).Bytes())
	assert.Equal(t, float64(1000), bitmath.Kb.New(1).Bits())
	assert.Equal(t, float64(125), bitmath.Kb.New(1).Bytes())

	s := bitmath.GiB.FromBytes(1048576)
	assert.Equal(t, bitmath.GiB, s.Unit())
	assert.Equal(t, 1.0/1024, s.Value())

	s = bitmath.Byte.FromBits(4)
	assert.Equal(t, 0.5, s.Value())

	s = bitmath.Number(bitmath.MiB, uint16(3))
	assert.Equal(t, float64(3), s.Value())
	assert.Equal(t, bitmath.MiB, s.Unit())

	var zero bitmath.Size
	assert.Equal(t, bitmath.Bit, zero.Unit())
	assert.Zero(t, zero.Bits())
}

func Test_NewSize(t *testing.T) {
	t.Parallel()

	s, err := bitmath.NewSize(bitmath.KiB)
	require.NoError(t, err)
	assert.Zero(t, s.Value())

	s, err = bitmath.NewSize(bitmath.KiB, bitmath.WithValue(2))
	require.NoError(t, err)
	assert.Equal(t, float64(2048), s.Bytes())

	s, err = bitmath.NewSize(bitmath.KiB, bitmath.WithBytes(512))
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Value())

	s, err = bitmath.NewSize(bitmath.Byte, bitmath.WithBits(12))
	require.NoError(t, err)
	assert.Equal(t, 1.5, s.Value())

	_, err = bitmath.NewSize(bitmath.Byte, bitmath.WithBytes(1), bitmath.WithBits(8))
	assert.ErrorIs(t, err, bitmath.ErrInvalidArguments)

	_, err = bitmath.NewSize(bitmath.Byte, bitmath.WithValue(1), bitmath.WithValue(1))
	assert.ErrorIs(t, err, bitmath.ErrInvalidArguments)

	_, err = bitmath.NewSize(bitmath.Unit(99), bitmath.WithValue(1))
	assert.ErrorIs(t, err, bitmath.ErrInvalidType)
}

func Test_Of(t *testing.T) {
	t.Parallel()

	for _, v := range []any{int(2), int8(2), uint32(2), int64(2), float32(2), 2.0} {
		s, err := bitmath.Of(bitmath.KiB, v)
		require.NoError(t, err)
		assert.Equal(t, float64(2), s.Value())
	}

	_, err := bitmath.Of(bitmath.KiB, "2")
	assert.ErrorIs(t, err, bitmath.ErrInvalidType)
	_, err = bitmath.Of(bitmath.KiB, nil)
	assert.ErrorIs(t, err, bitmath.ErrInvalidType)
}

func Test_Size_Conversion(t *testing.T) {
	t.Parallel()

	kib := bitmath.KiB.New(1)
	assert.True(t, kib.Equal(bitmath.Byte.New(1024)))
	assert.Equal(t, float64(1024), kib.To(bitmath.Byte).Value())
	assert.Equal(t, float64(8192), kib.To(bitmath.Bit).Value())
	assert.Equal(t, 1.024, kib.To(bitmath.KB).Value())
	assert.Equal(t, 8.192, kib.To(bitmath.Kb).Value())
	assert.Equal(t, float64(8), kib.To(bitmath.Kib).Value())

	mib := bitmath.KiB.New(12345).To(bitmath.MiB)
	assert.Equal(t, 12.0556640625, mib.Value())

	// every conversion keeps the magnitude
	for _, u := range bitmath.Units() {
		converted := kib.To(u)
		assert.Equal(t, u, converted.Unit())
		assert.InDelta(t, kib.Bits(), converted.Bits(), 1e-9, u.String())
		assert.InDelta(t, kib.Bits(), converted.To(bitmath.KiB).Bits(), 1e-9, u.String())
	}
}

func Test_Size_To_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, from := range bitmath.Units() {
		for _, to := range bitmath.Units() {
			start := from.New(1)
			back := start.To(to).To(from)
			assert.Equal(t, from, back.Unit(), "%s -> %s", from, to)
			assert.InEpsilon(t, 1, back.Value(), 1e-12, "%s -> %s", from, to)
			assert.InEpsilon(t, start.Bits(), back.Bits(), 1e-12, "%s -> %s", from, to)
		}
	}
}

func Test_Size_Key(t *testing.T) {
	t.Parallel()

	kib := bitmath.KiB.New(1)
	bytes := bitmath.Byte.New(1024)
	assert.NotEqual(t, kib, bytes)
	assert.True(t, kib.Equal(bytes))
	assert.Equal(t, kib.Key(), bytes.Key())

	seen := map[float64]bitmath.Size{kib.Key(): kib}
	_, ok := seen[bytes.Key()]
	assert.True(t, ok)
	assert.NotEqual(t, kib.Key(), bitmath.KB.New(1).Key())
}

func Test_Size_Properties(t *testing.T) {
	t.Parallel()

	kib := bitmath.KiB.New(1)
	assert.Equal(t, 2, kib.Base())
	assert.Equal(t, 10, kib.Exponent())
	assert.Equal(t, bitmath.NIST, kib.System())
	assert.Equal(t, "KiB", kib.UnitName())

	kb := bitmath.KB.New(1)
	assert.Equal(t, "kB", kb.UnitName())
	assert.Equal(t, bitmath.SI, kb.System())

	assert.Equal(t, int64(3), bitmath.MiB.New(3.9).Int64())
	assert.Equal(t, 3.9, bitmath.MiB.New(3.9).Float64())
}

func Test_Size_GoString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "KiB(1.0)", bitmath.KiB.New(1).GoString())
	assert.Equal(t, "MiB(0.5)", bitmath.MiB.New(0.5).GoString())
	assert.Equal(t, "kB(-3.25)", bitmath.KB.New(-3.25).GoString())
}
