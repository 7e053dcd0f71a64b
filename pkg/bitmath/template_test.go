package bitmath_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func Test_Template_Render(t *testing.T) {
	t.Parallel()

	kib := bitmath.KiB.New(1)
	testCases := [...]struct {
		Template string
		Size     bitmath.Size
		Plural   bool
		Expected string
	}{
		{"{value} {unit}", kib, false, "1.0 KiB"},
		{"{value} {unit}", bitmath.MiB.New(0.5), false, "0.5 MiB"},
		{"{value:.2f}{unit}", bitmath.MiB.New(1 / 3.0), false, "0.33MiB"},
		{"{value:.4g}{unit}", bitmath.MiB.New(102.4754), false, "102.5MiB"},
		{"{value:.5f} {unit}", bitmath.KiB.New(12345).To(bitmath.MiB), false, "12.05566 MiB"},
		{"{value:.2g}{unit}", bitmath.Byte.New(1), false, "1Byte"},
		{"{value:.1g}{unit}", bitmath.Byte.New(3), true, "3Bytes"},
		{"{value:.1g}{unit}", bitmath.Byte.New(1), true, "1Byte"},
		{"{value} {unit_plural}", kib, false, "1.0 KiBs"},
		{"{value} {unit_singular}", bitmath.KiB.New(2), true, "2.0 KiB"},
		{"{binary}", kib, false, "0b10000000000000"},
		{"{bin}", kib, false, "0b10000000000000"},
		{"{power} {binary}", bitmath.MiB.New(3.1215), false, "20 0b1100011111000110101001111"},
		{"{binary}", bitmath.EiB.New(1), false, "0b1" + strings.Repeat("0", 63)},
		{"{bin}", bitmath.YB.New(-1).Rsh(80), false, "-0b111"},
		{"{bin}", bitmath.Bit.New(-5), false, "-0b101"},
		{"{base}^{power} {system}", kib, false, "2^10 NIST"},
		{"{system}", bitmath.KB.New(1), false, "SI"},
		{"{bits:.0f} bits, {bytes:.0f} bytes", kib, false, "8192 bits, 1024 bytes"},
		{"{bytes:,.0f}", bitmath.GiB.New(1), false, "1,073,741,824"},
		{"{bytes:,d}", bitmath.MB.New(12.5), false, "12,500,000"},
		{"[{value:>8.2f}]", kib, false, "[    1.00]"},
		{"[{value:<8.2f}]", kib, false, "[1.00    ]"},
		{"[{value:*^9.1f}]", kib, false, "[***1.0***]"},
		{"[{value:+08.2f}]", kib, false, "[+0001.00]"},
		{"[{unit:>5}]", kib, false, "[  KiB]"},
		{"{value:.1%}", bitmath.Byte.New(0.5), false, "50.0%"},
		{"{value:e}", bitmath.KB.New(1500), false, "1.500000e+03"},
		{"{value}", bitmath.Byte.New(-2), false, "-2.0"},
		{"{value}", bitmath.EiB.New(1e20), false, "1e+20"},
		{"{{{value}}}", kib, false, "{1.0}"},
		{"no fields", kib, false, "no fields"},
	}

	for _, tc := range testCases {
		tmpl, err := bitmath.CompileTemplate(tc.Template)
		require.NoError(t, err, tc.Template)
		assert.Equal(t, tc.Expected, tmpl.Render(tc.Size, tc.Plural), tc.Template)
		assert.Equal(t, tc.Template, tmpl.String())
	}
}

func Test_CompileTemplate_Errors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"{value",
		"{nope}",
		"value}",
		"{value:.f}",
		"{value:.2x}",
		"{value:.2ff}",
	} {
		_, err := bitmath.CompileTemplate(src)
		assert.ErrorIs(t, err, bitmath.ErrTemplate, src)
	}
}
