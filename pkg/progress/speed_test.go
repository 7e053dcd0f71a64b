package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

func Test_TransferSpeed_Render(t *testing.T) {
	t.Parallel()

	nist := TransferSpeed{System: bitmath.NIST}
	si := TransferSpeed{System: bitmath.SI}
	custom := TransferSpeed{Template: "{value:.6f} {unit_plural} per second"}

	testCases := [...]struct {
		Name        string
		Speed       TransferSpeed
		Transferred float64
		Elapsed     time.Duration
		Expected    string
	}{
		{"nothing yet", nist, 0, 0, "0.00 Byte/s"},
		{"no time elapsed", nist, 512, time.Microsecond, "0.00 Byte/s"},
		{"bytes", nist, 512, time.Second, "512.00 Byte/s"},
		{"NIST", nist, bitmath.MiB.New(512).Bytes(), 10 * time.Second, "51.20 MiB/s"},
		{"SI", si, bitmath.MB.New(512).Bytes(), 10 * time.Second, "51.20 MB/s"},
		{"custom template", custom, 10240, 10 * time.Second, "1.000000 KiBs per second"},
		{"zero value", TransferSpeed{}, 2048, time.Second, "2.00 KiB/s"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.Expected, tc.Speed.Render(tc.Transferred, tc.Elapsed))
		})
	}
}
