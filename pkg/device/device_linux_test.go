package device

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

var (
	capacityAnswers  = map[uint]uint64{unix.BLKGETSIZE64: 256060514304}
	capacityBytes    = float64(256060514304)
	capacityRequests = 1
)

func Test_IoctlUint64_RegularFile(t *testing.T) {
	f, err := os.Open(tempFile(t))
	require.NoError(t, err)
	defer f.Close()

	_, err = ioctlUint64(int(f.Fd()), unix.BLKGETSIZE64)
	assert.ErrorIs(t, err, unix.ENOTTY)
}
