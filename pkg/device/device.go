// Package device reports the capacity of block devices.
package device

import (
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

var (
	ErrUnsupportedPlatform = errors.New("device: capacity queries are not supported on this platform")
	ErrNotABlockDevice     = errors.New("device: not a block device")
)

// Capacity returns the capacity of the block device at path, e.g.
// "/dev/sda" or "/dev/disk0", in Bytes.
func Capacity(path string) (bitmath.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return bitmath.Size{}, fmt.Errorf("device: %w", err)
	}
	defer f.Close()
	return CapacityOf(f)
}

// CapacityOf is Capacity for an open device.
func CapacityOf(f *os.File) (bitmath.Size, error) {
	bytes, err := capacity(f)
	if err != nil {
		return bitmath.Size{}, err
	}
	return bitmath.Byte.New(float64(bytes)), nil
}
