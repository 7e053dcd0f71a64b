// Package filesize measures files and directory trees as bitmath sizes.
package filesize

import (
	"fmt"
	"os"

	"github.com/wcharczuk/bitmath/pkg/bitmath"
)

// GetSize returns the size of the file at path. With a non-zero system the
// result is converted to the best prefix of that system, otherwise it is a
// count of Bytes.
func GetSize(path string, system bitmath.System) (bitmath.Size, error) {
	info, err := os.Stat(path)
	if err != nil {
		return bitmath.Size{}, fmt.Errorf("filesize: %w", err)
	}
	return sizeOf(info.Size(), system), nil
}

func sizeOf(n int64, system bitmath.System) bitmath.Size {
	s := bitmath.Byte.New(float64(n))
	if system == 0 {
		return s
	}
	return s.BestPrefixFor(system)
}
