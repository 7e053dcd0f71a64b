//go:build !linux && !darwin && !windows

package device

import "os"

func capacity(*os.File) (uint64, error) {
	return 0, ErrUnsupportedPlatform
}
