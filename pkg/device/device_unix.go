//go:build linux || darwin

package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// request is one ioctl whose result is a width-byte unsigned integer.
type request struct {
	code  uint
	width int
}

// ioctl and isBlockDevice are variables so tests can stand in for a device.
var (
	ioctl = func(fd int, req request) (uint64, error) {
		if req.width == 4 {
			v, err := unix.IoctlGetUint32(fd, req.code)
			return uint64(v), err
		}
		return ioctlUint64(fd, req.code)
	}

	isBlockDevice = func(fi os.FileInfo) bool {
		return fi.Mode()&os.ModeDevice != 0 && fi.Mode()&os.ModeCharDevice == 0
	}
)

func capacity(f *os.File) (uint64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("device: %w", err)
	}
	if !isBlockDevice(fi) {
		return 0, fmt.Errorf("%w: %s", ErrNotABlockDevice, f.Name())
	}
	bytes, err := deviceBytes(int(f.Fd()))
	if err != nil {
		return 0, fmt.Errorf("device: ioctl on %s: %w", f.Name(), err)
	}
	return bytes, nil
}
