package device

import "golang.org/x/sys/unix"

// From <sys/disk.h>.
const (
	dkiocGetBlockSize  = 0x40046418
	dkiocGetBlockCount = 0x40086419
)

func deviceBytes(fd int) (uint64, error) {
	count, err := ioctl(fd, request{code: dkiocGetBlockCount, width: 8})
	if err != nil {
		return 0, err
	}
	size, err := ioctl(fd, request{code: dkiocGetBlockSize, width: 4})
	if err != nil {
		return 0, err
	}
	return count * size, nil
}

// ioctlUint64 reads a u64 result. Darwin only runs on 64-bit platforms, where
// an int is eight bytes.
func ioctlUint64(fd int, code uint) (uint64, error) {
	v, err := unix.IoctlGetInt(fd, code)
	return uint64(v), err
}
