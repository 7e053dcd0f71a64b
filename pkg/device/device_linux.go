package device

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func deviceBytes(fd int) (uint64, error) {
	return ioctl(fd, request{code: unix.BLKGETSIZE64, width: 8})
}

// ioctlUint64 reads a u64 result. unix.IoctlGetInt reads a C int, which is
// four bytes on Linux.
func ioctlUint64(fd int, code uint) (uint64, error) {
	var v uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(code), uintptr(unsafe.Pointer(&v)))
	if errno != 0 {
		return 0, errno
	}
	return v, nil
}
