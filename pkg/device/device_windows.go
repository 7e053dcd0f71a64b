package device

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

const ioctlDiskGetDriveGeometry = 0x70000

type diskGeometry struct {
	Cylinders         int64
	MediaType         uint32
	TracksPerCylinder uint32
	SectorsPerTrack   uint32
	BytesPerSector    uint32
}

// capacity expects a physical drive such as \\.\PhysicalDrive0.
func capacity(f *os.File) (uint64, error) {
	var (
		geometry diskGeometry
		returned uint32
	)
	err := windows.DeviceIoControl(
		windows.Handle(f.Fd()),
		ioctlDiskGetDriveGeometry,
		nil, 0,
		(*byte)(unsafe.Pointer(&geometry)), uint32(unsafe.Sizeof(geometry)),
		&returned, nil,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNotABlockDevice, f.Name(), err)
	}
	return uint64(geometry.Cylinders) *
		uint64(geometry.TracksPerCylinder) *
		uint64(geometry.SectorsPerTrack) *
		uint64(geometry.BytesPerSector), nil
}
