package blockdev

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func deviceSize(f *os.File) (int64, error) {
	// unix.IoctlGetInt would truncate the 64-bit result on 32-bit platforms.
	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, errors.Wrapf(errno, "BLKGETSIZE64 %s", f.Name())
	}
	return int64(size), nil
}
