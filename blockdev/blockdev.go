// Package blockdev determines how many bytes an image file or block device
// holds.
package blockdev

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Sizer is the part of afero.File which Size needs.
type Sizer interface {
	io.Seeker
	Stat() (os.FileInfo, error)
}

// Size returns the size of f in bytes. Block devices are asked for their
// size, since their stat size is 0. The offset of f is left at 0.
func Size(f Sizer) (int64, error) {
	st, err := f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat")
	}
	if st.Mode()&os.ModeDevice != 0 {
		if osf, ok := f.(*os.File); ok {
			return deviceSize(osf)
		}
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrap(err, "seek to end")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "seek to start")
	}
	return size, nil
}
