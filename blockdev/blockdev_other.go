//go:build !linux

package blockdev

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

func deviceSize(f *os.File) (int64, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrapf(err, "seek to end of %s", f.Name())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, errors.Wrapf(err, "seek to start of %s", f.Name())
	}
	return size, nil
}
