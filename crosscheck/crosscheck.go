// Package crosscheck validates formatted images with an independent FAT32
// implementation, github.com/diskfs/go-diskfs.
package crosscheck

import (
	"io"

	diskfat32 "github.com/diskfs/go-diskfs/filesystem/fat32"
	"github.com/gokrazy/fat32/fat32"
	"github.com/pkg/errors"
)

// File is what go-diskfs reads file systems from. afero.File satisfies it.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.ReadSeeker
}

// Result summarizes a successful check.
type Result struct {
	Volume      *fat32.Volume
	RootEntries int
}

// Verify reads the volume of size bytes in f strictly, then has go-diskfs
// open it, which compares both FAT copies, and list the root directory.
func Verify(f File, size int64) (*Result, error) {
	v, err := fat32.ReadVolume(f, &fat32.ReadOptions{Strict: true})
	if err != nil {
		return nil, err
	}
	bs := v.BootSector
	// go-diskfs assumes 512 byte sectors and exactly two FATs.
	if bs.BytesPerSector != 512 {
		return nil, errors.Errorf("go-diskfs cannot read %d byte sectors", bs.BytesPerSector)
	}
	if bs.NumberOfFATs != 2 {
		return nil, errors.Errorf("go-diskfs cannot read volumes with %d FATs", bs.NumberOfFATs)
	}

	fs, err := diskfat32.Read(f, size, 0, int64(bs.BytesPerSector))
	if err != nil {
		return nil, errors.Wrap(err, "go-diskfs")
	}
	entries, err := fs.ReadDir("/")
	if err != nil {
		return nil, errors.Wrap(err, "go-diskfs")
	}
	return &Result{
		Volume:      v,
		RootEntries: len(entries),
	}, nil
}
