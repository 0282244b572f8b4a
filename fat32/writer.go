package fat32

import (
	"io"
)

// Volume is the metadata of a FAT32 volume.
type Volume struct {
	BootSector *BootSector
	FSInfo     *FSInfo
	FAT        Table
}

// NewVolume builds the metadata of an empty volume of volumeBytes bytes.
// opts may be nil.
func NewVolume(volumeBytes uint64, opts *Options) (*Volume, error) {
	bs, err := NewBootSector(volumeBytes, opts)
	if err != nil {
		return nil, err
	}
	return &Volume{
		BootSector: bs,
		FSInfo:     NewFSInfo(bs),
		FAT:        NewTable(bs),
	}, nil
}

func writeAt(w io.WriteSeeker, stage Stage, offset int64, b []byte) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Stage: stage, Err: err}
	}
	return write(w, stage, b)
}

func write(w io.Writer, stage Stage, b []byte) error {
	n, err := w.Write(b)
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &IOError{Op: "write", Stage: stage, Err: err}
	}
	return nil
}

// WriteVolume writes the boot sector, the FS information sector and every
// copy of the allocation table to their offsets in w. Each stage must be
// written completely before the next one starts.
//
// The backup boot sector recorded in the boot sector is not written.
func WriteVolume(w io.WriteSeeker, v *Volume) error {
	bs := v.BootSector
	bps := int64(bs.BytesPerSector)

	sector, err := bs.sector()
	if err != nil {
		return err
	}
	if err := writeAt(w, StageBootSector, 0, sector); err != nil {
		return err
	}

	fsi, err := v.FSInfo.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeAt(w, StageFSInfo, int64(bs.FSInfo)*bps, fsi); err != nil {
		return err
	}

	if _, err := w.Seek(int64(bs.ReservedSectors)*bps, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Stage: fatCopy(1), Err: err}
	}
	// The copies are contiguous, so only the first one needs a seek.
	for i := 1; i <= int(bs.NumberOfFATs); i++ {
		if err := write(w, fatCopy(i), v.FAT); err != nil {
			return err
		}
	}
	return nil
}

// Format writes the metadata of an empty volume of volumeBytes bytes to w and
// returns it. opts may be nil.
func Format(w io.WriteSeeker, volumeBytes uint64, opts *Options) (*Volume, error) {
	v, err := NewVolume(volumeBytes, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteVolume(w, v); err != nil {
		return nil, err
	}
	return v, nil
}
