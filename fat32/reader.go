package fat32

import (
	"bytes"
	"io"
)

// ReadOptions controls how strictly ReadVolume treats what it reads.
type ReadOptions struct {
	// Strict rejects records whose signatures or FAT32 fixed fields are
	// wrong. Without it, records are returned as found so that damaged
	// images can still be inspected.
	Strict bool
}

func readAt(r io.ReadSeeker, stage Stage, offset int64, b []byte) error {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return &IOError{Op: "seek", Stage: stage, Err: err}
	}
	if _, err := io.ReadFull(r, b); err != nil {
		return &IOError{Op: "read", Stage: stage, Err: err}
	}
	return nil
}

// ReadVolume reads the boot sector, the FS information sector and the first
// copy of the allocation table from r. opts may be nil.
func ReadVolume(r io.ReadSeeker, opts *ReadOptions) (*Volume, error) {
	strict := opts != nil && opts.Strict

	b := make([]byte, BootSectorSize)
	if err := readAt(r, StageBootSector, 0, b); err != nil {
		return nil, err
	}
	var bs BootSector
	if err := bs.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if strict {
		if err := bs.Validate(); err != nil {
			return nil, err
		}
	}
	bps := int64(bs.BytesPerSector)

	b = make([]byte, FSInfoSize)
	if err := readAt(r, StageFSInfo, int64(bs.FSInfo)*bps, b); err != nil {
		return nil, err
	}
	var fsi FSInfo
	if err := fsi.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	if strict {
		if err := fsi.Validate(); err != nil {
			return nil, err
		}
	}

	fat, err := readTable(r, int64(bs.ReservedSectors)*bps, bs.FATBytes())
	if err != nil {
		return nil, err
	}

	return &Volume{
		BootSector: &bs,
		FSInfo:     &fsi,
		FAT:        fat,
	}, nil
}

// readTable reads size bytes at offset. The buffer grows as data arrives, so
// a corrupt SectorsPerFAT cannot make it allocate more than r holds.
func readTable(r io.ReadSeeker, offset, size int64) (Table, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, &IOError{Op: "seek", Stage: StageFAT, Err: err}
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, size))
	if err != nil {
		return nil, &IOError{Op: "read", Stage: StageFAT, Err: err}
	}
	if n != size {
		return nil, &IOError{Op: "read", Stage: StageFAT, Err: io.ErrUnexpectedEOF}
	}
	return Table(buf.Bytes()), nil
}
