package fat32

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// FSInfoSize is the length of the encoded FSInfo record.
	FSInfoSize = 512

	LeadSignature   = uint32(0x41615252)
	StructSignature = uint32(0x61417272)
	TrailSignature  = uint32(0xAA550000)

	// firstFreeCluster is the next-free hint of a freshly formatted volume.
	firstFreeCluster = uint32(2)
)

// FSInfo is the FAT32 FS information sector. FreeCount and NextFree are
// hints cached for drivers; the allocation table is authoritative.
type FSInfo struct {
	LeadSignature   uint32
	Reserved1       [480]byte
	StructSignature uint32
	FreeCount       uint32
	NextFree        uint32
	Reserved2       [12]byte
	TrailSignature  uint32
}

// NewFSInfo returns the FS information sector for a freshly formatted volume
// described by bs. The root directory's cluster is not counted as free.
func NewFSInfo(bs *BootSector) *FSInfo {
	free := bs.DataClusters()
	if free > 0 {
		free-- // root directory
	}
	return &FSInfo{
		LeadSignature:   LeadSignature,
		StructSignature: StructSignature,
		FreeCount:       free,
		NextFree:        firstFreeCluster,
		TrailSignature:  TrailSignature,
	}
}

// MarshalBinary encodes the record into FSInfoSize bytes.
func (fi *FSInfo) MarshalBinary() ([]byte, error) {
	b := make([]byte, FSInfoSize)
	le := binary.LittleEndian
	le.PutUint32(b[0:4], fi.LeadSignature)
	copy(b[4:484], fi.Reserved1[:])
	le.PutUint32(b[484:488], fi.StructSignature)
	le.PutUint32(b[488:492], fi.FreeCount)
	le.PutUint32(b[492:496], fi.NextFree)
	copy(b[496:508], fi.Reserved2[:])
	le.PutUint32(b[508:512], fi.TrailSignature)
	return b, nil
}

// UnmarshalBinary decodes a record of exactly FSInfoSize bytes.
func (fi *FSInfo) UnmarshalBinary(b []byte) error {
	if len(b) != FSInfoSize {
		return errors.Errorf("cannot decode FS info sector from %d bytes, want %d", len(b), FSInfoSize)
	}
	le := binary.LittleEndian
	fi.LeadSignature = le.Uint32(b[0:4])
	copy(fi.Reserved1[:], b[4:484])
	fi.StructSignature = le.Uint32(b[484:488])
	fi.FreeCount = le.Uint32(b[488:492])
	fi.NextFree = le.Uint32(b[492:496])
	copy(fi.Reserved2[:], b[496:508])
	fi.TrailSignature = le.Uint32(b[508:512])
	return nil
}

// Validate checks the three signatures.
func (fi *FSInfo) Validate() error {
	for _, sig := range []struct {
		field     string
		got, want uint32
	}{
		{"LeadSignature", fi.LeadSignature, LeadSignature},
		{"StructSignature", fi.StructSignature, StructSignature},
		{"TrailSignature", fi.TrailSignature, TrailSignature},
	} {
		if sig.got != sig.want {
			return &FormatError{Record: "FS info sector", Field: sig.field, Got: sig.got, Want: sig.want}
		}
	}
	return nil
}
