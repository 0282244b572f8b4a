package fat32

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

// DirectoryEntrySize is the length of an encoded short-name directory entry.
const DirectoryEntrySize = 32

// Attribute bits of a directory entry.
const (
	AttrReadOnly  = uint8(0x01)
	AttrHidden    = uint8(0x02)
	AttrSystem    = uint8(0x04)
	AttrVolumeID  = uint8(0x08)
	AttrDirectory = uint8(0x10)
	AttrArchive   = uint8(0x20)
)

// DirectoryEntry is a short-name (8.3) directory entry. Formatting leaves the
// root directory empty, so these are only ever decoded from existing images.
type DirectoryEntry struct {
	Name              [11]byte // 8 characters name, 3 characters extension, space padded
	Attr              uint8
	NTReserved        uint8
	CreationTimeTenth uint8
	CreationTime      uint16
	CreationDate      uint16
	LastAccessDate    uint16
	FirstClusterHigh  uint16
	WriteTime         uint16
	WriteDate         uint16
	FirstClusterLow   uint16
	FileSize          uint32
}

// FirstCluster returns the number of the entry's first cluster.
func (de *DirectoryEntry) FirstCluster() uint32 {
	return uint32(de.FirstClusterHigh)<<16 | uint32(de.FirstClusterLow)
}

// SetFirstCluster splits cluster across the high and low halves.
func (de *DirectoryEntry) SetFirstCluster(cluster uint32) {
	de.FirstClusterHigh = uint16(cluster >> 16)
	de.FirstClusterLow = uint16(cluster)
}

// ModTime returns the last write time.
func (de *DirectoryEntry) ModTime() time.Time {
	return unmarshalTimeDate(de.WriteTime, de.WriteDate)
}

// SetModTime stores t as last write time, with 2 second resolution.
func (de *DirectoryEntry) SetModTime(t time.Time) {
	de.WriteTime = dosTime(t)
	de.WriteDate = dosDate(t)
}

func dosTime(t time.Time) uint16 {
	return uint16(t.Hour())<<11 |
		uint16(t.Minute())<<5 |
		uint16(t.Second()/2)
}

func dosDate(t time.Time) uint16 {
	return uint16(t.Year()-1980)<<9 |
		uint16(t.Month())<<5 |
		uint16(t.Day())
}

func unmarshalTimeDate(t, d uint16) time.Time {
	return time.Date(
		1980+int(d>>9),
		time.Month((d>>5)&0xF),
		int(d&0x1F),
		int(t>>11),
		int((t>>5)&0x3F),
		int(t&0x1F)*2,
		0,
		time.UTC)
}

// MarshalBinary encodes the entry into DirectoryEntrySize bytes.
func (de *DirectoryEntry) MarshalBinary() ([]byte, error) {
	b := make([]byte, DirectoryEntrySize)
	le := binary.LittleEndian
	copy(b[0:11], de.Name[:])
	b[11] = de.Attr
	b[12] = de.NTReserved
	b[13] = de.CreationTimeTenth
	le.PutUint16(b[14:16], de.CreationTime)
	le.PutUint16(b[16:18], de.CreationDate)
	le.PutUint16(b[18:20], de.LastAccessDate)
	le.PutUint16(b[20:22], de.FirstClusterHigh)
	le.PutUint16(b[22:24], de.WriteTime)
	le.PutUint16(b[24:26], de.WriteDate)
	le.PutUint16(b[26:28], de.FirstClusterLow)
	le.PutUint32(b[28:32], de.FileSize)
	return b, nil
}

// UnmarshalBinary decodes an entry of exactly DirectoryEntrySize bytes.
func (de *DirectoryEntry) UnmarshalBinary(b []byte) error {
	if len(b) != DirectoryEntrySize {
		return errors.Errorf("cannot decode directory entry from %d bytes, want %d", len(b), DirectoryEntrySize)
	}
	le := binary.LittleEndian
	copy(de.Name[:], b[0:11])
	de.Attr = b[11]
	de.NTReserved = b[12]
	de.CreationTimeTenth = b[13]
	de.CreationTime = le.Uint16(b[14:16])
	de.CreationDate = le.Uint16(b[16:18])
	de.LastAccessDate = le.Uint16(b[18:20])
	de.FirstClusterHigh = le.Uint16(b[20:22])
	de.WriteTime = le.Uint16(b[22:24])
	de.WriteDate = le.Uint16(b[24:26])
	de.FirstClusterLow = le.Uint16(b[26:28])
	de.FileSize = le.Uint32(b[28:32])
	return nil
}
