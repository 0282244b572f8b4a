package fat32

import (
	"encoding/binary"
	"fmt"
	"unicode"

	"github.com/pkg/errors"
)

const (
	sectorSize        = uint16(512)
	sectorsPerCluster = uint8(8)
	reservedSectors   = uint16(32)
	numberOfFATs      = uint8(2)

	// minClusters is the smallest number of data clusters a volume must
	// provide: the root directory needs one.
	minClusters = 1

	// hardDisk is the media descriptor for a hard disk (as opposed to floppy).
	hardDisk = uint8(0xF8)

	// extendedBootSignature marks the presence of the volume ID, label and
	// file system type fields.
	extendedBootSignature = uint8(0x29)

	rootCluster      = uint32(2)
	fsInfoSector     = uint16(1)
	backupBootSector = uint16(6)

	// DefaultOEMName, DefaultVolumeLabel and DefaultVolumeID are used by
	// NewBootSector unless overridden.
	DefaultOEMName     = "MSWIN4.1"
	DefaultVolumeLabel = "NO NAME"
	DefaultVolumeID    = uint32(0xDEADBEEF)
)

// BootSectorSize is the length of the encoded BootSector record. On disk the
// record is followed by boot code and the 0x55 0xAA sector signature.
const BootSectorSize = 90

var (
	jumpInstruction = [3]byte{0xEB, 0x58, 0x90}
	fileSystemType  = [8]byte{'F', 'A', 'T', '3', '2', ' ', ' ', ' '}
)

// BootSector is the FAT32 boot sector: the BIOS parameter block, the FAT32
// extension and the extended boot record.
type BootSector struct {
	BootJumpInst      [3]byte
	OEMName           [8]byte
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumberOfFATs      uint8
	RootDirEntries    uint16 // FAT12/16 only, always 0
	TotalSectorsShort uint16 // 0: TotalSectorsLong is used
	MediaDescriptor   uint8
	SectorsPerFAT16   uint16 // FAT12/16 only, always 0
	SectorsPerTrack   uint16
	NumberOfHeads     uint16
	HiddenSectors     uint32
	TotalSectorsLong  uint32

	SectorsPerFAT    uint32
	ExtFlags         uint16
	FSVersion        uint16
	RootCluster      uint32
	FSInfo           uint16
	BackupBootSector uint16
	Reserved         [12]byte

	DriveNumber    uint8
	Reserved1      uint8
	BootSignature  uint8
	VolumeID       uint32
	VolumeLabel    [11]byte
	FileSystemType [8]byte
}

// Options overrides the conventional values NewBootSector uses. Zero fields
// keep their default.
type Options struct {
	OEMName           string
	VolumeLabel       string
	VolumeID          uint32
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumberOfFATs      uint8
}

func (o *Options) withDefaults() Options {
	res := Options{
		OEMName:           DefaultOEMName,
		VolumeLabel:       DefaultVolumeLabel,
		VolumeID:          DefaultVolumeID,
		SectorsPerCluster: sectorsPerCluster,
		ReservedSectors:   reservedSectors,
		NumberOfFATs:      numberOfFATs,
	}
	if o == nil {
		return res
	}
	if o.OEMName != "" {
		res.OEMName = o.OEMName
	}
	if o.VolumeLabel != "" {
		res.VolumeLabel = o.VolumeLabel
	}
	if o.VolumeID != 0 {
		res.VolumeID = o.VolumeID
	}
	if o.SectorsPerCluster != 0 {
		res.SectorsPerCluster = o.SectorsPerCluster
	}
	if o.ReservedSectors != 0 {
		res.ReservedSectors = o.ReservedSectors
	}
	if o.NumberOfFATs != 0 {
		res.NumberOfFATs = o.NumberOfFATs
	}
	return res
}

// paddedText returns s left-aligned in a space-padded field of n bytes.
func paddedText(field, s string, n int) ([]byte, error) {
	if len(s) > n {
		return nil, configErrorf("%s %q is longer than %d bytes", field, s, n)
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return nil, configErrorf("%s %q contains non-ASCII character %q", field, s, r)
		}
	}
	return []byte(fmt.Sprintf("%-*s", n, s)), nil
}

// NewBootSector returns the boot sector for a volume of volumeBytes bytes.
// opts may be nil.
func NewBootSector(volumeBytes uint64, opts *Options) (*BootSector, error) {
	o := opts.withDefaults()
	if o.ReservedSectors <= backupBootSector {
		return nil, configErrorf("%d reserved sectors do not cover the backup boot sector at sector %d", o.ReservedSectors, backupBootSector)
	}
	oem, err := paddedText("OEM name", o.OEMName, 8)
	if err != nil {
		return nil, err
	}
	label, err := paddedText("volume label", o.VolumeLabel, 11)
	if err != nil {
		return nil, err
	}

	g := Geometry{
		BytesPerSector:    sectorSize,
		SectorsPerCluster: o.SectorsPerCluster,
		ReservedSectors:   o.ReservedSectors,
		NumberOfFATs:      o.NumberOfFATs,
	}
	fatSectors, err := SectorsPerFAT(volumeBytes, g)
	if err != nil {
		return nil, err
	}

	bs := &BootSector{
		BootJumpInst:      jumpInstruction,
		BytesPerSector:    g.BytesPerSector,
		SectorsPerCluster: g.SectorsPerCluster,
		ReservedSectors:   g.ReservedSectors,
		NumberOfFATs:      g.NumberOfFATs,
		MediaDescriptor:   hardDisk,
		SectorsPerTrack:   63, // (only for bootcode)
		NumberOfHeads:     64, // (only for bootcode)
		TotalSectorsLong:  uint32(volumeBytes / uint64(g.BytesPerSector)),
		SectorsPerFAT:     fatSectors,
		RootCluster:       rootCluster,
		FSInfo:            fsInfoSector,
		BackupBootSector:  backupBootSector,
		DriveNumber:       0x80, // (only for bootcode)
		BootSignature:     extendedBootSignature,
		VolumeID:          o.VolumeID,
		FileSystemType:    fileSystemType,
	}
	copy(bs.OEMName[:], oem)
	copy(bs.VolumeLabel[:], label)
	return bs, nil
}

// DataClusters returns the number of clusters following the FAT copies.
func (bs *BootSector) DataClusters() uint32 {
	used := uint64(bs.ReservedSectors) + uint64(bs.NumberOfFATs)*uint64(bs.SectorsPerFAT)
	if bs.SectorsPerCluster == 0 || uint64(bs.TotalSectorsLong) <= used {
		return 0
	}
	return uint32((uint64(bs.TotalSectorsLong) - used) / uint64(bs.SectorsPerCluster))
}

// FATBytes returns the size of one allocation table copy in bytes.
func (bs *BootSector) FATBytes() int64 {
	return int64(bs.SectorsPerFAT) * int64(bs.BytesPerSector)
}

// MarshalBinary encodes the record into BootSectorSize bytes.
func (bs *BootSector) MarshalBinary() ([]byte, error) {
	b := make([]byte, BootSectorSize)
	le := binary.LittleEndian
	copy(b[0:3], bs.BootJumpInst[:])
	copy(b[3:11], bs.OEMName[:])
	le.PutUint16(b[11:13], bs.BytesPerSector)
	b[13] = bs.SectorsPerCluster
	le.PutUint16(b[14:16], bs.ReservedSectors)
	b[16] = bs.NumberOfFATs
	le.PutUint16(b[17:19], bs.RootDirEntries)
	le.PutUint16(b[19:21], bs.TotalSectorsShort)
	b[21] = bs.MediaDescriptor
	le.PutUint16(b[22:24], bs.SectorsPerFAT16)
	le.PutUint16(b[24:26], bs.SectorsPerTrack)
	le.PutUint16(b[26:28], bs.NumberOfHeads)
	le.PutUint32(b[28:32], bs.HiddenSectors)
	le.PutUint32(b[32:36], bs.TotalSectorsLong)
	le.PutUint32(b[36:40], bs.SectorsPerFAT)
	le.PutUint16(b[40:42], bs.ExtFlags)
	le.PutUint16(b[42:44], bs.FSVersion)
	le.PutUint32(b[44:48], bs.RootCluster)
	le.PutUint16(b[48:50], bs.FSInfo)
	le.PutUint16(b[50:52], bs.BackupBootSector)
	copy(b[52:64], bs.Reserved[:])
	b[64] = bs.DriveNumber
	b[65] = bs.Reserved1
	b[66] = bs.BootSignature
	le.PutUint32(b[67:71], bs.VolumeID)
	copy(b[71:82], bs.VolumeLabel[:])
	copy(b[82:90], bs.FileSystemType[:])
	return b, nil
}

// UnmarshalBinary decodes a record of exactly BootSectorSize bytes.
func (bs *BootSector) UnmarshalBinary(b []byte) error {
	if len(b) != BootSectorSize {
		return errors.Errorf("cannot decode boot sector from %d bytes, want %d", len(b), BootSectorSize)
	}
	le := binary.LittleEndian
	copy(bs.BootJumpInst[:], b[0:3])
	copy(bs.OEMName[:], b[3:11])
	bs.BytesPerSector = le.Uint16(b[11:13])
	bs.SectorsPerCluster = b[13]
	bs.ReservedSectors = le.Uint16(b[14:16])
	bs.NumberOfFATs = b[16]
	bs.RootDirEntries = le.Uint16(b[17:19])
	bs.TotalSectorsShort = le.Uint16(b[19:21])
	bs.MediaDescriptor = b[21]
	bs.SectorsPerFAT16 = le.Uint16(b[22:24])
	bs.SectorsPerTrack = le.Uint16(b[24:26])
	bs.NumberOfHeads = le.Uint16(b[26:28])
	bs.HiddenSectors = le.Uint32(b[28:32])
	bs.TotalSectorsLong = le.Uint32(b[32:36])
	bs.SectorsPerFAT = le.Uint32(b[36:40])
	bs.ExtFlags = le.Uint16(b[40:42])
	bs.FSVersion = le.Uint16(b[42:44])
	bs.RootCluster = le.Uint32(b[44:48])
	bs.FSInfo = le.Uint16(b[48:50])
	bs.BackupBootSector = le.Uint16(b[50:52])
	copy(bs.Reserved[:], b[52:64])
	bs.DriveNumber = b[64]
	bs.Reserved1 = b[65]
	bs.BootSignature = b[66]
	bs.VolumeID = le.Uint32(b[67:71])
	copy(bs.VolumeLabel[:], b[71:82])
	copy(bs.FileSystemType[:], b[82:90])
	return nil
}

// sector returns the record embedded in a full sector carrying the 0x55 0xAA
// signature in its last two bytes.
func (bs *BootSector) sector() ([]byte, error) {
	rec, err := bs.MarshalBinary()
	if err != nil {
		return nil, err
	}
	size := int(bs.BytesPerSector)
	if size < int(sectorSize) {
		size = int(sectorSize)
	}
	b := make([]byte, size)
	copy(b, rec)
	b[510] = 0x55
	b[511] = 0xAA
	return b, nil
}

// Validate checks the fields a FAT32 boot sector must hold.
func (bs *BootSector) Validate() error {
	for _, check := range []struct {
		field     string
		got, want uint32
	}{
		{"RootDirEntries", uint32(bs.RootDirEntries), 0},
		{"SectorsPerFAT16", uint32(bs.SectorsPerFAT16), 0},
		{"TotalSectorsShort", uint32(bs.TotalSectorsShort), 0},
		{"BootSignature", uint32(bs.BootSignature), uint32(extendedBootSignature)},
	} {
		if check.got != check.want {
			return &FormatError{Record: "boot sector", Field: check.field, Got: check.got, Want: check.want}
		}
	}
	g := Geometry{
		BytesPerSector:    bs.BytesPerSector,
		SectorsPerCluster: bs.SectorsPerCluster,
		ReservedSectors:   bs.ReservedSectors,
		NumberOfFATs:      bs.NumberOfFATs,
	}
	if err := g.validate(); err != nil {
		return &FormatError{Record: "boot sector", Field: "geometry", Reason: err.(*ConfigError).Reason}
	}
	if bs.FSInfo >= bs.ReservedSectors {
		return &FormatError{Record: "boot sector", Field: "FSInfo", Got: uint32(bs.FSInfo), Want: uint32(fsInfoSector)}
	}
	return nil
}
