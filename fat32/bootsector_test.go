package fat32

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func wantBootSector64MiB() *BootSector {
	return &BootSector{
		BootJumpInst:      [3]byte{0xEB, 0x58, 0x90},
		OEMName:           [8]byte{'M', 'S', 'W', 'I', 'N', '4', '.', '1'},
		BytesPerSector:    512,
		SectorsPerCluster: 8,
		ReservedSectors:   32,
		NumberOfFATs:      2,
		MediaDescriptor:   0xF8,
		SectorsPerTrack:   63,
		NumberOfHeads:     64,
		TotalSectorsLong:  131072,
		SectorsPerFAT:     128,
		RootCluster:       2,
		FSInfo:            1,
		BackupBootSector:  6,
		DriveNumber:       0x80,
		BootSignature:     0x29,
		VolumeID:          0xDEADBEEF,
		VolumeLabel:       [11]byte{'N', 'O', ' ', 'N', 'A', 'M', 'E', ' ', ' ', ' ', ' '},
		FileSystemType:    [8]byte{'F', 'A', 'T', '3', '2', ' ', ' ', ' '},
	}
}

func TestNewBootSector(t *testing.T) {
	got, err := NewBootSector(64*1024*1024, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantBootSector64MiB(), got); diff != "" {
		t.Fatalf("unexpected boot sector: diff (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Fatal(err)
	}
	if got, want := got.DataClusters(), uint32(16348); got != want {
		t.Errorf("DataClusters() = %d, want %d", got, want)
	}
}

func TestNewBootSectorOptions(t *testing.T) {
	got, err := NewBootSector(64*1024*1024, &Options{
		OEMName:           "gokrazy",
		VolumeLabel:       "BOOT",
		VolumeID:          0xf3f37b84,
		SectorsPerCluster: 1,
		ReservedSectors:   8,
		NumberOfFATs:      1,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := wantBootSector64MiB()
	want.OEMName = [8]byte{'g', 'o', 'k', 'r', 'a', 'z', 'y', ' '}
	want.VolumeLabel = [11]byte{'B', 'O', 'O', 'T', ' ', ' ', ' ', ' ', ' ', ' ', ' '}
	want.VolumeID = 0xf3f37b84
	want.SectorsPerCluster = 1
	want.ReservedSectors = 8
	want.NumberOfFATs = 1
	want.SectorsPerFAT = 1017
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected boot sector: diff (-want +got):\n%s", diff)
	}
}

func TestNewBootSectorInvalidOptions(t *testing.T) {
	for _, entry := range []struct {
		desc string
		opts Options
	}{
		{"long label", Options{VolumeLabel: "TWELVE CHARS"}},
		{"long OEM name", Options{OEMName: "NINECHARS"}},
		{"non-ASCII label", Options{VolumeLabel: "BÖÖT"}},
		{"reserved sectors overlap backup", Options{ReservedSectors: 6}},
	} {
		entry := entry // copy
		t.Run(entry.desc, func(t *testing.T) {
			_, err := NewBootSector(64*1024*1024, &entry.opts)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("NewBootSector(%+v) = %v, want *ConfigError", entry.opts, err)
			}
		})
	}
}

func TestBootSectorLayout(t *testing.T) {
	bs := wantBootSector64MiB()
	b, err := bs.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(b), BootSectorSize; got != want {
		t.Fatalf("len(MarshalBinary()) = %d, want %d", got, want)
	}
	le := binary.LittleEndian
	for _, field := range []struct {
		name      string
		got, want uint32
	}{
		{"BytesPerSector@11", uint32(le.Uint16(b[11:])), 512},
		{"SectorsPerCluster@13", uint32(b[13]), 8},
		{"ReservedSectors@14", uint32(le.Uint16(b[14:])), 32},
		{"NumberOfFATs@16", uint32(b[16]), 2},
		{"MediaDescriptor@21", uint32(b[21]), 0xF8},
		{"TotalSectorsLong@32", le.Uint32(b[32:]), 131072},
		{"SectorsPerFAT@36", le.Uint32(b[36:]), 128},
		{"RootCluster@44", le.Uint32(b[44:]), 2},
		{"FSInfo@48", uint32(le.Uint16(b[48:])), 1},
		{"BackupBootSector@50", uint32(le.Uint16(b[50:])), 6},
		{"BootSignature@66", uint32(b[66]), 0x29},
		{"VolumeID@67", le.Uint32(b[67:]), 0xDEADBEEF},
	} {
		if field.got != field.want {
			t.Errorf("%s = %#x, want %#x", field.name, field.got, field.want)
		}
	}
	if got, want := string(b[82:90]), "FAT32   "; got != want {
		t.Errorf("FileSystemType@82 = %q, want %q", got, want)
	}

	var decoded BootSector
	if err := decoded.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bs, &decoded); diff != "" {
		t.Fatalf("unexpected decoded boot sector: diff (-want +got):\n%s", diff)
	}

	if err := decoded.UnmarshalBinary(b[:BootSectorSize-1]); err == nil {
		t.Errorf("UnmarshalBinary(%d bytes) unexpectedly succeeded", BootSectorSize-1)
	}
}

func TestBootSectorSector(t *testing.T) {
	b, err := wantBootSector64MiB().sector()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(b), 512; got != want {
		t.Fatalf("len(sector()) = %d, want %d", got, want)
	}
	if b[510] != 0x55 || b[511] != 0xAA {
		t.Errorf("sector signature = %x, want 55aa", b[510:])
	}
	for i, c := range b[BootSectorSize:510] {
		if c != 0 {
			t.Fatalf("boot code byte %d = %#x, want 0", BootSectorSize+i, c)
		}
	}
}

func TestBootSectorValidate(t *testing.T) {
	for _, entry := range []struct {
		field  string
		modify func(bs *BootSector)
	}{
		{"RootDirEntries", func(bs *BootSector) { bs.RootDirEntries = 512 }},
		{"SectorsPerFAT16", func(bs *BootSector) { bs.SectorsPerFAT16 = 9 }},
		{"TotalSectorsShort", func(bs *BootSector) { bs.TotalSectorsShort = 2880 }},
		{"BootSignature", func(bs *BootSector) { bs.BootSignature = 0x28 }},
		{"geometry", func(bs *BootSector) { bs.SectorsPerCluster = 0 }},
		{"FSInfo", func(bs *BootSector) { bs.FSInfo = 40 }},
	} {
		entry := entry // copy
		t.Run(entry.field, func(t *testing.T) {
			bs := wantBootSector64MiB()
			entry.modify(bs)
			var ferr *FormatError
			if err := bs.Validate(); !errors.As(err, &ferr) {
				t.Fatalf("Validate() = %v, want *FormatError", err)
			}
			if ferr.Field != entry.field {
				t.Errorf("FormatError.Field = %q, want %q", ferr.Field, entry.field)
			}
		})
	}
}
