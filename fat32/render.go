package fat32

import (
	"fmt"
	"strings"
)

// DefaultEntries is the number of allocation table entries Render shows
// unless told otherwise.
const DefaultEntries = 16

const (
	entriesPerLine = 16
	bytesPerLine   = 16
)

// hexPairs renders b as space separated two-digit hex numbers.
func hexPairs(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

// hexDump renders b as indented lines of hexPairs.
func hexDump(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		n := bytesPerLine
		if n > len(b) {
			n = len(b)
		}
		sb.WriteString("\n  ")
		sb.WriteString(hexPairs(b[:n]))
		b = b[n:]
	}
	return sb.String()
}

// RenderBootSector returns every field of bs, one per line.
func RenderBootSector(bs *BootSector) string {
	var sb strings.Builder
	for _, field := range []struct {
		name  string
		value interface{}
	}{
		{"BootJumpInst", hexPairs(bs.BootJumpInst[:])},
		{"OemName", string(bs.OEMName[:])},
		{"BytesPerSector", bs.BytesPerSector},
		{"SectorsPerCluster", bs.SectorsPerCluster},
		{"ReservedSectors", bs.ReservedSectors},
		{"NumberOfFATs", bs.NumberOfFATs},
		{"RootDirEntries", bs.RootDirEntries},
		{"TotalSectorsShort", bs.TotalSectorsShort},
		{"MediaDescriptor", fmt.Sprintf("%#x", bs.MediaDescriptor)},
		{"SectorsPerFAT16", bs.SectorsPerFAT16},
		{"SectorsPerTrack", bs.SectorsPerTrack},
		{"NumberOfHeads", bs.NumberOfHeads},
		{"HiddenSectors", bs.HiddenSectors},
		{"TotalSectorsLong", bs.TotalSectorsLong},
		{"SectorsPerFAT", bs.SectorsPerFAT},
		{"ExtFlags", fmt.Sprintf("%#x", bs.ExtFlags)},
		{"FsVersion", bs.FSVersion},
		{"RootCluster", bs.RootCluster},
		{"FsInfo", bs.FSInfo},
		{"BackupBootSector", bs.BackupBootSector},
		{"DriveNumber", fmt.Sprintf("%#x", bs.DriveNumber)},
		{"BootSignature", fmt.Sprintf("%#x", bs.BootSignature)},
		{"VolumeID", fmt.Sprintf("%#x", bs.VolumeID)},
		{"VolumeLabel", string(bs.VolumeLabel[:])},
		{"FileSystemType", string(bs.FileSystemType[:])},
	} {
		fmt.Fprintf(&sb, "%s: %v\n", field.name, field.value)
	}
	return sb.String()
}

// RenderFSInfo returns every field of fi, one per line, with the reserved
// areas as hex dumps.
func RenderFSInfo(fi *FSInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "LeadSignature: %#x\n", fi.LeadSignature)
	fmt.Fprintf(&sb, "Reserved1: %s\n", hexDump(fi.Reserved1[:]))
	fmt.Fprintf(&sb, "StructSignature: %#x\n", fi.StructSignature)
	fmt.Fprintf(&sb, "FreeCount: %d\n", fi.FreeCount)
	fmt.Fprintf(&sb, "NextFree: %d\n", fi.NextFree)
	fmt.Fprintf(&sb, "Reserved2: %s\n", hexDump(fi.Reserved2[:]))
	fmt.Fprintf(&sb, "TrailSignature: %#x\n", fi.TrailSignature)
	return sb.String()
}

// RenderTable returns the first n entries of t as 8-digit hex words, 16 per
// line. n is clamped to the entries t holds; n <= 0 yields "".
func RenderTable(t Table, n int) string {
	if n > t.Len() {
		n = t.Len()
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i%entriesPerLine != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08x", t.Entry(uint32(i)))
		if (i+1)%entriesPerLine == 0 || i == n-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Render returns all of v: boot sector, FS information sector and the first
// n allocation table entries.
func Render(v *Volume, n int) string {
	var sb strings.Builder
	sb.WriteString("===== FAT32 Boot Sector =====\n")
	sb.WriteString(RenderBootSector(v.BootSector))
	sb.WriteString("\n===== FAT32 FS Info Sector =====\n")
	sb.WriteString(RenderFSInfo(v.FSInfo))
	fmt.Fprintf(&sb, "\n===== FAT Table (%d entries available) =====\n", v.FAT.Len())
	sb.WriteString(RenderTable(v.FAT, n))
	return sb.String()
}
