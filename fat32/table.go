package fat32

import (
	"encoding/binary"
	"fmt"
)

const (
	// MediaEntry is entry 0 of the table: the media descriptor in the low
	// byte, all other bits set.
	MediaEntry = uint32(0x0FFFFF00) | uint32(hardDisk)

	// EndOfChain marks the last cluster of a chain. Entry 1 holds it too.
	EndOfChain = uint32(0x0FFFFFFF)
)

// Table is one copy of the file allocation table: a little-endian 32-bit
// entry per cluster number.
type Table []byte

// NewTable returns the allocation table of a freshly formatted volume: all
// clusters free except the single-cluster root directory.
func NewTable(bs *BootSector) Table {
	t := make(Table, bs.FATBytes())
	t.Set(0, MediaEntry)
	t.Set(1, EndOfChain)
	t.Set(bs.RootCluster, EndOfChain)
	return t
}

// Len returns the number of entries the table holds.
func (t Table) Len() int { return len(t) / entrySize }

func (t Table) bounds(index uint32) int {
	if index >= uint32(t.Len()) {
		panic(fmt.Sprintf("fat32: table entry %d out of range [0, %d)", index, t.Len()))
	}
	return int(index) * entrySize
}

// Set stores value in entry index. Set panics if index is out of range.
func (t Table) Set(index, value uint32) {
	off := t.bounds(index)
	binary.LittleEndian.PutUint32(t[off:off+entrySize], value)
}

// Entry returns entry index. Entry panics if index is out of range.
func (t Table) Entry(index uint32) uint32 {
	off := t.bounds(index)
	return binary.LittleEndian.Uint32(t[off : off+entrySize])
}
