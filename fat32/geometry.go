package fat32

import "math"

const (
	// entrySize is the width of one FAT32 allocation table entry in bytes.
	entrySize = 4

	// reservedEntries is the number of table entries preceding the first
	// usable cluster: entry 0 echoes the media descriptor, entry 1 holds the
	// end-of-chain marker.
	reservedEntries = 2

	// maxIterations bounds the fixed-point search in SectorsPerFAT.
	maxIterations = 64
)

// Geometry holds the parameters the size of a FAT depends on.
type Geometry struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumberOfFATs      uint8
}

// DefaultGeometry is the geometry NewBootSector uses unless overridden.
var DefaultGeometry = Geometry{
	BytesPerSector:    sectorSize,
	SectorsPerCluster: sectorsPerCluster,
	ReservedSectors:   reservedSectors,
	NumberOfFATs:      numberOfFATs,
}

func (g Geometry) validate() error {
	switch {
	case g.BytesPerSector == 0:
		return configErrorf("bytes per sector must not be 0")
	case g.BytesPerSector&(g.BytesPerSector-1) != 0:
		return configErrorf("bytes per sector (%d) must be a power of two", g.BytesPerSector)
	case g.SectorsPerCluster == 0:
		return configErrorf("sectors per cluster must not be 0")
	case g.SectorsPerCluster&(g.SectorsPerCluster-1) != 0:
		return configErrorf("sectors per cluster (%d) must be a power of two", g.SectorsPerCluster)
	case g.NumberOfFATs == 0:
		return configErrorf("number of FATs must not be 0")
	}
	return nil
}

// fatSectorsFor returns the number of sectors needed to hold one table entry
// per cluster plus the reserved entries.
func fatSectorsFor(clusters, bytesPerSector uint64) uint64 {
	bytes := (clusters + reservedEntries) * entrySize
	return (bytes + bytesPerSector - 1) / bytesPerSector
}

// SectorsPerFAT returns the number of sectors one copy of the allocation
// table occupies on a volume of volumeBytes bytes.
//
// The FAT size depends on the number of clusters, which in turn depends on
// how much space the FAT copies take, so the size is found by iterating from
// a guess that ignores the FATs until it no longer changes.
func SectorsPerFAT(volumeBytes uint64, g Geometry) (uint32, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	var (
		bps      = uint64(g.BytesPerSector)
		spc      = uint64(g.SectorsPerCluster)
		reserved = uint64(g.ReservedSectors)
		fats     = uint64(g.NumberOfFATs)
	)
	totalSectors := volumeBytes / bps
	if totalSectors > math.MaxUint32 {
		return 0, configErrorf("volume of %d sectors exceeds the FAT32 limit of %d sectors", totalSectors, uint64(math.MaxUint32))
	}
	if totalSectors <= reserved {
		return 0, configErrorf("volume of %d sectors cannot hold %d reserved sectors", totalSectors, reserved)
	}

	// clustersFor returns the number of data clusters left over when each FAT
	// copy occupies fatSize sectors, or false if nothing is left over.
	clustersFor := func(fatSize uint64) (uint64, bool) {
		used := reserved + fats*fatSize
		if used >= totalSectors {
			return 0, false
		}
		clusters := (totalSectors - used) / spc
		return clusters, clusters >= minClusters
	}

	fatSize := fatSectorsFor((totalSectors-reserved)/spc, bps)
	if _, ok := clustersFor(fatSize); !ok {
		return 0, configErrorf("volume of %d sectors is too small for %d reserved sectors and %d FAT(s) of %d sectors", totalSectors, reserved, fats, fatSize)
	}
	var previous uint64
	for i := 0; i < maxIterations; i++ {
		clusters, ok := clustersFor(fatSize)
		if !ok {
			return 0, configErrorf("volume of %d sectors leaves no data clusters with %d FAT(s) of %d sectors", totalSectors, fats, fatSize)
		}
		next := fatSectorsFor(clusters, bps)
		if next == fatSize {
			return uint32(fatSize), nil
		}
		if i > 0 && next == previous {
			// Alternating between two sizes: the larger one addresses every
			// cluster left over by either.
			if next > fatSize {
				fatSize = next
			}
			if _, ok := clustersFor(fatSize); !ok {
				return 0, configErrorf("volume of %d sectors leaves no data clusters with %d FAT(s) of %d sectors", totalSectors, fats, fatSize)
			}
			return uint32(fatSize), nil
		}
		previous, fatSize = fatSize, next
	}
	return 0, configErrorf("FAT size did not converge after %d iterations", maxIterations)
}
