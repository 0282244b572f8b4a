// Package geometryflag registers the command line flags which shape a new
// FAT32 volume.
package geometryflag

import (
	"github.com/gokrazy/fat32/config"
	"github.com/gokrazy/fat32/fat32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Flags holds the values of the registered flags.
type Flags struct {
	label             string
	oemName           string
	volumeID          uint32
	randomVolumeID    bool
	sectorsPerCluster uint8
	reservedSectors   uint16
	fats              uint8

	fs *pflag.FlagSet
}

// New returns Flags defaulting to the built-in geometry.
func New() *Flags {
	g := fat32.DefaultGeometry
	return &Flags{
		label:             fat32.DefaultVolumeLabel,
		oemName:           fat32.DefaultOEMName,
		volumeID:          fat32.DefaultVolumeID,
		sectorsPerCluster: g.SectorsPerCluster,
		reservedSectors:   g.ReservedSectors,
		fats:              g.NumberOfFATs,
	}
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// ApplyDefaults replaces the built-in defaults with the non-zero fields of
// cfg. Flags given on the command line keep their value.
func (f *Flags) ApplyDefaults(cfg config.FormatConfig) {
	if cfg.Label != "" && !f.changed("label") {
		f.label = cfg.Label
	}
	if cfg.OEMName != "" && !f.changed("oem_name") {
		f.oemName = cfg.OEMName
	}
	if cfg.VolumeID != 0 && !f.changed("volume_id") {
		f.volumeID = cfg.VolumeID
	}
	if cfg.RandomVolumeID && !f.changed("random_volume_id") && !f.changed("volume_id") {
		f.randomVolumeID = true
	}
	if cfg.SectorsPerCluster != 0 && !f.changed("sectors_per_cluster") {
		f.sectorsPerCluster = cfg.SectorsPerCluster
	}
	if cfg.ReservedSectors != 0 && !f.changed("reserved_sectors") {
		f.reservedSectors = cfg.ReservedSectors
	}
	if cfg.FATs != 0 && !f.changed("fats") {
		f.fats = cfg.FATs
	}
}

func (f *Flags) RegisterPflags(fs *pflag.FlagSet) {
	fs.StringVar(&f.label,
		"label",
		f.label,
		`volume label, up to 11 ASCII characters`)

	fs.StringVar(&f.oemName,
		"oem_name",
		f.oemName,
		`OEM name, up to 8 ASCII characters`)

	fs.Uint32Var(&f.volumeID,
		"volume_id",
		f.volumeID,
		`volume serial number, non-zero (accepts 0x prefixed hex)`)

	fs.BoolVar(&f.randomVolumeID,
		"random_volume_id",
		f.randomVolumeID,
		`derive the volume serial number from a random UUID`)

	fs.Uint8Var(&f.sectorsPerCluster,
		"sectors_per_cluster",
		f.sectorsPerCluster,
		`sectors per cluster, a power of two`)

	fs.Uint16Var(&f.reservedSectors,
		"reserved_sectors",
		f.reservedSectors,
		`sectors before the first FAT, including the boot sector`)

	fs.Uint8Var(&f.fats,
		"fats",
		f.fats,
		`number of FAT copies`)

	f.fs = fs
}

// Options returns the fat32.Options the flags describe. Numeric flags given
// as 0 are rejected: fat32.Options treats 0 as unset.
func (f *Flags) Options() (*fat32.Options, error) {
	for _, num := range []struct {
		name  string
		value uint32
	}{
		{"volume_id", f.volumeID},
		{"sectors_per_cluster", uint32(f.sectorsPerCluster)},
		{"reserved_sectors", uint32(f.reservedSectors)},
		{"fats", uint32(f.fats)},
	} {
		if num.value == 0 && f.changed(num.name) {
			return nil, errors.Errorf("--%s must not be 0", num.name)
		}
	}
	volumeID := f.volumeID
	if f.randomVolumeID {
		if f.changed("volume_id") {
			return nil, errors.New("--volume_id and --random_volume_id are mutually exclusive")
		}
		u, err := uuid.NewRandom()
		if err != nil {
			return nil, errors.Wrap(err, "generating volume ID")
		}
		volumeID = u.ID()
	}
	return &fat32.Options{
		OEMName:           f.oemName,
		VolumeLabel:       f.label,
		VolumeID:          volumeID,
		SectorsPerCluster: f.sectorsPerCluster,
		ReservedSectors:   f.reservedSectors,
		NumberOfFATs:      f.fats,
	}, nil
}
