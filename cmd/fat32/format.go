package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gokrazy/fat32/blockdev"
	"github.com/gokrazy/fat32/config"
	"github.com/gokrazy/fat32/fat32"
	"github.com/gokrazy/fat32/geometryflag"
	"github.com/gokrazy/fat32/humanize"
	"github.com/gokrazy/fat32/progress"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const mib = 1024 * 1024

func formatCmd(fs afero.Fs, cfg *config.Config) *cobra.Command {
	geometry := geometryflag.New()
	cmd := &cobra.Command{
		Use:   "format IMAGE",
		Short: "write empty FAT32 metadata to an existing image",
		Long: `Write a boot sector, an FS information sector and the FATs of an
empty FAT32 volume to IMAGE, which must already exist. The volume covers
IMAGE rounded down to whole MiB.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			geometry.ApplyDefaults(cfg.Format)
			opts, err := geometry.Options()
			if err != nil {
				return err
			}
			f, err := fs.OpenFile(args[0], os.O_RDWR, 0)
			if err != nil {
				return err
			}
			defer f.Close()

			size, err := blockdev.Size(f)
			if err != nil {
				return errors.Wrapf(err, "size of %s", args[0])
			}
			sizeMiB := size / mib
			log.Debugf("%s holds %s, formatting %d MiB", args[0], humanize.Bytes(uint64(size)), sizeMiB)

			v, err := format(cmd.Context(), f, uint64(sizeMiB)*mib, opts)
			if err != nil {
				return err
			}
			if err := f.Sync(); err != nil {
				return errors.Wrapf(err, "sync %s", args[0])
			}
			bs := v.BootSector
			log.Debugf("%d sectors per FAT, %d data clusters of %s",
				bs.SectorsPerFAT,
				bs.DataClusters(),
				humanize.Bytes(uint64(bs.SectorsPerCluster)*uint64(bs.BytesPerSector)))

			fmt.Fprintf(cmd.OutOrStdout(), "FAT32 image file %s formatted successfully with size %d MB.\n", args[0], sizeMiB)
			return nil
		},
	}

	geometry.RegisterPflags(cmd.Flags())

	return cmd
}

// format writes the metadata of an empty volume to f, reporting progress
// unless logging is quiet.
func format(ctx context.Context, f afero.File, volumeBytes uint64, opts *fat32.Options) (*fat32.Volume, error) {
	v, err := fat32.NewVolume(volumeBytes, opts)
	if err != nil {
		return nil, err
	}
	bs := v.BootSector
	w := &progress.WriteSeeker{WriteSeeker: f}
	if log.IsLevelEnabled(log.InfoLevel) {
		var p progress.Reporter
		p.SetStatus("formatting " + f.Name())
		p.SetTotal(2*uint64(bs.BytesPerSector) + uint64(bs.NumberOfFATs)*uint64(bs.FATBytes()))
		ctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			p.Report(ctx, w, log.StandardLogger().Out, time.Second)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}
	if err := fat32.WriteVolume(w, v); err != nil {
		return nil, err
	}
	log.Debugf("wrote %s of metadata", humanize.Bytes(w.Written()))
	return v, nil
}
