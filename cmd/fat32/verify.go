package main

import (
	"fmt"

	"github.com/gokrazy/fat32/blockdev"
	"github.com/gokrazy/fat32/crosscheck"
	"github.com/gokrazy/fat32/humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func verifyCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify IMAGE",
		Short: "check the FAT32 metadata of an image",
		Long: `Check IMAGE strictly, then open it with go-diskfs, which compares the
FAT copies and reads the root directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			size, err := blockdev.Size(f)
			if err != nil {
				return errors.Wrapf(err, "size of %s", args[0])
			}
			res, err := crosscheck.Verify(f, size)
			if err != nil {
				return errors.Wrapf(err, "verify %s", args[0])
			}
			bs := res.Volume.BootSector
			log.Debugf("root directory holds %d entries", res.RootEntries)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: FAT32 volume of %s, %d data clusters, %d free\n",
				args[0],
				humanize.Bytes(uint64(bs.TotalSectorsLong)*uint64(bs.BytesPerSector)),
				bs.DataClusters(),
				res.Volume.FSInfo.FreeCount)
			return nil
		},
	}

	return cmd
}
