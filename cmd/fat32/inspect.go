package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gokrazy/fat32/config"
	"github.com/gokrazy/fat32/fat32"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func inspectCmd(fs afero.Fs, cfg *config.Config) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "inspect IMAGE [ENTRIES]",
		Short: "print the FAT32 metadata of an image",
		Long: `Print the boot sector, the FS information sector and the first ENTRIES
entries of the first FAT of IMAGE. ENTRIES <= 0 prints no entries; a
negative ENTRIES must follow --, as in: fat32 inspect -- IMAGE -1`,
		Example: `  fat32 inspect fat32.img 64
  fat32 inspect --strict fat32.img`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				strict = cfg.Inspect.Strict
			}
			entries := fat32.DefaultEntries
			if cfg.Inspect.Entries != 0 {
				entries = cfg.Inspect.Entries
			}
			if len(args) > 1 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return errors.Errorf("invalid number of entries %q", args[1])
				}
				entries = n
			}

			f, err := fs.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			v, err := fat32.ReadVolume(f, &fat32.ReadOptions{Strict: strict})
			if err != nil {
				return err
			}
			if !strict {
				for _, err := range []error{v.BootSector.Validate(), v.FSInfo.Validate()} {
					if err != nil {
						log.Warn(err)
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), fat32.Render(v, entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "refuse images with wrong signatures or non-FAT32 fields (default from config)")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if negativeNumberFlag(err) {
			return errors.Wrap(err, "negative ENTRIES must follow --")
		}
		return err
	})

	return cmd
}

// negativeNumberFlag reports whether err is pflag rejecting an argument such
// as -1, which pflag reads as the shorthand flag 1.
func negativeNumberFlag(err error) bool {
	const prefix = "unknown shorthand flag: '"
	msg := err.Error()
	if !strings.HasPrefix(msg, prefix) || len(msg) <= len(prefix) {
		return false
	}
	c := msg[len(prefix)]
	return c >= '0' && c <= '9'
}
