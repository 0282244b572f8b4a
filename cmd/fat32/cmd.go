package main

import (
	"github.com/gokrazy/fat32/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newCmd builds the command tree. loadConfig runs only once a subcommand is
// about to run, so that help and usage work with a broken config file.
func newCmd(fs afero.Fs, loadConfig func(afero.Fs) (*config.Config, error)) *cobra.Command {
	var (
		flagQuiet   bool
		flagVerbose bool
		cfg         = &config.Config{}
	)
	cmd := &cobra.Command{
		Use:               "fat32",
		Short:             "write and inspect FAT32 metadata",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(flagQuiet, flagVerbose); err != nil {
				return err
			}
			c, err := loadConfig(fs)
			if err != nil {
				return err
			}
			*cfg = *c
			return nil
		},
	}

	cmd.AddCommand(formatCmd(fs, cfg))
	cmd.AddCommand(inspectCmd(fs, cfg))
	cmd.AddCommand(verifyCmd(fs))

	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Quiet execution")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose execution")

	return cmd
}
