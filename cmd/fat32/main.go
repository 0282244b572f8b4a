// Program fat32 writes and inspects the metadata of FAT32 images.
package main

import (
	"fmt"
	"os"

	"github.com/gokrazy/fat32/config"
	"github.com/spf13/afero"
)

func main() {
	if err := newCmd(afero.NewOsFs(), config.Load).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
