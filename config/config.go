// Package config reads the per-user defaults of the fat32 tool, such as the
// volume label new images get.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// PathEnv names the environment variable which overrides Path.
const PathEnv = "FAT32_CONFIG"

// Config is the global tool configuration
type Config struct {
	Format  FormatConfig  `yaml:"format"`
	Inspect InspectConfig `yaml:"inspect"`
}

// FormatConfig is the config specific to the `format` subcommand. Zero values
// leave the built-in defaults in place, so e.g. `volume-id: 0` keeps
// 0xDEADBEEF.
type FormatConfig struct {
	Label             string `yaml:"label"`
	OEMName           string `yaml:"oem-name"`
	VolumeID          uint32 `yaml:"volume-id"`
	RandomVolumeID    bool   `yaml:"random-volume-id"`
	SectorsPerCluster uint8  `yaml:"sectors-per-cluster"`
	ReservedSectors   uint16 `yaml:"reserved-sectors"`
	FATs              uint8  `yaml:"fats"`
}

// InspectConfig is the config specific to the `inspect` subcommand.
type InspectConfig struct {
	Entries int  `yaml:"entries"`
	Strict  bool `yaml:"strict"`
}

// Dir is typically ~/.config/fat32 on Linux and
// ~/Library/Application Support/fat32 on macOS.
func Dir() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "https://golang.org/pkg/os/#UserConfigDir failed")
	}
	return filepath.Join(userConfigDir, "fat32"), nil
}

// Path returns $FAT32_CONFIG if set, config.yml in Dir otherwise.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// Read parses the config file at path. A missing file yields the zero Config.
func Read(fs afero.Fs, path string) (*Config, error) {
	var cfg Config
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read %q", path)
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", path)
	}
	return &cfg, nil
}

// Load reads the config file at Path.
func Load(fs afero.Fs) (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Read(fs, path)
}
