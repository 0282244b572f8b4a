package fat32

import "fmt"

// ConfigError reports geometry or options which cannot produce a usable
// volume.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Reason }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// Stage names the part of an image an I/O operation was working on.
type Stage string

const (
	StageBootSector Stage = "boot sector"
	StageFSInfo     Stage = "FS info sector"
	StageFAT        Stage = "FAT"
)

// fatCopy returns the stage for the n-th (1-based) FAT copy.
func fatCopy(n int) Stage {
	return Stage(fmt.Sprintf("FAT copy %d", n))
}

// IOError is a failed or short seek, read or write at a named stage.
type IOError struct {
	Op    string // "seek", "read" or "write"
	Stage Stage
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Stage, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a record field that does not hold its required value.
type FormatError struct {
	Record string
	Field  string
	Got    uint32
	Want   uint32

	// Reason replaces Got and Want when the field has no single valid value.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s: %s", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s is %#x, want %#x", e.Record, e.Field, e.Got, e.Want)
}
